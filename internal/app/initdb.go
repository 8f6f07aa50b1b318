package app

import (
	"go.uber.org/zap"

	"github.com/talkincode/taskrest/internal/domain"
)

// defaultCategories is the dictionary every installation starts with
var defaultCategories = []domain.ProductCategory{
	{Name: "Main course", Type: domain.CategoryMainCourse},
	{Name: "Appetizers", Type: domain.CategoryAppetizer},
	{Name: "Desserts", Type: domain.CategoryDessert},
	{Name: "Drinks", Type: domain.CategoryDrink},
}

// checkCategories creates the default categories that are missing
func (a *Application) checkCategories() {
	for _, c := range defaultCategories {
		var count int64
		if err := a.gormDB.Model(&domain.ProductCategory{}).Where("name = ?", c.Name).Count(&count).Error; err != nil {
			zap.L().Error("failed to query product category", zap.String("name", c.Name), zap.Error(err))
			return
		}
		if count > 0 {
			continue
		}
		category := c
		if err := a.gormDB.Create(&category).Error; err != nil {
			zap.L().Error("failed to create product category", zap.String("name", c.Name), zap.Error(err))
			continue
		}
		zap.L().Info("initialized default product category",
			zap.String("name", category.Name),
			zap.String("type", string(category.Type)))
	}
}
