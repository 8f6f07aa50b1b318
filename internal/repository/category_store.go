package repository

import (
	"gorm.io/gorm"

	"github.com/talkincode/taskrest/internal/domain"
)

// CategoryRepository reads the product category dictionary
type CategoryRepository interface {
	FindAll(conn *gorm.DB) ([]domain.ProductCategory, error)
}

// CategoryStore is the gorm implementation of CategoryRepository
type CategoryStore struct{}

var _ CategoryRepository = (*CategoryStore)(nil)

// NewCategoryStore creates a category store
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{}
}

func (s *CategoryStore) FindAll(conn *gorm.DB) ([]domain.ProductCategory, error) {
	categories := make([]domain.ProductCategory, 0)
	err := inTx(conn, "category.find_all", func(tx *gorm.DB) error {
		return tx.Order("id").Find(&categories).Error
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}
