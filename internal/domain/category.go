package domain

import "fmt"

type CategoryType string

const (
	CategoryMainCourse CategoryType = "MainCourse"
	CategoryAppetizer  CategoryType = "Appetizer"
	CategoryDessert    CategoryType = "Dessert"
	CategoryDrink      CategoryType = "Drink"
)

var CategoryTypes = []CategoryType{CategoryMainCourse, CategoryAppetizer, CategoryDessert, CategoryDrink}

// ParseCategoryType accepts only the declared category names.
func ParseCategoryType(s string) (CategoryType, error) {
	for _, t := range CategoryTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown category type %q", s)
}

// ProductCategory groups products; the products of a category are found
// through the link table and never stored on the category row.
type ProductCategory struct {
	ID   int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string       `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Type CategoryType `gorm:"size:32;not null" json:"type"`
}

// TableName returns table name
func (ProductCategory) TableName() string {
	return "products_categories"
}

// ProductCategoryLink is one row of the many-to-many relation between
// products and categories. The pair is the primary key; Position keeps the
// order in which categories were attached to the product.
type ProductCategoryLink struct {
	ProductID  int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64 `gorm:"primaryKey;autoIncrement:false;index"`
	Position   int   `gorm:"not null;default:0"`
}

// TableName returns table name
func (ProductCategoryLink) TableName() string {
	return "products_products_categories"
}
