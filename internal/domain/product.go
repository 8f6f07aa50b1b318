package domain

import "github.com/shopspring/decimal"

// Product is a menu item. It may stand alone or be a line of an OrderDetail,
// in which case OrderDetailID carries the owning order.
type Product struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	Price         decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	Available     bool              `gorm:"not null" json:"available"`
	OrderDetailID *int64            `gorm:"index" json:"order_detail_id,omitempty"`
	Categories    []ProductCategory `gorm:"-" json:"categories"`
}

// TableName returns table name
func (Product) TableName() string {
	return "products"
}

// CategoryIDs returns the ids of the attached categories in list order.
func (p Product) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
