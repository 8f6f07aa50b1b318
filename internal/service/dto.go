package service

import "github.com/shopspring/decimal"

// ProductCategoryDTO references a category by id. Name and type are filled
// on the way out and only checked on the way in.
type ProductCategoryDTO struct {
	ID   int64  `json:"id" validate:"gt=0"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

type ProductDTO struct {
	ID            int64                `json:"id" validate:"gte=0"`
	Name          string               `json:"name" validate:"required,max=255"`
	Price         decimal.Decimal      `json:"price"`
	Quantity      int                  `json:"quantity" validate:"gte=0"`
	Available     bool                 `json:"available"`
	OrderDetailID *int64               `json:"orderDetailId,omitempty"`
	Categories    []ProductCategoryDTO `json:"categories" validate:"dive"`
}

type OrderDetailDTO struct {
	ID          int64           `json:"id" validate:"gte=0"`
	OrderStatus string          `json:"orderStatus" validate:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Products    []ProductDTO    `json:"products" validate:"dive"`
}
