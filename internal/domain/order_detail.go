package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderReceived  OrderStatus = "Received"
	OrderPreparing OrderStatus = "Preparing"
	OrderReady     OrderStatus = "Ready"
)

var OrderStatuses = []OrderStatus{OrderReceived, OrderPreparing, OrderReady}

// ParseOrderStatus accepts only the declared status names.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// OrderDetail owns its products: every product row of the order carries the
// order id and is replaced wholesale when the order is updated.
type OrderDetail struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderStatus OrderStatus     `gorm:"size:32;not null" json:"order_status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Products    []Product       `gorm:"-" json:"products"`
}

// TableName returns table name
func (OrderDetail) TableName() string {
	return "order_details"
}
