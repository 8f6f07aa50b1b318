package repository

import (
	"errors"

	"github.com/samber/mo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/taskrest/internal/domain"
)

// OrderDetailRepository handles persistence of orders and the products they own
type OrderDetailRepository interface {
	// Save inserts the order, its products and their category links
	Save(conn *gorm.DB, order *domain.OrderDetail) error

	// FindByID loads an order with its products and their categories
	FindByID(conn *gorm.DB, id int64) (mo.Option[domain.OrderDetail], error)

	// Update rewrites the order row and replaces all of its products.
	// Returns None when no order has the given id.
	Update(conn *gorm.DB, order *domain.OrderDetail) (mo.Option[domain.OrderDetail], error)

	// DeleteByID removes the order, its products and their category links
	DeleteByID(conn *gorm.DB, id int64) error

	// FindAll loads every order ordered by id
	FindAll(conn *gorm.DB) ([]domain.OrderDetail, error)
}

// OrderDetailStore is the gorm implementation of OrderDetailRepository
type OrderDetailStore struct {
	products *ProductStore
}

var _ OrderDetailRepository = (*OrderDetailStore)(nil)

// NewOrderDetailStore creates an order store writing line items through products
func NewOrderDetailStore(products *ProductStore) *OrderDetailStore {
	return &OrderDetailStore{products: products}
}

func (s *OrderDetailStore) Save(conn *gorm.DB, order *domain.OrderDetail) error {
	return inTx(conn, "order_detail.save", func(tx *gorm.DB) error {
		order.ID = 0
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		zap.L().Debug("order row inserted", zap.Int64("id", order.ID), zap.Int("products", len(order.Products)))
		return s.insertProducts(tx, order)
	})
}

func (s *OrderDetailStore) FindByID(conn *gorm.DB, id int64) (mo.Option[domain.OrderDetail], error) {
	result := mo.None[domain.OrderDetail]()
	err := inTx(conn, "order_detail.find_by_id", func(tx *gorm.DB) error {
		var order domain.OrderDetail
		err := tx.Where("id = ?", id).Take(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if order.Products, err = s.products.findByOrder(tx, order.ID); err != nil {
			return err
		}
		result = mo.Some(order)
		return nil
	})
	if err != nil {
		return mo.None[domain.OrderDetail](), err
	}
	return result, nil
}

func (s *OrderDetailStore) Update(conn *gorm.DB, order *domain.OrderDetail) (mo.Option[domain.OrderDetail], error) {
	found := false
	err := inTx(conn, "order_detail.update", func(tx *gorm.DB) error {
		res := tx.Model(&domain.OrderDetail{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"order_status": order.OrderStatus,
			"total_amount": order.TotalAmount,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		if err := s.products.deleteByOrder(tx, order.ID); err != nil {
			return err
		}
		return s.insertProducts(tx, order)
	})
	if err != nil || !found {
		return mo.None[domain.OrderDetail](), err
	}
	return mo.Some(*order), nil
}

func (s *OrderDetailStore) DeleteByID(conn *gorm.DB, id int64) error {
	return inTx(conn, "order_detail.delete", func(tx *gorm.DB) error {
		if err := s.products.deleteByOrder(tx, id); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.OrderDetail{}).Error
	})
}

func (s *OrderDetailStore) FindAll(conn *gorm.DB) ([]domain.OrderDetail, error) {
	var orders []domain.OrderDetail
	err := inTx(conn, "order_detail.find_all", func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&orders).Error; err != nil {
			return err
		}
		for i := range orders {
			products, err := s.products.findByOrder(tx, orders[i].ID)
			if err != nil {
				return err
			}
			orders[i].Products = products
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderDetailStore) insertProducts(tx *gorm.DB, order *domain.OrderDetail) error {
	orderID := order.ID
	for i := range order.Products {
		p := &order.Products[i]
		if err := s.products.insertRow(tx, p, &orderID); err != nil {
			return err
		}
		if err := s.products.linkCategories(tx, p.ID, p.CategoryIDs()); err != nil {
			return err
		}
	}
	return nil
}
