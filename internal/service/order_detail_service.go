package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/taskrest/internal/domain"
	"github.com/talkincode/taskrest/internal/repository"
)

// OrderDetailService is the CRUD facade over orders and their line items
type OrderDetailService interface {
	CreateOrderDetail(ctx context.Context, dto OrderDetailDTO) (OrderDetailDTO, error)
	GetOrderDetailByID(ctx context.Context, id int64) (mo.Option[OrderDetailDTO], error)
	UpdateOrderDetail(ctx context.Context, dto OrderDetailDTO) (mo.Option[OrderDetailDTO], error)
	DeleteOrderDetail(ctx context.Context, id int64) error
	GetAllOrderDetails(ctx context.Context) ([]OrderDetailDTO, error)
}

type OrderDetailManager struct {
	conns repository.ConnectionProvider
	store repository.OrderDetailRepository
}

var _ OrderDetailService = (*OrderDetailManager)(nil)

func NewOrderDetailManager(conns repository.ConnectionProvider, store repository.OrderDetailRepository) *OrderDetailManager {
	return &OrderDetailManager{conns: conns, store: store}
}

func (m *OrderDetailManager) CreateOrderDetail(ctx context.Context, dto OrderDetailDTO) (OrderDetailDTO, error) {
	order, err := OrderDetailFromDTO(dto)
	if err != nil {
		return OrderDetailDTO{}, err
	}
	err = m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		return m.store.Save(conn, &order)
	})
	track("order_detail.create", err)
	if err != nil {
		return OrderDetailDTO{}, err
	}
	zap.L().Info("order detail created",
		zap.Int64("id", order.ID),
		zap.String("status", string(order.OrderStatus)),
		zap.Int("products", len(order.Products)))
	return OrderDetailToDTO(order), nil
}

func (m *OrderDetailManager) GetOrderDetailByID(ctx context.Context, id int64) (mo.Option[OrderDetailDTO], error) {
	result := mo.None[OrderDetailDTO]()
	err := m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		found, err := m.store.FindByID(conn, id)
		if err != nil {
			return err
		}
		if o, ok := found.Get(); ok {
			result = mo.Some(OrderDetailToDTO(o))
		}
		return nil
	})
	track("order_detail.get", err)
	return result, err
}

func (m *OrderDetailManager) UpdateOrderDetail(ctx context.Context, dto OrderDetailDTO) (mo.Option[OrderDetailDTO], error) {
	order, err := OrderDetailFromDTO(dto)
	if err != nil {
		return mo.None[OrderDetailDTO](), err
	}
	result := mo.None[OrderDetailDTO]()
	err = m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		existing, err := m.store.FindByID(conn, order.ID)
		if err != nil || existing.IsAbsent() {
			return err
		}
		updated, err := m.store.Update(conn, &order)
		if err != nil {
			return err
		}
		if o, ok := updated.Get(); ok {
			result = mo.Some(OrderDetailToDTO(o))
		}
		return nil
	})
	track("order_detail.update", err)
	return result, err
}

func (m *OrderDetailManager) DeleteOrderDetail(ctx context.Context, id int64) error {
	err := m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		return m.store.DeleteByID(conn, id)
	})
	track("order_detail.delete", err)
	if err == nil {
		zap.L().Info("order detail deleted", zap.Int64("id", id))
	}
	return err
}

func (m *OrderDetailManager) GetAllOrderDetails(ctx context.Context) ([]OrderDetailDTO, error) {
	result := make([]OrderDetailDTO, 0)
	err := m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		orders, err := m.store.FindAll(conn)
		if err != nil {
			return err
		}
		result = lo.Map(orders, func(item domain.OrderDetail, _ int) OrderDetailDTO { return OrderDetailToDTO(item) })
		return nil
	})
	track("order_detail.list", err)
	if err != nil {
		return nil, err
	}
	return result, nil
}
