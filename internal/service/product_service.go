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

// ProductService is the CRUD facade over products used by the transport layer
type ProductService interface {
	CreateProduct(ctx context.Context, dto ProductDTO) (ProductDTO, error)
	GetProductByID(ctx context.Context, id int64) (mo.Option[ProductDTO], error)
	UpdateProduct(ctx context.Context, dto ProductDTO) (mo.Option[ProductDTO], error)
	DeleteProduct(ctx context.Context, id int64) error
	GetAllProducts(ctx context.Context) ([]ProductDTO, error)
}

// ProductManager runs every call on its own connection from conns
type ProductManager struct {
	conns repository.ConnectionProvider
	store repository.ProductRepository
}

var _ ProductService = (*ProductManager)(nil)

func NewProductManager(conns repository.ConnectionProvider, store repository.ProductRepository) *ProductManager {
	return &ProductManager{conns: conns, store: store}
}

func (m *ProductManager) CreateProduct(ctx context.Context, dto ProductDTO) (ProductDTO, error) {
	product, err := ProductFromDTO(dto)
	if err != nil {
		return ProductDTO{}, err
	}
	err = m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		return m.store.Save(conn, &product)
	})
	track("product.create", err)
	if err != nil {
		return ProductDTO{}, err
	}
	zap.L().Info("product created", zap.Int64("id", product.ID), zap.String("name", product.Name))
	return ProductToDTO(product), nil
}

func (m *ProductManager) GetProductByID(ctx context.Context, id int64) (mo.Option[ProductDTO], error) {
	result := mo.None[ProductDTO]()
	err := m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		found, err := m.store.FindByID(conn, id)
		if err != nil {
			return err
		}
		if p, ok := found.Get(); ok {
			result = mo.Some(ProductToDTO(p))
		}
		return nil
	})
	track("product.get", err)
	return result, err
}

// UpdateProduct returns None when no product has dto.ID. The existence check
// and the update share a connection but not a transaction.
func (m *ProductManager) UpdateProduct(ctx context.Context, dto ProductDTO) (mo.Option[ProductDTO], error) {
	product, err := ProductFromDTO(dto)
	if err != nil {
		return mo.None[ProductDTO](), err
	}
	result := mo.None[ProductDTO]()
	err = m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		existing, err := m.store.FindByID(conn, product.ID)
		if err != nil || existing.IsAbsent() {
			return err
		}
		updated, err := m.store.Update(conn, &product)
		if err != nil {
			return err
		}
		if p, ok := updated.Get(); ok {
			result = mo.Some(ProductToDTO(p))
		}
		return nil
	})
	track("product.update", err)
	return result, err
}

func (m *ProductManager) DeleteProduct(ctx context.Context, id int64) error {
	err := m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		return m.store.DeleteByID(conn, id)
	})
	track("product.delete", err)
	if err == nil {
		zap.L().Info("product deleted", zap.Int64("id", id))
	}
	return err
}

func (m *ProductManager) GetAllProducts(ctx context.Context) ([]ProductDTO, error) {
	result := make([]ProductDTO, 0)
	err := m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		products, err := m.store.FindAll(conn)
		if err != nil {
			return err
		}
		result = lo.Map(products, func(item domain.Product, _ int) ProductDTO { return ProductToDTO(item) })
		return nil
	})
	track("product.list", err)
	if err != nil {
		return nil, err
	}
	return result, nil
}
