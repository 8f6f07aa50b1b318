package service

import (
	"context"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/talkincode/taskrest/internal/domain"
	"github.com/talkincode/taskrest/internal/repository"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]ProductCategoryDTO, error)
}

type CategoryManager struct {
	conns repository.ConnectionProvider
	store repository.CategoryRepository
}

var _ CategoryService = (*CategoryManager)(nil)

func NewCategoryManager(conns repository.ConnectionProvider, store repository.CategoryRepository) *CategoryManager {
	return &CategoryManager{conns: conns, store: store}
}

func (m *CategoryManager) GetAllCategories(ctx context.Context) ([]ProductCategoryDTO, error) {
	var result []ProductCategoryDTO
	err := m.conns.WithConnection(ctx, func(conn *gorm.DB) error {
		categories, err := m.store.FindAll(conn)
		if err != nil {
			return err
		}
		result = lo.Map(categories, func(c domain.ProductCategory, _ int) ProductCategoryDTO { return CategoryToDTO(c) })
		return nil
	})
	track("category.list", err)
	return result, err
}
