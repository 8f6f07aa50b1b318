package service

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/talkincode/taskrest/internal/domain"
)

// ErrInvalidEntity marks input that cannot be turned into a domain entity
var ErrInvalidEntity = errors.New("invalid entity")

func CategoryToDTO(c domain.ProductCategory) ProductCategoryDTO {
	return ProductCategoryDTO{ID: c.ID, Name: c.Name, Type: string(c.Type)}
}

func CategoryFromDTO(dto ProductCategoryDTO) (domain.ProductCategory, error) {
	c := domain.ProductCategory{ID: dto.ID, Name: dto.Name}
	if dto.Type != "" {
		t, err := domain.ParseCategoryType(dto.Type)
		if err != nil {
			return c, errors.Wrap(ErrInvalidEntity, err.Error())
		}
		c.Type = t
	}
	return c, nil
}

func ProductToDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Quantity:      p.Quantity,
		Available:     p.Available,
		OrderDetailID: p.OrderDetailID,
		Categories:    lo.Map(p.Categories, func(c domain.ProductCategory, _ int) ProductCategoryDTO { return CategoryToDTO(c) }),
	}
}

func ProductFromDTO(dto ProductDTO) (domain.Product, error) {
	if dto.Price.IsNegative() {
		return domain.Product{}, errors.Wrapf(ErrInvalidEntity, "negative price %s", dto.Price)
	}
	p := domain.Product{
		ID:            dto.ID,
		Name:          dto.Name,
		Price:         dto.Price,
		Quantity:      dto.Quantity,
		Available:     dto.Available,
		OrderDetailID: dto.OrderDetailID,
		Categories:    make([]domain.ProductCategory, 0, len(dto.Categories)),
	}
	for _, c := range dto.Categories {
		category, err := CategoryFromDTO(c)
		if err != nil {
			return domain.Product{}, err
		}
		p.Categories = append(p.Categories, category)
	}
	return p, nil
}

func OrderDetailToDTO(o domain.OrderDetail) OrderDetailDTO {
	return OrderDetailDTO{
		ID:          o.ID,
		OrderStatus: string(o.OrderStatus),
		TotalAmount: o.TotalAmount,
		Products:    lo.Map(o.Products, func(p domain.Product, _ int) ProductDTO { return ProductToDTO(p) }),
	}
}

func OrderDetailFromDTO(dto OrderDetailDTO) (domain.OrderDetail, error) {
	status, err := domain.ParseOrderStatus(dto.OrderStatus)
	if err != nil {
		return domain.OrderDetail{}, errors.Wrap(ErrInvalidEntity, err.Error())
	}
	if dto.TotalAmount.IsNegative() {
		return domain.OrderDetail{}, errors.Wrapf(ErrInvalidEntity, "negative total amount %s", dto.TotalAmount)
	}
	o := domain.OrderDetail{
		ID:          dto.ID,
		OrderStatus: status,
		TotalAmount: dto.TotalAmount,
		Products:    make([]domain.Product, 0, len(dto.Products)),
	}
	for _, pdto := range dto.Products {
		p, err := ProductFromDTO(pdto)
		if err != nil {
			return domain.OrderDetail{}, err
		}
		o.Products = append(o.Products, p)
	}
	return o, nil
}
