package repository

import (
	"errors"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talkincode/taskrest/internal/domain"
)

// ErrUnknownCategory is returned when a product references a category id
// that is not present in products_categories.
var ErrUnknownCategory = errors.New("unknown product category")

// ProductRepository handles persistence of products and their category links.
// Every method runs in its own transaction on the given connection.
type ProductRepository interface {
	// Save inserts a standalone product and its category links, assigning
	// product.ID. Order ownership is only set through OrderDetailRepository.
	Save(conn *gorm.DB, product *domain.Product) error

	// FindByID loads a product with its categories
	FindByID(conn *gorm.DB, id int64) (mo.Option[domain.Product], error)

	// Update rewrites the product row and adds any new category links.
	// Existing links are kept.
	Update(conn *gorm.DB, product *domain.Product) (mo.Option[domain.Product], error)

	// DeleteByID removes the category links of the product, then the product
	DeleteByID(conn *gorm.DB, id int64) error

	// FindAll loads every product ordered by id
	FindAll(conn *gorm.DB) ([]domain.Product, error)
}

// ProductStore is the gorm implementation of ProductRepository. Its row
// level helpers are shared with OrderDetailStore and always run on the
// caller's transaction.
type ProductStore struct{}

var _ ProductRepository = (*ProductStore)(nil)

// NewProductStore creates a product store
func NewProductStore() *ProductStore {
	return &ProductStore{}
}

func (s *ProductStore) Save(conn *gorm.DB, product *domain.Product) error {
	return inTx(conn, "product.save", func(tx *gorm.DB) error {
		if err := s.insertRow(tx, product, nil); err != nil {
			return err
		}
		return s.linkCategories(tx, product.ID, product.CategoryIDs())
	})
}

func (s *ProductStore) FindByID(conn *gorm.DB, id int64) (mo.Option[domain.Product], error) {
	result := mo.None[domain.Product]()
	err := inTx(conn, "product.find_by_id", func(tx *gorm.DB) error {
		var p domain.Product
		err := tx.Where("id = ?", id).Take(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.hydrate(tx, &p); err != nil {
			return err
		}
		result = mo.Some(p)
		return nil
	})
	if err != nil {
		return mo.None[domain.Product](), err
	}
	return result, nil
}

func (s *ProductStore) Update(conn *gorm.DB, product *domain.Product) (mo.Option[domain.Product], error) {
	err := inTx(conn, "product.update", func(tx *gorm.DB) error {
		err := tx.Model(&domain.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
			"name":      product.Name,
			"price":     product.Price,
			"quantity":  product.Quantity,
			"available": product.Available,
		}).Error
		if err != nil {
			return err
		}
		return s.linkCategories(tx, product.ID, product.CategoryIDs())
	})
	if err != nil {
		return mo.None[domain.Product](), err
	}
	return mo.Some(*product), nil
}

func (s *ProductStore) DeleteByID(conn *gorm.DB, id int64) error {
	return inTx(conn, "product.delete", func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductCategoryLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Product{}).Error
	})
}

func (s *ProductStore) FindAll(conn *gorm.DB) ([]domain.Product, error) {
	var products []domain.Product
	err := inTx(conn, "product.find_all", func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&products).Error; err != nil {
			return err
		}
		for i := range products {
			if err := s.hydrate(tx, &products[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// insertRow inserts the product as a new row owned by orderID (nil for a
// standalone product). Any id already present on the value is discarded.
func (s *ProductStore) insertRow(tx *gorm.DB, product *domain.Product, orderID *int64) error {
	product.ID = 0
	product.OrderDetailID = orderID
	if err := tx.Create(product).Error; err != nil {
		return err
	}
	zap.L().Debug("product row inserted", zap.Int64("id", product.ID), zap.String("name", product.Name))
	return nil
}

// linkCategories appends one join row per category after the links the
// product already has. A pair that already exists keeps its position.
func (s *ProductStore) linkCategories(tx *gorm.DB, productID int64, categoryIDs []int64) error {
	ids := lo.Uniq(categoryIDs)
	if len(ids) == 0 {
		return nil
	}

	var known int64
	if err := tx.Model(&domain.ProductCategory{}).Where("id IN ?", ids).Count(&known).Error; err != nil {
		return err
	}
	if known != int64(len(ids)) {
		return ErrUnknownCategory
	}

	var last int
	err := tx.Model(&domain.ProductCategoryLink{}).
		Select("COALESCE(MAX(position), 0)").
		Where("product_id = ?", productID).
		Row().Scan(&last)
	if err != nil {
		return err
	}

	links := lo.Map(ids, func(id int64, i int) domain.ProductCategoryLink {
		return domain.ProductCategoryLink{ProductID: productID, CategoryID: id, Position: last + i + 1}
	})
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "category_id"}},
		DoNothing: true,
	}).Create(&links).Error
}

func (s *ProductStore) findCategories(tx *gorm.DB, productID int64) ([]domain.ProductCategory, error) {
	categories := make([]domain.ProductCategory, 0)
	err := tx.Select("products_categories.*").
		Joins("JOIN products_products_categories pcg ON products_categories.id = pcg.category_id").
		Where("pcg.product_id = ?", productID).
		Order("pcg.position").
		Order("products_categories.id").
		Find(&categories).Error
	return categories, err
}

func (s *ProductStore) hydrate(tx *gorm.DB, product *domain.Product) error {
	categories, err := s.findCategories(tx, product.ID)
	if err != nil {
		return err
	}
	product.Categories = categories
	return nil
}

// findByOrder loads the products owned by an order in insertion order
func (s *ProductStore) findByOrder(tx *gorm.DB, orderID int64) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if err := tx.Where("order_detail_id = ?", orderID).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	for i := range products {
		if err := s.hydrate(tx, &products[i]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// deleteByOrder removes the products of an order together with their
// category links.
func (s *ProductStore) deleteByOrder(tx *gorm.DB, orderID int64) error {
	owned := tx.Model(&domain.Product{}).Select("id").Where("order_detail_id = ?", orderID)
	if err := tx.Where("product_id IN (?)", owned).Delete(&domain.ProductCategoryLink{}).Error; err != nil {
		return err
	}
	return tx.Where("order_detail_id = ?", orderID).Delete(&domain.Product{}).Error
}
