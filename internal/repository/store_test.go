package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/talkincode/taskrest/internal/domain"
	"github.com/talkincode/taskrest/internal/testkit"
)

type StoreTestSuite struct {
	suite.Suite
	db         *gorm.DB
	categories []domain.ProductCategory
	products   *ProductStore
	orders     *OrderDetailStore
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

// SetupTest gives every test its own empty database
func (suite *StoreTestSuite) SetupTest() {
	suite.db = testkit.OpenSQLite(suite.T())
	suite.categories = testkit.SeedCategories(suite.T(), suite.db)
	suite.products = NewProductStore()
	suite.orders = NewOrderDetailStore(suite.products)
}

func (suite *StoreTestSuite) count(model interface{}) int64 {
	var n int64
	require.NoError(suite.T(), suite.db.Model(model).Count(&n).Error)
	return n
}

func (suite *StoreTestSuite) requireSameProduct(want, got domain.Product) {
	t := suite.T()
	require.Equal(t, want.Name, got.Name)
	require.True(t, want.Price.Equal(got.Price), "price %s != %s", want.Price, got.Price)
	require.Equal(t, want.Quantity, got.Quantity)
	require.Equal(t, want.Available, got.Available)
	require.Equal(t, want.CategoryIDs(), got.CategoryIDs())
}

func (suite *StoreTestSuite) TestProductRoundTrip() {
	t := suite.T()
	tea := testkit.Tea()
	tea.Categories = []domain.ProductCategory{suite.categories[3]}

	require.NoError(t, suite.products.Save(suite.db, &tea))
	require.NotZero(t, tea.ID)

	found, err := suite.products.FindByID(suite.db, tea.ID)
	require.NoError(t, err)
	got, ok := found.Get()
	require.True(t, ok)
	require.Equal(t, tea.ID, got.ID)
	suite.requireSameProduct(tea, got)
	require.Equal(t, "Drinks", got.Categories[0].Name)
	require.Equal(t, domain.CategoryDrink, got.Categories[0].Type)
	require.Nil(t, got.OrderDetailID)
}

func (suite *StoreTestSuite) TestProductSaveFindDeleteScenario() {
	t := suite.T()
	tea := testkit.Tea()
	require.NoError(t, suite.products.Save(suite.db, &tea))

	found, err := suite.products.FindByID(suite.db, tea.ID)
	require.NoError(t, err)
	require.True(t, found.IsPresent())
	suite.requireSameProduct(tea, found.MustGet())

	require.NoError(t, suite.products.DeleteByID(suite.db, tea.ID))

	found, err = suite.products.FindByID(suite.db, tea.ID)
	require.NoError(t, err)
	require.False(t, found.IsPresent())
}

func (suite *StoreTestSuite) TestCategoryLinkIsIdempotent() {
	t := suite.T()
	tea := testkit.Tea()
	drink := suite.categories[3]
	tea.Categories = []domain.ProductCategory{drink, drink}
	require.NoError(t, suite.products.Save(suite.db, &tea))

	tea.Categories = []domain.ProductCategory{drink}
	updated, err := suite.products.Update(suite.db, &tea)
	require.NoError(t, err)
	require.True(t, updated.IsPresent())

	require.Equal(t, int64(1), suite.count(&domain.ProductCategoryLink{}))
}

func (suite *StoreTestSuite) TestProductUpdateKeepsExistingLinks() {
	t := suite.T()
	tea := testkit.Tea()
	tea.Categories = []domain.ProductCategory{suite.categories[3]}
	require.NoError(t, suite.products.Save(suite.db, &tea))

	tea.Name = "Green tea"
	tea.Price = decimal.RequireFromString("99.50")
	tea.Available = false
	tea.Categories = []domain.ProductCategory{suite.categories[2]}
	_, err := suite.products.Update(suite.db, &tea)
	require.NoError(t, err)

	got := suite.mustFindProduct(tea.ID)
	require.Equal(t, "Green tea", got.Name)
	require.True(t, got.Price.Equal(decimal.RequireFromString("99.5")))
	require.False(t, got.Available)
	require.Equal(t, []int64{suite.categories[3].ID, suite.categories[2].ID}, got.CategoryIDs())
}

func (suite *StoreTestSuite) TestCategoriesKeepAttachOrder() {
	t := suite.T()
	drink, main, starter := suite.categories[3], suite.categories[0], suite.categories[1]
	tea := testkit.Tea()
	tea.Categories = []domain.ProductCategory{drink, main}
	require.NoError(t, suite.products.Save(suite.db, &tea))

	got := suite.mustFindProduct(tea.ID)
	require.Equal(t, []int64{drink.ID, main.ID}, got.CategoryIDs())

	tea.Categories = []domain.ProductCategory{starter, main, drink}
	_, err := suite.products.Update(suite.db, &tea)
	require.NoError(t, err)

	got = suite.mustFindProduct(tea.ID)
	require.Equal(t, []int64{drink.ID, main.ID, starter.ID}, got.CategoryIDs())
}

func (suite *StoreTestSuite) TestSaveIgnoresOrderOwnership() {
	t := suite.T()
	tea := testkit.Tea()
	foreign := int64(999)
	tea.OrderDetailID = &foreign

	require.NoError(t, suite.products.Save(suite.db, &tea))
	require.Nil(t, tea.OrderDetailID)
	require.Nil(t, suite.mustFindProduct(tea.ID).OrderDetailID)

	var owned int64
	require.NoError(t, suite.db.Model(&domain.Product{}).Where("order_detail_id IS NOT NULL").Count(&owned).Error)
	require.Zero(t, owned)
}

func (suite *StoreTestSuite) TestProductUpdateMissingEchoesInput() {
	t := suite.T()
	ghost := testkit.Tea()
	ghost.ID = 404

	updated, err := suite.products.Update(suite.db, &ghost)
	require.NoError(t, err)
	require.Equal(t, int64(404), updated.MustGet().ID)
	require.Zero(t, suite.count(&domain.Product{}))
}

func (suite *StoreTestSuite) TestProductDeleteRemovesOnlyItsLinks() {
	t := suite.T()
	tea, coffee := testkit.Tea(), testkit.Coffee()
	tea.Categories = []domain.ProductCategory{suite.categories[3]}
	coffee.Categories = []domain.ProductCategory{suite.categories[3]}
	require.NoError(t, suite.products.Save(suite.db, &tea))
	require.NoError(t, suite.products.Save(suite.db, &coffee))

	require.NoError(t, suite.products.DeleteByID(suite.db, tea.ID))

	require.Equal(t, int64(1), suite.count(&domain.Product{}))
	require.Equal(t, int64(1), suite.count(&domain.ProductCategoryLink{}))
	require.Equal(t, int64(len(suite.categories)), suite.count(&domain.ProductCategory{}))
	require.Equal(t, []int64{suite.categories[3].ID}, suite.mustFindProduct(coffee.ID).CategoryIDs())
}

func (suite *StoreTestSuite) TestDeleteUnknownIDIsNoop() {
	t := suite.T()
	require.NoError(t, suite.products.DeleteByID(suite.db, 12345))
	require.NoError(t, suite.orders.DeleteByID(suite.db, 12345))
}

func (suite *StoreTestSuite) TestFindMissingReturnsNone() {
	t := suite.T()
	p, err := suite.products.FindByID(suite.db, 777)
	require.NoError(t, err)
	require.True(t, p.IsAbsent())

	o, err := suite.orders.FindByID(suite.db, 777)
	require.NoError(t, err)
	require.True(t, o.IsAbsent())
}

func (suite *StoreTestSuite) TestProductFindAll() {
	t := suite.T()
	tea, coffee := testkit.Tea(), testkit.Coffee()
	coffee.Categories = []domain.ProductCategory{suite.categories[1], suite.categories[3]}
	require.NoError(t, suite.products.Save(suite.db, &tea))
	require.NoError(t, suite.products.Save(suite.db, &coffee))

	all, err := suite.products.FindAll(suite.db)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, tea.ID, all[0].ID)
	require.Empty(t, all[0].Categories)
	suite.requireSameProduct(coffee, all[1])
}

func (suite *StoreTestSuite) TestUnknownCategoryRollsBackProduct() {
	t := suite.T()
	tea := testkit.Tea()
	tea.Categories = []domain.ProductCategory{{ID: 999}}

	err := suite.products.Save(suite.db, &tea)
	require.ErrorIs(t, err, ErrUnknownCategory)
	require.Zero(t, suite.count(&domain.Product{}))
	require.Zero(t, suite.count(&domain.ProductCategoryLink{}))
}

func (suite *StoreTestSuite) TestOrderSaveScenario() {
	t := suite.T()
	tea, coffee := testkit.Tea(), testkit.Coffee()
	coffee.Categories = []domain.ProductCategory{suite.categories[3]}
	order := domain.OrderDetail{
		OrderStatus: domain.OrderReceived,
		TotalAmount: decimal.RequireFromString("311.01"),
		Products:    []domain.Product{tea, coffee},
	}

	require.NoError(t, suite.orders.Save(suite.db, &order))
	require.NotZero(t, order.ID)
	for _, p := range order.Products {
		require.NotZero(t, p.ID)
		require.NotNil(t, p.OrderDetailID)
		require.Equal(t, order.ID, *p.OrderDetailID)
	}

	all, err := suite.orders.FindAll(suite.db)
	require.NoError(t, err)
	require.Len(t, all, 1)
	got := all[0]
	require.Equal(t, order.ID, got.ID)
	require.Equal(t, domain.OrderReceived, got.OrderStatus)
	require.True(t, got.TotalAmount.Equal(decimal.RequireFromString("311.01")))
	require.Len(t, got.Products, 2)
	suite.requireSameProduct(tea, got.Products[0])
	suite.requireSameProduct(coffee, got.Products[1])
	for _, p := range got.Products {
		require.Equal(t, order.ID, *p.OrderDetailID)
	}
}

func (suite *StoreTestSuite) TestOrderDeleteCascades() {
	t := suite.T()
	tea := testkit.Tea()
	tea.Categories = []domain.ProductCategory{suite.categories[3]}
	order := domain.OrderDetail{
		OrderStatus: domain.OrderPreparing,
		TotalAmount: decimal.RequireFromString("120.99"),
		Products:    []domain.Product{tea, testkit.Coffee()},
	}
	require.NoError(t, suite.orders.Save(suite.db, &order))
	productIDs := []int64{order.Products[0].ID, order.Products[1].ID}

	require.NoError(t, suite.orders.DeleteByID(suite.db, order.ID))

	o, err := suite.orders.FindByID(suite.db, order.ID)
	require.NoError(t, err)
	require.True(t, o.IsAbsent())
	for _, id := range productIDs {
		p, err := suite.products.FindByID(suite.db, id)
		require.NoError(t, err)
		require.True(t, p.IsAbsent())
	}
	require.Zero(t, suite.count(&domain.ProductCategoryLink{}))
}

func (suite *StoreTestSuite) TestOrderUpdateReplacesProducts() {
	t := suite.T()
	order := domain.OrderDetail{
		OrderStatus: domain.OrderReceived,
		TotalAmount: decimal.RequireFromString("311.01"),
		Products:    []domain.Product{testkit.Tea(), testkit.Coffee()},
	}
	order.Products[0].Categories = []domain.ProductCategory{suite.categories[3]}
	require.NoError(t, suite.orders.Save(suite.db, &order))
	oldTeaID := order.Products[0].ID

	// same name as before, new row
	tea := testkit.Tea()
	tea.ID = oldTeaID
	cake := domain.Product{Name: "Cake", Price: decimal.RequireFromString("250"), Quantity: 2, Available: true}
	cake.Categories = []domain.ProductCategory{suite.categories[2]}
	order.OrderStatus = domain.OrderReady
	order.TotalAmount = decimal.RequireFromString("620.99")
	order.Products = []domain.Product{tea, cake}

	updated, err := suite.orders.Update(suite.db, &order)
	require.NoError(t, err)
	require.True(t, updated.IsPresent())

	got, err := suite.orders.FindByID(suite.db, order.ID)
	require.NoError(t, err)
	stored := got.MustGet()
	require.Equal(t, domain.OrderReady, stored.OrderStatus)
	require.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("620.99")))
	require.Len(t, stored.Products, 2)
	require.Equal(t, "Tea", stored.Products[0].Name)
	require.NotEqual(t, oldTeaID, stored.Products[0].ID)
	require.Empty(t, stored.Products[0].Categories)
	suite.requireSameProduct(cake, stored.Products[1])

	require.Equal(t, int64(2), suite.count(&domain.Product{}))
	require.Equal(t, int64(1), suite.count(&domain.ProductCategoryLink{}))
}

func (suite *StoreTestSuite) TestDeletedIDsAreNotReused() {
	t := suite.T()
	order := domain.OrderDetail{
		OrderStatus: domain.OrderReceived,
		TotalAmount: decimal.RequireFromString("311.01"),
		Products:    []domain.Product{testkit.Tea(), testkit.Coffee()},
	}
	require.NoError(t, suite.orders.Save(suite.db, &order))
	oldOrderID, coffeeID := order.ID, order.Products[1].ID
	require.NoError(t, suite.orders.DeleteByID(suite.db, oldOrderID))

	milk := domain.Product{Name: "Milk", Price: decimal.RequireFromString("80"), Quantity: 1, Available: true}
	require.NoError(t, suite.products.Save(suite.db, &milk))
	require.Greater(t, milk.ID, coffeeID)

	for _, p := range order.Products {
		found, err := suite.products.FindByID(suite.db, p.ID)
		require.NoError(t, err)
		require.True(t, found.IsAbsent())
	}

	next := domain.OrderDetail{OrderStatus: domain.OrderReceived, TotalAmount: decimal.Zero}
	require.NoError(t, suite.orders.Save(suite.db, &next))
	require.Greater(t, next.ID, oldOrderID)
	found, err := suite.orders.FindByID(suite.db, oldOrderID)
	require.NoError(t, err)
	require.True(t, found.IsAbsent())
}

func (suite *StoreTestSuite) TestOrderUpdateMissingReturnsNone() {
	t := suite.T()
	order := domain.OrderDetail{
		ID:          55,
		OrderStatus: domain.OrderReady,
		TotalAmount: decimal.Zero,
		Products:    []domain.Product{testkit.Tea()},
	}
	updated, err := suite.orders.Update(suite.db, &order)
	require.NoError(t, err)
	require.True(t, updated.IsAbsent())
	require.Zero(t, suite.count(&domain.Product{}))
}

func (suite *StoreTestSuite) TestOrderSaveFailureLeavesNoPartialState() {
	t := suite.T()
	coffee := testkit.Coffee()
	coffee.Categories = []domain.ProductCategory{{ID: 4242}}
	order := domain.OrderDetail{
		OrderStatus: domain.OrderReceived,
		TotalAmount: decimal.RequireFromString("311.01"),
		Products:    []domain.Product{testkit.Tea(), coffee},
	}

	err := suite.orders.Save(suite.db, &order)
	require.ErrorIs(t, err, ErrUnknownCategory)
	require.Zero(t, suite.count(&domain.OrderDetail{}))
	require.Zero(t, suite.count(&domain.Product{}))
	require.Zero(t, suite.count(&domain.ProductCategoryLink{}))
}

func (suite *StoreTestSuite) TestOrderSaveStatementFailureRollsBack() {
	t := suite.T()
	require.NoError(t, suite.db.Migrator().DropTable(&domain.ProductCategoryLink{}))

	tea := testkit.Tea()
	tea.Categories = []domain.ProductCategory{suite.categories[3]}
	order := domain.OrderDetail{
		OrderStatus: domain.OrderReceived,
		TotalAmount: decimal.RequireFromString("120.99"),
		Products:    []domain.Product{tea},
	}

	require.Error(t, suite.orders.Save(suite.db, &order))
	require.Zero(t, suite.count(&domain.OrderDetail{}))
	require.Zero(t, suite.count(&domain.Product{}))
}

func (suite *StoreTestSuite) TestStoresOnDedicatedConnection() {
	t := suite.T()
	provider := NewGormConnectionProvider(suite.db)
	tea := testkit.Tea()

	err := provider.WithConnection(context.Background(), func(conn *gorm.DB) error {
		if err := suite.products.Save(conn, &tea); err != nil {
			return err
		}
		found, err := suite.products.FindByID(conn, tea.ID)
		if err != nil {
			return err
		}
		require.True(t, found.IsPresent())
		return nil
	})
	require.NoError(t, err)

	// the single pooled connection was handed back
	require.Equal(t, int64(1), suite.count(&domain.Product{}))
}

func (suite *StoreTestSuite) mustFindProduct(id int64) domain.Product {
	found, err := suite.products.FindByID(suite.db, id)
	require.NoError(suite.T(), err)
	require.True(suite.T(), found.IsPresent())
	return found.MustGet()
}
