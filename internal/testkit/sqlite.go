// Package testkit opens throwaway databases for package tests.
package testkit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talkincode/taskrest/internal/domain"
)

// OpenSQLite returns a migrated in-memory database. The pool is limited to a
// single connection so that every statement sees the same memory database.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, domain.Migrate(db))
	return db
}

// SeedCategories inserts one category per type and returns them in id order
func SeedCategories(t testing.TB, db *gorm.DB) []domain.ProductCategory {
	t.Helper()
	categories := []domain.ProductCategory{
		{Name: "Main course", Type: domain.CategoryMainCourse},
		{Name: "Appetizers", Type: domain.CategoryAppetizer},
		{Name: "Desserts", Type: domain.CategoryDessert},
		{Name: "Drinks", Type: domain.CategoryDrink},
	}
	require.NoError(t, db.Create(&categories).Error)
	return categories
}

// Tea and Coffee are the sample products used across tests
func Tea() domain.Product {
	return domain.Product{Name: "Tea", Price: decimal.RequireFromString("120.99"), Quantity: 1, Available: true}
}

func Coffee() domain.Product {
	return domain.Product{Name: "Coffee", Price: decimal.RequireFromString("190.02"), Quantity: 1, Available: true}
}
