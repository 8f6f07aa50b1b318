package domain

import "gorm.io/gorm"

var Tables = []interface{}{
	&OrderDetail{},
	&Product{},
	&ProductCategory{},
	&ProductCategoryLink{},
}

// gorm declares integer primary keys on sqlite as plain rowid aliases, which
// hand a deleted max id out again. These tables use AUTOINCREMENT instead.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS order_details (
		id integer PRIMARY KEY AUTOINCREMENT,
		order_status text NOT NULL,
		total_amount numeric(12,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id integer PRIMARY KEY AUTOINCREMENT,
		name text NOT NULL,
		price numeric(12,2) NOT NULL,
		quantity integer NOT NULL,
		available numeric NOT NULL,
		order_detail_id integer
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_order_detail_id ON products(order_detail_id)`,
	`CREATE TABLE IF NOT EXISTS products_categories (
		id integer PRIMARY KEY AUTOINCREMENT,
		name text NOT NULL,
		type text NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_categories_name ON products_categories(name)`,
	`CREATE TABLE IF NOT EXISTS products_products_categories (
		product_id integer NOT NULL,
		category_id integer NOT NULL,
		position integer NOT NULL DEFAULT 0,
		PRIMARY KEY (product_id, category_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_products_categories_category_id ON products_products_categories(category_id)`,
}

// Migrate creates the schema. Postgres goes through gorm's AutoMigrate,
// sqlite gets the statements above.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() != "sqlite" {
		return db.Migrator().AutoMigrate(Tables...)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, ddl := range sqliteSchema {
			if err := tx.Exec(ddl).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
