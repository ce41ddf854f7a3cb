package sqlite

import (
	"context"
	"fmt"
)

// schema mirrors the production tables closely enough for local runs and tests.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS audituser (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		created_date TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS brands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		product_cost REAL,
		brand_id INTEGER REFERENCES brands(id)
	);`,
	`CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reference_code TEXT,
		paid_amount REAL,
		grand_total REAL,
		discount REAL,
		payment_status TEXT,
		payment_type TEXT,
		created_at TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sale_id INTEGER REFERENCES sales(id),
		product_id INTEGER REFERENCES products(id),
		net_unit_price REAL,
		quantity REAL,
		discount_amount REAL,
		sub_total REAL,
		created_at TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS manage_stocks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER REFERENCES products(id),
		quantity REAL,
		updated_at TEXT
	);`,
}

// EnsureSchema creates any missing table. It never alters existing ones.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
