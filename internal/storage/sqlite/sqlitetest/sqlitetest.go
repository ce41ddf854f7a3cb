// Package sqlitetest provides in-memory audit databases for tests.
package sqlitetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/pos-audit-be/internal/storage/sqlite"
)

// NewStore opens an empty in-memory store with the schema in place.
func NewStore(t testing.TB) *sqlite.Store {
	t.Helper()
	ctx := context.Background()
	s, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

// SeedSales loads a small fixed data set:
//
//	sale 1 INV-001 (2024-03-01): items 1 Cola x2, 2 Chips x5
//	sale 2 INV-002 (2024-03-15): item 3 "Gum 100%" x10
//	stock: Cola 40 (updated 2024-03-02), Chips 12 (updated 2024-03-20), Gum has no stock row
func SeedSales(t testing.TB, s *sqlite.Store) {
	t.Helper()
	stmts := []string{
		`INSERT INTO brands (id, name) VALUES (1, 'Acme')`,
		`INSERT INTO products (id, name, product_cost, brand_id) VALUES
			(1, 'Cola', 1.5, 1),
			(2, 'Chips', 0.8, 1),
			(3, 'Gum 100%', 0.2, 1)`,
		`INSERT INTO sales (id, reference_code, paid_amount, grand_total, discount, payment_status, payment_type, created_at) VALUES
			(1, 'INV-001', 7, 7, 0, 'paid', 'cash', '2024-03-01 10:00:00'),
			(2, 'INV-002', 1.5, 2, 0.5, 'due', 'card', '2024-03-15 12:00:00')`,
		`INSERT INTO sale_items (id, sale_id, product_id, net_unit_price, quantity, discount_amount, sub_total, created_at) VALUES
			(1, 1, 1, 1.5, 2, 0, 3, '2024-03-01 10:00:00'),
			(2, 1, 2, 0.8, 5, 0, 4, '2024-03-01 10:00:00'),
			(3, 2, 3, 0.2, 10, 0, 2, '2024-03-15 12:00:00')`,
		`INSERT INTO manage_stocks (id, product_id, quantity, updated_at) VALUES
			(1, 1, 40, '2024-03-02 09:00:00'),
			(2, 2, 12, '2024-03-20 09:00:00')`,
	}
	for _, stmt := range stmts {
		_, err := s.DB().Exec(stmt)
		require.NoError(t, err)
	}
}
