package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/pos-audit-be/internal/models"
	"github.com/hongminglow/pos-audit-be/internal/query"
	"github.com/hongminglow/pos-audit-be/internal/storage"
	"github.com/hongminglow/pos-audit-be/internal/storage/sqlite"
	"github.com/hongminglow/pos-audit-be/internal/storage/sqlite/sqlitetest"
)

func newTestStore(t *testing.T) *sqlite.Store {
	return sqlitetest.NewStore(t)
}

func seedSales(t *testing.T, s *sqlite.Store) {
	sqlitetest.SeedSales(t, s)
}

func TestCreateAndFindUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

	user, err := s.CreateUser(ctx, models.User{Email: "a@shop.test", PasswordHash: "hash", Role: "auditor", CreatedDate: created})
	require.NoError(t, err)
	assert.Positive(t, user.ID)

	found, err := s.FindByEmail(ctx, "a@shop.test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)
	assert.Equal(t, "auditor", found.Role)
	assert.True(t, created.Equal(found.CreatedDate))
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := models.User{Email: "dup@shop.test", PasswordHash: "hash", Role: "admin", CreatedDate: time.Now()}

	_, err := s.CreateUser(ctx, u)
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, u)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestFindByEmailNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindByEmail(context.Background(), "nobody@shop.test")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func rowsFor(t *testing.T, s *sqlite.Store, l query.Listing, f query.Filter) []map[string]any {
	t.Helper()
	stmt, err := query.Build(l, f)
	require.NoError(t, err)
	rows, err := s.Rows(context.Background(), stmt)
	require.NoError(t, err)
	return rows
}

func column(rows []map[string]any, name string) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, r[name])
	}
	return out
}

func TestSalesListing(t *testing.T) {
	s := newTestStore(t)
	seedSales(t, s)

	all := rowsFor(t, s, query.Sales, query.Filter{})
	assert.Len(t, all, 2)

	byRef := rowsFor(t, s, query.Sales, query.Filter{Search: "002"})
	require.Len(t, byRef, 1)
	assert.Equal(t, "INV-002", byRef[0]["reference_code"])

	byID := rowsFor(t, s, query.Sales, query.Filter{Search: "1"})
	assert.ElementsMatch(t, []any{int64(1)}, column(byID, "id"))

	both := rowsFor(t, s, query.Sales, query.Filter{Search: "INV", StartDate: "2024-03-10", EndDate: "2024-03-31"})
	assert.ElementsMatch(t, []any{int64(2)}, column(both, "id"))

	// One-sided ranges are ignored on listings.
	oneSided := rowsFor(t, s, query.Sales, query.Filter{StartDate: "2024-03-10"})
	assert.Len(t, oneSided, 2)
}

func TestSaleItemsListing(t *testing.T) {
	s := newTestStore(t)
	seedSales(t, s)

	firstDay := rowsFor(t, s, query.SaleItems, query.Filter{StartDate: "2024-03-01", EndDate: "2024-03-02"})
	assert.ElementsMatch(t, []any{int64(1), int64(2)}, column(firstDay, "sale_item_id"))

	byProduct := rowsFor(t, s, query.SaleItems, query.Filter{Search: "chip"})
	require.Len(t, byProduct, 1)
	assert.Equal(t, "Chips", byProduct[0]["product_name"])
	assert.Equal(t, "INV-001", byProduct[0]["reference_code"])
}

func TestStocksListing(t *testing.T) {
	s := newTestStore(t)
	seedSales(t, s)

	all := rowsFor(t, s, query.Stocks, query.Filter{})
	assert.Len(t, all, 2)
	assert.Equal(t, "Acme", all[0]["brand_name"])

	early := rowsFor(t, s, query.Stocks, query.Filter{StartDate: "2024-03-01", EndDate: "2024-03-10"})
	assert.ElementsMatch(t, []any{int64(1)}, column(early, "manage_stock_id"))

	byName := rowsFor(t, s, query.Stocks, query.Filter{Search: "Cola"})
	assert.ElementsMatch(t, []any{"Cola"}, column(byName, "product_name"))
}

func TestSearchMetacharactersMatchLiterally(t *testing.T) {
	s := newTestStore(t)
	seedSales(t, s)

	percent := rowsFor(t, s, query.SaleItems, query.Filter{Search: "100%"})
	assert.ElementsMatch(t, []any{"Gum 100%"}, column(percent, "product_name"))

	wildcard := rowsFor(t, s, query.Sales, query.Filter{Search: "%"})
	assert.Empty(t, wildcard)

	underscore := rowsFor(t, s, query.Sales, query.Filter{Search: "INV_00"})
	assert.Empty(t, underscore)

	injection := rowsFor(t, s, query.Sales, query.Filter{Search: "' OR 1=1; --"})
	assert.Empty(t, injection)

	all := rowsFor(t, s, query.Sales, query.Filter{})
	assert.Len(t, all, 2, "sales table must be untouched")
}

func TestSaleItemRows(t *testing.T) {
	s := newTestStore(t)
	seedSales(t, s)
	ctx := context.Background()

	rows, err := s.SaleItemRows(ctx, query.SaleItemReport(query.DateRange{Start: "2024-03-10"}))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, int64(2), row.SaleID.Int64)
	assert.Equal(t, int64(3), row.SaleItemID.Int64)
	assert.Equal(t, "due", row.PaymentStatus.String)
	assert.True(t, row.SaleQuantity.Decimal.Equal(decimal.NewFromInt(10)))
	assert.True(t, row.StockQuantity.Valid)
	assert.True(t, row.StockQuantity.Decimal.IsZero())
	assert.Equal(t, "2024-03-15 12:00:00", row.SaleItemCreatedAt.String)

	until, err := s.SaleItemRows(ctx, query.SaleItemReport(query.DateRange{End: "2024-03-02"}))
	require.NoError(t, err)
	assert.Len(t, until, 2)

	all, err := s.SaleItemRows(ctx, query.SaleItemReport(query.DateRange{}))
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStockRows(t *testing.T) {
	s := newTestStore(t)
	seedSales(t, s)

	rows, err := s.StockRows(context.Background(), query.StockLevels())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byProduct := make(map[int64]models.StockRow, len(rows))
	for _, r := range rows {
		byProduct[r.ProductID.Int64] = r
	}
	assert.True(t, byProduct[1].StockQuantity.Decimal.Equal(decimal.NewFromInt(40)))
	assert.True(t, byProduct[3].StockQuantity.Decimal.IsZero())
	assert.True(t, byProduct[2].ProductCost.Decimal.Equal(decimal.RequireFromString("0.8")))
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
