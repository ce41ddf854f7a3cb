package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/pos-audit-be/internal/models"
	"github.com/hongminglow/pos-audit-be/internal/query"
	"github.com/hongminglow/pos-audit-be/internal/storage"
)

// TestStoreIntegration runs against a live database that already carries the audit schema.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_POSTGRES_INTEGRATION") != "true" {
		t.Skip("set RUN_POSTGRES_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := New(ctx, dbURL)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Ping(ctx))

	email := fmt.Sprintf("apitest_%d@example.com", time.Now().UnixNano())
	created, err := store.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         "auditor",
		CreatedDate:  time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.CreateUser(ctx, models.User{Email: email, PasswordHash: "x", Role: "auditor", CreatedDate: time.Now()})
	assert.True(t, errors.Is(err, storage.ErrAlreadyExists), "got %v", err)

	_, err = store.FindByEmail(ctx, "missing-"+email)
	assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)

	for _, l := range []query.Listing{query.Sales, query.SaleItems, query.Stocks} {
		stmt, err := query.Build(l, query.Filter{Search: "1", StartDate: "2000-01-01", EndDate: "2100-01-01"})
		require.NoError(t, err)
		rows, err := store.Rows(ctx, stmt)
		require.NoError(t, err, l.String())
		assert.NotNil(t, rows, l.String())
	}

	_, err = store.SaleItemRows(ctx, query.SaleItemReport(query.DateRange{Start: "2000-01-01"}))
	require.NoError(t, err)
	_, err = store.StockRows(ctx, query.StockLevels())
	require.NoError(t, err)

	t.Logf("created user %s (id=%d) and ran every listing", email, created.ID)
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
