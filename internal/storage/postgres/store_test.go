package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/pos-audit-be/internal/query"
)

func TestRebindNumbersPlaceholders(t *testing.T) {
	stmt, err := query.Build(query.Sales, query.Filter{Search: "x", StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)

	sql := rebind(stmt)
	assert.NotContains(t, sql, "?")
	for i := 1; i <= len(stmt.Args); i++ {
		assert.Contains(t, sql, fmt.Sprintf("$%d", i))
	}
	assert.NotContains(t, sql, fmt.Sprintf("$%d", len(stmt.Args)+1))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(dup))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
