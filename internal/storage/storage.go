package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/pos-audit-be/internal/models"
	"github.com/hongminglow/pos-audit-be/internal/query"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the credential operations needed by the auth service.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}

// ReportStore runs reporting statements built by the query package.
type ReportStore interface {
	// Rows returns every result row as a column-name keyed map, in result order.
	Rows(ctx context.Context, stmt query.Statement) ([]map[string]any, error)
	SaleItemRows(ctx context.Context, stmt query.Statement) ([]models.SaleItemRow, error)
	StockRows(ctx context.Context, stmt query.Statement) ([]models.StockRow, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the full persistence surface the server is wired with.
type Store interface {
	UserStore
	ReportStore
	Pinger
	Close()
}
