// Package sqlite is a file or in-memory implementation of the storage interfaces, used for local
// development and tests. Timestamps are stored as TEXT in "2006-01-02 15:04:05" form so that
// range filters compare lexically, as the production store compares them chronologically.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hongminglow/pos-audit-be/internal/models"
	"github.com/hongminglow/pos-audit-be/internal/query"
	"github.com/hongminglow/pos-audit-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// TimeLayout is the text form of every timestamp column.
const TimeLayout = "2006-01-02 15:04:05"

// Store wraps a sqlx handle on a SQLite database.
type Store struct {
	db *sqlx.DB
}

// Open connects to dsn (a file path or ":memory:").
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// DB exposes the underlying handle, for seeding fixtures.
func (s *Store) DB() *sqlx.DB { return s.db }

// Close releases database resources.
func (s *Store) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type userRow struct {
	ID          int64  `db:"id"`
	Email       string `db:"email"`
	Password    string `db:"password"`
	Role        string `db:"role"`
	CreatedDate string `db:"created_date"`
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `SELECT id, email, password, role, created_date FROM audituser WHERE email = ? LIMIT 1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	created, _ := time.ParseInLocation(TimeLayout, row.CreatedDate, time.UTC)
	return models.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.Password,
		Role:         row.Role,
		CreatedDate:  created,
	}, nil
}

// CreateUser inserts a new user row and returns it with the generated id.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO audituser (email, password, role, created_date) VALUES (?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.Role, user.CreatedDate.UTC().Format(TimeLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = id
	return user, nil
}

// Rows runs stmt and returns each row as a map keyed by column name.
func (s *Store) Rows(ctx context.Context, stmt query.Statement) ([]map[string]any, error) {
	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(stmt.SQL), stmt.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaleItemRows runs the flat interface-report query.
func (s *Store) SaleItemRows(ctx context.Context, stmt query.Statement) ([]models.SaleItemRow, error) {
	var out []models.SaleItemRow
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(stmt.SQL), stmt.Args...); err != nil {
		return nil, err
	}
	return out, nil
}

// StockRows runs the per-product stock query.
func (s *Store) StockRows(ctx context.Context, stmt query.Statement) ([]models.StockRow, error) {
	var out []models.StockRow
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(stmt.SQL), stmt.Args...); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
