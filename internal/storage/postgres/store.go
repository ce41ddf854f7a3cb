package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/hongminglow/pos-audit-be/internal/models"
	"github.com/hongminglow/pos-audit-be/internal/query"
	"github.com/hongminglow/pos-audit-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// Store provides Postgres-backed access to the audit tables.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool with default settings. The schema is owned elsewhere.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping acquires a connection and round-trips to the server.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const q = `SELECT id, email, password, role, created_date FROM audituser WHERE email = $1 LIMIT 1`
	var user models.User
	err := s.pool.QueryRow(ctx, q, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser inserts a new user row and returns it with the generated id.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const q = `INSERT INTO audituser (email, password, role, created_date) VALUES ($1, $2, $3, $4) RETURNING id`
	err := s.pool.QueryRow(ctx, q, user.Email, user.PasswordHash, user.Role, user.CreatedDate).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return user, nil
}

// Rows runs stmt and returns each row as a map keyed by column name.
func (s *Store) Rows(ctx context.Context, stmt query.Statement) ([]map[string]any, error) {
	rows, err := s.pool.Query(ctx, rebind(stmt), stmt.Args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}

// SaleItemRows runs the flat interface-report query.
func (s *Store) SaleItemRows(ctx context.Context, stmt query.Statement) ([]models.SaleItemRow, error) {
	rows, err := s.pool.Query(ctx, rebind(stmt), stmt.Args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.SaleItemRow])
}

// StockRows runs the per-product stock query.
func (s *Store) StockRows(ctx context.Context, stmt query.Statement) ([]models.StockRow, error) {
	rows, err := s.pool.Query(ctx, rebind(stmt), stmt.Args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.StockRow])
}

func rebind(stmt query.Statement) string {
	return sqlx.Rebind(sqlx.DOLLAR, stmt.SQL)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
