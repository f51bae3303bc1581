// Package supabase is the store.Store backend for the Supabase variant of
// the marketplace. It talks plain SQL to the Supabase Postgres schema
// (profiles, projects, applications, ...) through sqlx.
package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type Store struct {
	db      *sqlx.DB // nil inside a transaction
	q       sqlx.ExtContext
	dialect Dialect
}

var _ store.Store = (*Store)(nil)

// Open connects to a Supabase Postgres database using the pgx driver.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("supabase: open: %w", err)
	}
	db.SetMaxOpenConns(10)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("supabase: ping: %w", err)
	}
	return New(db, DialectPostgres), nil
}

// New wraps an existing connection. The dialect picks the DDL used by Migrate.
func New(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{db: db, q: db, dialect: dialect}
}

func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range schemaStatements(s.dialect) {
		if _, err := s.q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("supabase: migration step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Store) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("supabase: begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{q: tx, dialect: s.dialect}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return translate(sqlx.GetContext(ctx, s.q, dest, s.q.Rebind(query), args...))
}

func (s *Store) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}
	return translate(sqlx.SelectContext(ctx, s.q, dest, s.q.Rebind(query), args...))
}

// insert runs an INSERT ... RETURNING id statement.
func (s *Store) insert(ctx context.Context, query string, args ...interface{}) (uint, error) {
	var id int64
	if err := s.q.QueryRowxContext(ctx, s.q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, translate(err)
	}
	return uint(id), nil
}

// exec runs a write and reports store.ErrNotFound when no row matched.
func (s *Store) exec(ctx context.Context, query string, args ...interface{}) error {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}
	res, err := s.q.ExecContext(ctx, s.q.Rebind(query), args...)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}
