package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blog-store-api/internal/config"
	"github.com/blog-store-api/internal/database"
	"github.com/rs/zerolog"
)

func init() {
	Register(database.DriverSQLite, func(_ context.Context, cfg *config.StorageConfig, log zerolog.Logger) (Backend, error) {
		db, err := database.NewSQLite(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return openSQL(db)
	})
	Register(database.DriverPostgres, func(_ context.Context, cfg *config.StorageConfig, log zerolog.Logger) (Backend, error) {
		db, err := database.NewPostgres(&cfg.Database, log)
		if err != nil {
			return nil, err
		}
		return openSQL(db)
	})
}

func openSQL(db *database.DB) (*SQL, error) {
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQL(db)
}

// sqlQueries holds dialect-specific statements for the kv_entries table
type sqlQueries struct {
	load         string
	save         string
	remove       string
	has          string
	deletePrefix string
}

var dialects = map[string]sqlQueries{
	database.DriverPostgres: {
		load: `SELECT value FROM kv_entries WHERE key = $1`,
		save: `
			INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`,
		remove:       `DELETE FROM kv_entries WHERE key = $1`,
		has:          `SELECT EXISTS(SELECT 1 FROM kv_entries WHERE key = $1)`,
		deletePrefix: `DELETE FROM kv_entries WHERE substr(key, 1, length($1)) = $2`,
	},
	database.DriverSQLite: {
		load: `SELECT value FROM kv_entries WHERE key = ?`,
		save: `
			INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`,
		remove:       `DELETE FROM kv_entries WHERE key = ?`,
		has:          `SELECT EXISTS(SELECT 1 FROM kv_entries WHERE key = ?)`,
		deletePrefix: `DELETE FROM kv_entries WHERE substr(key, 1, length(?)) = ?`,
	},
}

// SQL stores each key as one row of the kv_entries table
type SQL struct {
	db *database.DB
	q  sqlQueries
}

// NewSQL wraps a migrated database connection
func NewSQL(db *database.DB) (*SQL, error) {
	q, ok := dialects[db.Driver]
	if !ok {
		return nil, fmt.Errorf("no kv dialect for driver %s", db.Driver)
	}
	return &SQL{db: db, q: q}, nil
}

func (s *SQL) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.q.load, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQL) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.q.save, key, string(value), time.Now().UTC())
	return err
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.q.remove, key)
	return err
}

func (s *SQL) Has(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.q.has, key).Scan(&exists)
	return exists, err
}

func (s *SQL) DeletePrefix(ctx context.Context, prefix string) error {
	_, err := s.db.ExecContext(ctx, s.q.deletePrefix, prefix, prefix)
	return err
}

// Ping checks the database connection
func (s *SQL) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Close closes the underlying database
func (s *SQL) Close() error {
	return s.db.Close()
}
