package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindcandy/internal/client/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	MemoryScheme = "mem://"
	sqliteScheme = "sqlite://"
)

// Storage is an opened backend. Close releases the database handle, if any.
type Storage struct {
	Repo Repository
	db   *sql.DB
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for dialect ("sqlite3" or
// "pgx") from dir.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open picks a backend by dsn:
//
//	mem://                    in-process map
//	postgres://, postgresql:// PostgreSQL through pgx
//	anything else             SQLite file path (an optional sqlite:// prefix is stripped)
func Open(ctx context.Context, dsn string) (*Storage, error) {
	switch {
	case strings.HasPrefix(dsn, MemoryScheme):
		return &Storage{Repo: NewMemoryRepository()}, nil

	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := RunMigrations(ctx, db, "pgx", migrations.PostgresDir); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Storage{Repo: NewPostgresRepository(db), db: db}, nil

	default:
		db, err := sql.Open("sqlite", strings.TrimPrefix(dsn, sqliteScheme))
		if err != nil {
			return nil, err
		}
		// one connection so that ":memory:" is a single database
		db.SetMaxOpenConns(1)
		if err := RunMigrations(ctx, db, "sqlite3", migrations.SQLiteDir); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Storage{Repo: NewSQLiteRepository(db), db: db}, nil
	}
}
