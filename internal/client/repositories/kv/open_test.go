package kv

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), "mem://")
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &MemoryRepository{}, s.Repo)
	assert.NoError(t, s.Close())
}

func TestOpen_SQLiteFile_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mindcandy.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.IsType(t, &SQLiteRepository{}, s.Repo)
	require.NoError(t, s.Repo.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(ctx, "sqlite://"+path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestOpen_MigrationError(t *testing.T) {
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("broken migration")
	}
	defer func() { gooseUpContext = orig }()

	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"))
	require.ErrorContains(t, err, "failed to run migrations: broken migration")
}

func TestRunMigrations_UsesDialectDir(t *testing.T) {
	var gotDir string
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	defer func() { gooseUpContext = orig }()

	require.NoError(t, RunMigrations(context.Background(), nil, "pgx", "postgres"))
	assert.Equal(t, "postgres", gotDir)

	require.Error(t, RunMigrations(context.Background(), nil, "no-such-dialect", "x"))
}
