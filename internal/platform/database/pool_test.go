package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festdraft/internal/platform/config"
)

func TestNewWithoutURLReturnsNil(t *testing.T) {
	pool, err := New(config.Database{})
	require.NoError(t, err)
	assert.Nil(t, pool)
	assert.Error(t, pool.Health(context.Background()))
	assert.NoError(t, pool.Close())
}

func TestMigrate(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()

	t.Run("runs from embedded root", func(t *testing.T) {
		var gotDir string
		gooseUp = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
			gotDir = dir
			return nil
		}
		require.NoError(t, FromDB(db).Migrate(context.Background()))
		assert.Equal(t, ".", gotDir)
	})

	t.Run("wraps failure", func(t *testing.T) {
		gooseUp = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
			return errors.New("boom")
		}
		err := FromDB(db).Migrate(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "apply migrations")
	})
}

func TestHealthPings(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, FromDB(db).Health(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
