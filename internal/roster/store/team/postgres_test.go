package team

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"
)

func newMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgres(db), mock
}

var columns = []string{"id", "name", "manager", "colour", "logo_url", "created_at"}

func TestPostgresCreateDuplicate(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec("INSERT INTO teams").WillReturnError(&pgconn.PgError{Code: "23505"})

	err := store.Create(context.Background(), &models.Team{ID: 1, Name: "Axis"})
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList(t *testing.T) {
	store, mock := newMock(t)
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM teams ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "Axis", "Muhammed", "Green", "", created).
			AddRow(int64(2), "Equinox", "", "Red", "", created))

	teams, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, id.TeamID(1), teams[0].ID)
	assert.Equal(t, "Red", teams[1].Colour)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByIDNotFound(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectQuery("FROM teams WHERE id").WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)

	_, err := store.FindByID(context.Background(), 7)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresUpdateAndDeleteMissingRow(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec("UPDATE teams SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM teams").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.Update(context.Background(), &models.Team{ID: 3, Name: "Ghost"}), sentinel.ErrNotFound)
	assert.ErrorIs(t, store.Delete(context.Background(), 3), sentinel.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCount(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM teams")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
