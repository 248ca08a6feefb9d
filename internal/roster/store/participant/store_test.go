package participant

import (
	"context"
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

func seed() []*models.Participant {
	return []*models.Participant{
		{ID: 3, Name: "Mike Johnson", SectionID: 1, TeamID: 7, Status: models.StatusSelected, Active: true},
		{ID: 1, Name: "Muhammed O", SectionID: 1, Achievements: []string{"Hackathon winner"}, Active: true},
		{ID: 2, Name: "Jane Smith", SectionID: 2, Active: true},
	}
}

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	require.NoError(t, store.CreateMany(ctx, seed()))

	t.Run("bulk create is all or nothing", func(t *testing.T) {
		err := store.CreateMany(ctx, []*models.Participant{{ID: 4, Name: "New"}, {ID: 1, Name: "Dup"}})
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
		_, err = store.FindByID(ctx, 4)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("list by section", func(t *testing.T) {
		all, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, id.ParticipantID(1), all[0].ID)

		junior, err := store.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, junior, 2)

		n, err := store.CountBySection(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		p, err := store.FindByID(ctx, 1)
		require.NoError(t, err)
		p.Achievements[0] = "changed"
		again, err := store.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Hackathon winner", again.Achievements[0])
	})

	t.Run("unassign team", func(t *testing.T) {
		n, err := store.UnassignTeam(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		p, err := store.FindByID(ctx, 3)
		require.NoError(t, err)
		assert.False(t, p.HasTeam())
	})

	t.Run("update and delete", func(t *testing.T) {
		assert.ErrorIs(t, store.Update(ctx, &models.Participant{ID: 99}), sentinel.ErrNotFound)
		require.NoError(t, store.Delete(ctx, 2))
		assert.ErrorIs(t, store.Delete(ctx, 2), sentinel.ErrNotFound)
		n, _ := store.Count(ctx)
		assert.Equal(t, 2, n)
	})
}

var columns = []string{
	"id", "name", "email", "phone", "dob", "gender", "section_id", "team_id", "skill", "experience",
	"status", "adm_no", "chest_no", "avatar", "achievements", "active", "created_at",
}

func TestPostgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgres(db)
	ctx := context.Background()
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("find decodes nullable columns and achievements", func(t *testing.T) {
		mock.ExpectQuery("FROM participants WHERE id").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				int64(1), "Muhammed O", "mo@example.com", "", "", "MALE", int64(4), nil, "JavaScript", "5 years",
				models.StatusAvailable, "A1", "C1", "", "Hackathon winner\nSpeaker", true, created))
		p, err := store.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, id.SectionID(4), p.SectionID)
		assert.True(t, p.TeamID.IsNil())
		assert.Equal(t, []string{"Hackathon winner", "Speaker"}, p.Achievements)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery("FROM participants WHERE id").WillReturnRows(sqlmock.NewRows(columns))
		_, err := store.FindByID(ctx, 9)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("bulk insert rolls back on failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO participants").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO participants").WillReturnError(&pgconn.PgError{Code: "23503"})
		mock.ExpectRollback()
		err := store.CreateMany(ctx, []*models.Participant{{ID: 1, Name: "A"}, {ID: 2, Name: "B", SectionID: 77}})
		assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
	})

	t.Run("list filters by section", func(t *testing.T) {
		mock.ExpectQuery("FROM participants WHERE section_id = \\$1 ORDER BY id").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(columns))
		list, err := store.List(ctx, 4)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("unassign team reports affected rows", func(t *testing.T) {
		mock.ExpectExec("UPDATE participants SET team_id = NULL").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		n, err := store.UnassignTeam(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
