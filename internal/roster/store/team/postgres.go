package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"festdraft/internal/platform/database"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"
)

// PostgresStore persists teams in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const teamColumns = `id, name, manager, colour, logo_url, created_at`

func (s *PostgresStore) Create(ctx context.Context, t *models.Team) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (`+teamColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		int64(t.ID), t.Name, t.Manager, t.Colour, t.LogoURL, t.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("team name must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, t *models.Team) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE teams SET name = $2, manager = $3, colour = $4, logo_url = $5
		WHERE id = $1`,
		int64(t.ID), t.Name, t.Manager, t.Colour, t.LogoURL,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("team name must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update team: %w", err)
	}
	return requireRow(res, "update team")
}

func (s *PostgresStore) Delete(ctx context.Context, teamID id.TeamID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, int64(teamID))
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return requireRow(res, "delete team")
}

func (s *PostgresStore) FindByID(ctx context.Context, teamID id.TeamID) (*models.Team, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, int64(teamID))
	t, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Team, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM teams`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var (
		t      models.Team
		teamID int64
	)
	if err := row.Scan(&teamID, &t.Name, &t.Manager, &t.Colour, &t.LogoURL, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.ID = id.TeamID(teamID)
	return &t, nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("team not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
