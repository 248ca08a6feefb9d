package section

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

// PostgresStore persists sections in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, sec *models.Section) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sections (id, name, created_at) VALUES ($1, $2, $3)`,
		int64(sec.ID), sec.Name, sec.CreatedAt,
	)
	return translate(err, "insert section")
}

func (s *PostgresStore) Update(ctx context.Context, sec *models.Section) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sections SET name = $2 WHERE id = $1`, int64(sec.ID), sec.Name)
	if err != nil {
		return translate(err, "update section")
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, sectionID id.SectionID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, int64(sectionID))
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, sectionID id.SectionID) (*models.Section, error) {
	var (
		sec models.Section
		raw int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM sections WHERE id = $1`, int64(sectionID)).
		Scan(&raw, &sec.Name, &sec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("section not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find section: %w", err)
	}
	sec.ID = id.SectionID(raw)
	return &sec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Section, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM sections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Section, 0)
	for rows.Next() {
		var (
			sec models.Section
			raw int64
		)
		if err := rows.Scan(&raw, &sec.Name, &sec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sec.ID = id.SectionID(raw)
		out = append(out, &sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM sections`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sections: %w", err)
	}
	return n, nil
}

func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("section name must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("section not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
