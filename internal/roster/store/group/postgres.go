package group

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

const selectGroups = `SELECT id, name, section_id, created_at, updated_at FROM groups`

// PostgresStore persists groups in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, g *models.Group) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO groups (id, name, section_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		int64(g.ID), g.Name, int64(g.SectionID), g.CreatedAt, g.UpdatedAt,
	)
	return translate(err, "insert group")
}

func (s *PostgresStore) Update(ctx context.Context, g *models.Group) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE groups SET name = $2, updated_at = $3 WHERE id = $1`,
		int64(g.ID), g.Name, g.UpdatedAt,
	)
	if err != nil {
		return translate(err, "update group")
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, groupID id.GroupID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, int64(groupID))
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, groupID id.GroupID) (*models.Group, error) {
	g, err := scanGroup(s.db.QueryRowContext(ctx, selectGroups+` WHERE id = $1`, int64(groupID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("group not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return g, nil
}

// List returns the groups of sectionID, or every group for a zero id.
func (s *PostgresStore) List(ctx context.Context, sectionID id.SectionID) ([]*models.Group, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if sectionID.IsNil() {
		rows, err = s.db.QueryContext(ctx, selectGroups+` ORDER BY id`)
	} else {
		rows, err = s.db.QueryContext(ctx, selectGroups+` WHERE section_id = $1 ORDER BY id`, int64(sectionID))
	}
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CountBySection(ctx context.Context, sectionID id.SectionID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM groups WHERE section_id = $1`, int64(sectionID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count groups by section: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM groups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count groups: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (*models.Group, error) {
	var (
		g          models.Group
		rawID      int64
		rawSection int64
	)
	if err := row.Scan(&rawID, &g.Name, &rawSection, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.ID = id.GroupID(rawID)
	g.SectionID = id.SectionID(rawSection)
	return &g, nil
}

func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("group name must be unique within its section: %w", sentinel.ErrAlreadyUsed)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("section does not exist: %w", sentinel.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("group not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
