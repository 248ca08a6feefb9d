package participant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"festdraft/internal/platform/database"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"
)

// PostgresStore persists participants in PostgreSQL. Achievements are
// stored newline-separated.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const participantColumns = `id, name, email, phone, dob, gender, section_id, team_id, skill, experience,
	status, adm_no, chest_no, avatar, achievements, active, created_at`

const insertParticipant = `INSERT INTO participants (` + participantColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, p *models.Participant) error {
	_, err := db.ExecContext(ctx, insertParticipant, insertArgs(p)...)
	if err != nil {
		return translate(err, "insert participant")
	}
	return nil
}

func insertArgs(p *models.Participant) []any {
	return []any{
		int64(p.ID), p.Name, p.Email, p.Phone, p.DOB, p.Gender,
		nullID(int64(p.SectionID)), nullID(int64(p.TeamID)), p.Skill, p.Experience,
		p.Status, p.AdmNo, p.ChestNo, p.Avatar, strings.Join(p.Achievements, "\n"), p.Active, p.CreatedAt,
	}
}

func (s *PostgresStore) Create(ctx context.Context, p *models.Participant) error {
	return insert(ctx, s.db, p)
}

// CreateMany inserts all participants in one transaction.
func (s *PostgresStore) CreateMany(ctx context.Context, ps []*models.Participant) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, p := range ps {
			if err := insert(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Participant) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE participants SET
			name = $2, email = $3, phone = $4, dob = $5, gender = $6, section_id = $7, team_id = $8,
			skill = $9, experience = $10, status = $11, adm_no = $12, chest_no = $13, avatar = $14,
			achievements = $15, active = $16
		WHERE id = $1`,
		insertArgs(p)[:16]...,
	)
	if err != nil {
		return translate(err, "update participant")
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, participantID id.ParticipantID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, int64(participantID))
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, int64(participantID))
	p, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("participant not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find participant: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) List(ctx context.Context, sectionID id.SectionID) ([]*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants`
	var args []any
	if !sectionID.IsNil() {
		query += ` WHERE section_id = $1`
		args = append(args, int64(sectionID))
	}
	rows, err := s.db.QueryContext(ctx, query+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UnassignTeam(ctx context.Context, teamID id.TeamID) (int, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE participants SET team_id = NULL WHERE team_id = $1`, int64(teamID))
	if err != nil {
		return 0, fmt.Errorf("unassign team: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unassign team: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStore) CountBySection(ctx context.Context, sectionID id.SectionID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM participants WHERE section_id = $1`, int64(sectionID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count participants by section: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM participants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	var (
		p            models.Participant
		rawID        int64
		sectionID    sql.NullInt64
		teamID       sql.NullInt64
		achievements string
	)
	err := row.Scan(&rawID, &p.Name, &p.Email, &p.Phone, &p.DOB, &p.Gender, &sectionID, &teamID,
		&p.Skill, &p.Experience, &p.Status, &p.AdmNo, &p.ChestNo, &p.Avatar, &achievements, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.ID = id.ParticipantID(rawID)
	if sectionID.Valid {
		p.SectionID = id.SectionID(sectionID.Int64)
	}
	if teamID.Valid {
		p.TeamID = id.TeamID(teamID.Int64)
	}
	if achievements != "" {
		p.Achievements = strings.Split(achievements, "\n")
	}
	return &p, nil
}

func nullID(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func translate(err error, op string) error {
	switch {
	case database.IsUniqueViolation(err):
		return fmt.Errorf("participant exists: %w", sentinel.ErrAlreadyUsed)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("section or team does not exist: %w", sentinel.ErrInvalidInput)
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
		return fmt.Errorf("participant not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
