package auction

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"festdraft/internal/platform/database"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"
)

// PostgresStore persists auctions in PostgreSQL. Team order and authorized
// managers live in JSONB columns.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const auctionColumns = `id, name, description, section_id, timer_seconds, extra_time_seconds,
	first_teams_order, authorized_managers, status, access_code, created_at`

func (s *PostgresStore) Create(ctx context.Context, a *models.Auction) error {
	order, err := json.Marshal(nonNil(a.FirstTeamsOrder))
	if err != nil {
		return fmt.Errorf("encode team order: %w", err)
	}
	managers, err := json.Marshal(nonNil(a.AuthorizedManagers))
	if err != nil {
		return fmt.Errorf("encode managers: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO auctions (`+auctionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		int64(a.ID), a.Name, a.Description, nullSection(a.SectionID), a.TimerSeconds, a.ExtraTimeSeconds,
		order, managers, string(a.Status), a.AccessCode, a.CreatedAt,
	)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return fmt.Errorf("auction exists: %w", sentinel.ErrAlreadyUsed)
		case database.IsForeignKeyViolation(err):
			return fmt.Errorf("section does not exist: %w", sentinel.ErrInvalidInput)
		}
		return fmt.Errorf("insert auction: %w", err)
	}
	return nil
}

// UpdateStatus performs a compare-and-set on the status column.
func (s *PostgresStore) UpdateStatus(ctx context.Context, auctionID id.AuctionID, from, to models.AuctionStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE auctions SET status = $3 WHERE id = $1 AND status = $2`,
		int64(auctionID), string(from), string(to),
	)
	if err != nil {
		return fmt.Errorf("update auction status: %w", err)
	}
	return s.requireStatus(ctx, res, auctionID, from)
}

// UpdateDraft rewrites the settings of an auction that is still a draft.
func (s *PostgresStore) UpdateDraft(ctx context.Context, a *models.Auction) error {
	order, err := json.Marshal(nonNil(a.FirstTeamsOrder))
	if err != nil {
		return fmt.Errorf("encode team order: %w", err)
	}
	managers, err := json.Marshal(nonNil(a.AuthorizedManagers))
	if err != nil {
		return fmt.Errorf("encode managers: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE auctions
		SET name = $2, description = $3, section_id = $4, timer_seconds = $5, extra_time_seconds = $6,
			first_teams_order = $7, authorized_managers = $8
		WHERE id = $1 AND status = 'draft'`,
		int64(a.ID), a.Name, a.Description, nullSection(a.SectionID), a.TimerSeconds, a.ExtraTimeSeconds,
		order, managers,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("section does not exist: %w", sentinel.ErrInvalidInput)
		}
		return fmt.Errorf("update auction: %w", err)
	}
	return s.requireStatus(ctx, res, a.ID, models.AuctionDraft)
}

func (s *PostgresStore) DeleteDraft(ctx context.Context, auctionID id.AuctionID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM auctions WHERE id = $1 AND status = 'draft'`, int64(auctionID))
	if err != nil {
		return fmt.Errorf("delete auction: %w", err)
	}
	return s.requireStatus(ctx, res, auctionID, models.AuctionDraft)
}

// requireStatus explains a conditional write that touched no row: either
// the auction is gone or its status is no longer want.
func (s *PostgresStore) requireStatus(ctx context.Context, res sql.Result, auctionID id.AuctionID, want models.AuctionStatus) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.FindByID(ctx, auctionID); err != nil {
		return err
	}
	return fmt.Errorf("auction is not %s: %w", want, sentinel.ErrInvalidState)
}

func (s *PostgresStore) FindByID(ctx context.Context, auctionID id.AuctionID) (*models.Auction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, int64(auctionID))
	a, err := scanAuction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("auction not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find auction: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Auction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+auctionColumns+` FROM auctions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Auction, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate auctions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM auctions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count auctions: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (*models.Auction, error) {
	var (
		a         models.Auction
		rawID     int64
		sectionID sql.NullInt64
		order     []byte
		managers  []byte
		status    string
	)
	err := row.Scan(&rawID, &a.Name, &a.Description, &sectionID, &a.TimerSeconds, &a.ExtraTimeSeconds,
		&order, &managers, &status, &a.AccessCode, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.ID = id.AuctionID(rawID)
	a.Status = models.AuctionStatus(status)
	if sectionID.Valid {
		a.SectionID = id.SectionID(sectionID.Int64)
	}
	if err := json.Unmarshal(order, &a.FirstTeamsOrder); err != nil {
		return nil, fmt.Errorf("decode team order: %w", err)
	}
	if err := json.Unmarshal(managers, &a.AuthorizedManagers); err != nil {
		return nil, fmt.Errorf("decode managers: %w", err)
	}
	return &a, nil
}

func nullSection(sectionID id.SectionID) sql.NullInt64 {
	if sectionID.IsNil() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(sectionID), Valid: true}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
