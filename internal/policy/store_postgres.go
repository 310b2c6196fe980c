package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/pkg/platform/sentinel"
	txcontext "covergate/pkg/platform/tx"
)

// PostgresStore persists policies in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Save(ctx context.Context, p *Policy) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO policies (
			id, number, session_token, user_id, plan_id,
			coverage, premium, frequency, status, start_date, end_date, issued_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (session_token) DO NOTHING`,
		p.ID, p.Number, p.SessionToken, p.UserID, p.PlanID,
		p.Coverage.String(), p.Premium.String(), string(p.Frequency),
		string(p.Status), p.StartDate, p.EndDate, p.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("save policy: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

const policyColumns = `id, number, session_token, user_id, plan_id,
	coverage, premium, frequency, status, start_date, end_date, issued_at`

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Policy, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+policyColumns+` FROM policies WHERE id = $1`, id)
	return scanPolicy(row)
}

func (s *PostgresStore) FindBySession(ctx context.Context, token string) (*Policy, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+policyColumns+` FROM policies WHERE session_token = $1`, token)
	return scanPolicy(row)
}

func scanPolicy(row *sql.Row) (*Policy, error) {
	var p Policy
	var coverage, premium string
	err := row.Scan(
		&p.ID, &p.Number, &p.SessionToken, &p.UserID, &p.PlanID,
		&coverage, &premium, &p.Frequency, &p.Status,
		&p.StartDate, &p.EndDate, &p.IssuedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find policy: %w", err)
	}
	if p.Coverage, err = decimal.NewFromString(coverage); err != nil {
		return nil, fmt.Errorf("decode coverage: %w", err)
	}
	if p.Premium, err = decimal.NewFromString(premium); err != nil {
		return nil, fmt.Errorf("decode premium: %w", err)
	}
	return &p, nil
}
