package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"covergate/pkg/platform/sentinel"
	txcontext "covergate/pkg/platform/tx"
)

// PostgresStore persists payments in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, p *Payment) error {
	var exec interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	} = s.db
	if tx, ok := txcontext.From(ctx); ok {
		exec = tx
	}

	res, err := exec.ExecContext(ctx, `
		INSERT INTO payments (id, session_token, reference, amount, frequency, method, captured_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (session_token) DO NOTHING`,
		p.ID, p.SessionToken, p.Reference, p.Amount.String(), string(p.Frequency), p.Method, p.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindBySession(ctx context.Context, token string) (*Payment, error) {
	var row *sql.Row
	if tx, ok := txcontext.From(ctx); ok {
		row = tx.QueryRowContext(ctx, findPaymentQuery, token)
	} else {
		row = s.db.QueryRowContext(ctx, findPaymentQuery, token)
	}

	var p Payment
	var amount string
	err := row.Scan(&p.ID, &p.SessionToken, &p.Reference, &amount, &p.Frequency, &p.Method, &p.CapturedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("decode payment amount: %w", err)
	}
	return &p, nil
}

const findPaymentQuery = `
	SELECT id, session_token, reference, amount, frequency, method, captured_at
	FROM payments WHERE session_token = $1`
