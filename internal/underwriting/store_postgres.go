package underwriting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"covergate/pkg/platform/sentinel"
	txcontext "covergate/pkg/platform/tx"
)

// PostgresStore persists underwriting decisions in PostgreSQL.
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

func (s *PostgresStore) Save(ctx context.Context, d *Decision) error {
	var adjusted, coverage sql.NullString
	if d.AdjustedPremium != nil {
		adjusted = sql.NullString{String: d.AdjustedPremium.String(), Valid: true}
	}
	if d.ApprovedCoverage != nil {
		coverage = sql.NullString{String: d.ApprovedCoverage.String(), Valid: true}
	}

	res, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO underwriting_decisions (
			id, session_token, declaration_id, plan_id,
			risk_score, risk_tier, status,
			original_premium, adjusted_premium, loading_percent, approved_coverage,
			rejection_reason, requires_medical_exam, required_documents, decided_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (session_token) DO NOTHING`,
		d.ID, d.SessionToken, d.DeclarationID, d.PlanID,
		d.RiskScore, string(d.RiskTier), string(d.Status),
		d.OriginalPremium.String(), adjusted, d.LoadingPercent, coverage,
		d.RejectionReason, d.RequiresMedicalExam, pq.Array(d.RequiredDocuments), d.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("save underwriting decision: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindBySession(ctx context.Context, token string) (*Decision, error) {
	var d Decision
	var original string
	var adjusted, coverage sql.NullString
	var docs []string
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT id, session_token, declaration_id, plan_id,
			risk_score, risk_tier, status,
			original_premium, adjusted_premium, loading_percent, approved_coverage,
			rejection_reason, requires_medical_exam, required_documents, decided_at
		FROM underwriting_decisions WHERE session_token = $1`, token).Scan(
		&d.ID, &d.SessionToken, &d.DeclarationID, &d.PlanID,
		&d.RiskScore, &d.RiskTier, &d.Status,
		&original, &adjusted, &d.LoadingPercent, &coverage,
		&d.RejectionReason, &d.RequiresMedicalExam, pq.Array(&docs), &d.DecidedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find underwriting decision: %w", err)
	}

	if d.OriginalPremium, err = decimal.NewFromString(original); err != nil {
		return nil, fmt.Errorf("decode original premium: %w", err)
	}
	if adjusted.Valid {
		v, err := decimal.NewFromString(adjusted.String)
		if err != nil {
			return nil, fmt.Errorf("decode adjusted premium: %w", err)
		}
		d.AdjustedPremium = &v
	}
	if coverage.Valid {
		v, err := decimal.NewFromString(coverage.String)
		if err != nil {
			return nil, fmt.Errorf("decode approved coverage: %w", err)
		}
		d.ApprovedCoverage = &v
	}
	d.RequiredDocuments = docs
	return &d, nil
}
