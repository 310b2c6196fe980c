package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"covergate/pkg/platform/sentinel"
	txcontext "covergate/pkg/platform/tx"
)

// PostgresStore persists sessions in PostgreSQL. Reads inside a step use
// FOR UPDATE through the ambient transaction, giving a row-level serialization
// guarantee on top of the per-token lock.
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

func (s *PostgresStore) Create(ctx context.Context, session *Session) error {
	var coverage sql.NullString
	if session.Coverage != nil {
		coverage = sql.NullString{String: session.Coverage.String(), Valid: true}
	}
	res, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO registration_sessions (
			token, user_id, current_step, status,
			account_created, kyc_completed, profile_completed, product_selected,
			health_declared, underwriting_approved, payment_completed, policy_issued,
			date_of_birth, gender, occupation, occupation_risk,
			plan_id, coverage, term_years, frequency,
			rejection_reason, policy_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
		ON CONFLICT (token) DO NOTHING`,
		session.Token, session.UserID, string(session.CurrentStep), string(session.Status),
		session.AccountCreated, session.KYCCompleted, session.ProfileCompleted, session.ProductSelected,
		session.HealthDeclared, session.UnderwritingApproved, session.PaymentCompleted, session.PolicyIssued,
		session.DateOfBirth, string(session.Gender), session.Occupation, string(session.OccupationRisk),
		session.PlanID, coverage, session.TermYears, string(session.Frequency),
		session.RejectionReason, session.PolicyID, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

const sessionColumns = `token, user_id, current_step, status,
	account_created, kyc_completed, profile_completed, product_selected,
	health_declared, underwriting_approved, payment_completed, policy_issued,
	date_of_birth, gender, occupation, occupation_risk,
	plan_id, coverage, term_years, frequency,
	rejection_reason, policy_id, created_at, updated_at`

func (s *PostgresStore) FindByToken(ctx context.Context, token string) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM registration_sessions WHERE token = $1`
	if _, inTx := txcontext.From(ctx); inTx {
		// Row lock for the duration of the step transaction.
		query += ` FOR UPDATE`
	}

	var session Session
	var coverage sql.NullString
	err := s.execer(ctx).QueryRowContext(ctx, query, token).Scan(
		&session.Token, &session.UserID, &session.CurrentStep, &session.Status,
		&session.AccountCreated, &session.KYCCompleted, &session.ProfileCompleted, &session.ProductSelected,
		&session.HealthDeclared, &session.UnderwritingApproved, &session.PaymentCompleted, &session.PolicyIssued,
		&session.DateOfBirth, &session.Gender, &session.Occupation, &session.OccupationRisk,
		&session.PlanID, &coverage, &session.TermYears, &session.Frequency,
		&session.RejectionReason, &session.PolicyID, &session.CreatedAt, &session.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if coverage.Valid {
		v, err := decimal.NewFromString(coverage.String)
		if err != nil {
			return nil, fmt.Errorf("decode coverage: %w", err)
		}
		session.Coverage = &v
	}
	return &session, nil
}

func (s *PostgresStore) Update(ctx context.Context, session *Session) error {
	var coverage sql.NullString
	if session.Coverage != nil {
		coverage = sql.NullString{String: session.Coverage.String(), Valid: true}
	}
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE registration_sessions SET
			current_step = $2, status = $3,
			account_created = $4, kyc_completed = $5, profile_completed = $6, product_selected = $7,
			health_declared = $8, underwriting_approved = $9, payment_completed = $10, policy_issued = $11,
			date_of_birth = $12, gender = $13, occupation = $14, occupation_risk = $15,
			plan_id = $16, coverage = $17, term_years = $18, frequency = $19,
			rejection_reason = $20, policy_id = $21, updated_at = $22
		WHERE token = $1 AND status = 'in_progress'`,
		session.Token, string(session.CurrentStep), string(session.Status),
		session.AccountCreated, session.KYCCompleted, session.ProfileCompleted, session.ProductSelected,
		session.HealthDeclared, session.UnderwritingApproved, session.PaymentCompleted, session.PolicyIssued,
		session.DateOfBirth, string(session.Gender), session.Occupation, string(session.OccupationRisk),
		session.PlanID, coverage, session.TermYears, string(session.Frequency),
		session.RejectionReason, session.PolicyID, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		// Either the token is unknown or the session went terminal.
		if _, findErr := s.FindByToken(ctx, session.Token); findErr != nil {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrImmutable
	}
	return nil
}
