package health

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

// PostgresStore persists declarations in PostgreSQL. Conditions and family
// history live in their own tables so they stay queryable rows instead of
// serialized blobs.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Save(ctx context.Context, d *Declaration) error {
	exec := s.execer(ctx)

	res, err := exec.ExecContext(ctx, `
		INSERT INTO health_declarations (
			id, session_token, height_cm, weight_kg, bmi,
			systolic_bp, diastolic_bp, cholesterol,
			smoking, packs_per_day, alcohol, exercise, sleep, stress, diet,
			family_history, occupation_risk, recent_hospitalization,
			consent, declared_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (session_token) DO NOTHING`,
		d.ID, d.SessionToken, d.HeightCM.String(), d.WeightKG.String(), d.BMI.String(),
		d.SystolicBP, d.DiastolicBP, d.Cholesterol,
		string(d.Smoking), d.PacksPerDay, string(d.Alcohol), string(d.Exercise),
		string(d.Sleep), string(d.Stress), string(d.Diet),
		pq.Array(conditionCodes(d.FamilyHistory)), string(d.OccupationRisk),
		d.RecentHospitalization, d.Consent, d.DeclaredAt,
	)
	if err != nil {
		return fmt.Errorf("save health declaration: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrConflict
	}

	for _, c := range d.Conditions {
		_, err := exec.ExecContext(ctx, `
			INSERT INTO health_conditions (declaration_id, code, diagnosed_at, treatment)
			VALUES ($1,$2,$3,$4)`,
			d.ID, string(c.Code), c.DiagnosedAt, nullString(string(c.Treatment)),
		)
		if err != nil {
			return fmt.Errorf("save health condition: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) FindBySession(ctx context.Context, token string) (*Declaration, error) {
	exec := s.execer(ctx)

	var d Declaration
	var heightCM, weightKG, bmi string
	var familyHistory []string
	err := exec.QueryRowContext(ctx, `
		SELECT id, session_token, height_cm, weight_kg, bmi,
			systolic_bp, diastolic_bp, cholesterol,
			smoking, packs_per_day, alcohol, exercise, sleep, stress, diet,
			family_history, occupation_risk, recent_hospitalization,
			consent, declared_at
		FROM health_declarations WHERE session_token = $1`, token).Scan(
		&d.ID, &d.SessionToken, &heightCM, &weightKG, &bmi,
		&d.SystolicBP, &d.DiastolicBP, &d.Cholesterol,
		&d.Smoking, &d.PacksPerDay, &d.Alcohol, &d.Exercise, &d.Sleep, &d.Stress, &d.Diet,
		pq.Array(&familyHistory), &d.OccupationRisk, &d.RecentHospitalization,
		&d.Consent, &d.DeclaredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find health declaration: %w", err)
	}

	if d.HeightCM, err = decimal.NewFromString(heightCM); err != nil {
		return nil, fmt.Errorf("decode height: %w", err)
	}
	if d.WeightKG, err = decimal.NewFromString(weightKG); err != nil {
		return nil, fmt.Errorf("decode weight: %w", err)
	}
	if d.BMI, err = decimal.NewFromString(bmi); err != nil {
		return nil, fmt.Errorf("decode bmi: %w", err)
	}
	for _, code := range familyHistory {
		d.FamilyHistory = append(d.FamilyHistory, ConditionCode(code))
	}

	rows, err := exec.QueryContext(ctx, `
		SELECT code, diagnosed_at, treatment
		FROM health_conditions WHERE declaration_id = $1 ORDER BY code`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("find health conditions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Condition
		var treatment sql.NullString
		if err := rows.Scan(&c.Code, &c.DiagnosedAt, &treatment); err != nil {
			return nil, fmt.Errorf("scan health condition: %w", err)
		}
		c.Treatment = TreatmentStatus(treatment.String)
		d.Conditions = append(d.Conditions, c)
	}
	return &d, rows.Err()
}

func conditionCodes(codes []ConditionCode) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
