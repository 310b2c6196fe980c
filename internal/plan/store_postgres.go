package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/pkg/platform/sentinel"
)

// PostgresStore reads the plan catalog from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const planColumns = `id, code, name, description, term_years, min_age, max_age,
	coverage_min, coverage_max,
	base_monthly, base_quarterly, base_semi_annual, base_annual, base_lump_sum,
	age_band_18_25, age_band_26_35, age_band_36_45, age_band_46_55, age_band_56_65,
	health_excellent, health_good, health_fair, health_poor,
	gender_male, gender_female,
	occupation_low, occupation_medium, occupation_high,
	created_at`

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM insurance_plans WHERE id = $1`, id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM insurance_plans ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*Plan, error) {
	var p Plan
	var (
		coverageMin, coverageMax                                string
		baseM, baseQ, baseS, baseA, baseL                       string
		age1, age2, age3, age4, age5                            string
		healthE, healthG, healthF, healthP                      string
		genderM, genderF                                        string
		occL, occM, occH                                        string
	)
	if err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.TermYears, &p.MinAge, &p.MaxAge,
		&coverageMin, &coverageMax,
		&baseM, &baseQ, &baseS, &baseA, &baseL,
		&age1, &age2, &age3, &age4, &age5,
		&healthE, &healthG, &healthF, &healthP,
		&genderM, &genderF,
		&occL, &occM, &occH,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	assign := func(dst *decimal.Decimal, src string) {
		if err != nil {
			return
		}
		*dst, err = decimal.NewFromString(src)
	}
	assign(&p.CoverageMin, coverageMin)
	assign(&p.CoverageMax, coverageMax)
	assign(&p.BaseMonthly, baseM)
	assign(&p.BaseQuarterly, baseQ)
	assign(&p.BaseSemiAnnual, baseS)
	assign(&p.BaseAnnual, baseA)
	assign(&p.BaseLumpSum, baseL)
	assign(&p.AgeBand18to25, age1)
	assign(&p.AgeBand26to35, age2)
	assign(&p.AgeBand36to45, age3)
	assign(&p.AgeBand46to55, age4)
	assign(&p.AgeBand56to65, age5)
	assign(&p.HealthExcellent, healthE)
	assign(&p.HealthGood, healthG)
	assign(&p.HealthFair, healthF)
	assign(&p.HealthPoor, healthP)
	assign(&p.GenderMale, genderM)
	assign(&p.GenderFemale, genderF)
	assign(&p.OccupationLow, occL)
	assign(&p.OccupationMedium, occM)
	assign(&p.OccupationHigh, occH)
	if err != nil {
		return nil, fmt.Errorf("decode plan decimals: %w", err)
	}
	return &p, nil
}
