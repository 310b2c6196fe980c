package plan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedCatalog loads a starter catalog into an in-memory store so the service
// is usable without a provisioned database. Rates are demo-grade.
func SeedCatalog(store *InMemoryStore) []*Plan {
	now := time.Now()
	one := decimal.NewFromInt(1)

	term := &Plan{
		ID:          uuid.New(),
		Code:        "TERM-20",
		Name:        "Term Life 20",
		Description: "20-year level term life cover",
		TermYears:   20,
		MinAge:      18,
		MaxAge:      65,
		CoverageMin: decimal.NewFromInt(50_000),
		CoverageMax: decimal.NewFromInt(1_000_000),

		BaseMonthly: decimal.NewFromInt(100),
		BaseAnnual:  decimal.NewFromInt(1_100),
		// Quarterly, semi-annual and lump-sum derive from the bases above.

		AgeBand18to25: decimal.NewFromInt(1),
		AgeBand26to35: decimal.RequireFromString("1.2"),
		AgeBand36to45: decimal.RequireFromString("1.5"),
		AgeBand46to55: decimal.RequireFromString("2.0"),
		AgeBand56to65: decimal.RequireFromString("2.8"),

		HealthExcellent: decimal.RequireFromString("0.9"),
		HealthGood:      one,
		HealthFair:      decimal.RequireFromString("1.3"),
		HealthPoor:      decimal.RequireFromString("1.8"),

		GenderMale:   decimal.RequireFromString("1.1"),
		GenderFemale: one,

		OccupationLow:    one,
		OccupationMedium: decimal.RequireFromString("1.25"),
		OccupationHigh:   decimal.RequireFromString("1.6"),

		CreatedAt: now,
	}

	whole := &Plan{
		ID:          uuid.New(),
		Code:        "WHOLE-LIFE",
		Name:        "Whole Life",
		Description: "Whole-of-life cover with fixed premiums",
		TermYears:   30,
		MinAge:      18,
		MaxAge:      60,
		CoverageMin: decimal.NewFromInt(100_000),
		CoverageMax: decimal.NewFromInt(2_000_000),

		BaseMonthly:    decimal.NewFromInt(250),
		BaseQuarterly:  decimal.NewFromInt(740),
		BaseSemiAnnual: decimal.NewFromInt(1_470),
		BaseAnnual:     decimal.NewFromInt(2_900),

		AgeBand18to25: decimal.NewFromInt(1),
		AgeBand26to35: decimal.RequireFromString("1.15"),
		AgeBand36to45: decimal.RequireFromString("1.4"),
		AgeBand46to55: decimal.RequireFromString("1.9"),
		AgeBand56to65: decimal.RequireFromString("2.5"),

		HealthExcellent: decimal.RequireFromString("0.85"),
		HealthGood:      one,
		HealthFair:      decimal.RequireFromString("1.35"),
		HealthPoor:      decimal.RequireFromString("1.9"),

		GenderMale:   decimal.RequireFromString("1.12"),
		GenderFemale: one,

		OccupationLow:    one,
		OccupationMedium: decimal.RequireFromString("1.3"),
		OccupationHigh:   decimal.RequireFromString("1.7"),

		CreatedAt: now,
	}

	ctx := context.Background()
	_ = store.Put(ctx, term)
	_ = store.Put(ctx, whole)
	return []*Plan{term, whole}
}
