// Package handler exposes the plan catalog and quoting endpoints. Both are
// public reads: a quote here is indicative and commits the insurer to nothing
// until underwriting runs.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"covergate/internal/domain"
	"covergate/internal/plan"
	"covergate/internal/platform/middleware"
	"covergate/internal/pricing"
	dErrors "covergate/pkg/domain-errors"
	"covergate/pkg/platform/httputil"
)

// Handler serves the plan catalog.
type Handler struct {
	plans      plan.Store
	calculator *pricing.Calculator
	logger     *slog.Logger
}

func New(plans plan.Store, calculator *pricing.Calculator, logger *slog.Logger) *Handler {
	return &Handler{plans: plans, calculator: calculator, logger: logger}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/plans", h.HandleList)
	r.Get("/plans/{id}/quote", h.HandleQuote)
}

// HandleList handles GET /plans.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	plans, err := h.plans.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "plan list failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "plan list failed"))
		return
	}

	out := make([]*PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, FromPlan(p))
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Plans: out})
}

// HandleQuote handles GET /plans/{id}/quote. Rating inputs arrive as query
// parameters; the response quotes every payment frequency at once.
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "plan id must be a UUID"))
		return
	}

	in, err := quoteInput(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	quotes, err := h.calculator.AllFrequencies(ctx, planID, in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromQuotes(planID, in, quotes))
}

func quoteInput(r *http.Request) (pricing.Input, error) {
	q := r.URL.Query()

	age, err := strconv.Atoi(q.Get("age"))
	if err != nil || age < 0 {
		return pricing.Input{}, dErrors.New(dErrors.CodeBadRequest, "age must be a non-negative integer")
	}
	gender, err := domain.ParseGender(q.Get("gender"))
	if err != nil {
		return pricing.Input{}, err
	}
	healthStatus, err := domain.ParseHealthStatus(q.Get("health_status"))
	if err != nil {
		return pricing.Input{}, err
	}
	occupationRisk, err := domain.ParseOccupationRisk(q.Get("occupation_risk"))
	if err != nil {
		return pricing.Input{}, err
	}

	return pricing.Input{
		Age:            age,
		Gender:         gender,
		HealthStatus:   healthStatus,
		OccupationRisk: occupationRisk,
	}, nil
}
