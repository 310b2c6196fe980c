// Package handler exposes the registration workflow over HTTP. One endpoint
// per step; every mutating endpoint requires a bearer token and operates only
// on the caller's own session.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"covergate/internal/health"
	"covergate/internal/payment"
	"covergate/internal/platform/middleware"
	"covergate/internal/policy"
	"covergate/internal/registration"
	"covergate/internal/registration/service"
	"covergate/internal/underwriting"
	dErrors "covergate/pkg/domain-errors"
	"covergate/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks Service

// Service defines the registration operations the handler needs.
type Service interface {
	Start(ctx context.Context, userID uuid.UUID) (*registration.Session, error)
	VerifyKYC(ctx context.Context, userID uuid.UUID, token string, in service.KYCInput) (*registration.Session, error)
	CompleteProfile(ctx context.Context, userID uuid.UUID, token string, in service.ProfileInput) (*registration.Session, error)
	SelectProduct(ctx context.Context, userID uuid.UUID, token string, in service.ProductInput) (*registration.Session, error)
	DeclareHealth(ctx context.Context, userID uuid.UUID, token string, d *health.Declaration) (*registration.Session, error)
	Underwrite(ctx context.Context, userID uuid.UUID, token string) (*underwriting.Decision, error)
	CompletePayment(ctx context.Context, userID uuid.UUID, token string, in service.PaymentInput) (*payment.Payment, error)
	IssuePolicy(ctx context.Context, userID uuid.UUID, token string) (*policy.Policy, error)
	Status(ctx context.Context, userID uuid.UUID, token string) (*service.StatusView, error)
}

// Handler wires registration endpoints to the workflow service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registration handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registration endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registration/start", h.HandleStart)
	r.Post("/registration/{token}/kyc", h.HandleKYC)
	r.Post("/registration/{token}/profile", h.HandleProfile)
	r.Post("/registration/{token}/product", h.HandleProduct)
	r.Post("/registration/{token}/health", h.HandleHealth)
	r.Post("/registration/{token}/underwrite", h.HandleUnderwrite)
	r.Post("/registration/{token}/payment", h.HandlePayment)
	r.Post("/registration/{token}/policy", h.HandlePolicy)
	r.Get("/registration/{token}/status", h.HandleStatus)
}

// authedUser extracts and parses the authenticated user, writing the error
// response itself on failure.
func (h *Handler) authedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := middleware.GetUserID(r.Context())
	userID, err := uuid.Parse(raw)
	if raw == "" || err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return uuid.Nil, false
	}
	return userID, true
}

// HandleStart handles POST /registration/start.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}

	session, err := h.service.Start(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "registration start failed",
			"request_id", middleware.GetRequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "registration started",
		"request_id", middleware.GetRequestID(ctx),
		"user_id", userID,
		"session_token", session.Token,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromSession(session))
}

// HandleKYC handles POST /registration/{token}/kyc.
func (h *Handler) HandleKYC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	req, ok := httputil.DecodeAndPrepare[KYCRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	session, err := h.service.VerifyKYC(ctx, userID, token, req.Input())
	if err != nil {
		h.stepFailed(ctx, "kyc", userID, token, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSession(session))
}

// HandleProfile handles POST /registration/{token}/profile.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	req, ok := httputil.DecodeAndPrepare[ProfileRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	session, err := h.service.CompleteProfile(ctx, userID, token, req.Input())
	if err != nil {
		h.stepFailed(ctx, "profile", userID, token, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSession(session))
}

// HandleProduct handles POST /registration/{token}/product.
func (h *Handler) HandleProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	req, ok := httputil.DecodeAndPrepare[ProductRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	session, err := h.service.SelectProduct(ctx, userID, token, req.Input())
	if err != nil {
		h.stepFailed(ctx, "product", userID, token, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSession(session))
}

// HandleHealth handles POST /registration/{token}/health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	req, ok := httputil.DecodeAndPrepare[HealthRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	session, err := h.service.DeclareHealth(ctx, userID, token, req.Declaration())
	if err != nil {
		h.stepFailed(ctx, "health", userID, token, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSession(session))
}

// HandleUnderwrite handles POST /registration/{token}/underwrite. No body:
// everything the engine needs is already on file.
func (h *Handler) HandleUnderwrite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")
	start := time.Now()

	decision, err := h.service.Underwrite(ctx, userID, token)
	if err != nil {
		h.stepFailed(ctx, "underwrite", userID, token, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "underwriting completed",
		"request_id", middleware.GetRequestID(ctx),
		"user_id", userID,
		"session_token", token,
		"status", decision.Status,
		"risk_score", decision.RiskScore,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}

// HandlePayment handles POST /registration/{token}/payment.
func (h *Handler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	req, ok := httputil.DecodeAndPrepare[PaymentRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	captured, err := h.service.CompletePayment(ctx, userID, token, service.PaymentInput{Method: req.Method})
	if err != nil {
		h.stepFailed(ctx, "payment", userID, token, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPayment(captured))
}

// HandlePolicy handles POST /registration/{token}/policy. Idempotent:
// repeating the call returns the already-issued policy.
func (h *Handler) HandlePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	issued, err := h.service.IssuePolicy(ctx, userID, token)
	if err != nil {
		h.stepFailed(ctx, "policy", userID, token, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "policy issued",
		"request_id", middleware.GetRequestID(ctx),
		"user_id", userID,
		"session_token", token,
		"policy_number", issued.Number,
	)
	httputil.WriteJSON(w, http.StatusOK, FromPolicy(issued))
}

// HandleStatus handles GET /registration/{token}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	view, err := h.service.Status(ctx, userID, token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatus(view))
}

func (h *Handler) stepFailed(ctx context.Context, step string, userID uuid.UUID, token string, err error) {
	h.logger.WarnContext(ctx, "registration step failed",
		"request_id", middleware.GetRequestID(ctx),
		"user_id", userID,
		"session_token", token,
		"step", step,
		"error", err,
	)
}
