// Package service orchestrates the registration workflow. Every step runs
// under a per-token lock and a unit of work, verifies the immediately
// preceding flag, persists its own entity, and flips exactly one flag plus
// the current-step marker.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"covergate/internal/audit"
	"covergate/internal/health"
	"covergate/internal/identity"
	"covergate/internal/kyc"
	"covergate/internal/notification"
	"covergate/internal/payment"
	"covergate/internal/plan"
	"covergate/internal/platform/metrics"
	"covergate/internal/policy"
	"covergate/internal/registration"
	"covergate/internal/underwriting"
	dErrors "covergate/pkg/domain-errors"
	"covergate/pkg/platform/sentinel"
)

// Notifier sends fire-and-forget notifications. Delivery failures never fail
// a step.
type Notifier interface {
	Notify(ctx context.Context, event notification.Event)
}

// Auditor records compliance events. Emit failures fail the step (fail-closed).
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Deps wires the service's collaborators.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	Sessions     registration.Store
	Plans        plan.Store
	Declarations health.Store
	Decisions    underwriting.Store
	Payments     payment.Store
	Policies     policy.Store
	Users        identity.Store

	Verifier kyc.Verifier
	Engine   *underwriting.Engine

	Notifier Notifier
	Auditor  Auditor

	SessionTx  SessionTx
	UnitOfWork UnitOfWork
}

// Service is the registration state machine.
type Service struct {
	deps   Deps
	tracer trace.Tracer
	now    func() time.Time
}

func New(deps Deps) (*Service, error) {
	switch {
	case deps.Sessions == nil:
		return nil, errors.New("session store is required")
	case deps.Plans == nil:
		return nil, errors.New("plan store is required")
	case deps.Declarations == nil:
		return nil, errors.New("health declaration store is required")
	case deps.Decisions == nil:
		return nil, errors.New("decision store is required")
	case deps.Payments == nil:
		return nil, errors.New("payment store is required")
	case deps.Policies == nil:
		return nil, errors.New("policy store is required")
	case deps.Users == nil:
		return nil, errors.New("user store is required")
	case deps.Verifier == nil:
		return nil, errors.New("kyc verifier is required")
	case deps.Engine == nil:
		return nil, errors.New("underwriting engine is required")
	case deps.SessionTx == nil:
		return nil, errors.New("session tx is required")
	case deps.UnitOfWork == nil:
		return nil, errors.New("unit of work is required")
	}
	return &Service{
		deps:   deps,
		tracer: otel.Tracer("covergate/registration"),
		now:    time.Now,
	}, nil
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Start creates a new registration session for the user. The account flag is
// set immediately: reaching this endpoint means the account exists.
func (s *Service) Start(ctx context.Context, userID uuid.UUID) (*registration.Session, error) {
	ctx, span := s.tracer.Start(ctx, "registration.start")
	defer span.End()

	if _, err := s.deps.Users.FindUser(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "user lookup failed")
	}

	now := s.now()
	session := &registration.Session{
		Token:          registration.NewToken(),
		UserID:         userID,
		CurrentStep:    registration.StepAccountCreated,
		Status:         registration.StatusInProgress,
		AccountCreated: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.deps.UnitOfWork.Run(ctx, func(ctx context.Context) error {
		if err := s.deps.Sessions.Create(ctx, session); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
		}
		return s.emitAudit(ctx, session, audit.ActionRegistrationStarted, "", "")
	})
	if err != nil {
		return nil, err
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.RegistrationsStarted.Inc()
	}
	return session, nil
}

// StatusView is the pure status read.
type StatusView struct {
	Token           string
	UserID          uuid.UUID
	CurrentStep     registration.Step
	Status          registration.Status
	PercentComplete int
	NextAction      string
	Flags           []bool
	RejectionReason string
	PolicyID        *uuid.UUID
}

// Status reads progress without taking the session lock: it mutates nothing.
func (s *Service) Status(ctx context.Context, userID uuid.UUID, token string) (*StatusView, error) {
	session, err := s.loadOwned(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	return &StatusView{
		Token:           session.Token,
		UserID:          session.UserID,
		CurrentStep:     session.CurrentStep,
		Status:          session.Status,
		PercentComplete: session.PercentComplete(),
		NextAction:      session.NextAction(),
		Flags:           session.Flags(),
		RejectionReason: session.RejectionReason,
		PolicyID:        session.PolicyID,
	}, nil
}

// step is the shared harness: trace span, per-token serialization, unit of
// work, ownership check. fn receives the freshly loaded session and must
// persist its own changes.
func (s *Service) step(ctx context.Context, spanName string, userID uuid.UUID, token string, fn func(ctx context.Context, session *registration.Session) error) error {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	return s.deps.SessionTx.RunInSession(ctx, token, func(ctx context.Context) error {
		return s.deps.UnitOfWork.Run(ctx, func(ctx context.Context) error {
			session, err := s.loadOwned(ctx, userID, token)
			if err != nil {
				return err
			}
			return fn(ctx, session)
		})
	})
}

func (s *Service) loadOwned(ctx context.Context, userID uuid.UUID, token string) (*registration.Session, error) {
	session, err := s.deps.Sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "session lookup failed")
	}
	if session.UserID != userID {
		return nil, dErrors.New(dErrors.CodeForbidden, "session does not belong to the authenticated user")
	}
	return session, nil
}

// ensureActive rejects steps against terminal sessions.
func ensureActive(session *registration.Session) error {
	switch session.Status {
	case registration.StatusRejected:
		return dErrors.New(dErrors.CodePreconditionFailed, "registration has been rejected")
	case registration.StatusCompleted:
		return dErrors.New(dErrors.CodePreconditionFailed, "registration is already completed")
	}
	return nil
}

// require enforces the immediately preceding flag, naming the missing step.
func require(done bool, message string) error {
	if !done {
		return dErrors.New(dErrors.CodePreconditionFailed, message)
	}
	return nil
}

func (s *Service) persistStep(ctx context.Context, session *registration.Session, step registration.Step) error {
	session.CurrentStep = step
	session.UpdatedAt = s.now()
	if err := s.deps.Sessions.Update(ctx, session); err != nil {
		if errors.Is(err, sentinel.ErrImmutable) {
			return dErrors.New(dErrors.CodePreconditionFailed, "registration is no longer in progress")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update session")
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.StepsCompleted.WithLabelValues(string(step)).Inc()
	}
	return nil
}

func (s *Service) emitAudit(ctx context.Context, session *registration.Session, action, decision, reason string) error {
	if s.deps.Auditor == nil {
		return nil
	}
	err := s.deps.Auditor.Emit(ctx, audit.Event{
		Timestamp:    s.now(),
		UserID:       session.UserID.String(),
		SessionToken: session.Token,
		Action:       action,
		Decision:     decision,
		Reason:       reason,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "audit write failed")
	}
	return nil
}
