package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"covergate/internal/audit"
	"covergate/internal/domain"
	"covergate/internal/health"
	"covergate/internal/kyc"
	"covergate/internal/notification"
	"covergate/internal/registration"
	dErrors "covergate/pkg/domain-errors"
	"covergate/pkg/platform/sentinel"
)

// KYCInput carries the identity document references for verification.
type KYCInput struct {
	DocumentType   string
	DocumentNumber string
	SelfieRef      string
}

// VerifyKYC runs identity verification and flips the KYC flag.
func (s *Service) VerifyKYC(ctx context.Context, userID uuid.UUID, token string, in KYCInput) (*registration.Session, error) {
	if in.DocumentType == "" || in.DocumentNumber == "" {
		return nil, s.fail(registration.StepKYCCompleted, dErrors.New(dErrors.CodeBadRequest, "document type and number are required"))
	}

	var result *registration.Session
	err := s.step(ctx, "registration.kyc", userID, token, func(ctx context.Context, session *registration.Session) error {
		if err := ensureActive(session); err != nil {
			return err
		}
		if session.KYCCompleted {
			return dErrors.New(dErrors.CodeConflict, "KYC is already completed")
		}
		if err := require(session.AccountCreated, "Account must be created first"); err != nil {
			return err
		}

		verdict, err := s.deps.Verifier.Verify(ctx, kyc.Request{
			UserID:         userID.String(),
			DocumentType:   in.DocumentType,
			DocumentNumber: in.DocumentNumber,
			SelfieRef:      in.SelfieRef,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "identity verification unavailable")
		}
		if verdict.Status != kyc.StatusApproved {
			return dErrors.New(dErrors.CodeBadRequest, "identity verification failed")
		}

		session.KYCCompleted = true
		if err := s.persistStep(ctx, session, registration.StepKYCCompleted); err != nil {
			return err
		}
		if err := s.emitAudit(ctx, session, audit.ActionStepCompleted, string(registration.StepKYCCompleted), ""); err != nil {
			return err
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, s.fail(registration.StepKYCCompleted, err)
	}

	s.notify(ctx, notification.Event{
		Type:         notification.TypeKYCVerified,
		UserID:       userID.String(),
		SessionToken: token,
		OccurredAt:   s.now(),
	})
	return result, nil
}

// ProfileInput carries the applicant's rating profile. The handler has already
// parsed the enum fields.
type ProfileInput struct {
	DateOfBirth    time.Time
	Gender         domain.Gender
	Occupation     string
	OccupationRisk domain.OccupationRisk
}

// CompleteProfile records the applicant's profile.
func (s *Service) CompleteProfile(ctx context.Context, userID uuid.UUID, token string, in ProfileInput) (*registration.Session, error) {
	var result *registration.Session
	err := s.step(ctx, "registration.profile", userID, token, func(ctx context.Context, session *registration.Session) error {
		if err := ensureActive(session); err != nil {
			return err
		}
		if err := require(session.KYCCompleted, "KYC must be completed first"); err != nil {
			return err
		}

		now := s.now()
		if in.DateOfBirth.IsZero() || in.DateOfBirth.After(now) {
			return dErrors.New(dErrors.CodeBadRequest, "date of birth is invalid")
		}
		if in.Occupation == "" {
			return dErrors.New(dErrors.CodeBadRequest, "occupation is required")
		}
		session.DateOfBirth = in.DateOfBirth
		if session.Age(now) < 18 {
			return dErrors.New(dErrors.CodeBadRequest, "applicant must be at least 18 years old")
		}

		session.Gender = in.Gender
		session.Occupation = in.Occupation
		session.OccupationRisk = in.OccupationRisk
		session.ProfileCompleted = true
		if err := s.persistStep(ctx, session, registration.StepProfileCompleted); err != nil {
			return err
		}
		if err := s.emitAudit(ctx, session, audit.ActionStepCompleted, string(registration.StepProfileCompleted), ""); err != nil {
			return err
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, s.fail(registration.StepProfileCompleted, err)
	}
	return result, nil
}

// ProductInput is the applicant's plan selection.
type ProductInput struct {
	PlanID    uuid.UUID
	Coverage  decimal.Decimal
	Frequency domain.PaymentFrequency
}

// SelectProduct validates the selection against the plan's rate card and
// records it on the session.
func (s *Service) SelectProduct(ctx context.Context, userID uuid.UUID, token string, in ProductInput) (*registration.Session, error) {
	var result *registration.Session
	err := s.step(ctx, "registration.product", userID, token, func(ctx context.Context, session *registration.Session) error {
		if err := ensureActive(session); err != nil {
			return err
		}
		if err := require(session.ProfileCompleted, "Profile must be completed first"); err != nil {
			return err
		}

		selected, err := s.deps.Plans.FindByID(ctx, in.PlanID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "plan not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "plan lookup failed")
		}

		if age := session.Age(s.now()); !selected.InsurableAge(age) {
			return dErrors.New(dErrors.CodeBadRequest, "applicant age is outside the plan's insurable range")
		}
		if in.Coverage.LessThan(selected.CoverageMin) || in.Coverage.GreaterThan(selected.CoverageMax) {
			return dErrors.New(dErrors.CodeBadRequest, "coverage amount is outside the plan's limits")
		}

		planID := selected.ID
		coverage := in.Coverage
		session.PlanID = &planID
		session.Coverage = &coverage
		session.TermYears = selected.TermYears
		session.Frequency = in.Frequency
		session.ProductSelected = true
		if err := s.persistStep(ctx, session, registration.StepProductSelected); err != nil {
			return err
		}
		if err := s.emitAudit(ctx, session, audit.ActionStepCompleted, string(registration.StepProductSelected), ""); err != nil {
			return err
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, s.fail(registration.StepProductSelected, err)
	}
	return result, nil
}

// DeclareHealth validates and persists the health declaration. The
// declaration is create-only; a second submission conflicts.
func (s *Service) DeclareHealth(ctx context.Context, userID uuid.UUID, token string, d *health.Declaration) (*registration.Session, error) {
	var result *registration.Session
	err := s.step(ctx, "registration.health", userID, token, func(ctx context.Context, session *registration.Session) error {
		if err := ensureActive(session); err != nil {
			return err
		}
		if err := require(session.ProductSelected, "Product must be selected first"); err != nil {
			return err
		}

		d.ID = uuid.New()
		d.SessionToken = session.Token
		d.OccupationRisk = session.OccupationRisk
		d.DeclaredAt = s.now()
		if err := d.Validate(); err != nil {
			return err
		}

		if err := s.deps.Declarations.Save(ctx, d); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "health declaration already submitted")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save health declaration")
		}

		session.HealthDeclared = true
		if err := s.persistStep(ctx, session, registration.StepHealthDeclared); err != nil {
			return err
		}
		if err := s.emitAudit(ctx, session, audit.ActionStepCompleted, string(registration.StepHealthDeclared), ""); err != nil {
			return err
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, s.fail(registration.StepHealthDeclared, err)
	}
	return result, nil
}

// fail records the step failure metric and passes the error through.
func (s *Service) fail(step registration.Step, err error) error {
	if s.deps.Metrics != nil {
		s.deps.Metrics.StepFailures.WithLabelValues(string(step), string(dErrors.CodeOf(err))).Inc()
	}
	if s.deps.Logger != nil {
		s.deps.Logger.Warn("registration step failed", "step", string(step), "error", err)
	}
	return err
}

// notify hands an event to the notifier if one is wired.
func (s *Service) notify(ctx context.Context, event notification.Event) {
	if s.deps.Notifier == nil {
		return
	}
	s.deps.Notifier.Notify(ctx, event)
}
