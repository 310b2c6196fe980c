package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"covergate/internal/audit"
	"covergate/internal/identity"
	"covergate/internal/notification"
	"covergate/internal/payment"
	"covergate/internal/policy"
	"covergate/internal/registration"
	"covergate/internal/underwriting"
	dErrors "covergate/pkg/domain-errors"
	"covergate/pkg/platform/sentinel"
)

// Underwrite scores the declaration and records the decision. Outcome drives
// the session:
//
//	auto_approved       → flag set, workflow continues
//	requires_review     → session parked, flag NOT set
//	requires_documents  → session parked, flag NOT set
//	rejected            → session goes terminal with the reason
//
// A rejection is a successful call: the decision is the payload.
func (s *Service) Underwrite(ctx context.Context, userID uuid.UUID, token string) (*underwriting.Decision, error) {
	var (
		decision *underwriting.Decision
		rejected bool
	)
	err := s.step(ctx, "registration.underwrite", userID, token, func(ctx context.Context, session *registration.Session) error {
		if err := ensureActive(session); err != nil {
			return err
		}
		if err := require(session.HealthDeclared, "Health declaration must be submitted first"); err != nil {
			return err
		}
		if _, err := s.deps.Decisions.FindBySession(ctx, token); err == nil {
			return dErrors.New(dErrors.CodeConflict, "underwriting has already been performed")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "decision lookup failed")
		}

		declaration, err := s.deps.Declarations.FindBySession(ctx, token)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "health declaration lookup failed")
		}
		if session.PlanID == nil || session.Coverage == nil {
			return dErrors.New(dErrors.CodePreconditionFailed, "Product must be selected first")
		}
		ratedPlan, err := s.deps.Plans.FindByID(ctx, *session.PlanID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "plan lookup failed")
		}

		now := s.now()
		decision = s.deps.Engine.Decide(ratedPlan, underwriting.Selection{
			PlanID:    *session.PlanID,
			Coverage:  *session.Coverage,
			Frequency: session.Frequency,
		}, declaration, underwriting.Applicant{
			Age:    session.Age(now),
			Gender: session.Gender,
		}, now)

		if err := s.deps.Decisions.Save(ctx, decision); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "underwriting has already been performed")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save decision")
		}

		action := audit.ActionDecisionMade
		reason := decision.RejectionReason
		switch {
		case decision.IsRejected():
			rejected = true
			session.Status = registration.StatusRejected
			session.RejectionReason = decision.RejectionReason
			if err := s.persistStep(ctx, session, registration.StepUnderwritingRejected); err != nil {
				return err
			}
			action = audit.ActionRegistrationReject
		case decision.Status.IsApproved():
			session.UnderwritingApproved = true
			if err := s.persistStep(ctx, session, registration.StepUnderwritingApproved); err != nil {
				return err
			}
		default:
			// Review or documents: keep the flag down so payment stays blocked.
			if err := s.persistStep(ctx, session, registration.StepUnderwritingPending); err != nil {
				return err
			}
		}
		return s.emitAudit(ctx, session, action, string(decision.Status), reason)
	})
	if err != nil {
		return nil, s.fail(registration.StepUnderwritingApproved, err)
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.Decisions.WithLabelValues(string(decision.Status)).Inc()
	}
	eventType := notification.TypeUnderwritingCompleted
	if rejected {
		eventType = notification.TypeRegistrationRejected
	}
	s.notify(ctx, notification.Event{
		Type:         eventType,
		UserID:       userID.String(),
		SessionToken: token,
		OccurredAt:   s.now(),
	})
	return decision, nil
}

// PaymentInput names the payment method. The amount is never client-supplied;
// it always comes from the approved decision.
type PaymentInput struct {
	Method string
}

// CompletePayment captures the first premium at the decision's adjusted
// premium.
func (s *Service) CompletePayment(ctx context.Context, userID uuid.UUID, token string, in PaymentInput) (*payment.Payment, error) {
	var captured *payment.Payment
	err := s.step(ctx, "registration.payment", userID, token, func(ctx context.Context, session *registration.Session) error {
		if err := ensureActive(session); err != nil {
			return err
		}
		if err := require(session.UnderwritingApproved, "Underwriting must be approved first"); err != nil {
			return err
		}

		decision, err := s.deps.Decisions.FindBySession(ctx, token)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "decision lookup failed")
		}
		if decision.AdjustedPremium == nil {
			return dErrors.New(dErrors.CodeInternal, "approved decision has no premium")
		}

		captured = &payment.Payment{
			ID:           uuid.New(),
			SessionToken: session.Token,
			Reference:    payment.NewReference(),
			Amount:       *decision.AdjustedPremium,
			Frequency:    session.Frequency,
			Method:       in.Method,
			CapturedAt:   s.now(),
		}
		if err := s.deps.Payments.Save(ctx, captured); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "payment already captured")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save payment")
		}

		session.PaymentCompleted = true
		if err := s.persistStep(ctx, session, registration.StepPaymentCompleted); err != nil {
			return err
		}
		return s.emitAudit(ctx, session, audit.ActionStepCompleted, string(registration.StepPaymentCompleted), "")
	})
	if err != nil {
		return nil, s.fail(registration.StepPaymentCompleted, err)
	}
	return captured, nil
}

// IssuePolicy materializes the policy from the approved decision and
// completes the session. Idempotent: repeating the call returns the policy
// already issued for this session.
func (s *Service) IssuePolicy(ctx context.Context, userID uuid.UUID, token string) (*policy.Policy, error) {
	var (
		issued *policy.Policy
		replay bool
	)
	err := s.step(ctx, "registration.policy", userID, token, func(ctx context.Context, session *registration.Session) error {
		if session.PolicyIssued {
			existing, err := s.deps.Policies.FindBySession(ctx, token)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "policy lookup failed")
			}
			issued = existing
			replay = true
			return nil
		}
		if err := ensureActive(session); err != nil {
			return err
		}
		if err := require(session.PaymentCompleted, "Payment must be completed first"); err != nil {
			return err
		}

		decision, err := s.deps.Decisions.FindBySession(ctx, token)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "decision lookup failed")
		}
		if decision.AdjustedPremium == nil || decision.ApprovedCoverage == nil {
			return dErrors.New(dErrors.CodeInternal, "approved decision is incomplete")
		}

		now := s.now()
		issued = &policy.Policy{
			ID:           uuid.New(),
			Number:       policy.NewNumber(now),
			SessionToken: session.Token,
			UserID:       session.UserID,
			PlanID:       *session.PlanID,
			Coverage:     *decision.ApprovedCoverage,
			Premium:      *decision.AdjustedPremium,
			Frequency:    session.Frequency,
			Status:       policy.StatusActive,
			StartDate:    now,
			EndDate:      now.AddDate(session.TermYears, 0, 0),
			IssuedAt:     now,
		}
		if err := s.deps.Policies.Save(ctx, issued); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save policy")
		}

		policyID := issued.ID
		session.PolicyID = &policyID
		session.PolicyIssued = true
		session.Status = registration.StatusCompleted
		if err := s.persistStep(ctx, session, registration.StepPolicyIssued); err != nil {
			return err
		}

		// Role grant lives outside this store's transaction; a failure here
		// must not unwind an issued policy.
		if err := s.deps.Users.AddRole(ctx, session.UserID, identity.RolePolicyholder); err != nil && s.deps.Logger != nil {
			s.deps.Logger.Warn("policyholder role grant failed",
				"user_id", session.UserID.String(), "error", err)
		}

		return s.emitAudit(ctx, session, audit.ActionPolicyIssued, issued.Number, "")
	})
	if err != nil {
		return nil, s.fail(registration.StepPolicyIssued, err)
	}
	if replay {
		return issued, nil
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.PoliciesIssued.Inc()
	}
	s.notify(ctx, notification.Event{
		Type:         notification.TypePolicyIssued,
		UserID:       userID.String(),
		SessionToken: token,
		PolicyNumber: issued.Number,
		OccurredAt:   s.now(),
	})
	return issued, nil
}
