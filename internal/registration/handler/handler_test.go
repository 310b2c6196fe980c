package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"covergate/internal/domain"
	"covergate/internal/health"
	"covergate/internal/platform/middleware"
	"covergate/internal/policy"
	"covergate/internal/registration"
	"covergate/internal/registration/handler/mocks"
	"covergate/internal/registration/service"
	"covergate/internal/underwriting"
	dErrors "covergate/pkg/domain-errors"
)

type RegistrationHandlerSuite struct {
	suite.Suite
	userID uuid.UUID
}

func (s *RegistrationHandlerSuite) SetupSuite() {
	s.userID = uuid.New()
}

func TestRegistrationHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistrationHandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger).Register(r)
	return r, mockService
}

// do runs a request through the router with the authenticated user injected.
func (s *RegistrationHandlerSuite) do(r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUserID, s.userID.String())
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (s *RegistrationHandlerSuite) session(token string) *registration.Session {
	return &registration.Session{
		Token:          token,
		UserID:         s.userID,
		CurrentStep:    registration.StepAccountCreated,
		Status:         registration.StatusInProgress,
		AccountCreated: true,
	}
}

func (s *RegistrationHandlerSuite) TestStart() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().Start(gomock.Any(), s.userID).Return(s.session("reg_abc"), nil)

	w := s.do(r, http.MethodPost, "/registration/start", nil)

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp SessionResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "reg_abc", resp.Token)
	assert.Equal(s.T(), "account_created", resp.CurrentStep)
	assert.True(s.T(), resp.Steps.AccountCreated)
	assert.Equal(s.T(), 12, resp.PercentComplete)
}

func (s *RegistrationHandlerSuite) TestStartUnauthenticated() {
	r, _ := newTestRouter(s.T())

	req := httptest.NewRequest(http.MethodPost, "/registration/start", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *RegistrationHandlerSuite) TestKYCPassesParsedInput() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().VerifyKYC(gomock.Any(), s.userID, "reg_abc", service.KYCInput{
		DocumentType:   "passport",
		DocumentNumber: "P1234567",
		SelfieRef:      "selfie-1",
	}).Return(s.session("reg_abc"), nil)

	w := s.do(r, http.MethodPost, "/registration/reg_abc/kyc", KYCRequest{
		DocumentType:   "passport",
		DocumentNumber: "P1234567",
		SelfieRef:      "selfie-1",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RegistrationHandlerSuite) TestKYCMissingDocumentIsBadRequest() {
	r, _ := newTestRouter(s.T())

	w := s.do(r, http.MethodPost, "/registration/reg_abc/kyc", KYCRequest{DocumentType: "passport"})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(s.T(), "bad_request", body["error"])
}

func (s *RegistrationHandlerSuite) TestProfileParsesDomainTypes() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().CompleteProfile(gomock.Any(), s.userID, "reg_abc", service.ProfileInput{
		DateOfBirth:    time.Date(1996, 3, 10, 0, 0, 0, 0, time.UTC),
		Gender:         domain.GenderFemale,
		Occupation:     "accountant",
		OccupationRisk: domain.OccupationLowRisk,
	}).Return(s.session("reg_abc"), nil)

	w := s.do(r, http.MethodPost, "/registration/reg_abc/profile", ProfileRequest{
		DateOfBirth:    "1996-03-10",
		Gender:         "female",
		Occupation:     "accountant",
		OccupationRisk: "low",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RegistrationHandlerSuite) TestProfileRejectsBadEnum() {
	r, _ := newTestRouter(s.T())

	w := s.do(r, http.MethodPost, "/registration/reg_abc/profile", ProfileRequest{
		DateOfBirth:    "1996-03-10",
		Gender:         "other",
		Occupation:     "accountant",
		OccupationRisk: "low",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *RegistrationHandlerSuite) TestPreconditionFailureMaps412() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().SelectProduct(gomock.Any(), s.userID, "reg_abc", gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodePreconditionFailed, "Profile must be completed first"))

	w := s.do(r, http.MethodPost, "/registration/reg_abc/product", ProductRequest{
		PlanID:           uuid.NewString(),
		CoverageAmount:   decimal.NewFromInt(500_000),
		PaymentFrequency: "monthly",
	})

	assert.Equal(s.T(), http.StatusPreconditionFailed, w.Code)
	var body map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(s.T(), "precondition_failed", body["error"])
	assert.Equal(s.T(), "Profile must be completed first", body["error_description"])
}

func (s *RegistrationHandlerSuite) TestHealthLegacySmokerFlagMapsToEnum() {
	r, mockService := newTestRouter(s.T())
	smoker := true

	mockService.EXPECT().DeclareHealth(gomock.Any(), s.userID, "reg_abc", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, d *health.Declaration) (*registration.Session, error) {
			assert.True(s.T(), d.IsSmoker(), "legacy is_smoker=true must map to current")
			return s.session("reg_abc"), nil
		})

	w := s.do(r, http.MethodPost, "/registration/reg_abc/health", HealthRequest{
		HeightCM:    decimal.NewFromInt(175),
		WeightKG:    decimal.NewFromInt(70),
		IsSmoker:    &smoker,
		PacksPerDay: 2,
		Alcohol:     "never",
		Exercise:    "moderate",
		Sleep:       "good",
		Stress:      "low",
		Diet:        "good",
		Consent:     true,
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RegistrationHandlerSuite) TestUnderwriteReturnsRejectionAsPayload() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().Underwrite(gomock.Any(), s.userID, "reg_abc").Return(&underwriting.Decision{
		Status:          domain.DecisionRejected,
		RiskScore:       70,
		RiskTier:        domain.TierVeryHigh,
		OriginalPremium: decimal.NewFromInt(120),
		RejectionReason: "Application declined based on underwriting assessment",
	}, nil)

	w := s.do(r, http.MethodPost, "/registration/reg_abc/underwrite", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code, "a rejection is a 200, not an error")
	var resp DecisionResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "rejected", resp.Status)
	assert.Equal(s.T(), 70, resp.RiskScore)
	assert.Nil(s.T(), resp.AdjustedPremium)
	assert.NotEmpty(s.T(), resp.RejectionReason)
}

func (s *RegistrationHandlerSuite) TestPaymentRejectsUnknownMethod() {
	r, _ := newTestRouter(s.T())

	w := s.do(r, http.MethodPost, "/registration/reg_abc/payment", PaymentRequest{Method: "cheque"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *RegistrationHandlerSuite) TestPolicyIssuance() {
	r, mockService := newTestRouter(s.T())
	issued := &policy.Policy{
		ID:        uuid.New(),
		Number:    "POL-20260314-9F3A2C01",
		PlanID:    uuid.New(),
		Coverage:  decimal.NewFromInt(500_000),
		Premium:   decimal.RequireFromString("120.00"),
		Frequency: domain.FrequencyMonthly,
		Status:    policy.StatusActive,
	}
	mockService.EXPECT().IssuePolicy(gomock.Any(), s.userID, "reg_abc").Return(issued, nil)

	w := s.do(r, http.MethodPost, "/registration/reg_abc/policy", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp PolicyResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "POL-20260314-9F3A2C01", resp.PolicyNumber)
	assert.Equal(s.T(), "active", resp.Status)
}

func (s *RegistrationHandlerSuite) TestStatus() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().Status(gomock.Any(), s.userID, "reg_abc").Return(&service.StatusView{
		Token:           "reg_abc",
		CurrentStep:     registration.StepProductSelected,
		Status:          registration.StatusInProgress,
		PercentComplete: 50,
		NextAction:      "Submit your health declaration",
		Flags:           []bool{true, true, true, true, false, false, false, false},
	}, nil)

	w := s.do(r, http.MethodGet, "/registration/reg_abc/status", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp SessionResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), 50, resp.PercentComplete)
	assert.Equal(s.T(), "Submit your health declaration", resp.NextAction)
	assert.True(s.T(), resp.Steps.ProductSelected)
	assert.False(s.T(), resp.Steps.HealthDeclared)
}

func (s *RegistrationHandlerSuite) TestForbiddenSessionMaps403() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().Status(gomock.Any(), s.userID, "reg_other").
		Return(nil, dErrors.New(dErrors.CodeForbidden, "session does not belong to the authenticated user"))

	w := s.do(r, http.MethodGet, "/registration/reg_other/status", nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}
