//go:build integration

package registration_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"covergate/internal/domain"
	"covergate/internal/registration"
	"covergate/internal/registration/service"
	"covergate/pkg/platform/sentinel"
	"covergate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *registration.PostgresStore
	uow   *service.SQLUnitOfWork
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	db := containers.StartPostgres(t)
	s := &PostgresStoreSuite{
		store: registration.NewPostgres(db),
		uow:   service.NewSQLUnitOfWork(db),
		ctx:   context.Background(),
	}
	suite.Run(t, s)
}

func (s *PostgresStoreSuite) newSession() *registration.Session {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &registration.Session{
		Token:          registration.NewToken(),
		UserID:         uuid.New(),
		CurrentStep:    registration.StepAccountCreated,
		Status:         registration.StatusInProgress,
		AccountCreated: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	session := s.newSession()
	require.NoError(s.T(), s.store.Create(s.ctx, session))

	found, err := s.store.FindByToken(s.ctx, session.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), session.Token, found.Token)
	assert.Equal(s.T(), session.UserID, found.UserID)
	assert.True(s.T(), found.AccountCreated)
	assert.Nil(s.T(), found.Coverage)
	assert.Nil(s.T(), found.PlanID)
}

func (s *PostgresStoreSuite) TestUpdatePersistsProductSelection() {
	session := s.newSession()
	require.NoError(s.T(), s.store.Create(s.ctx, session))

	planID := uuid.New()
	coverage := decimal.NewFromInt(500_000)
	session.KYCCompleted = true
	session.ProfileCompleted = true
	session.ProductSelected = true
	session.CurrentStep = registration.StepProductSelected
	session.DateOfBirth = time.Date(1996, 3, 10, 0, 0, 0, 0, time.UTC)
	session.Gender = domain.GenderFemale
	session.Occupation = "accountant"
	session.OccupationRisk = domain.OccupationLowRisk
	session.PlanID = &planID
	session.Coverage = &coverage
	session.TermYears = 20
	session.Frequency = domain.FrequencyMonthly
	session.UpdatedAt = time.Now().UTC()
	require.NoError(s.T(), s.store.Update(s.ctx, session))

	found, err := s.store.FindByToken(s.ctx, session.Token)
	require.NoError(s.T(), err)
	assert.True(s.T(), found.FlagsOrdered())
	assert.Equal(s.T(), registration.StepProductSelected, found.CurrentStep)
	require.NotNil(s.T(), found.PlanID)
	assert.Equal(s.T(), planID, *found.PlanID)
	require.NotNil(s.T(), found.Coverage)
	assert.True(s.T(), coverage.Equal(*found.Coverage))
	assert.Equal(s.T(), domain.GenderFemale, found.Gender)
}

func (s *PostgresStoreSuite) TestCreateDuplicateTokenConflicts() {
	session := s.newSession()
	require.NoError(s.T(), s.store.Create(s.ctx, session))

	err := s.store.Create(s.ctx, session)
	assert.ErrorIs(s.T(), err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestFindUnknownToken() {
	_, err := s.store.FindByToken(s.ctx, "reg_missing")
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdateUnknownToken() {
	session := s.newSession()
	err := s.store.Update(s.ctx, session)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestTerminalSessionIsImmutable() {
	session := s.newSession()
	require.NoError(s.T(), s.store.Create(s.ctx, session))

	session.Status = registration.StatusRejected
	session.RejectionReason = "Application declined based on underwriting assessment"
	session.UpdatedAt = time.Now().UTC()
	require.NoError(s.T(), s.store.Update(s.ctx, session))

	session.Occupation = "pilot"
	err := s.store.Update(s.ctx, session)
	assert.ErrorIs(s.T(), err, sentinel.ErrImmutable)

	found, findErr := s.store.FindByToken(s.ctx, session.Token)
	require.NoError(s.T(), findErr)
	assert.Equal(s.T(), registration.StatusRejected, found.Status)
	assert.Empty(s.T(), found.Occupation)
}

func (s *PostgresStoreSuite) TestReadsInsideUnitOfWorkTakeRowLock() {
	session := s.newSession()
	require.NoError(s.T(), s.store.Create(s.ctx, session))

	err := s.uow.Run(s.ctx, func(ctx context.Context) error {
		locked, err := s.store.FindByToken(ctx, session.Token)
		if err != nil {
			return err
		}
		locked.KYCCompleted = true
		locked.CurrentStep = registration.StepKYCCompleted
		locked.UpdatedAt = time.Now().UTC()
		return s.store.Update(ctx, locked)
	})
	require.NoError(s.T(), err)

	found, err := s.store.FindByToken(s.ctx, session.Token)
	require.NoError(s.T(), err)
	assert.True(s.T(), found.KYCCompleted)
}

func (s *PostgresStoreSuite) TestUnitOfWorkRollsBackOnError() {
	session := s.newSession()
	require.NoError(s.T(), s.store.Create(s.ctx, session))

	err := s.uow.Run(s.ctx, func(ctx context.Context) error {
		locked, err := s.store.FindByToken(ctx, session.Token)
		if err != nil {
			return err
		}
		locked.KYCCompleted = true
		locked.UpdatedAt = time.Now().UTC()
		if err := s.store.Update(ctx, locked); err != nil {
			return err
		}
		return context.Canceled
	})
	require.Error(s.T(), err)

	found, err := s.store.FindByToken(s.ctx, session.Token)
	require.NoError(s.T(), err)
	assert.False(s.T(), found.KYCCompleted, "rolled back step must leave no trace")
}
