package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/core/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RecurringRepository ---
type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) FindRecurringByID(ctx context.Context, userID string, recurringID string) (*domain.RecurringTransaction, error) {
	args := m.Called(ctx, userID, recurringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringRepository) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringRepository) SaveRecurring(ctx context.Context, rt domain.RecurringTransaction) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeleteRecurring(ctx context.Context, userID string, recurringID string) error {
	args := m.Called(ctx, userID, recurringID)
	return args.Error(0)
}

func (m *MockRecurringRepository) ApplyRollforward(ctx context.Context, materialized []domain.Transaction, updated []domain.RecurringTransaction) error {
	args := m.Called(ctx, materialized, updated)
	return args.Error(0)
}

// fixedClock returns a constant "now" so due-date arithmetic is deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// --- Test Suite ---
type RecurringServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRecurringRepository
	service  portssvc.RecurringSvcFacade
	now      time.Time
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRecurringRepository)
	suite.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewRecurringService(suite.mockRepo, fixedClock{now: suite.now})
}

func monthlyTemplate(userID string, nextDue time.Time, dayOfMonth int) domain.RecurringTransaction {
	return domain.RecurringTransaction{
		RecurringID: uuid.NewString(),
		UserID:      userID,
		Type:        domain.Expense,
		Amount:      decimal.NewFromInt(2500),
		Category:    "Rent",
		Description: "Hostel rent",
		Frequency:   domain.Monthly,
		StartDate:   nextDue,
		NextDueDate: nextDue,
		DayOfMonth:  &dayOfMonth,
	}
}

// --- Test Cases ---

func (suite *RecurringServiceTestSuite) TestCreateRecurring_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	dayOfMonth := 5
	req := dto.CreateRecurringRequest{
		Type:       "expense",
		Amount:     decimal.NewFromInt(2500),
		Category:   "Rent",
		Frequency:  "monthly",
		StartDate:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		DayOfMonth: &dayOfMonth,
	}

	suite.mockRepo.On("SaveRecurring", ctx, mock.MatchedBy(func(rt domain.RecurringTransaction) bool {
		return rt.UserID == userID && rt.NextDueDate.Equal(rt.StartDate) && rt.DayOfMonth != nil && *rt.DayOfMonth == 5
	})).Return(nil).Once()

	rt, err := suite.service.CreateRecurring(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(rt)
	suite.True(rt.NextDueDate.Equal(rt.StartDate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_MismatchedDayField() {
	ctx := context.Background()
	userID := uuid.NewString()
	dayOfWeek := 2
	req := dto.CreateRecurringRequest{
		Type:      "expense",
		Amount:    decimal.NewFromInt(100),
		Category:  "Transport",
		Frequency: "monthly",
		StartDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		DayOfWeek: &dayOfWeek,
	}

	rt, err := suite.service.CreateRecurring(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(rt)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRecurring", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestProcessDue_OverdueAdvancesOnePeriod() {
	// Template due 2024-01-05, processed on 2024-03-01: the materialized
	// entry is dated at the old due date and the template advances exactly
	// one month, not to the present.
	ctx := context.Background()
	userID := uuid.NewString()
	rt := monthlyTemplate(userID, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 5)

	suite.mockRepo.On("ListRecurring", ctx, userID).Return([]domain.RecurringTransaction{rt}, nil).Once()
	suite.mockRepo.On("ApplyRollforward", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.ProcessDue(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().Len(result.Materialized, 1)
	suite.Require().Len(result.Updated, 1)

	txn := result.Materialized[0]
	suite.True(txn.Date.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	suite.Equal("(Recurring) Hostel rent", txn.Description)
	suite.Equal(userID, txn.UserID)

	suite.True(result.Updated[0].NextDueDate.Equal(time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestProcessDue_NothingDue() {
	ctx := context.Background()
	userID := uuid.NewString()
	rt := monthlyTemplate(userID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 5)

	suite.mockRepo.On("ListRecurring", ctx, userID).Return([]domain.RecurringTransaction{rt}, nil).Once()

	result, err := suite.service.ProcessDue(ctx, userID)

	suite.Require().NoError(err)
	suite.Empty(result.Materialized)
	suite.Empty(result.Updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyRollforward", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestProcessDue_DueTodayFires() {
	ctx := context.Background()
	userID := uuid.NewString()
	rt := monthlyTemplate(userID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1)

	suite.mockRepo.On("ListRecurring", ctx, userID).Return([]domain.RecurringTransaction{rt}, nil).Once()
	suite.mockRepo.On("ApplyRollforward", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.ProcessDue(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().Len(result.Materialized, 1)
	suite.True(result.Updated[0].NextDueDate.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestProcessDue_IdempotentOnOwnOutput() {
	// Running the processor again over its own output on the same day
	// produces nothing: the advanced due dates are all in the future.
	ctx := context.Background()
	userID := uuid.NewString()
	rt := monthlyTemplate(userID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1)

	suite.mockRepo.On("ListRecurring", ctx, userID).Return([]domain.RecurringTransaction{rt}, nil).Once()
	suite.mockRepo.On("ApplyRollforward", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	first, err := suite.service.ProcessDue(ctx, userID)
	suite.Require().NoError(err)
	suite.Require().Len(first.Materialized, 1)
	suite.Require().Len(first.Updated, 1)

	suite.mockRepo.On("ListRecurring", ctx, userID).Return(first.Updated, nil).Once()

	second, err := suite.service.ProcessDue(ctx, userID)
	suite.Require().NoError(err)
	suite.Empty(second.Materialized)
	suite.Empty(second.Updated)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "ApplyRollforward", 1)
}

func (suite *RecurringServiceTestSuite) TestProcessDue_InvalidTemplateSkipped() {
	ctx := context.Background()
	userID := uuid.NewString()
	valid := monthlyTemplate(userID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 1)
	invalid := monthlyTemplate(userID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 1)
	invalid.DayOfMonth = nil // fails validation

	suite.mockRepo.On("ListRecurring", ctx, userID).Return([]domain.RecurringTransaction{invalid, valid}, nil).Once()
	suite.mockRepo.On("ApplyRollforward", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 1
	}), mock.MatchedBy(func(updated []domain.RecurringTransaction) bool {
		return len(updated) == 1 && updated[0].RecurringID == valid.RecurringID
	})).Return(nil).Once()

	result, err := suite.service.ProcessDue(ctx, userID)

	suite.Require().NoError(err)
	suite.Len(result.Materialized, 1)
	suite.Equal([]string{invalid.RecurringID}, result.SkippedInvalid)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestProcessDue_CommitErrorPropagates() {
	ctx := context.Background()
	userID := uuid.NewString()
	rt := monthlyTemplate(userID, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 5)
	expectedErr := assert.AnError

	suite.mockRepo.On("ListRecurring", ctx, userID).Return([]domain.RecurringTransaction{rt}, nil).Once()
	suite.mockRepo.On("ApplyRollforward", ctx, mock.Anything, mock.Anything).Return(expectedErr).Once()

	result, err := suite.service.ProcessDue(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
