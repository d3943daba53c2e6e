package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BudgetReaderSvc ---
type MockBudgetReader struct {
	mock.Mock
}

func (m *MockBudgetReader) ListBudgetStatuses(ctx context.Context, userID string) ([]domain.BudgetStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetStatus), args.Error(1)
}

// --- Mock SavingsGoalReader ---
type MockSavingsGoalReader struct {
	mock.Mock
}

func (m *MockSavingsGoalReader) FindGoalByID(ctx context.Context, userID string, goalID string) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalReader) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoal), args.Error(1)
}

// --- Mock LoanReader ---
type MockLoanReader struct {
	mock.Mock
}

func (m *MockLoanReader) FindLoanByID(ctx context.Context, userID string, loanID string) (*domain.StudentLoan, error) {
	args := m.Called(ctx, userID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentLoan), args.Error(1)
}

func (m *MockLoanReader) ListLoans(ctx context.Context, userID string) ([]domain.StudentLoan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentLoan), args.Error(1)
}

func (m *MockLoanReader) ListPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, settings domain.NotificationSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

// --- Mock Dispatcher ---
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, userID string, event domain.NotificationEvent) error {
	args := m.Called(ctx, userID, event)
	return args.Error(0)
}

// memorySentStore is a plain map-backed dedup store for tests.
type memorySentStore struct {
	sent map[string]map[string]bool
}

func newMemorySentStore() *memorySentStore {
	return &memorySentStore{sent: make(map[string]map[string]bool)}
}

func (s *memorySentStore) AlreadySent(userID, key string) bool {
	return s.sent[userID][key]
}

func (s *memorySentStore) MarkSent(userID, key string) {
	if s.sent[userID] == nil {
		s.sent[userID] = make(map[string]bool)
	}
	s.sent[userID][key] = true
}

func (s *memorySentStore) Reset(userID string) {
	delete(s.sent, userID)
}

// --- Test Suite ---
type NotificationServiceTestSuite struct {
	suite.Suite
	mockBudgets     *MockBudgetReader
	mockRecurring   *MockRecurringRepository
	mockGoals       *MockSavingsGoalReader
	mockLoans       *MockLoanReader
	mockSettings    *MockSettingsRepository
	mockFeed        *MockNotificationRepository
	mockDispatcher  *MockDispatcher
	sentStore       *memorySentStore
	service         portssvc.NotificationSvcFacade
	now             time.Time
	userID          string
	enabledSettings *domain.NotificationSettings
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockBudgets = new(MockBudgetReader)
	suite.mockRecurring = new(MockRecurringRepository)
	suite.mockGoals = new(MockSavingsGoalReader)
	suite.mockLoans = new(MockLoanReader)
	suite.mockSettings = new(MockSettingsRepository)
	suite.mockFeed = new(MockNotificationRepository)
	suite.mockDispatcher = new(MockDispatcher)
	suite.sentStore = newMemorySentStore()
	suite.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.userID = uuid.NewString()
	settings := domain.DefaultNotificationSettings(suite.userID)
	suite.enabledSettings = &settings

	suite.service = services.NewNotificationService(
		suite.mockBudgets,
		suite.mockRecurring,
		suite.mockGoals,
		suite.mockLoans,
		suite.mockSettings,
		suite.mockFeed,
		suite.sentStore,
		suite.mockDispatcher,
		fixedClock{now: suite.now},
	)
}

// expectNoOtherConditions wires the remaining checks to return nothing.
func (suite *NotificationServiceTestSuite) expectEmpty(budgets, bills, savings, loans bool) {
	ctx := mock.Anything
	if budgets {
		suite.mockBudgets.On("ListBudgetStatuses", ctx, suite.userID).Return([]domain.BudgetStatus{}, nil)
	}
	if bills {
		suite.mockRecurring.On("ListRecurring", ctx, suite.userID).Return([]domain.RecurringTransaction{}, nil)
	}
	if savings {
		suite.mockGoals.On("ListGoals", ctx, suite.userID).Return([]domain.SavingsGoal{}, nil)
	}
	if loans {
		suite.mockLoans.On("ListLoans", ctx, suite.userID).Return([]domain.StudentLoan{}, nil)
	}
}

func budgetStatus(category string, spent, limit int64) domain.BudgetStatus {
	s := decimal.NewFromInt(spent)
	l := decimal.NewFromInt(limit)
	return domain.BudgetStatus{
		Budget:     domain.Budget{Category: category, Limit: l},
		Spent:      s,
		Percentage: s.Mul(decimal.NewFromInt(100)).Div(l),
	}
}

// --- Test Cases ---

func (suite *NotificationServiceTestSuite) TestCheckAll_BudgetWarningAt86Percent() {
	// 4300 of 5000 is 86%: warning fires, the over-budget alert does not.
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(suite.enabledSettings, nil)
	suite.mockBudgets.On("ListBudgetStatuses", mock.Anything, suite.userID).
		Return([]domain.BudgetStatus{budgetStatus("Food", 4300, 5000)}, nil)
	suite.expectEmpty(false, true, true, true)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(fired, 1)
	suite.Equal("budget-warning-Food", fired[0].ID)
	suite.Equal("Budget Warning", fired[0].Title)
	suite.Contains(fired[0].Body, "86%")
	suite.mockFeed.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestCheckAll_OverBudgetWinsOverWarning() {
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(suite.enabledSettings, nil)
	suite.mockBudgets.On("ListBudgetStatuses", mock.Anything, suite.userID).
		Return([]domain.BudgetStatus{budgetStatus("Food", 5200, 5000)}, nil)
	suite.expectEmpty(false, true, true, true)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(fired, 1)
	suite.Equal("budget-over-Food", fired[0].ID)
	suite.Contains(fired[0].Body, "KSH 200.00")
}

func (suite *NotificationServiceTestSuite) TestCheckAll_DedupWithinSession() {
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(suite.enabledSettings, nil)
	suite.mockBudgets.On("ListBudgetStatuses", mock.Anything, suite.userID).
		Return([]domain.BudgetStatus{budgetStatus("Food", 5200, 5000)}, nil)
	suite.expectEmpty(false, true, true, true)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	first, err := suite.service.CheckAll(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Len(first, 1)

	// Same state, same session: nothing new fires.
	second, err := suite.service.CheckAll(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Empty(second)

	// New session: it fires again.
	suite.service.ResetSession(suite.userID)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()
	third, err := suite.service.CheckAll(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Len(third, 1)
}

func (suite *NotificationServiceTestSuite) TestCheckAll_SavingsDeadlineWindow() {
	// Deadline exactly a week out and goal unfunded: fires. A funded goal
	// with the same deadline stays silent.
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(suite.enabledSettings, nil)
	deadline := suite.now.AddDate(0, 0, 7)
	unfunded := domain.SavingsGoal{
		GoalID:        "goal-1",
		Name:          "Laptop",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(500),
		Deadline:      deadline,
	}
	funded := domain.SavingsGoal{
		GoalID:        "goal-2",
		Name:          "Phone",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(1000),
		Deadline:      deadline,
	}
	suite.mockGoals.On("ListGoals", mock.Anything, suite.userID).
		Return([]domain.SavingsGoal{unfunded, funded}, nil)
	suite.expectEmpty(true, true, false, true)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(fired, 1)
	suite.Equal("savings-reminder-goal-1", fired[0].ID)
	suite.Contains(fired[0].Body, `"Laptop"`)
}

func (suite *NotificationServiceTestSuite) TestCheckAll_LoanReminderDays() {
	// Due day 4: today (the 1st) is exactly three days before, so it fires.
	// Due day 5 matches neither the 2-days-out day nor the due day: silent.
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(suite.enabledSettings, nil)
	loans := []domain.StudentLoan{
		{LoanID: "loan-1", Lender: "Helb", PaymentDueDate: 4},
		{LoanID: "loan-2", Lender: "Bank", PaymentDueDate: 5},
	}
	suite.mockLoans.On("ListLoans", mock.Anything, suite.userID).Return(loans, nil)
	suite.expectEmpty(true, true, true, false)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(fired, 1)
	suite.Equal("loan-reminder-loan-1-2024-03-01", fired[0].ID)
	suite.Contains(fired[0].Body, "Helb")
}

func (suite *NotificationServiceTestSuite) TestCheckAll_BillReminderWindow() {
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(suite.enabledSettings, nil)
	dayOfMonth := 3
	inWindow := domain.RecurringTransaction{
		RecurringID: "rec-1",
		Description: "Internet",
		Amount:      decimal.NewFromInt(1500),
		Frequency:   domain.Monthly,
		DayOfMonth:  &dayOfMonth,
		NextDueDate: suite.now.AddDate(0, 0, 2),
	}
	outOfWindow := inWindow
	outOfWindow.RecurringID = "rec-2"
	outOfWindow.NextDueDate = suite.now.AddDate(0, 0, 3)
	suite.mockRecurring.On("ListRecurring", mock.Anything, suite.userID).
		Return([]domain.RecurringTransaction{inWindow, outOfWindow}, nil)
	suite.expectEmpty(true, false, true, true)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(fired, 1)
	suite.Equal("bill-reminder-rec-1-2024-03-03", fired[0].ID)
}

func (suite *NotificationServiceTestSuite) TestCheckAll_DisabledCategorySkipped() {
	ctx := context.Background()
	settings := domain.DefaultNotificationSettings(suite.userID)
	settings.BudgetAlerts = false
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(&settings, nil)
	suite.expectEmpty(false, true, true, true)

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(fired)
	suite.mockBudgets.AssertNotCalled(suite.T(), "ListBudgetStatuses", mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestCheckAll_MissingSettingsDefaultsToAllOn() {
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound)
	suite.expectEmpty(true, true, true, true)

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(fired)
	suite.mockBudgets.AssertExpectations(suite.T())
	suite.mockLoans.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestCheckAll_DispatchFailureDoesNotHaltRun() {
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(suite.enabledSettings, nil)
	suite.mockBudgets.On("ListBudgetStatuses", mock.Anything, suite.userID).
		Return([]domain.BudgetStatus{
			budgetStatus("Food", 5200, 5000),
			budgetStatus("Transport", 900, 1000),
		}, nil)
	suite.expectEmpty(false, true, true, true)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(assert.AnError).Twice()

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(fired, 2)
	suite.mockDispatcher.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestCheckAll_PersistFailureDoesNotHaltRun() {
	// The first candidate's feed write fails: the remaining candidate still
	// fires, the error surfaces alongside it, and the failed event is left
	// unmarked so the next run retries it.
	ctx := context.Background()
	suite.mockSettings.On("FindSettings", mock.Anything, suite.userID).Return(suite.enabledSettings, nil)
	suite.mockBudgets.On("ListBudgetStatuses", mock.Anything, suite.userID).
		Return([]domain.BudgetStatus{
			budgetStatus("Food", 5200, 5000),
			budgetStatus("Transport", 900, 1000),
		}, nil)
	suite.expectEmpty(false, true, true, true)
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.DedupKey == "budget-over-Food"
	})).Return(assert.AnError).Once()
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.DedupKey == "budget-warning-Transport"
	})).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	fired, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Require().Len(fired, 1)
	suite.Equal("budget-warning-Transport", fired[0].ID)
	suite.mockFeed.AssertExpectations(suite.T())

	// The write succeeds on the next run: only the unrecorded event fires.
	suite.mockFeed.On("SaveNotification", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.DedupKey == "budget-over-Food"
	})).Return(nil).Once()
	suite.mockDispatcher.On("Dispatch", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	retried, err := suite.service.CheckAll(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(retried, 1)
	suite.Equal("budget-over-Food", retried[0].ID)
	suite.mockFeed.AssertExpectations(suite.T())
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
