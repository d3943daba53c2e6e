package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/core/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByCategory(ctx context.Context, userID string, category string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, userID string, category string) error {
	args := m.Called(ctx, userID, category)
	return args.Error(0)
}

// --- Mock TransactionReader ---
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ListTransactions(ctx context.Context, userID string, params portsrepo.ListTransactionsParams) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}

func (m *MockTransactionReader) SumExpensesByCategory(ctx context.Context, userID string, since *time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionReader) SumByType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, txType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	mockTxnReader  *MockTransactionReader
	now            time.Time
	userID         string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockTxnReader = new(MockTransactionReader)
	suite.now = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	suite.userID = uuid.NewString()
}

func (suite *BudgetServiceTestSuite) newService(spentWindow string) portssvc.BudgetSvcFacade {
	return services.NewBudgetService(suite.mockBudgetRepo, suite.mockTxnReader, fixedClock{now: suite.now}, spentWindow)
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestListBudgetStatuses_AllTimeWindow() {
	ctx := context.Background()
	service := suite.newService(services.SpentWindowAll)

	budgets := []domain.Budget{
		{UserID: suite.userID, Category: "Food", Limit: decimal.NewFromInt(5000)},
		{UserID: suite.userID, Category: "Transport", Limit: decimal.NewFromInt(1000)},
	}
	spent := map[string]decimal.Decimal{
		"Food": decimal.NewFromInt(4300),
		// No Transport expenses recorded at all.
	}

	suite.mockBudgetRepo.On("ListBudgets", ctx, suite.userID).Return(budgets, nil).Once()
	suite.mockTxnReader.On("SumExpensesByCategory", ctx, suite.userID, (*time.Time)(nil)).Return(spent, nil).Once()

	statuses, err := service.ListBudgetStatuses(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(statuses, 2)
	suite.True(statuses[0].Spent.Equal(decimal.NewFromInt(4300)))
	suite.True(statuses[0].Percentage.Equal(decimal.NewFromInt(86)))
	suite.True(statuses[1].Spent.IsZero())
	suite.True(statuses[1].Percentage.IsZero())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockTxnReader.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestListBudgetStatuses_MonthWindow() {
	ctx := context.Background()
	service := suite.newService(services.SpentWindowMonth)
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockBudgetRepo.On("ListBudgets", ctx, suite.userID).Return([]domain.Budget{}, nil).Once()
	suite.mockTxnReader.On("SumExpensesByCategory", ctx, suite.userID, mock.MatchedBy(func(since *time.Time) bool {
		return since != nil && since.Equal(monthStart)
	})).Return(map[string]decimal.Decimal{}, nil).Once()

	statuses, err := service.ListBudgetStatuses(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(statuses)
	suite.mockTxnReader.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpsertBudget_Success() {
	ctx := context.Background()
	service := suite.newService(services.SpentWindowAll)
	req := dto.UpsertBudgetRequest{Category: "Food", Limit: decimal.NewFromInt(5000)}

	suite.mockBudgetRepo.On("UpsertBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.UserID == suite.userID && b.Category == "Food" && b.Limit.Equal(decimal.NewFromInt(5000))
	})).Return(nil).Once()

	budget, err := service.UpsertBudget(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.Equal("Food", budget.Category)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpsertBudget_NonPositiveLimit() {
	ctx := context.Background()
	service := suite.newService(services.SpentWindowAll)
	req := dto.UpsertBudgetRequest{Category: "Food", Limit: decimal.Zero}

	budget, err := service.UpsertBudget(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "UpsertBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_Success() {
	ctx := context.Background()
	service := suite.newService(services.SpentWindowAll)

	suite.mockBudgetRepo.On("DeleteBudget", ctx, suite.userID, "Food").Return(nil).Once()

	err := service.DeleteBudget(ctx, suite.userID, "Food")

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
