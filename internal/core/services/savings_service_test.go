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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SavingsGoalRepository ---
type MockSavingsGoalRepository struct {
	MockSavingsGoalReader
}

func (m *MockSavingsGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) UpdateCurrentAmount(ctx context.Context, userID string, goalID string, amount decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, userID, goalID, amount, updatedBy)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	args := m.Called(ctx, userID, goalID)
	return args.Error(0)
}

// --- Test Suite ---
type SavingsGoalServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSavingsGoalRepository
	service  portssvc.SavingsGoalSvcFacade
	userID   string
}

func (suite *SavingsGoalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSavingsGoalRepository)
	suite.service = services.NewSavingsGoalService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *SavingsGoalServiceTestSuite) TestCreateGoal_StartsAtZero() {
	ctx := context.Background()
	req := dto.CreateSavingsGoalRequest{
		Name:         "Emergency Fund",
		TargetAmount: decimal.NewFromInt(10000),
		Deadline:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SaveGoal", ctx, mock.MatchedBy(func(g domain.SavingsGoal) bool {
		return g.UserID == suite.userID && g.CurrentAmount.IsZero() && g.Name == "Emergency Fund"
	})).Return(nil).Once()

	goal, err := suite.service.CreateGoal(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(goal.CurrentAmount.IsZero())
	suite.False(goal.IsFunded())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SavingsGoalServiceTestSuite) TestCreateGoal_RejectsNonPositiveTarget() {
	ctx := context.Background()
	req := dto.CreateSavingsGoalRequest{
		Name:         "Empty",
		TargetAmount: decimal.Zero,
		Deadline:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	goal, err := suite.service.CreateGoal(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(goal)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveGoal", mock.Anything, mock.Anything)
}

func (suite *SavingsGoalServiceTestSuite) TestAddFunds_ClampsAtTarget() {
	ctx := context.Background()
	goalID := uuid.NewString()
	goal := &domain.SavingsGoal{
		GoalID:        goalID,
		UserID:        suite.userID,
		Name:          "Laptop",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(500),
		Deadline:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindGoalByID", ctx, suite.userID, goalID).Return(goal, nil).Once()
	// Depositing 600 into 500/1000 lands on exactly 1000, not 1100
	suite.mockRepo.On("UpdateCurrentAmount", ctx, suite.userID, goalID,
		mock.MatchedBy(func(amount decimal.Decimal) bool {
			return amount.Equal(decimal.NewFromInt(1000))
		}), suite.userID).Return(nil).Once()

	updated, err := suite.service.AddFunds(ctx, suite.userID, goalID, dto.AddFundsRequest{Amount: decimal.NewFromInt(600)})

	suite.Require().NoError(err)
	suite.True(updated.CurrentAmount.Equal(decimal.NewFromInt(1000)))
	suite.True(updated.IsFunded())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SavingsGoalServiceTestSuite) TestAddFunds_RejectsNonPositiveAmount() {
	ctx := context.Background()

	updated, err := suite.service.AddFunds(ctx, suite.userID, uuid.NewString(), dto.AddFundsRequest{Amount: decimal.NewFromInt(-5)})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrentAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SavingsGoalServiceTestSuite) TestListGoals_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListGoals", ctx, suite.userID).Return(nil, nil).Once()

	goals, err := suite.service.ListGoals(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(goals)
	suite.Empty(goals)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSavingsGoalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SavingsGoalServiceTestSuite))
}
