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

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	MockLoanReader
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.StudentLoan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) LogPayment(ctx context.Context, loan domain.StudentLoan, payment domain.LoanPayment, txn domain.Transaction) error {
	args := m.Called(ctx, loan, payment, txn)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteLoan(ctx context.Context, userID string, loanID string) error {
	args := m.Called(ctx, userID, loanID)
	return args.Error(0)
}

// --- Test Suite ---
type LoanServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLoanRepository
	service  portssvc.LoanSvcFacade
	userID   string
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLoanRepository)
	suite.service = services.NewLoanService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *LoanServiceTestSuite) TestCreateLoan_BalanceStartsAtInitialAmount() {
	ctx := context.Background()
	req := dto.CreateLoanRequest{
		Lender:         "Helb",
		InitialAmount:  decimal.NewFromInt(100000),
		InterestRate:   decimal.NewFromInt(4),
		PaymentDueDate: 10,
	}

	suite.mockRepo.On("SaveLoan", ctx, mock.MatchedBy(func(l domain.StudentLoan) bool {
		return l.CurrentBalance.Equal(l.InitialAmount) && l.UserID == suite.userID
	})).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(loan.CurrentBalance.Equal(decimal.NewFromInt(100000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestLogPayment_DecrementsBalanceAndAppendsLedgerEntry() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.StudentLoan{
		LoanID:         loanID,
		UserID:         suite.userID,
		Lender:         "Helb",
		InitialAmount:  decimal.NewFromInt(100000),
		CurrentBalance: decimal.NewFromInt(80000),
		PaymentDueDate: 10,
	}
	paymentDate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	req := dto.LogLoanPaymentRequest{Amount: decimal.NewFromInt(5000), Date: &paymentDate}

	suite.mockRepo.On("FindLoanByID", ctx, suite.userID, loanID).Return(loan, nil).Once()
	suite.mockRepo.On("LogPayment", ctx,
		mock.MatchedBy(func(updated domain.StudentLoan) bool {
			return updated.CurrentBalance.Equal(decimal.NewFromInt(75000))
		}),
		mock.MatchedBy(func(p domain.LoanPayment) bool {
			return p.LoanID == loanID && p.Amount.Equal(decimal.NewFromInt(5000)) && p.Date.Equal(paymentDate)
		}),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.Expense &&
				txn.Category == domain.LoanPaymentCategory &&
				txn.Amount.Equal(decimal.NewFromInt(5000)) &&
				txn.Date.Equal(paymentDate)
		}),
	).Return(nil).Once()

	updated, err := suite.service.LogPayment(ctx, suite.userID, loanID, req)

	suite.Require().NoError(err)
	suite.True(updated.CurrentBalance.Equal(decimal.NewFromInt(75000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestLogPayment_RejectsNonPositiveAmount() {
	ctx := context.Background()

	updated, err := suite.service.LogPayment(ctx, suite.userID, uuid.NewString(), dto.LogLoanPaymentRequest{Amount: decimal.Zero})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "LogPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
