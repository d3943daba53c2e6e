package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/finpal/finpal-backend/internal/handlers"
	"github.com/finpal/finpal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finpal-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockService)
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.Expense,
		Amount:        decimal.NewFromInt(1200),
		Category:      "Food",
		Description:   "Groceries",
		Date:          date,
	}

	suite.mockService.On("CreateTransaction",
		mock.Anything,
		userID,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Type == "expense" && req.Category == "Food" && req.Amount.Equal(decimal.NewFromInt(1200))
		}),
	).Return(created, nil).Once()

	body, _ := json.Marshal(map[string]any{
		"type":        "expense",
		"amount":      "1200",
		"category":    "Food",
		"description": "Groceries",
		"date":        "2024-03-01T00:00:00Z",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(created.TransactionID, responseBody.TransactionID)
	suite.Equal("expense", responseBody.Type)
	suite.Equal("2024-03-01", responseBody.Date)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	limit := 10

	expectedResponse := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), Type: "income", Amount: decimal.NewFromInt(50000), Category: "Salary", Date: "2024-03-01"},
			{TransactionID: uuid.NewString(), Type: "expense", Amount: decimal.NewFromInt(1200), Category: "Food", Date: "2024-02-28"},
		},
		NextToken: "",
	}

	suite.mockService.On("ListTransactions",
		mock.Anything,
		userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/transactions?limit=%d", limit)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Len(responseBody.Transactions, 2)
	suite.Equal(expectedResponse.Transactions[0].TransactionID, responseBody.Transactions[0].TransactionID)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockService.On("GetTransactionByID", mock.Anything, userID, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_Success() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockService.On("DeleteTransaction", mock.Anything, userID, transactionID).
		Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/transactions/"+transactionID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
