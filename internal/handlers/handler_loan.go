package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finpal/finpal-backend/internal/apperrors"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/finpal/finpal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests for student loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// registerLoanRoutes registers routes related to student loans.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:loanID", h.getLoanByID)
		loans.POST("/:loanID/payments", h.logPayment)
		loans.DELETE("/:loanID", h.deleteLoan)
	}
}

// createLoan godoc
// @Summary Register a student loan
// @Description Creates a loan whose balance starts at the initial amount
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.CreateLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create loan"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create loan in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create loan"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan, nil))
}

// listLoans godoc
// @Summary List student loans
// @Description Retrieves all of the user's loans without payment history
// @Tags loans
// @Produce  json
// @Success 200 {array} dto.LoanResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list loans"
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list loans from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list loans"})
		return
	}

	responses := make([]dto.LoanResponse, len(loans))
	for i, loan := range loans {
		responses[i] = dto.ToLoanResponse(&loan, nil)
	}
	c.JSON(http.StatusOK, responses)
}

// getLoanByID godoc
// @Summary Get a loan with its payment history
// @Description Retrieves a loan owned by the user including all logged payments
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} ErrorResponse "Loan not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve loan"
// @Security BearerAuth
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoanByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	loanID := c.Param("loanID")

	loan, payments, err := h.loanService.GetLoanByID(c.Request.Context(), userID, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Loan not found"})
			return
		}
		logger.Error("Failed to get loan from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve loan"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, payments))
}

// logPayment godoc
// @Summary Log a loan payment
// @Description Decrements the balance, appends to the payment history, and records a ledger expense, atomically
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Param   payment body dto.LogLoanPaymentRequest true "Payment details"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Invalid amount"
// @Failure 404 {object} ErrorResponse "Loan not found"
// @Failure 500 {object} ErrorResponse "Failed to log payment"
// @Security BearerAuth
// @Router /loans/{loanID}/payments [post]
func (h *loanHandler) logPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LogLoanPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	loanID := c.Param("loanID")

	loan, err := h.loanService.LogPayment(c.Request.Context(), userID, loanID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Loan not found"})
			return
		}
		logger.Error("Failed to log loan payment in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log payment"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, nil))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Removes a loan and its payment history; ledger entries stay untouched
// @Tags loans
// @Param   loanID path string true "Loan ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Loan not found"
// @Failure 500 {object} ErrorResponse "Failed to delete loan"
// @Security BearerAuth
// @Router /loans/{loanID} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	loanID := c.Param("loanID")

	if err := h.loanService.DeleteLoan(c.Request.Context(), userID, loanID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Loan not found"})
			return
		}
		logger.Error("Failed to delete loan in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete loan"})
		return
	}

	c.Status(http.StatusNoContent)
}
