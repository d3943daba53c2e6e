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

// budgetHandler handles HTTP requests for category budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.PUT("", h.upsertBudget)
		budgets.GET("", h.listBudgetStatuses)
		budgets.DELETE("/:category", h.deleteBudget)
	}
}

// upsertBudget godoc
// @Summary Set a category budget
// @Description Creates or replaces the monthly spending limit for a category
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.UpsertBudgetRequest true "Budget details"
// @Success 200 {object} dto.BudgetStatusResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to save budget"
// @Security BearerAuth
// @Router /budgets [put]
func (h *budgetHandler) upsertBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	budget, err := h.budgetService.UpsertBudget(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to upsert budget in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save budget"})
		return
	}

	c.JSON(http.StatusOK, dto.BudgetStatusResponse{Category: budget.Category, Limit: budget.Limit})
}

// listBudgetStatuses godoc
// @Summary List budgets with spend
// @Description Retrieves every budget along with spent amount and percentage used
// @Tags budgets
// @Produce  json
// @Success 200 {array} dto.BudgetStatusResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list budgets"
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgetStatuses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	statuses, err := h.budgetService.ListBudgetStatuses(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list budget statuses from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list budgets"})
		return
	}

	responses := make([]dto.BudgetStatusResponse, len(statuses))
	for i, status := range statuses {
		responses[i] = dto.ToBudgetStatusResponse(&status)
	}
	c.JSON(http.StatusOK, responses)
}

// deleteBudget godoc
// @Summary Delete a budget
// @Description Removes the user's budget for a category
// @Tags budgets
// @Param   category path string true "Budget category"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Budget not found"
// @Failure 500 {object} ErrorResponse "Failed to delete budget"
// @Security BearerAuth
// @Router /budgets/{category} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	category := c.Param("category")

	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, category); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget not found"})
			return
		}
		logger.Error("Failed to delete budget in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete budget"})
		return
	}

	c.Status(http.StatusNoContent)
}
