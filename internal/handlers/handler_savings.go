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

// savingsGoalHandler handles HTTP requests for savings goals.
type savingsGoalHandler struct {
	savingsService portssvc.SavingsGoalSvcFacade
}

func newSavingsGoalHandler(ss portssvc.SavingsGoalSvcFacade) *savingsGoalHandler {
	return &savingsGoalHandler{savingsService: ss}
}

// registerSavingsGoalRoutes registers routes related to savings goals.
func registerSavingsGoalRoutes(rg *gin.RouterGroup, savingsService portssvc.SavingsGoalSvcFacade) {
	h := newSavingsGoalHandler(savingsService)

	goals := rg.Group("/savings-goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.POST("/:goalID/funds", h.addFunds)
		goals.DELETE("/:goalID", h.deleteGoal)
	}
}

// createGoal godoc
// @Summary Create a savings goal
// @Description Creates a goal with a target amount and deadline, starting at zero
// @Tags savings-goals
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateSavingsGoalRequest true "Goal details"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create goal"
// @Security BearerAuth
// @Router /savings-goals [post]
func (h *savingsGoalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	goal, err := h.savingsService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create savings goal in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create savings goal"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(goal))
}

// listGoals godoc
// @Summary List savings goals
// @Description Retrieves all of the user's savings goals
// @Tags savings-goals
// @Produce  json
// @Success 200 {array} dto.SavingsGoalResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list goals"
// @Security BearerAuth
// @Router /savings-goals [get]
func (h *savingsGoalHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	goals, err := h.savingsService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list savings goals from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list savings goals"})
		return
	}

	responses := make([]dto.SavingsGoalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = dto.ToSavingsGoalResponse(&goal)
	}
	c.JSON(http.StatusOK, responses)
}

// addFunds godoc
// @Summary Add funds to a goal
// @Description Deposits into a goal, clamped so the balance never exceeds the target
// @Tags savings-goals
// @Accept  json
// @Produce  json
// @Param   goalID path string true "Goal ID"
// @Param   funds body dto.AddFundsRequest true "Deposit amount"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse "Invalid amount"
// @Failure 404 {object} ErrorResponse "Goal not found"
// @Failure 500 {object} ErrorResponse "Failed to add funds"
// @Security BearerAuth
// @Router /savings-goals/{goalID}/funds [post]
func (h *savingsGoalHandler) addFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	goalID := c.Param("goalID")

	goal, err := h.savingsService.AddFunds(c.Request.Context(), userID, goalID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Savings goal not found"})
			return
		}
		logger.Error("Failed to add funds in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add funds"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Description Removes a goal owned by the user
// @Tags savings-goals
// @Param   goalID path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Goal not found"
// @Failure 500 {object} ErrorResponse "Failed to delete goal"
// @Security BearerAuth
// @Router /savings-goals/{goalID} [delete]
func (h *savingsGoalHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	goalID := c.Param("goalID")

	if err := h.savingsService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Savings goal not found"})
			return
		}
		logger.Error("Failed to delete savings goal in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete savings goal"})
		return
	}

	c.Status(http.StatusNoContent)
}
