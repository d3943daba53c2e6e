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

// recurringHandler handles HTTP requests for recurring templates.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func newRecurringHandler(rs portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{recurringService: rs}
}

// registerRecurringRoutes registers routes related to recurring templates.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringService)

	recurring := rg.Group("/recurring")
	{
		recurring.POST("", h.createRecurring)
		recurring.GET("", h.listRecurring)
		recurring.DELETE("/:recurringID", h.deleteRecurring)
		recurring.POST("/process", h.processRecurring)
	}
}

// createRecurring godoc
// @Summary Create a recurring template
// @Description Creates a weekly or monthly recurring transaction template
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   recurring body dto.CreateRecurringRequest true "Template details"
// @Success 201 {object} dto.RecurringResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create template"
// @Security BearerAuth
// @Router /recurring [post]
func (h *recurringHandler) createRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecurring", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	created, err := h.recurringService.CreateRecurring(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create recurring template in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create recurring template"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringResponse(created))
}

// listRecurring godoc
// @Summary List recurring templates
// @Description Retrieves all of the user's recurring transaction templates
// @Tags recurring
// @Produce  json
// @Success 200 {array} dto.RecurringResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list templates"
// @Security BearerAuth
// @Router /recurring [get]
func (h *recurringHandler) listRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	templates, err := h.recurringService.ListRecurring(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list recurring templates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list recurring templates"})
		return
	}

	responses := make([]dto.RecurringResponse, len(templates))
	for i, rt := range templates {
		responses[i] = dto.ToRecurringResponse(&rt)
	}
	c.JSON(http.StatusOK, responses)
}

// deleteRecurring godoc
// @Summary Delete a recurring template
// @Description Removes a template; ledger entries it already produced stay untouched
// @Tags recurring
// @Param   recurringID path string true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Template not found"
// @Failure 500 {object} ErrorResponse "Failed to delete template"
// @Security BearerAuth
// @Router /recurring/{recurringID} [delete]
func (h *recurringHandler) deleteRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	recurringID := c.Param("recurringID")

	if err := h.recurringService.DeleteRecurring(c.Request.Context(), userID, recurringID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Recurring template not found"})
			return
		}
		logger.Error("Failed to delete recurring template in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete recurring template"})
		return
	}

	c.Status(http.StatusNoContent)
}

// processRecurring godoc
// @Summary Process due recurring templates
// @Description Materializes ledger entries for every template whose due date has been reached and advances each by one period
// @Tags recurring
// @Produce  json
// @Success 200 {object} dto.ProcessRecurringResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to process templates"
// @Security BearerAuth
// @Router /recurring/process [post]
func (h *recurringHandler) processRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.recurringService.ProcessDue(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to process recurring templates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process recurring transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProcessRecurringResponse(result))
}
