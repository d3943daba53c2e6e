package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/finpal/finpal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles HTTP requests for notification settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// registerSettingsRoutes registers routes related to notification settings.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("/notifications", h.getSettings)
		settings.PUT("/notifications", h.updateSettings)
	}
}

// getSettings godoc
// @Summary Get notification settings
// @Description Retrieves the user's notification toggles, defaulting to everything on
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.NotificationSettingsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to retrieve settings"
// @Security BearerAuth
// @Router /settings/notifications [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get notification settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationSettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update notification settings
// @Description Toggles any of the four notification categories
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateNotificationSettingsRequest true "Toggles to change"
// @Success 200 {object} dto.NotificationSettingsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to update settings"
// @Security BearerAuth
// @Router /settings/notifications [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateNotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to update notification settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationSettingsResponse(settings))
}
