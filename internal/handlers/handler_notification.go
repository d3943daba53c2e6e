package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/finpal/finpal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// notificationHandler handles HTTP requests for the notification system.
// The sync endpoint also needs the recurring processor: due templates are
// rolled forward first so reminders never fire for already-materialized
// bills.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
	recurringService    portssvc.RecurringProcessorSvc
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade, rs portssvc.RecurringProcessorSvc) *notificationHandler {
	return &notificationHandler{notificationService: ns, recurringService: rs}
}

// registerNotificationRoutes registers routes related to notifications.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade, recurringService portssvc.RecurringProcessorSvc) {
	h := newNotificationHandler(notificationService, recurringService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listFeed)
		notifications.POST("/check", h.checkNotifications)
		notifications.POST("/sync", h.syncAndCheck)
	}
}

// listFeed godoc
// @Summary List delivered notifications
// @Description Retrieves the user's notification feed, newest first
// @Tags notifications
// @Produce  json
// @Param   limit query int false "Maximum entries (default 50)"
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list notifications"
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listFeed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	feed, err := h.notificationService.ListFeed(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to list notification feed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list notifications"})
		return
	}

	responses := make([]dto.NotificationResponse, len(feed))
	for i, n := range feed {
		responses[i] = dto.ToNotificationResponse(n)
	}
	c.JSON(http.StatusOK, responses)
}

// checkNotifications godoc
// @Summary Run notification checks
// @Description Evaluates every enabled notification condition and returns the newly fired events
// @Tags notifications
// @Produce  json
// @Success 200 {object} dto.CheckNotificationsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to check notifications"
// @Security BearerAuth
// @Router /notifications/check [post]
func (h *notificationHandler) checkNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	events, err := h.notificationService.CheckAll(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to run notification checks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check notifications"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckNotificationsResponse(events))
}

// syncAndCheck godoc
// @Summary Roll forward recurring transactions, then run notification checks
// @Description Materializes due recurring transactions and evaluates notification conditions in one call, in that order
// @Tags notifications
// @Produce  json
// @Success 200 {object} dto.SyncResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to sync"
// @Security BearerAuth
// @Router /notifications/sync [post]
func (h *notificationHandler) syncAndCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	// Processing must come first: a bill that just materialized moved its
	// next due date, so the reminder window is evaluated against fresh data.
	result, err := h.recurringService.ProcessDue(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to process recurring transactions during sync", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process recurring transactions"})
		return
	}

	events, err := h.notificationService.CheckAll(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to run notification checks during sync", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check notifications"})
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{
		Processed:     dto.ToProcessRecurringResponse(result),
		Notifications: dto.ToCheckNotificationsResponse(events),
	})
}
