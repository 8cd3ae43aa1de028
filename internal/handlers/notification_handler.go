package handlers

import (
	"net/http"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notifications/get", h.GetNotifications)
	g.POST("/notifications/mark-read", h.MarkAsRead)
}

// GetNotifications returns the unread notifications, newest first.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	var req models.UserIDRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	notifications, err := h.notificationRepository.GetUnread(c.Request().Context(), req.UserID)
	if err != nil {
		return internalError(err)
	}

	views := make([]models.NotificationView, len(notifications))
	for i := range notifications {
		views[i] = notifications[i].ToView()
	}
	return c.JSON(http.StatusOK, views)
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	var req models.MarkNotificationReadRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), req.NotificationID); err != nil {
		return repoError(err, errorMessages{notFound: "Notification not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
