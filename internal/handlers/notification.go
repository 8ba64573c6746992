package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-collab-api/internal/dto"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	log                 logging.Logger
}

func NewNotificationHandler(notificationService *services.NotificationService, log logging.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		log:                 log,
	}
}

// ListNotifications returns the acting user's latest notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.List(userID)
	if err != nil {
		respondInternalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationDTOs(notifications))
}

// UnreadCount returns how many notifications are unread
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		respondInternalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(id, userID); err != nil {
		h.respondNotificationError(c, err)
		return
	}

	respondMessage(c, "Notification marked as read")
}

// MarkAllRead marks all of the acting user's notifications as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		respondInternalError(c, h.log, err)
		return
	}

	respondMessage(c, "All notifications marked as read")
}

// DeleteNotification deletes one notification
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(id, userID); err != nil {
		h.respondNotificationError(c, err)
		return
	}

	respondMessage(c, "Notification deleted")
}

func (h *NotificationHandler) respondNotificationError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotificationNotFound) {
		apierrors.NotFound(c, "Notification not found")
		return
	}
	respondInternalError(c, h.log, err)
}
