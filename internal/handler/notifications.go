package handler

import (
	"net/http"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) notificationsGet(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	notifications, err := h.services.Notification.FindUserNotifications(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) notificationsUnreadCount(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	count, err := h.services.Notification.CountUnread(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *Handler) notificationsMarkRead(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	if err := h.services.Notification.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "Notifications marked as read"))
}
