package handler

import (
	"net/http"
	"strings"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) usersGetMe(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	profile, err := h.services.User.FindProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) usersGet(c *gin.Context) {
	userID, err := uuid.Parse(strings.TrimSpace(c.Param("userID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	profile, err := h.services.User.FindProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) usersFollowToggle(c *gin.Context) {
	followerID := h.getUserIDFromRequest(c)

	followeeID, err := uuid.Parse(strings.TrimSpace(c.Param("userID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	following, err := h.services.Follow.Toggle(c.Request.Context(), followerID, followeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FollowResponse{Following: following})
}

func (h *Handler) usersFollowStatus(c *gin.Context) {
	followerID := h.getUserIDFromRequest(c)

	followeeID, err := uuid.Parse(strings.TrimSpace(c.Param("userID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	following, err := h.services.Follow.Status(c.Request.Context(), followerID, followeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FollowResponse{Following: following})
}
