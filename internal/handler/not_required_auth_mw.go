package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// notRequiredAuthMiddleware identifies the caller when a valid token is
// sent and lets anonymous or badly authenticated requests through.
func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	accessToken, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.Next()
		return
	}

	claims, err := h.services.Auth.Authenticate(c.Request.Context(), accessToken)
	if err != nil {
		c.Next()
		return
	}

	c.Set(userIDKey, claims.UserID)
	c.Set(tokenClaimsKey, claims)

	c.Next()
}

// getOptionalUserID returns uuid.Nil for anonymous callers.
func (h *Handler) getOptionalUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
