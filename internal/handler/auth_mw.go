package handler

import (
	"net/http"
	"strings"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/gin-gonic/gin"
)

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	claims, err := h.services.Auth.Authenticate(c.Request.Context(), accessToken)
	if err != nil {
		if errorStatus(err) == http.StatusUnauthorized {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
			return
		}
		respondError(c, err)
		return
	}

	c.Set(userIDKey, claims.UserID)
	c.Set(tokenClaimsKey, claims)

	c.Next()
}
