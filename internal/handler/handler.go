package handler

import (
	"net/http"

	"github.com/ShivaTejMatam/Blog-Platform/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	userIDKey      = "user-id"
	tokenClaimsKey = "token-claims"
)

type Options struct {
	ClientOrigin       string
	RateLimitPerMinute int
}

type Handler struct {
	logger      *zap.Logger
	services    *service.Service
	opts        Options
	authLimiter *ipRateLimiter
}

func New(logger *zap.Logger, services *service.Service, opts Options) *Handler {
	return &Handler{
		logger:      logger,
		services:    services,
		opts:        opts,
		authLimiter: newIPRateLimiter(opts.RateLimitPerMinute),
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(h.requestLoggerMiddleware, h.recoveryMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.opts.ClientOrigin},
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.rateLimitMiddleware, h.authRegister)
			auth.POST("/login", h.rateLimitMiddleware, h.authLogin)
			auth.POST("/logout", h.authMiddleware, h.authLogout)
		}

		users := v1.Group("/users")
		{
			users.GET("/me", h.authMiddleware, h.usersGetMe)

			user := users.Group("/:userID")
			{
				user.GET("", h.usersGet)
				user.POST("/follow", h.authMiddleware, h.usersFollowToggle)
				user.GET("/follow", h.authMiddleware, h.usersFollowStatus)
			}
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGetPublished)
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.GET("/my", h.authMiddleware, h.postsGetMy)

			post := posts.Group("/:postID")
			{
				post.GET("", h.authMiddleware, h.postsGetByID)
				post.PUT("", h.authMiddleware, h.postsUpdate)
				post.DELETE("", h.authMiddleware, h.postsDelete)
			}
		}

		tags := v1.Group("/tags", h.authMiddleware)
		{
			tags.GET("", h.tagsGet)
			tags.POST("", h.tagsCreate)
			tags.DELETE("/:tagID", h.tagsDelete)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("", h.notRequiredAuthMiddleware, h.commentsGet)
			comments.POST("", h.authMiddleware, h.commentsCreate)
			comments.PUT("/:commentID", h.authMiddleware, h.commentsUpdate)
			comments.DELETE("/:commentID", h.authMiddleware, h.commentsDelete)
		}

		notifications := v1.Group("/notifications", h.authMiddleware)
		{
			notifications.GET("", h.notificationsGet)
			notifications.GET("/unread", h.notificationsUnreadCount)
			notifications.PUT("", h.notificationsMarkRead)
		}
	}

	return r
}

// getUserIDFromRequest is only valid behind authMiddleware.
func (h *Handler) getUserIDFromRequest(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}
