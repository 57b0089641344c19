package service

import (
	"context"
	"time"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DEFAULT_CACHE_TTL = time.Hour

type Auth interface {
	Register(ctx context.Context, input dto.RegisterRequest) (string, error)
	Login(ctx context.Context, input dto.LoginRequest) (string, error)
	Logout(ctx context.Context, claims *utils.TokenClaims) error
	Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error)
}

type User interface {
	FindProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.FullPost, error)
	FindPublished(ctx context.Context) ([]*model.FullPost, error)
	FindAuthorPosts(ctx context.Context, authorID uuid.UUID) ([]*model.FullPost, error)
	FindOwned(ctx context.Context, id int64, authorID uuid.UUID) (*model.FullPost, error)
	Update(ctx context.Context, id int64, authorID uuid.UUID, input dto.UpdatePostRequest) (*model.FullPost, error)
	Delete(ctx context.Context, id int64, authorID uuid.UUID) error
}

type Tag interface {
	Create(ctx context.Context, name string) (*model.Tag, error)
	FindAll(ctx context.Context) ([]*model.TagWithCount, error)
	Delete(ctx context.Context, id int64) error
}

type Comment interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.CommentNode, error)
	FindPostComments(ctx context.Context, postID int64, viewerID uuid.UUID) ([]*model.CommentNode, error)
	Update(ctx context.Context, id int64, authorID uuid.UUID, content string) (*model.FullComment, error)
	Delete(ctx context.Context, id int64, authorID uuid.UUID) error
}

type Follow interface {
	Toggle(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
	Status(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
}

type Notification interface {
	FindUserNotifications(ctx context.Context, userID uuid.UUID) ([]*model.FullNotification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// Publisher delivers events to the message broker. *rabbitmq.MQConn
// satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, queue string, v interface{}) error
}

type Options struct {
	Tokens    *utils.JWTManager
	Publisher Publisher
	CacheTTL  time.Duration
}

type Service struct {
	Auth
	User
	Post
	Tag
	Comment
	Follow
	Notification
}

func New(logger *zap.Logger, repo *repository.Repository, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DEFAULT_CACHE_TTL
	}

	events := newEventPublisher(logger, opts.Publisher)

	return &Service{
		Auth:         newAuthService(logger, repo, opts.Tokens),
		User:         newUserService(logger, repo, opts.CacheTTL),
		Post:         newPostService(logger, repo),
		Tag:          newTagService(logger, repo),
		Comment:      newCommentService(logger, repo, events, opts.CacheTTL),
		Follow:       newFollowService(logger, repo, events),
		Notification: newNotificationService(logger, repo),
	}
}
