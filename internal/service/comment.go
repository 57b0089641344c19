package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/postgres"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/redisrepo"
	"github.com/ShivaTejMatam/Blog-Platform/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	COMMENTED_ON_POST_MESSAGE  = "commented on your post"
	REPLIED_TO_COMMENT_MESSAGE = "replied to your comment"
)

type commentService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	events   *eventPublisher
	cacheTTL time.Duration
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, events *eventPublisher, cacheTTL time.Duration) Comment {
	return &commentService{
		logger:   logger,
		repo:     repo,
		events:   events,
		cacheTTL: cacheTTL,
	}
}

type commentRecipient struct {
	userID  uuid.UUID
	message string
}

// commentRecipients lists who hears about a new comment: the post author,
// then the parent comment's author for replies. The commenter is never
// notified and nobody is notified twice.
func commentRecipients(commenterID uuid.UUID, post *model.Post, parent *model.Comment) []commentRecipient {
	var recipients []commentRecipient
	seen := map[uuid.UUID]struct{}{commenterID: {}}

	add := func(userID uuid.UUID, message string) {
		if _, ok := seen[userID]; ok {
			return
		}
		seen[userID] = struct{}{}
		recipients = append(recipients, commentRecipient{userID: userID, message: message})
	}

	add(post.AuthorID, COMMENTED_ON_POST_MESSAGE)
	if parent != nil {
		add(parent.AuthorID, REPLIED_TO_COMMENT_MESSAGE)
	}

	return recipients
}

func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.CommentNode, error) {
	content := utils.Sanitize(input.Content)
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	author, err := s.repo.Postgres.User.FindByID(ctx, authorID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUnauthorized
		}
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, input.PostID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", input.PostID, err.Error())
		return nil, ErrInternal
	}
	if !post.Published && post.AuthorID != authorID {
		return nil, ErrPostNotFound
	}

	var (
		parent *model.Comment
		depth  int
	)
	if input.ParentID != nil {
		parent, err = s.repo.Postgres.Comment.FindByID(ctx, *input.ParentID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrParentNotFound
			}
			s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", *input.ParentID, err.Error())
			return nil, ErrInternal
		}
		if parent.PostID != post.ID {
			return nil, ErrParentOnOtherPost
		}
		if parent.Depth >= model.MaxCommentDepth {
			return nil, ErrReplyTooDeep
		}
		depth = parent.Depth + 1
	}

	var (
		created       *model.Comment
		notifications []*model.Notification
	)
	if err := s.repo.Postgres.WithTx(ctx, func(tx *postgres.PostgresRepository) error {
		notifications = nil

		created, err = tx.Comment.Create(ctx, model.Comment{
			ParentID: input.ParentID,
			PostID:   post.ID,
			AuthorID: authorID,
			Content:  content,
			Depth:    depth,
		})
		if err != nil {
			return err
		}

		for _, r := range commentRecipients(authorID, post, parent) {
			n, err := tx.Notification.Create(ctx, model.Notification{
				UserID:  r.userID,
				Type:    model.NotificationTypeComment,
				Message: r.message,
				ActorID: &authorID,
				PostID:  &post.ID,
			})
			if err != nil {
				return err
			}
			notifications = append(notifications, n)
		}

		return nil
	}); err != nil {
		// The post or parent was removed after the checks above.
		if postgres.IsForeignKeyViolation(err) {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to create comment on post(%d) by user(%s): %s", post.ID, authorID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidatePostComments(ctx, post.ID)
	s.events.notificationsCreated(ctx, notifications)

	return &model.CommentNode{
		Comment: *created,
		Author: model.UserAuthor{
			ID:   author.ID,
			Name: author.Name,
		},
		Replies: []*model.CommentNode{},
	}, nil
}

// FindPostComments returns the comment tree of a post. Drafts are only
// visible to their author; pass uuid.Nil for an anonymous viewer.
func (s *commentService) FindPostComments(ctx context.Context, postID int64, viewerID uuid.UUID) ([]*model.CommentNode, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}
	if !post.Published && post.AuthorID != viewerID {
		return nil, ErrPostNotFound
	}

	// The version is read before the tree so a tree built from rows older
	// than a concurrent write lands under a key nobody reads anymore.
	version, err := postCommentsVersion(ctx, s.repo.Redis.Default, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get post(%d) comments version from redis: %s", postID, err.Error())
		return nil, ErrInternal
	}
	key := redisrepo.PostCommentsKey(postID, version)

	cachedTree, err := redisrepo.GetMany[model.CommentNode](s.repo.Redis.Default, ctx, key)
	if err == nil && cachedTree != nil {
		return cachedTree, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) comments from redis: %s", postID, err.Error())
		return nil, ErrInternal
	}

	comments, err := s.repo.Postgres.Comment.FindPostComments(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	tree := BuildCommentTree(comments)

	if err := s.repo.Redis.Default.SetJSON(ctx, key, tree, s.cacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) comments in redis: %s", postID, err.Error())
	}

	return tree, nil
}

func (s *commentService) Update(ctx context.Context, id int64, authorID uuid.UUID, content string) (*model.FullComment, error) {
	content = utils.Sanitize(content)
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	comment, err := s.repo.Postgres.Comment.Update(ctx, id, authorID, content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to update comment(%d) of user(%s): %s", id, authorID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidatePostComments(ctx, comment.Comment.PostID)

	return comment, nil
}

// Delete removes the comment and, through the foreign key, its replies.
func (s *commentService) Delete(ctx context.Context, id int64, authorID uuid.UUID) error {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", id, err.Error())
		return ErrInternal
	}
	if comment.AuthorID != authorID {
		return ErrCommentNotFound
	}

	deleted, err := s.repo.Postgres.Comment.Delete(ctx, id, authorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%d) of user(%s): %s", id, authorID.String(), err.Error())
		return ErrInternal
	}
	if !deleted {
		return ErrCommentNotFound
	}

	s.invalidatePostComments(ctx, comment.PostID)

	return nil
}

func (s *commentService) invalidatePostComments(ctx context.Context, postID int64) {
	if err := bumpPostCommentsVersion(ctx, s.repo.Redis.Default, postID); err != nil {
		s.logger.Sugar().Errorf("failed to bump post(%d) comments version in redis: %s", postID, err.Error())
	}
}

// postCommentsVersion returns the current version of a post's cached
// comment tree. A missing counter is version 0.
func postCommentsVersion(ctx context.Context, rdb redisrepo.Default, postID int64) (int64, error) {
	version, err := rdb.Get(ctx, redisrepo.PostCommentsVersionKey(postID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return version, err
}

// bumpPostCommentsVersion retires every tree cached under the previous
// version. Old trees expire on their own TTL.
func bumpPostCommentsVersion(ctx context.Context, rdb redisrepo.Default, postID int64) error {
	return rdb.Incr(ctx, redisrepo.PostCommentsVersionKey(postID)).Err()
}
