package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/postgres"
	"github.com/ShivaTejMatam/Blog-Platform/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo:   repo,
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func (s *postService) checkTags(ctx context.Context, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	count, err := s.repo.Postgres.Tag.CountExisting(ctx, tagIDs)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count tags(%v) from postgres: %s", tagIDs, err.Error())
		return ErrInternal
	}
	if count != len(tagIDs) {
		return ErrUnknownTag
	}

	return nil
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.FullPost, error) {
	title := strings.TrimSpace(utils.Sanitize(input.Title))
	if title == "" {
		return nil, ErrTitleRequired
	}
	content := utils.Sanitize(input.Content)
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	tagIDs := uniqueIDs(input.TagIDs)
	if err := s.checkTags(ctx, tagIDs); err != nil {
		return nil, err
	}

	var postID int64
	if err := s.repo.Postgres.WithTx(ctx, func(tx *postgres.PostgresRepository) error {
		post, err := tx.Post.Create(ctx, model.Post{
			AuthorID:  authorID,
			Title:     title,
			Content:   content,
			Published: input.Published,
		})
		if err != nil {
			return err
		}
		postID = post.ID

		return tx.Post.SetTags(ctx, post.ID, tagIDs)
	}); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, ErrUnknownTag
		}
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.FindOwned(ctx, postID, authorID)
}

func (s *postService) FindPublished(ctx context.Context) ([]*model.FullPost, error) {
	posts, err := s.repo.Postgres.Post.FindPublished(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find published posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) FindAuthorPosts(ctx context.Context, authorID uuid.UUID) ([]*model.FullPost, error) {
	posts, err := s.repo.Postgres.Post.FindAuthorPosts(ctx, authorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find author(%s) posts from postgres: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) FindOwned(ctx context.Context, id int64, authorID uuid.UUID) (*model.FullPost, error) {
	post, err := s.repo.Postgres.Post.FindByIDAndAuthor(ctx, id, authorID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) of user(%s) from postgres: %s", id, authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) Update(ctx context.Context, id int64, authorID uuid.UUID, input dto.UpdatePostRequest) (*model.FullPost, error) {
	updates := make(map[string]interface{})
	if input.Title != nil {
		title := strings.TrimSpace(utils.Sanitize(*input.Title))
		if title == "" {
			return nil, ErrTitleRequired
		}
		updates["title"] = title
	}
	if input.Content != nil {
		content := utils.Sanitize(*input.Content)
		if strings.TrimSpace(content) == "" {
			return nil, ErrContentRequired
		}
		updates["content"] = content
	}
	if input.Published != nil {
		updates["published"] = *input.Published
	}

	var tagIDs []int64
	if input.TagIDs != nil {
		tagIDs = uniqueIDs(*input.TagIDs)
		if err := s.checkTags(ctx, tagIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Postgres.WithTx(ctx, func(tx *postgres.PostgresRepository) error {
		// An empty update still bumps updated_at and proves ownership.
		if _, err := tx.Post.Update(ctx, id, authorID, updates); err != nil {
			return err
		}

		if input.TagIDs != nil {
			return tx.Post.SetTags(ctx, id, tagIDs)
		}
		return nil
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		if postgres.IsForeignKeyViolation(err) {
			return nil, ErrUnknownTag
		}
		s.logger.Sugar().Errorf("failed to update post(%d) of user(%s): %s", id, authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.FindOwned(ctx, id, authorID)
}

func (s *postService) Delete(ctx context.Context, id int64, authorID uuid.UUID) error {
	deleted, err := s.repo.Postgres.Post.Delete(ctx, id, authorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) of user(%s) from postgres: %s", id, authorID.String(), err.Error())
		return ErrInternal
	}
	if !deleted {
		return ErrPostNotFound
	}

	if err := bumpPostCommentsVersion(ctx, s.repo.Redis.Default, id); err != nil {
		s.logger.Sugar().Errorf("failed to bump post(%d) comments version in redis: %s", id, err.Error())
	}

	return nil
}
