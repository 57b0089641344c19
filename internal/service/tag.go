package service

import (
	"context"
	"strings"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/postgres"
	"github.com/ShivaTejMatam/Blog-Platform/pkg/utils"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type tagService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newTagService(logger *zap.Logger, repo *repository.Repository) Tag {
	return &tagService{
		logger: logger,
		repo:   repo,
	}
}

// NormalizeTagName is the form tag names are stored and compared in.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(utils.Sanitize(name)))
}

func (s *tagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	name = NormalizeTagName(name)
	if name == "" {
		return nil, ErrTagNameRequired
	}

	existing, err := s.repo.Postgres.Tag.FindByName(ctx, name)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find tag(%s) from postgres: %s", name, err.Error())
		return nil, ErrInternal
	}
	if existing != nil {
		return nil, ErrTagAlreadyExists
	}

	tag, err := s.repo.Postgres.Tag.Create(ctx, name)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrTagAlreadyExists
		}
		s.logger.Sugar().Errorf("failed to create tag(%s) in postgres: %s", name, err.Error())
		return nil, ErrInternal
	}

	return tag, nil
}

func (s *tagService) FindAll(ctx context.Context) ([]*model.TagWithCount, error) {
	tags, err := s.repo.Postgres.Tag.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find tags from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return tags, nil
}

func (s *tagService) Delete(ctx context.Context, id int64) error {
	tag, err := s.repo.Postgres.Tag.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrTagNotFound
		}
		s.logger.Sugar().Errorf("failed to find tag(%d) from postgres: %s", id, err.Error())
		return ErrInternal
	}

	if tag.Posts > 0 {
		return ErrTagInUse
	}

	if err := s.repo.Postgres.Tag.Delete(ctx, id); err != nil {
		// A post may have picked the tag up since the count was read.
		if postgres.IsForeignKeyViolation(err) {
			return ErrTagInUse
		}
		s.logger.Sugar().Errorf("failed to delete tag(%d) from postgres: %s", id, err.Error())
		return ErrInternal
	}

	return nil
}
