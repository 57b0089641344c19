package service

import (
	"context"
	"time"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type userService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	cacheTTL time.Duration
}

func newUserService(logger *zap.Logger, repo *repository.Repository, cacheTTL time.Duration) User {
	return &userService{
		logger:   logger,
		repo:     repo,
		cacheTTL: cacheTTL,
	}
}

func (s *userService) FindProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	cachedProfile, err := redisrepo.Get[model.Profile](s.repo.Redis.Default, ctx, redisrepo.ProfileKey(id.String()))
	if err == nil {
		if cachedProfile == nil {
			return nil, ErrUserNotFound
		}
		return cachedProfile, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) profile from redis: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	profile, err := s.repo.Postgres.User.FindProfile(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find user(%s) profile from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.ProfileKey(id.String()), profile, s.cacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) profile in redis: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if profile == nil {
		return nil, ErrUserNotFound
	}

	return profile, nil
}
