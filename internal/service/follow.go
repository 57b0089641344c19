package service

import (
	"context"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/postgres"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const STARTED_FOLLOWING_MESSAGE = "started following you"

type followService struct {
	logger *zap.Logger
	repo   *repository.Repository
	events *eventPublisher
}

func newFollowService(logger *zap.Logger, repo *repository.Repository, events *eventPublisher) Follow {
	return &followService{
		logger: logger,
		repo:   repo,
		events: events,
	}
}

// Toggle flips the follow edge and reports whether the follower now follows
// the followee. Creating the edge and its notification commit together.
func (s *followService) Toggle(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	if followerID == followeeID {
		return false, ErrCannotFollowYourself
	}

	if _, err := s.repo.Postgres.User.FindByID(ctx, followeeID); err != nil {
		if err == pgx.ErrNoRows {
			return false, ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", followeeID.String(), err.Error())
		return false, ErrInternal
	}

	var (
		following    bool
		notification *model.Notification
	)
	if err := s.repo.Postgres.WithTx(ctx, func(tx *postgres.PostgresRepository) error {
		following, notification = false, nil

		deleted, err := tx.Follow.Delete(ctx, followerID, followeeID)
		if err != nil {
			return err
		}
		if deleted {
			return nil
		}

		created, err := tx.Follow.Insert(ctx, followerID, followeeID)
		if err != nil {
			return err
		}
		following = true
		if !created {
			// A concurrent toggle inserted the edge and owns its notification.
			return nil
		}

		notification, err = tx.Notification.Create(ctx, model.Notification{
			UserID:  followeeID,
			Type:    model.NotificationTypeFollow,
			Message: STARTED_FOLLOWING_MESSAGE,
			ActorID: &followerID,
		})
		return err
	}); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return false, ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to toggle follow of user(%s) by user(%s): %s", followeeID.String(), followerID.String(), err.Error())
		return false, ErrInternal
	}

	if err := s.repo.Redis.Default.Del(
		ctx,
		redisrepo.ProfileKey(followerID.String()),
		redisrepo.ProfileKey(followeeID.String()),
	).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete profiles of users(%s, %s) from redis: %s", followerID.String(), followeeID.String(), err.Error())
	}

	if notification != nil {
		s.events.notificationsCreated(ctx, []*model.Notification{notification})
	}

	return following, nil
}

func (s *followService) Status(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	following, err := s.repo.Postgres.Follow.Exists(ctx, followerID, followeeID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow of user(%s) by user(%s): %s", followeeID.String(), followerID.String(), err.Error())
		return false, ErrInternal
	}

	return following, nil
}
