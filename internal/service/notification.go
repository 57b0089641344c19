package service

import (
	"context"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type notificationService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository) Notification {
	return &notificationService{
		logger: logger,
		repo:   repo,
	}
}

func (s *notificationService) FindUserNotifications(ctx context.Context, userID uuid.UUID) ([]*model.FullNotification, error) {
	notifications, err := s.repo.Postgres.Notification.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) notifications from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return notifications, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.Postgres.Notification.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count user(%s) unread notifications from postgres: %s", userID.String(), err.Error())
		return 0, ErrInternal
	}

	return count, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Postgres.Notification.MarkAllRead(ctx, userID); err != nil {
		s.logger.Sugar().Errorf("failed to mark user(%s) notifications as read in postgres: %s", userID.String(), err.Error())
		return ErrInternal
	}

	return nil
}
