package service

import (
	"context"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/rabbitmq"
	"go.uber.org/zap"
)

type eventPublisher struct {
	logger    *zap.Logger
	publisher Publisher
}

func newEventPublisher(logger *zap.Logger, publisher Publisher) *eventPublisher {
	return &eventPublisher{
		logger:    logger,
		publisher: publisher,
	}
}

// notificationsCreated runs after the owning transaction has committed.
// Broker failures are logged only; the notification rows are already durable.
func (p *eventPublisher) notificationsCreated(ctx context.Context, notifications []*model.Notification) {
	if p.publisher == nil {
		return
	}

	for _, n := range notifications {
		msg := dto.MQNotificationCreatedMsg{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Type:           string(n.Type),
			Message:        n.Message,
			ActorID:        n.ActorID,
			PostID:         n.PostID,
			CreatedAt:      n.CreatedAt,
		}
		if err := p.publisher.PublishJSON(ctx, rabbitmq.NOTIFICATION_CREATED_QUEUE, msg); err != nil {
			p.logger.Sugar().Errorf("failed to publish notification(%d) created event: %s", n.ID, err.Error())
		}
	}
}
