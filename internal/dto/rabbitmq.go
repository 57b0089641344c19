package dto

import (
	"time"

	"github.com/google/uuid"
)

type MQNotificationCreatedMsg struct {
	NotificationID int64      `json:"notification_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Type           string     `json:"type"`
	Message        string     `json:"message"`
	ActorID        *uuid.UUID `json:"actor_id"`
	PostID         *int64     `json:"post_id"`
	CreatedAt      time.Time  `json:"created_at"`
}
