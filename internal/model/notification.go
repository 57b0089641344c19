package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeFollow  NotificationType = "follow"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	ActorID   *uuid.UUID       `json:"actor_id"`
	PostID    *int64           `json:"post_id"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

type FullNotification struct {
	Notification Notification `json:"notification"`
	Actor        *UserAuthor  `json:"actor"`
}
