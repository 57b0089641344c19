package postgres

import (
	"context"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/google/uuid"
)

type notificationRepo struct {
	db DBTX
}

func newNotificationRepo(db DBTX) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	notification.Read = false
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO notifications(user_id, type, message, actor_id, post_id) VALUES($1, $2, $3, $4, $5) RETURNING id, created_at",
		notification.UserID,
		string(notification.Type),
		notification.Message,
		notification.ActorID,
		notification.PostID,
	).Scan(&notification.ID, &notification.CreatedAt); err != nil {
		return nil, err
	}

	return &notification, nil
}

func (r *notificationRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.FullNotification, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		n.id, n.user_id, n.type, n.message, n.actor_id, n.post_id, n.read, n.created_at, a.name
		FROM notifications n
		LEFT JOIN users a ON n.actor_id = a.id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC, n.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*model.FullNotification{}
	for rows.Next() {
		var (
			n         model.Notification
			kind      string
			actorName *string
		)
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&kind,
			&n.Message,
			&n.ActorID,
			&n.PostID,
			&n.Read,
			&n.CreatedAt,
			&actorName,
		); err != nil {
			return nil, err
		}
		n.Type = model.NotificationType(kind)

		full := &model.FullNotification{Notification: n}
		if n.ActorID != nil && actorName != nil {
			full.Actor = &model.UserAuthor{ID: *n.ActorID, Name: *actorName}
		}

		notifications = append(notifications, full)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false",
		userID,
	).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "UPDATE notifications SET read = true WHERE user_id = $1 AND read = false", userID)
	return err
}
