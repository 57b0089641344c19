package postgres

import (
	"context"

	"github.com/google/uuid"
)

type followRepo struct {
	db DBTX
}

func newFollowRepo(db DBTX) Follow {
	return &followRepo{
		db: db,
	}
}

// Insert reports whether a new edge was created; an existing edge is left as is.
func (r *followRepo) Insert(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(follower_id, followee_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		followerID,
		followeeID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func (r *followRepo) Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2", followerID, followeeID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *followRepo) Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)",
		followerID,
		followeeID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
