package postgres

import (
	"context"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/google/uuid"
)

type userRepo struct {
	db DBTX
}

func newUserRepo(db DBTX) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO users(email, password_hash, name, bio) VALUES($1, $2, $3, $4) RETURNING id, created_at",
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Bio,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(ctx, "SELECT u.id, u.email, u.password_hash, u.name, u.bio, u.created_at FROM users u WHERE u.id = $1", id)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "SELECT u.id, u.email, u.password_hash, u.name, u.bio, u.created_at FROM users u WHERE u.email = $1", email)
}

func (r *userRepo) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Bio,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		u.id, u.name, u.bio, u.created_at,
		(SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.id),
		(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id)
		FROM users u
		WHERE u.id = $1`,
		id,
	).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.Followers,
		&profile.Following,
	); err != nil {
		return nil, err
	}

	return &profile, nil
}
