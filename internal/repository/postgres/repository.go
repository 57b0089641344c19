package postgres

import (
	"context"
	"errors"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrFieldsNotAllowedToUpdate = errors.New("fields not allowed to update")

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxBeginner is a DBTX that can open transactions.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	SetTags(ctx context.Context, postID int64, tagIDs []int64) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindByIDAndAuthor(ctx context.Context, id int64, authorID uuid.UUID) (*model.FullPost, error)
	FindPublished(ctx context.Context) ([]*model.FullPost, error)
	FindAuthorPosts(ctx context.Context, authorID uuid.UUID) ([]*model.FullPost, error)
	Update(ctx context.Context, id int64, authorID uuid.UUID, updates map[string]interface{}) (*model.Post, error)
	Delete(ctx context.Context, id int64, authorID uuid.UUID) (bool, error)
}

type Tag interface {
	Create(ctx context.Context, name string) (*model.Tag, error)
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	FindByID(ctx context.Context, id int64) (*model.TagWithCount, error)
	FindAll(ctx context.Context) ([]*model.TagWithCount, error)
	CountExisting(ctx context.Context, ids []int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
	Update(ctx context.Context, id int64, authorID uuid.UUID, content string) (*model.FullComment, error)
	Delete(ctx context.Context, id int64, authorID uuid.UUID) (bool, error)
}

type Follow interface {
	Insert(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
}

type Notification interface {
	Create(ctx context.Context, notification model.Notification) (*model.Notification, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.FullNotification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// TxFunc runs fn with a repository bound to a single transaction.
type TxFunc func(ctx context.Context, fn func(repo *PostgresRepository) error) error

type PostgresRepository struct {
	User
	Post
	Tag
	Comment
	Follow
	Notification
	Tx TxFunc
}

func New(db TxBeginner) *PostgresRepository {
	repo := bind(db)
	repo.Tx = func(ctx context.Context, fn func(repo *PostgresRepository) error) error {
		return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
			return fn(bind(tx))
		})
	}
	return repo
}

func bind(db DBTX) *PostgresRepository {
	return &PostgresRepository{
		User:         newUserRepo(db),
		Post:         newPostRepo(db),
		Tag:          newTagRepo(db),
		Comment:      newCommentRepo(db),
		Follow:       newFollowRepo(db),
		Notification: newNotificationRepo(db),
	}
}

// WithTx commits when fn returns nil and rolls back otherwise. Without a
// configured TxFunc, fn runs against the receiver directly.
func (r *PostgresRepository) WithTx(ctx context.Context, fn func(repo *PostgresRepository) error) error {
	if r.Tx == nil {
		return fn(r)
	}
	return r.Tx(ctx, fn)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func IsUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
