package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const fullPostSelect = `SELECT
	p.id, p.author_id, p.title, p.content, p.published, p.created_at, p.updated_at, u.name, t.id, t.name, t.created_at
	FROM posts p
	JOIN users u ON p.author_id = u.id
	LEFT JOIN post_tags pt ON p.id = pt.post_id
	LEFT JOIN tags t ON pt.tag_id = t.id`

type postRepo struct {
	db DBTX
}

func newPostRepo(db DBTX) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, title, content, published) VALUES($1, $2, $3, $4) RETURNING id, created_at, updated_at",
		post.AuthorID,
		post.Title,
		post.Content,
		post.Published,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) SetTags(ctx context.Context, postID int64, tagIDs []int64) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM post_tags WHERE post_id = $1", postID); err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	_, err := r.db.Exec(
		ctx,
		"INSERT INTO post_tags(post_id, tag_id) SELECT $1, UNNEST($2::BIGINT[]) ON CONFLICT DO NOTHING",
		postID,
		tagIDs,
	)
	return err
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		"SELECT p.id, p.author_id, p.title, p.content, p.published, p.created_at, p.updated_at FROM posts p WHERE p.id = $1",
		id,
	).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByIDAndAuthor(ctx context.Context, id int64, authorID uuid.UUID) (*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		fullPostSelect+`
		WHERE p.id = $1 AND p.author_id = $2
		ORDER BY t.name`,
		id,
		authorID,
	)
	if err != nil {
		return nil, err
	}

	posts, err := scanFullPosts(rows)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}

	return posts[0], nil
}

func (r *postRepo) FindPublished(ctx context.Context) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		fullPostSelect+`
		WHERE p.published = true
		ORDER BY p.created_at DESC, p.id DESC, t.name`,
	)
	if err != nil {
		return nil, err
	}

	return scanFullPosts(rows)
}

func (r *postRepo) FindAuthorPosts(ctx context.Context, authorID uuid.UUID) ([]*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		fullPostSelect+`
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC, t.name`,
		authorID,
	)
	if err != nil {
		return nil, err
	}

	return scanFullPosts(rows)
}

// scanFullPosts folds one row per (post, tag) into posts, keeping row order.
func scanFullPosts(rows pgx.Rows) ([]*model.FullPost, error) {
	defer rows.Close()

	var posts []*model.FullPost
	postMap := make(map[int64]*model.FullPost)
	for rows.Next() {
		var (
			post         model.Post
			authorName   string
			tagID        *int64
			tagName      *string
			tagCreatedAt *time.Time
		)
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Content,
			&post.Published,
			&post.CreatedAt,
			&post.UpdatedAt,
			&authorName,
			&tagID,
			&tagName,
			&tagCreatedAt,
		); err != nil {
			return nil, err
		}

		fullPost, exists := postMap[post.ID]
		if !exists {
			fullPost = &model.FullPost{
				Post: post,
				Author: model.UserAuthor{
					ID:   post.AuthorID,
					Name: authorName,
				},
				Tags: []*model.Tag{},
			}
			postMap[post.ID] = fullPost
			posts = append(posts, fullPost)
		}

		if tagID != nil && tagName != nil {
			tag := &model.Tag{ID: *tagID, Name: *tagName}
			if tagCreatedAt != nil {
				tag.CreatedAt = *tagCreatedAt
			}
			fullPost.Tags = append(fullPost.Tags, tag)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Update(ctx context.Context, id int64, authorID uuid.UUID, updates map[string]interface{}) (*model.Post, error) {
	allowedFields := []string{"title", "content", "published"}
	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			return nil, ErrFieldsNotAllowedToUpdate
		}
	}

	query := "UPDATE posts SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query += "updated_at = now() WHERE id = $" + strconv.Itoa(i) + " AND author_id = $" + strconv.Itoa(i+1) +
		" RETURNING id, author_id, title, content, published, created_at, updated_at"
	args = append(args, id, authorID)

	var post model.Post
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64, authorID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1 AND author_id = $2", id, authorID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
