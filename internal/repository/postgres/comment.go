package postgres

import (
	"context"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/google/uuid"
)

type commentRepo struct {
	db DBTX
}

func newCommentRepo(db DBTX) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(parent_id, post_id, author_id, content, depth) VALUES($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at",
		comment.ParentID,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.Depth,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		"SELECT c.id, c.parent_id, c.post_id, c.author_id, c.content, c.depth, c.created_at, c.updated_at FROM comments c WHERE c.id = $1",
		id,
	).Scan(
		&comment.ID,
		&comment.ParentID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.Depth,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.parent_id, c.post_id, c.author_id, c.content, c.depth, c.created_at, c.updated_at, u.name
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.FullComment{}
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.ParentID,
			&comment.Comment.PostID,
			&comment.Comment.AuthorID,
			&comment.Comment.Content,
			&comment.Comment.Depth,
			&comment.Comment.CreatedAt,
			&comment.Comment.UpdatedAt,
			&comment.Author.Name,
		); err != nil {
			return nil, err
		}
		comment.Author.ID = comment.Comment.AuthorID

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) Update(ctx context.Context, id int64, authorID uuid.UUID, content string) (*model.FullComment, error) {
	var comment model.FullComment
	if err := r.db.QueryRow(
		ctx,
		`UPDATE comments c SET content = $1, updated_at = now()
		FROM users u
		WHERE c.id = $2 AND c.author_id = $3 AND u.id = c.author_id
		RETURNING c.id, c.parent_id, c.post_id, c.author_id, c.content, c.depth, c.created_at, c.updated_at, u.name`,
		content,
		id,
		authorID,
	).Scan(
		&comment.Comment.ID,
		&comment.Comment.ParentID,
		&comment.Comment.PostID,
		&comment.Comment.AuthorID,
		&comment.Comment.Content,
		&comment.Comment.Depth,
		&comment.Comment.CreatedAt,
		&comment.Comment.UpdatedAt,
		&comment.Author.Name,
	); err != nil {
		return nil, err
	}
	comment.Author.ID = comment.Comment.AuthorID

	return &comment, nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64, authorID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1 AND author_id = $2", id, authorID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
