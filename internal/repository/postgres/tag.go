package postgres

import (
	"context"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
)

type tagRepo struct {
	db DBTX
}

func newTagRepo(db DBTX) Tag {
	return &tagRepo{
		db: db,
	}
}

func (r *tagRepo) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag := model.Tag{Name: name}
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO tags(name) VALUES($1) RETURNING id, created_at",
		name,
	).Scan(&tag.ID, &tag.CreatedAt); err != nil {
		return nil, err
	}

	return &tag, nil
}

func (r *tagRepo) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.QueryRow(
		ctx,
		"SELECT t.id, t.name, t.created_at FROM tags t WHERE t.name = $1",
		name,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
		return nil, err
	}

	return &tag, nil
}

func (r *tagRepo) FindByID(ctx context.Context, id int64) (*model.TagWithCount, error) {
	var tag model.TagWithCount
	if err := r.db.QueryRow(
		ctx,
		`SELECT t.id, t.name, t.created_at, (SELECT COUNT(*) FROM post_tags pt WHERE pt.tag_id = t.id)
		FROM tags t
		WHERE t.id = $1`,
		id,
	).Scan(&tag.Tag.ID, &tag.Tag.Name, &tag.Tag.CreatedAt, &tag.Posts); err != nil {
		return nil, err
	}

	return &tag, nil
}

func (r *tagRepo) FindAll(ctx context.Context) ([]*model.TagWithCount, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT t.id, t.name, t.created_at, COUNT(pt.post_id)
		FROM tags t
		LEFT JOIN post_tags pt ON t.id = pt.tag_id
		GROUP BY t.id
		ORDER BY t.name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*model.TagWithCount{}
	for rows.Next() {
		var tag model.TagWithCount
		if err := rows.Scan(&tag.Tag.ID, &tag.Tag.Name, &tag.Tag.CreatedAt, &tag.Posts); err != nil {
			return nil, err
		}

		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *tagRepo) CountExisting(ctx context.Context, ids []int64) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tags WHERE id = ANY($1)", ids).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *tagRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM tags WHERE id = $1", id)
	return err
}
