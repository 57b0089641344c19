package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentDepth is the deepest reply level that is stored and surfaced.
// Root comments have depth 0.
const MaxCommentDepth = 2

type Comment struct {
	ID        int64     `json:"id"`
	ParentID  *int64    `json:"parent_id"`
	PostID    int64     `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	Depth     int       `json:"depth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FullComment struct {
	Comment Comment    `json:"comment"`
	Author  UserAuthor `json:"author"`
}

type CommentNode struct {
	Comment Comment        `json:"comment"`
	Author  UserAuthor     `json:"author"`
	Replies []*CommentNode `json:"replies"`
}
