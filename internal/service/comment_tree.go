package service

import (
	"sort"

	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
)

// BuildCommentTree shapes a post's flat comments into root comments, newest
// first, each carrying up to model.MaxCommentDepth levels of replies. Replies
// keep their input order. Comments deeper than that, and comments whose parent
// is missing from the input, are left out.
func BuildCommentTree(comments []*model.FullComment) []*model.CommentNode {
	var roots []*model.FullComment
	children := make(map[int64][]*model.FullComment)
	seen := make(map[int64]struct{}, len(comments))

	for _, c := range comments {
		if c == nil {
			continue
		}
		if _, dup := seen[c.Comment.ID]; dup {
			continue
		}
		seen[c.Comment.ID] = struct{}{}

		if c.Comment.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		parentID := *c.Comment.ParentID
		children[parentID] = append(children[parentID], c)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		a, b := roots[i].Comment, roots[j].Comment
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	tree := make([]*model.CommentNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, newCommentNode(root, children, model.MaxCommentDepth))
	}

	return tree
}

func newCommentNode(c *model.FullComment, children map[int64][]*model.FullComment, levels int) *model.CommentNode {
	node := &model.CommentNode{
		Comment: c.Comment,
		Author:  c.Author,
		Replies: []*model.CommentNode{},
	}
	if levels == 0 {
		return node
	}

	for _, child := range children[c.Comment.ID] {
		node.Replies = append(node.Replies, newCommentNode(child, children, levels-1))
	}

	return node
}
