package service

import (
	"context"
	"testing"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_CreateWithTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "a@example.com", "A")

	golang, err := env.service.Tag.Create(ctx, "Go")
	require.NoError(t, err)
	rust, err := env.service.Tag.Create(ctx, "rust")
	require.NoError(t, err)

	post, err := env.service.Post.Create(ctx, a, dto.CreatePostRequest{
		Title:     "  Hello  ",
		Content:   "World",
		Published: true,
		TagIDs:    []int64{rust.ID, golang.ID, rust.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Post.Title)
	assert.Equal(t, "A", post.Author.Name)
	require.Len(t, post.Tags, 2)
	assert.Equal(t, "go", post.Tags[0].Name)
	assert.Equal(t, "rust", post.Tags[1].Name)
}

func TestPost_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "a@example.com", "A")

	_, err := env.service.Post.Create(ctx, a, dto.CreatePostRequest{Title: "   ", Content: "x"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = env.service.Post.Create(ctx, a, dto.CreatePostRequest{Title: "t", Content: "<script>x</script>"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = env.service.Post.Create(ctx, a, dto.CreatePostRequest{Title: "t", Content: "x", TagIDs: []int64{404}})
	require.ErrorIs(t, err, ErrInvalidArgument)

	posts, err := env.service.Post.FindAuthorPosts(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPost_ListingsAndOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "a@example.com", "A")
	b := env.register(t, "b@example.com", "B")

	draft, err := env.service.Post.Create(ctx, a, dto.CreatePostRequest{Title: "draft", Content: "x"})
	require.NoError(t, err)
	public, err := env.service.Post.Create(ctx, a, dto.CreatePostRequest{Title: "public", Content: "x", Published: true})
	require.NoError(t, err)

	published, err := env.service.Post.FindPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, public.Post.ID, published[0].Post.ID)

	mine, err := env.service.Post.FindAuthorPosts(ctx, a)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, public.Post.ID, mine[0].Post.ID, "newest first")

	_, err = env.service.Post.FindOwned(ctx, draft.Post.ID, b)
	require.ErrorIs(t, err, ErrNotFound)

	title := "stolen"
	_, err = env.service.Post.Update(ctx, draft.Post.ID, b, dto.UpdatePostRequest{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, env.service.Post.Delete(ctx, draft.Post.ID, b), ErrNotFound)

	owned, err := env.service.Post.FindOwned(ctx, draft.Post.ID, a)
	require.NoError(t, err)
	assert.Equal(t, "draft", owned.Post.Title)
}

func TestPost_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "a@example.com", "A")

	tag, err := env.service.Tag.Create(ctx, "news")
	require.NoError(t, err)

	post, err := env.service.Post.Create(ctx, a, dto.CreatePostRequest{Title: "old", Content: "body"})
	require.NoError(t, err)

	title := "new"
	published := true
	tags := []int64{tag.ID}
	updated, err := env.service.Post.Update(ctx, post.Post.ID, a, dto.UpdatePostRequest{
		Title:     &title,
		Published: &published,
		TagIDs:    &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Post.Title)
	assert.Equal(t, "body", updated.Post.Content)
	assert.True(t, updated.Post.Published)
	require.Len(t, updated.Tags, 1)
	assert.True(t, updated.Post.UpdatedAt.After(post.Post.UpdatedAt))

	empty := ""
	_, err = env.service.Post.Update(ctx, post.Post.ID, a, dto.UpdatePostRequest{Title: &empty})
	require.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, env.service.Post.Delete(ctx, post.Post.ID, a))
	require.ErrorIs(t, env.service.Post.Delete(ctx, post.Post.ID, a), ErrNotFound)
}

func TestTag_CreateListDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "a@example.com", "A")

	_, err := env.service.Tag.Create(ctx, "  ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	rust, err := env.service.Tag.Create(ctx, "rust")
	require.NoError(t, err)
	_, err = env.service.Tag.Create(ctx, " Rust ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	golang, err := env.service.Tag.Create(ctx, "go")
	require.NoError(t, err)

	_, err = env.service.Post.Create(ctx, a, dto.CreatePostRequest{Title: "t", Content: "c", TagIDs: []int64{rust.ID}})
	require.NoError(t, err)

	tags, err := env.service.Tag.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Tag.Name)
	assert.Zero(t, tags[0].Posts)
	assert.Equal(t, "rust", tags[1].Tag.Name)
	assert.Equal(t, int64(1), tags[1].Posts)

	require.ErrorIs(t, env.service.Tag.Delete(ctx, rust.ID), ErrConflict)
	require.NoError(t, env.service.Tag.Delete(ctx, golang.ID))
	require.ErrorIs(t, env.service.Tag.Delete(ctx, golang.ID), ErrNotFound)
}
