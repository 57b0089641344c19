package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/ShivaTejMatam/Blog-Platform/internal/model"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/postgres"
	"github.com/ShivaTejMatam/Blog-Platform/internal/repository/redisrepo"
	"github.com/ShivaTejMatam/Blog-Platform/pkg/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type followEdge struct {
	follower uuid.UUID
	followee uuid.UUID
}

type memState struct {
	users         map[uuid.UUID]model.User
	posts         map[int64]model.Post
	postTags      map[int64][]int64
	tags          map[int64]model.Tag
	comments      map[int64]model.Comment
	follows       map[followEdge]struct{}
	notifications map[int64]model.Notification
}

func newMemState() *memState {
	return &memState{
		users:         make(map[uuid.UUID]model.User),
		posts:         make(map[int64]model.Post),
		postTags:      make(map[int64][]int64),
		tags:          make(map[int64]model.Tag),
		comments:      make(map[int64]model.Comment),
		follows:       make(map[followEdge]struct{}),
		notifications: make(map[int64]model.Notification),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.posts {
		c.posts[k] = v
	}
	for k, v := range s.postTags {
		c.postTags[k] = append([]int64(nil), v...)
	}
	for k, v := range s.tags {
		c.tags[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	for k := range s.follows {
		c.follows[k] = struct{}{}
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	return c
}

// memStore is an in-memory stand-in for PostgreSQL. Transactions snapshot the
// whole state and restore it when the callback fails.
type memStore struct {
	mu    sync.Mutex
	state *memState
	seq   int64
	clock time.Time

	// failNotifications makes every notification insert fail.
	failNotifications error
	txCount           int
}

func newMemStore() *memStore {
	return &memStore{
		state: newMemState(),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) next() (int64, time.Time) {
	m.seq++
	m.clock = m.clock.Add(time.Second)
	return m.seq, m.clock
}

func (m *memStore) repository() *postgres.PostgresRepository {
	repo := &postgres.PostgresRepository{
		User:         &memUsers{m},
		Post:         &memPosts{m},
		Tag:          &memTags{m},
		Comment:      &memComments{m},
		Follow:       &memFollows{m},
		Notification: &memNotifications{m},
	}
	repo.Tx = func(ctx context.Context, fn func(repo *postgres.PostgresRepository) error) error {
		m.mu.Lock()
		snapshot := m.state.clone()
		m.txCount++
		m.mu.Unlock()

		if err := fn(repo); err != nil {
			m.mu.Lock()
			m.state = snapshot
			m.mu.Unlock()
			return err
		}
		return nil
	}
	return repo
}

var errFKViolation = &pgconn.PgError{Code: "23503"}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

type memUsers struct{ m *memStore }

func (r *memUsers) Create(ctx context.Context, user model.User) (*model.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.state.users {
		if u.Email == user.Email {
			return nil, uniqueViolation()
		}
	}
	_, now := r.m.next()
	user.ID = uuid.New()
	user.CreatedAt = now
	r.m.state.users[user.ID] = user
	return &user, nil
}

func (r *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.state.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUsers) FindProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.state.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	profile := &model.Profile{ID: u.ID, Name: u.Name, Bio: u.Bio, CreatedAt: u.CreatedAt}
	for edge := range r.m.state.follows {
		if edge.followee == id {
			profile.Followers++
		}
		if edge.follower == id {
			profile.Following++
		}
	}
	return profile, nil
}

type memPosts struct{ m *memStore }

func (r *memPosts) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.users[post.AuthorID]; !ok {
		return nil, errFKViolation
	}
	post.ID, post.CreatedAt = r.m.next()
	post.UpdatedAt = post.CreatedAt
	r.m.state.posts[post.ID] = post
	return &post, nil
}

func (r *memPosts) SetTags(ctx context.Context, postID int64, tagIDs []int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, id := range tagIDs {
		if _, ok := r.m.state.tags[id]; !ok {
			return errFKViolation
		}
	}
	r.m.state.postTags[postID] = append([]int64(nil), tagIDs...)
	return nil
}

func (r *memPosts) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.state.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (r *memPosts) full(p model.Post) *model.FullPost {
	full := &model.FullPost{
		Post:   p,
		Author: model.UserAuthor{ID: p.AuthorID, Name: r.m.state.users[p.AuthorID].Name},
		Tags:   []*model.Tag{},
	}
	for _, id := range r.m.state.postTags[p.ID] {
		tag := r.m.state.tags[id]
		full.Tags = append(full.Tags, &tag)
	}
	sort.Slice(full.Tags, func(i, j int) bool { return full.Tags[i].Name < full.Tags[j].Name })
	return full
}

func (r *memPosts) FindByIDAndAuthor(ctx context.Context, id int64, authorID uuid.UUID) (*model.FullPost, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.state.posts[id]
	if !ok || p.AuthorID != authorID {
		return nil, pgx.ErrNoRows
	}
	return r.full(p), nil
}

func (r *memPosts) list(keep func(model.Post) bool) []*model.FullPost {
	var posts []*model.FullPost
	for _, p := range r.m.state.posts {
		if keep(p) {
			posts = append(posts, r.full(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Post.ID > posts[j].Post.ID })
	return posts
}

func (r *memPosts) FindPublished(ctx context.Context) ([]*model.FullPost, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.list(func(p model.Post) bool { return p.Published }), nil
}

func (r *memPosts) FindAuthorPosts(ctx context.Context, authorID uuid.UUID) ([]*model.FullPost, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.list(func(p model.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *memPosts) Update(ctx context.Context, id int64, authorID uuid.UUID, updates map[string]interface{}) (*model.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.state.posts[id]
	if !ok || p.AuthorID != authorID {
		return nil, pgx.ErrNoRows
	}
	for field, value := range updates {
		switch field {
		case "title":
			p.Title = value.(string)
		case "content":
			p.Content = value.(string)
		case "published":
			p.Published = value.(bool)
		default:
			return nil, postgres.ErrFieldsNotAllowedToUpdate
		}
	}
	_, p.UpdatedAt = r.m.next()
	r.m.state.posts[id] = p
	return &p, nil
}

func (r *memPosts) Delete(ctx context.Context, id int64, authorID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.state.posts[id]
	if !ok || p.AuthorID != authorID {
		return false, nil
	}
	delete(r.m.state.posts, id)
	delete(r.m.state.postTags, id)
	for cid, c := range r.m.state.comments {
		if c.PostID == id {
			delete(r.m.state.comments, cid)
		}
	}
	return true, nil
}

type memTags struct{ m *memStore }

func (r *memTags) Create(ctx context.Context, name string) (*model.Tag, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.state.tags {
		if t.Name == name {
			return nil, uniqueViolation()
		}
	}
	var tag model.Tag
	tag.ID, tag.CreatedAt = r.m.next()
	tag.Name = name
	r.m.state.tags[tag.ID] = tag
	return &tag, nil
}

func (r *memTags) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.state.tags {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memTags) usage(id int64) int64 {
	var n int64
	for _, ids := range r.m.state.postTags {
		for _, tagID := range ids {
			if tagID == id {
				n++
			}
		}
	}
	return n
}

func (r *memTags) FindByID(ctx context.Context, id int64) (*model.TagWithCount, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.state.tags[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &model.TagWithCount{Tag: t, Posts: r.usage(id)}, nil
}

func (r *memTags) FindAll(ctx context.Context) ([]*model.TagWithCount, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	tags := []*model.TagWithCount{}
	for id, t := range r.m.state.tags {
		tags = append(tags, &model.TagWithCount{Tag: t, Posts: r.usage(id)})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Tag.Name < tags[j].Tag.Name })
	return tags, nil
}

func (r *memTags) CountExisting(ctx context.Context, ids []int64) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := 0
	for _, id := range ids {
		if _, ok := r.m.state.tags[id]; ok {
			n++
		}
	}
	return n, nil
}

func (r *memTags) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.usage(id) > 0 {
		return errFKViolation
	}
	delete(r.m.state.tags, id)
	return nil
}

type memComments struct{ m *memStore }

func (r *memComments) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.posts[comment.PostID]; !ok {
		return nil, errFKViolation
	}
	if comment.ParentID != nil {
		parent, ok := r.m.state.comments[*comment.ParentID]
		if !ok || parent.PostID != comment.PostID {
			return nil, errFKViolation
		}
	}
	comment.ID, comment.CreatedAt = r.m.next()
	comment.UpdatedAt = comment.CreatedAt
	r.m.state.comments[comment.ID] = comment
	return &comment, nil
}

func (r *memComments) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.state.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (r *memComments) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	comments := []*model.FullComment{}
	for _, c := range r.m.state.comments {
		if c.PostID == postID {
			author := r.m.state.users[c.AuthorID]
			comments = append(comments, &model.FullComment{
				Comment: c,
				Author:  model.UserAuthor{ID: author.ID, Name: author.Name},
			})
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Comment.ID > comments[j].Comment.ID })
	return comments, nil
}

func (r *memComments) Update(ctx context.Context, id int64, authorID uuid.UUID, content string) (*model.FullComment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.state.comments[id]
	if !ok || c.AuthorID != authorID {
		return nil, pgx.ErrNoRows
	}
	c.Content = content
	_, c.UpdatedAt = r.m.next()
	r.m.state.comments[id] = c
	author := r.m.state.users[authorID]
	return &model.FullComment{Comment: c, Author: model.UserAuthor{ID: author.ID, Name: author.Name}}, nil
}

func (r *memComments) Delete(ctx context.Context, id int64, authorID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.state.comments[id]
	if !ok || c.AuthorID != authorID {
		return false, nil
	}
	r.deleteTree(id)
	return true, nil
}

func (r *memComments) deleteTree(id int64) {
	delete(r.m.state.comments, id)
	for cid, c := range r.m.state.comments {
		if c.ParentID != nil && *c.ParentID == id {
			r.deleteTree(cid)
		}
	}
}

type memFollows struct{ m *memStore }

func (r *memFollows) Insert(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.users[followeeID]; !ok {
		return false, errFKViolation
	}
	edge := followEdge{followerID, followeeID}
	if _, ok := r.m.state.follows[edge]; ok {
		return false, nil
	}
	r.m.state.follows[edge] = struct{}{}
	return true, nil
}

func (r *memFollows) Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	edge := followEdge{followerID, followeeID}
	if _, ok := r.m.state.follows[edge]; !ok {
		return false, nil
	}
	delete(r.m.state.follows, edge)
	return true, nil
}

func (r *memFollows) Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	_, ok := r.m.state.follows[followEdge{followerID, followeeID}]
	return ok, nil
}

type memNotifications struct{ m *memStore }

func (r *memNotifications) Create(ctx context.Context, n model.Notification) (*model.Notification, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failNotifications != nil {
		return nil, r.m.failNotifications
	}
	n.ID, n.CreatedAt = r.m.next()
	r.m.state.notifications[n.ID] = n
	return &n, nil
}

func (r *memNotifications) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.FullNotification, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	notifications := []*model.FullNotification{}
	for _, n := range r.m.state.notifications {
		if n.UserID != userID {
			continue
		}
		full := &model.FullNotification{Notification: n}
		if n.ActorID != nil {
			if actor, ok := r.m.state.users[*n.ActorID]; ok {
				full.Actor = &model.UserAuthor{ID: actor.ID, Name: actor.Name}
			}
		}
		notifications = append(notifications, full)
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].Notification.ID > notifications[j].Notification.ID
	})
	return notifications, nil
}

func (r *memNotifications) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var count int64
	for _, n := range r.m.state.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memNotifications) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, n := range r.m.state.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.m.state.notifications[id] = n
		}
	}
	return nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []interface{}
	err      error
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, queue string, v interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, v)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

var errStoreDown = errors.New("store down")

type testEnv struct {
	store     *memStore
	redis     *miniredis.Miniredis
	publisher *recordingPublisher
	service   *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := newMemStore()
	repo := &repository.Repository{
		Postgres: store.repository(),
		Redis:    redisrepo.New(rdb),
	}
	publisher := &recordingPublisher{}

	svc := New(zap.NewNop(), repo, Options{
		Tokens:    utils.NewJWTManager([]byte("test-secret"), time.Hour),
		Publisher: publisher,
		CacheTTL:  time.Minute,
	})

	return &testEnv{
		store:     store,
		redis:     mr,
		publisher: publisher,
		service:   svc,
	}
}

// register creates a user through the auth service and returns its id.
func (e *testEnv) register(t *testing.T, email string, name string) uuid.UUID {
	t.Helper()

	token, err := e.service.Auth.Register(context.Background(), dto.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     name,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}

	claims, err := e.service.Auth.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate %s: %v", email, err)
	}

	return claims.UserID
}
