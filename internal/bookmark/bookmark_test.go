package bookmark

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/FinFellows/Server/internal/policy"
	"github.com/FinFellows/Server/internal/post"
)

type key struct {
	target   Target
	userID   uuid.UUID
	targetID int64
}

type fakeStore struct {
	rows    map[key]bool
	targets map[Target]map[int64]bool // existing target rows
}

func newFakeBookmarkStore() *fakeStore {
	return &fakeStore{
		rows: map[key]bool{},
		targets: map[Target]map[int64]bool{
			TargetProduct: {},
			TargetCMA:     {},
			TargetPolicy:  {},
			TargetPost:    {},
		},
	}
}

func (s *fakeStore) Add(_ context.Context, target Target, userID uuid.UUID, targetID int64) error {
	if !s.targets[target][targetID] {
		return ErrTargetNotFound
	}
	s.rows[key{target, userID, targetID}] = true
	return nil
}

func (s *fakeStore) Remove(_ context.Context, target Target, userID uuid.UUID, targetID int64) error {
	k := key{target, userID, targetID}
	if !s.rows[k] {
		return ErrBookmarkNotFound
	}
	delete(s.rows, k)
	return nil
}

func (s *fakeStore) ProductBookmarks(_ context.Context, _ uuid.UUID) (ProductBookmarks, error) {
	return ProductBookmarks{}, nil
}

func (s *fakeStore) PolicyBookmarks(_ context.Context, _ uuid.UUID) ([]policy.PolicyInfo, error) {
	return nil, nil
}

func (s *fakeStore) PostBookmarks(_ context.Context, _ uuid.UUID) ([]post.Post, error) {
	return nil, nil
}

func (s *fakeStore) RemoveAllProductBookmarks(_ context.Context) error {
	for k := range s.rows {
		if k.target == TargetProduct || k.target == TargetCMA {
			delete(s.rows, k)
		}
	}
	return nil
}

type fakePostStore struct {
	posts map[int64]post.Post
}

func (s fakePostStore) FindByID(_ context.Context, id int64, contentType post.ContentType) (*post.Post, error) {
	p, ok := s.posts[id]
	if !ok || p.ContentType != contentType {
		return nil, nil
	}
	return &p, nil
}

func newTestService() (*Service, *fakeStore, fakePostStore) {
	store := newFakeBookmarkStore()
	posts := fakePostStore{posts: map[int64]post.Post{
		7: {ID: 7, ContentType: post.ContentTypeNews, Title: "rates up"},
	}}
	return NewService(store, posts), store, posts
}

func TestAddAndRemoveProduct(t *testing.T) {
	svc, store, _ := newTestService()
	userID := uuid.New()
	store.targets[TargetProduct][1] = true

	msg, err := svc.AddProduct(context.Background(), userID, 1)
	require.NoError(t, err)
	require.Equal(t, "Bookmark added.", msg.Message)
	require.True(t, store.rows[key{TargetProduct, userID, 1}])

	msg, err = svc.RemoveProduct(context.Background(), userID, 1)
	require.NoError(t, err)
	require.Equal(t, "Bookmark removed.", msg.Message)

	_, err = svc.RemoveProduct(context.Background(), userID, 1)
	require.ErrorIs(t, err, ErrBookmarkNotFound)
}

func TestAddUnknownTarget(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddProduct(context.Background(), uuid.New(), 404)
	require.ErrorIs(t, err, ErrTargetNotFound)

	_, err = svc.AddCMA(context.Background(), uuid.New(), 404)
	require.ErrorIs(t, err, ErrTargetNotFound)

	_, err = svc.AddPolicy(context.Background(), uuid.New(), 404)
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestAddPostChecksContentType(t *testing.T) {
	svc, store, _ := newTestService()
	userID := uuid.New()
	store.targets[TargetPost][7] = true

	// post 7 is NEWS; asking for EDU_CONTENT is a missing target
	_, err := svc.AddPost(context.Background(), userID, 7, post.ContentTypeEdu)
	require.ErrorIs(t, err, ErrTargetNotFound)

	msg, err := svc.AddPost(context.Background(), userID, 7, post.ContentTypeNews)
	require.NoError(t, err)
	require.Equal(t, "Bookmark added.", msg.Message)
}

func TestRemovePostChecksContentType(t *testing.T) {
	svc, store, _ := newTestService()
	userID := uuid.New()
	store.targets[TargetPost][7] = true

	_, err := svc.AddPost(context.Background(), userID, 7, post.ContentTypeNews)
	require.NoError(t, err)

	_, err = svc.RemovePost(context.Background(), userID, 7, post.ContentTypeEdu)
	require.ErrorIs(t, err, ErrTargetNotFound)

	msg, err := svc.RemovePost(context.Background(), userID, 7, post.ContentTypeNews)
	require.NoError(t, err)
	require.Equal(t, "Bookmark removed.", msg.Message)
}

func TestRemoveAllProductBookmarks(t *testing.T) {
	svc, store, _ := newTestService()
	userID := uuid.New()
	store.targets[TargetProduct][1] = true
	store.targets[TargetCMA][2] = true
	store.targets[TargetPolicy][3] = true

	_, err := svc.AddProduct(context.Background(), userID, 1)
	require.NoError(t, err)
	_, err = svc.AddCMA(context.Background(), userID, 2)
	require.NoError(t, err)
	_, err = svc.AddPolicy(context.Background(), userID, 3)
	require.NoError(t, err)

	msg, err := svc.RemoveAllProductBookmarks(context.Background())
	require.NoError(t, err)
	require.Equal(t, "All bookmarks deleted successfully.", msg.Message)

	// policy bookmarks are out of scope for the bulk delete
	require.False(t, store.rows[key{TargetProduct, userID, 1}])
	require.False(t, store.rows[key{TargetCMA, userID, 2}])
	require.True(t, store.rows[key{TargetPolicy, userID, 3}])
}
