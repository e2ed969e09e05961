package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/apiserver/internal/store"
	"github.com/inkwell-blog/apiserver/types"
)

type fakePostRepo struct {
	posts       map[string]types.Post
	listParams  store.ListPostsParams
	lastPatch   store.PostPatch
	patchedID   string
	deletedID   string
	statsCalled bool
}

func newFakePostRepo(posts ...types.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[string]types.Post)}
	for _, post := range posts {
		repo.posts[post.ID] = post
	}
	return repo
}

func (f *fakePostRepo) Create(_ context.Context, post types.Post) (types.Post, error) {
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakePostRepo) CreateMany(_ context.Context, posts []types.Post) (int64, error) {
	return int64(len(posts)), nil
}

func (f *fakePostRepo) List(_ context.Context, params store.ListPostsParams) ([]types.Post, int64, error) {
	f.listParams = params
	return nil, 0, nil
}

func (f *fakePostRepo) Get(_ context.Context, id string) (types.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (f *fakePostRepo) GetDetail(_ context.Context, id string) (types.PostDetail, error) {
	post, ok := f.posts[id]
	if !ok {
		return types.PostDetail{}, store.ErrNotFound
	}
	return types.PostDetail{Post: post}, nil
}

func (f *fakePostRepo) Update(_ context.Context, id string, patch store.PostPatch) (types.Post, error) {
	f.patchedID = id
	f.lastPatch = patch
	return f.posts[id], nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}

func (f *fakePostRepo) Stats(_ context.Context) (types.BlogStats, error) {
	f.statsCalled = true
	return types.BlogStats{}, nil
}

type fakeUserRepo struct {
	users map[string]types.User
}

func newFakeUserRepo(users ...types.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]types.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func TestPostServiceListClampsTake(t *testing.T) {
	repo := newFakePostRepo()
	service := NewPostService(repo, newFakeUserRepo())

	_, _, err := service.List(context.Background(), store.ListPostsParams{Take: 0})
	require.NoError(t, err)
	assert.Equal(t, 5, repo.listParams.Take)

	_, _, err = service.List(context.Background(), store.ListPostsParams{Take: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.listParams.Take)

	_, _, err = service.List(context.Background(), store.ListPostsParams{Take: 20, Skip: -3})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.listParams.Take)
	assert.Equal(t, 0, repo.listParams.Skip)
}

func TestPostServiceListMineRequiresActiveUser(t *testing.T) {
	repo := newFakePostRepo()
	users := newFakeUserRepo(
		types.User{ID: "active", Status: types.UserActive},
		types.User{ID: "blocked", Status: types.UserBlocked},
	)
	service := NewPostService(repo, users)

	_, _, err := service.ListMine(context.Background(), store.ListPostsParams{}, "blocked")
	assert.ErrorIs(t, err, ErrUserInactive)

	_, _, err = service.ListMine(context.Background(), store.ListPostsParams{}, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, _, err = service.ListMine(context.Background(), store.ListPostsParams{}, "active")
	require.NoError(t, err)
	assert.Equal(t, "active", repo.listParams.Filter.AuthorID)
}

func TestPostServiceUpdateRejectsEmptyPatch(t *testing.T) {
	service := NewPostService(newFakePostRepo(), newFakeUserRepo())

	_, err := service.Update(context.Background(), "p1", store.PostPatch{}, "u1", types.RoleUser)
	assert.ErrorIs(t, err, ErrNoUpdates)
}

func TestPostServiceUpdateForbidsNonAuthor(t *testing.T) {
	repo := newFakePostRepo(types.Post{ID: "p1", AuthorID: "owner"})
	service := NewPostService(repo, newFakeUserRepo())

	title := "new title"
	_, err := service.Update(context.Background(), "p1", store.PostPatch{Title: &title}, "intruder", types.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.Update(context.Background(), "p1", store.PostPatch{Title: &title}, "owner", types.RoleUser)
	assert.NoError(t, err)

	_, err = service.Update(context.Background(), "p1", store.PostPatch{Title: &title}, "intruder", types.RoleAdmin)
	assert.NoError(t, err)
}

func TestPostServiceUpdateDropsFeaturedForNonAdmin(t *testing.T) {
	repo := newFakePostRepo(types.Post{ID: "p1", AuthorID: "owner"})
	service := NewPostService(repo, newFakeUserRepo())

	featured := true
	title := "still applies"
	_, err := service.Update(context.Background(), "p1",
		store.PostPatch{Title: &title, IsFeatured: &featured}, "owner", types.RoleUser)
	require.NoError(t, err)

	assert.Nil(t, repo.lastPatch.IsFeatured)
	require.NotNil(t, repo.lastPatch.Title)
	assert.Equal(t, title, *repo.lastPatch.Title)
}

func TestPostServiceUpdateKeepsFeaturedForAdmin(t *testing.T) {
	repo := newFakePostRepo(types.Post{ID: "p1", AuthorID: "owner"})
	service := NewPostService(repo, newFakeUserRepo())

	featured := true
	_, err := service.Update(context.Background(), "p1",
		store.PostPatch{IsFeatured: &featured}, "someone-else", types.RoleAdmin)
	require.NoError(t, err)

	require.NotNil(t, repo.lastPatch.IsFeatured)
	assert.True(t, *repo.lastPatch.IsFeatured)
}

func TestPostServiceDeleteAuthorization(t *testing.T) {
	repo := newFakePostRepo(types.Post{ID: "p1", AuthorID: "owner"})
	service := NewPostService(repo, newFakeUserRepo())

	err := service.Delete(context.Background(), "p1", "intruder", types.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.deletedID)

	err = service.Delete(context.Background(), "p1", "owner", types.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "p1", repo.deletedID)
}

func TestPostServiceCreateManyStampsAuthor(t *testing.T) {
	repo := newFakePostRepo()
	service := NewPostService(repo, newFakeUserRepo())

	posts := []types.Post{{Title: "a"}, {Title: "b"}}
	count, err := service.CreateMany(context.Background(), posts, "author-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	for _, post := range posts {
		assert.Equal(t, "author-1", post.AuthorID)
	}
}
