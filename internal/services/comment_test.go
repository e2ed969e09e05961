package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/apiserver/internal/store"
	"github.com/inkwell-blog/apiserver/types"
)

type fakeCommentRepo struct {
	comments      map[string]types.Comment
	created       *types.Comment
	updatedID     string
	updatedText   string
	statusID      string
	status        types.CommentStatus
	deletedID     string
	listedAuthor  string
	authorListing []types.Comment
}

func newFakeCommentRepo(comments ...types.Comment) *fakeCommentRepo {
	repo := &fakeCommentRepo{comments: make(map[string]types.Comment)}
	for _, comment := range comments {
		repo.comments[comment.ID] = comment
	}
	return repo
}

func (f *fakeCommentRepo) Create(_ context.Context, comment types.Comment) (types.Comment, error) {
	comment.ID = "generated"
	f.created = &comment
	return comment, nil
}

func (f *fakeCommentRepo) Get(_ context.Context, id string) (types.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return types.Comment{}, store.ErrNotFound
	}
	return comment, nil
}

func (f *fakeCommentRepo) ListByAuthor(_ context.Context, authorID string) ([]types.Comment, error) {
	f.listedAuthor = authorID
	return f.authorListing, nil
}

func (f *fakeCommentRepo) UpdateContent(_ context.Context, id, content string) (types.Comment, error) {
	f.updatedID = id
	f.updatedText = content
	comment := f.comments[id]
	comment.Content = content
	return comment, nil
}

func (f *fakeCommentRepo) UpdateStatus(_ context.Context, id string, status types.CommentStatus) (types.Comment, error) {
	f.statusID = id
	f.status = status
	comment := f.comments[id]
	comment.Status = status
	return comment, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}

func TestCommentServiceCreateForcesPending(t *testing.T) {
	repo := newFakeCommentRepo()
	service := NewCommentService(repo, nil)

	created, err := service.Create(context.Background(), types.Comment{
		Content:  "hello",
		PostID:   "p1",
		AuthorID: "u1",
		Status:   types.CommentApproved,
	})
	require.NoError(t, err)

	assert.Equal(t, types.CommentPending, created.Status)
	require.NotNil(t, repo.created)
	assert.Equal(t, types.CommentPending, repo.created.Status)
}

func TestCommentServiceUpdateContentAuthorization(t *testing.T) {
	repo := newFakeCommentRepo(types.Comment{ID: "c1", AuthorID: "owner", Content: "old"})
	service := NewCommentService(repo, nil)

	_, err := service.UpdateContent(context.Background(), "c1", "new", "intruder", types.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.updatedID)

	updated, err := service.UpdateContent(context.Background(), "c1", "new", "owner", types.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Content)

	_, err = service.UpdateContent(context.Background(), "c1", "admin edit", "someone-else", types.RoleAdmin)
	assert.NoError(t, err)
}

func TestCommentServiceUpdateContentMissingComment(t *testing.T) {
	service := NewCommentService(newFakeCommentRepo(), nil)

	_, err := service.UpdateContent(context.Background(), "missing", "text", "u1", types.RoleAdmin)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCommentServiceModerate(t *testing.T) {
	repo := newFakeCommentRepo(types.Comment{ID: "c1", AuthorID: "owner", Status: types.CommentPending})
	service := NewCommentService(repo, nil)

	updated, err := service.Moderate(context.Background(), "c1", types.CommentApproved)
	require.NoError(t, err)

	assert.Equal(t, types.CommentApproved, updated.Status)
	assert.Equal(t, "c1", repo.statusID)
}

func TestCommentServiceDeleteAuthorization(t *testing.T) {
	repo := newFakeCommentRepo(types.Comment{ID: "c1", AuthorID: "owner"})
	service := NewCommentService(repo, nil)

	err := service.Delete(context.Background(), "c1", "intruder", types.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	err = service.Delete(context.Background(), "c1", "owner", types.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "c1", repo.deletedID)
}

func TestCommentServiceListByAuthor(t *testing.T) {
	repo := newFakeCommentRepo()
	repo.authorListing = []types.Comment{{ID: "c1"}, {ID: "c2"}}
	service := NewCommentService(repo, nil)

	comments, err := service.ListByAuthor(context.Background(), "author-1")
	require.NoError(t, err)

	assert.Len(t, comments, 2)
	assert.Equal(t, "author-1", repo.listedAuthor)
}
