package services

import (
	"context"

	"github.com/inkwell-blog/apiserver/internal/store"
	"github.com/inkwell-blog/apiserver/types"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post types.Post) (types.Post, error)
	CreateMany(ctx context.Context, posts []types.Post) (int64, error)
	List(ctx context.Context, params store.ListPostsParams) ([]types.Post, int64, error)
	Get(ctx context.Context, id string) (types.Post, error)
	GetDetail(ctx context.Context, id string) (types.PostDetail, error)
	Update(ctx context.Context, id string, patch store.PostPatch) (types.Post, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (types.BlogStats, error)
}

// PostService encapsulates post use-cases.
type PostService struct {
	repo  PostRepository
	users UserRepository
}

func NewPostService(repo PostRepository, users UserRepository) *PostService {
	return &PostService{repo: repo, users: users}
}

func (s *PostService) Create(ctx context.Context, post types.Post) (types.Post, error) {
	return s.repo.Create(ctx, post)
}

// CreateMany inserts a batch of posts on behalf of one author.
func (s *PostService) CreateMany(ctx context.Context, posts []types.Post, authorID string) (int64, error) {
	for i := range posts {
		posts[i].AuthorID = authorID
	}
	return s.repo.CreateMany(ctx, posts)
}

func (s *PostService) List(ctx context.Context, params store.ListPostsParams) ([]types.Post, int64, error) {
	if params.Take <= 0 {
		params.Take = 5
	}
	if params.Take > 100 {
		params.Take = 100
	}
	if params.Skip < 0 {
		params.Skip = 0
	}
	return s.repo.List(ctx, params)
}

// ListMine lists the requester's own posts. Suspended accounts may not
// use it.
func (s *PostService) ListMine(ctx context.Context, params store.ListPostsParams, requesterID string) ([]types.Post, int64, error) {
	user, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, 0, err
	}
	if user.Status != types.UserActive {
		return nil, 0, ErrUserInactive
	}
	params.Filter.AuthorID = requesterID
	return s.List(ctx, params)
}

func (s *PostService) Get(ctx context.Context, id string) (types.Post, error) {
	return s.repo.Get(ctx, id)
}

// GetDetail returns the post with its comment thread and counts the
// view.
func (s *PostService) GetDetail(ctx context.Context, id string) (types.PostDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

// Update applies a partial update. Only the author or an admin may
// update a post, and only admins may change the featured flag; a
// non-admin's featured change is dropped rather than rejected.
func (s *PostService) Update(ctx context.Context, id string, patch store.PostPatch, requesterID string, role types.Role) (types.Post, error) {
	if patch.IsEmpty() {
		return types.Post{}, ErrNoUpdates
	}

	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Post{}, err
	}
	if !canMutate(post.AuthorID, requesterID, role) {
		return types.Post{}, ErrForbidden
	}

	// Only admins may change the featured flag. The field is dropped
	// rather than rejected, so the rest of the patch still applies.
	if role != types.RoleAdmin {
		patch.IsFeatured = nil
	}

	return s.repo.Update(ctx, id, patch)
}

func (s *PostService) Delete(ctx context.Context, id string, requesterID string, role types.Role) error {
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(post.AuthorID, requesterID, role) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// Stats returns the aggregate snapshot over posts, views and comments.
func (s *PostService) Stats(ctx context.Context) (types.BlogStats, error) {
	return s.repo.Stats(ctx)
}
