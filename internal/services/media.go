package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/inkwell-blog/apiserver/internal/storage"
	"github.com/inkwell-blog/apiserver/types"
)

// MediaRepository defines persistence operations for post media rows.
type MediaRepository interface {
	Create(ctx context.Context, media types.PostMedia) (types.PostMedia, error)
	Get(ctx context.Context, id string) (types.PostMedia, error)
	ListByPost(ctx context.Context, postID string) ([]types.PostMedia, error)
	Delete(ctx context.Context, id string) error
}

// MediaService stores post attachments: bytes in the object store,
// metadata in the database.
type MediaService struct {
	repo    MediaRepository
	posts   PostRepository
	storage *storage.Storage
}

func NewMediaService(repo MediaRepository, posts PostRepository, st *storage.Storage) *MediaService {
	return &MediaService{repo: repo, posts: posts, storage: st}
}

// Upload attaches a file to a post. Only the post's author or an admin
// may attach.
func (s *MediaService) Upload(ctx context.Context, postID, requesterID string, role types.Role, filename, contentType string, size int64, r io.Reader) (types.PostMedia, error) {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return types.PostMedia{}, err
	}
	if !canMutate(post.AuthorID, requesterID, role) {
		return types.PostMedia{}, ErrForbidden
	}

	key := fmt.Sprintf("posts/%s/%s-%s", postID, uuid.NewString(), filename)
	if err := s.storage.Put(ctx, key, r, size, contentType); err != nil {
		return types.PostMedia{}, err
	}

	media, err := s.repo.Create(ctx, types.PostMedia{
		PostID:      postID,
		ObjectKey:   key,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		// Keep the store and the database in step when the row insert
		// fails after the object upload.
		_ = s.storage.Delete(ctx, key)
		return types.PostMedia{}, err
	}
	return media, nil
}

// Open returns the metadata and a reader for one attachment. The caller
// must close the reader.
func (s *MediaService) Open(ctx context.Context, id string) (types.PostMedia, io.ReadCloser, error) {
	media, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.PostMedia{}, nil, err
	}
	reader, err := s.storage.Get(ctx, media.ObjectKey)
	if err != nil {
		return types.PostMedia{}, nil, err
	}
	return media, reader, nil
}

// ListByPost returns the attachments of one post, oldest first.
func (s *MediaService) ListByPost(ctx context.Context, postID string) ([]types.PostMedia, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID)
}

// Delete removes an attachment. Only the post's author or an admin may
// delete.
func (s *MediaService) Delete(ctx context.Context, id, requesterID string, role types.Role) error {
	media, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	post, err := s.posts.Get(ctx, media.PostID)
	if err != nil {
		return err
	}
	if !canMutate(post.AuthorID, requesterID, role) {
		return ErrForbidden
	}
	if err := s.storage.Delete(ctx, media.ObjectKey); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
