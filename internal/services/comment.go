package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkwell-blog/apiserver/internal/mq"
	"github.com/inkwell-blog/apiserver/types"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment types.Comment) (types.Comment, error)
	Get(ctx context.Context, id string) (types.Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]types.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (types.Comment, error)
	UpdateStatus(ctx context.Context, id string, status types.CommentStatus) (types.Comment, error)
	Delete(ctx context.Context, id string) error
}

// CommentService encapsulates comment use-cases.
type CommentService struct {
	repo   CommentRepository
	events *mq.EventPublisher
}

func NewCommentService(repo CommentRepository, events *mq.EventPublisher) *CommentService {
	return &CommentService{repo: repo, events: events}
}

// Create stores a new comment in PENDING state. The post must exist and
// the parent, when given, must belong to the same post; the repository
// enforces both. Event publishing is best effort and never fails the
// request.
func (s *CommentService) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.Status = types.CommentPending

	created, err := s.repo.Create(ctx, comment)
	if err != nil {
		return types.Comment{}, err
	}

	if err := s.events.PublishCommentEvent(ctx, mq.CommentEvent{
		Type:       mq.EventCommentCreated,
		CommentID:  created.ID,
		PostID:     created.PostID,
		AuthorID:   created.AuthorID,
		Status:     created.Status,
		OccurredAt: time.Now(),
	}); err != nil {
		slog.Warn("failed to publish comment event", "comment_id", created.ID, "error", err)
	}

	return created, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (types.Comment, error) {
	return s.repo.Get(ctx, id)
}

// ListByAuthor returns one author's comments, newest first.
func (s *CommentService) ListByAuthor(ctx context.Context, authorID string) ([]types.Comment, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// UpdateContent edits a comment's text. Only the comment's author or an
// admin may edit.
func (s *CommentService) UpdateContent(ctx context.Context, id, content, requesterID string, role types.Role) (types.Comment, error) {
	comment, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Comment{}, err
	}
	if !canMutate(comment.AuthorID, requesterID, role) {
		return types.Comment{}, ErrForbidden
	}
	return s.repo.UpdateContent(ctx, id, content)
}

// Moderate sets a comment's status. Route-level role checks restrict
// this to admins.
func (s *CommentService) Moderate(ctx context.Context, id string, status types.CommentStatus) (types.Comment, error) {
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return types.Comment{}, err
	}

	if err := s.events.PublishCommentEvent(ctx, mq.CommentEvent{
		Type:       mq.EventCommentStatusChanged,
		CommentID:  updated.ID,
		PostID:     updated.PostID,
		AuthorID:   updated.AuthorID,
		Status:     updated.Status,
		OccurredAt: time.Now(),
	}); err != nil {
		slog.Warn("failed to publish comment event", "comment_id", updated.ID, "error", err)
	}

	return updated, nil
}

// Delete removes a comment and, via the schema's cascade, its replies.
// Only the comment's author or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, id, requesterID string, role types.Role) error {
	comment, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(comment.AuthorID, requesterID, role) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
