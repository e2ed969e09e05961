package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-blog/apiserver/types"
)

// CommentRepository handles persistence for comments.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment after verifying, in the same transaction,
// that the post exists and that the parent (when given) exists and
// belongs to the same post. Nothing is persisted when any check fails.
func (r *CommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Comment{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, comment.PostID,
	).Scan(&exists); err != nil {
		return types.Comment{}, err
	}
	if !exists {
		return types.Comment{}, notFound("post")
	}

	var parent *types.Comment
	if comment.ParentID != nil {
		var parentRow types.Comment
		err := tx.QueryRowContext(ctx, `
			SELECT id, content, author_id, post_id, parent_id, status, created_at, updated_at
			FROM comments
			WHERE id = $1`, *comment.ParentID,
		).Scan(
			&parentRow.ID,
			&parentRow.Content,
			&parentRow.AuthorID,
			&parentRow.PostID,
			&parentRow.ParentID,
			&parentRow.Status,
			&parentRow.CreatedAt,
			&parentRow.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return types.Comment{}, notFound("parent comment")
			}
			return types.Comment{}, err
		}
		if parentRow.PostID != comment.PostID {
			return types.Comment{}, fmt.Errorf("parent comment belongs to a different post: %w", ErrConflict)
		}
		parent = &parentRow
	}

	now := time.Now()
	comment.ID = uuid.NewString()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.Status == "" {
		comment.Status = types.CommentPending
	}

	const insert = `
		INSERT INTO comments (id, content, author_id, post_id, parent_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.ExecContext(
		ctx,
		insert,
		comment.ID,
		comment.Content,
		comment.AuthorID,
		comment.PostID,
		comment.ParentID,
		comment.Status,
		comment.CreatedAt,
		comment.UpdatedAt,
	); err != nil {
		return types.Comment{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Comment{}, err
	}

	comment.Parent = parent
	return comment, nil
}

// Get returns a comment with its author and parent attached.
func (r *CommentRepository) Get(ctx context.Context, id string) (types.Comment, error) {
	const query = `
		SELECT ` + commentColumns + `, u.name, u.email
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`

	var comment types.Comment
	var authorName, authorEmail string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.Content,
		&comment.AuthorID,
		&comment.PostID,
		&comment.ParentID,
		&comment.Status,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&authorName,
		&authorEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Comment{}, notFound("comment")
		}
		return types.Comment{}, err
	}
	comment.Author = &types.Author{ID: comment.AuthorID, Name: authorName, Email: authorEmail}

	if comment.ParentID != nil {
		parent, err := r.Get(ctx, *comment.ParentID)
		if err == nil {
			parent.Parent = nil
			comment.Parent = &parent
		} else if !errors.Is(err, ErrNotFound) {
			return types.Comment{}, err
		}
	}
	return comment, nil
}

// ListByAuthor returns all comments by one author, newest first.
func (r *CommentRepository) ListByAuthor(ctx context.Context, authorID string) ([]types.Comment, error) {
	const query = `
		SELECT ` + commentColumns + `, u.name, u.email
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.author_id = $1
		ORDER BY c.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]types.Comment, 0)
	for rows.Next() {
		var comment types.Comment
		var authorName, authorEmail string
		if err := rows.Scan(
			&comment.ID,
			&comment.Content,
			&comment.AuthorID,
			&comment.PostID,
			&comment.ParentID,
			&comment.Status,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&authorName,
			&authorEmail,
		); err != nil {
			return nil, err
		}
		comment.Author = &types.Author{ID: comment.AuthorID, Name: authorName, Email: authorEmail}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateContent replaces a comment's content.
func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) (types.Comment, error) {
	const query = `UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, content, time.Now(), id)
	if err != nil {
		return types.Comment{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Comment{}, err
	}
	if affected == 0 {
		return types.Comment{}, notFound("comment")
	}
	return r.Get(ctx, id)
}

// UpdateStatus sets a comment's moderation status.
func (r *CommentRepository) UpdateStatus(ctx context.Context, id string, status types.CommentStatus) (types.Comment, error) {
	const query = `UPDATE comments SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return types.Comment{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Comment{}, err
	}
	if affected == 0 {
		return types.Comment{}, notFound("comment")
	}
	return r.Get(ctx, id)
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound("comment")
	}
	return nil
}
