package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-blog/apiserver/types"
)

// MediaRepository handles metadata rows for post media attachments.
// The object bytes live in the configured object store.
type MediaRepository struct {
	db *sql.DB
}

func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(ctx context.Context, media types.PostMedia) (types.PostMedia, error) {
	media.ID = uuid.NewString()
	media.CreatedAt = time.Now()

	const query = `
		INSERT INTO post_media (id, post_id, object_key, filename, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		media.ID,
		media.PostID,
		media.ObjectKey,
		media.Filename,
		media.ContentType,
		media.Size,
		media.CreatedAt,
	); err != nil {
		return types.PostMedia{}, err
	}
	return media, nil
}

func (r *MediaRepository) Get(ctx context.Context, id string) (types.PostMedia, error) {
	const query = `
		SELECT id, post_id, object_key, filename, content_type, size, created_at
		FROM post_media
		WHERE id = $1`
	var media types.PostMedia
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&media.ID,
		&media.PostID,
		&media.ObjectKey,
		&media.Filename,
		&media.ContentType,
		&media.Size,
		&media.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.PostMedia{}, notFound("media")
		}
		return types.PostMedia{}, err
	}
	return media, nil
}

func (r *MediaRepository) ListByPost(ctx context.Context, postID string) ([]types.PostMedia, error) {
	const query = `
		SELECT id, post_id, object_key, filename, content_type, size, created_at
		FROM post_media
		WHERE post_id = $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	media := make([]types.PostMedia, 0)
	for rows.Next() {
		var m types.PostMedia
		if err := rows.Scan(
			&m.ID,
			&m.PostID,
			&m.ObjectKey,
			&m.Filename,
			&m.ContentType,
			&m.Size,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return media, nil
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM post_media WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound("media")
	}
	return nil
}
