package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/inkwell-blog/apiserver/types"
)

// PostRepository handles persistence for posts, including the filtered
// listing, the transactional detail fetch, and aggregate statistics.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `p.id, p.title, p.content, p.tags, p.is_featured, p.status, p.views, p.author_id, p.created_at, p.updated_at`

func scanPost(scanner interface{ Scan(...any) error }, post *types.Post) error {
	var tags pq.StringArray
	if err := scanner.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&tags,
		&post.IsFeatured,
		&post.Status,
		&post.Views,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return err
	}
	post.Tags = tags
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	now := time.Now()
	post.ID = uuid.NewString()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = types.PostDraft
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	const query = `
		INSERT INTO posts (id, title, content, tags, is_featured, status, views, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.Title,
		post.Content,
		pq.Array(post.Tags),
		post.IsFeatured,
		post.Status,
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	); err != nil {
		return types.Post{}, err
	}
	return post, nil
}

// CreateMany inserts a batch of posts for one author in a single
// transaction and returns the number created. All or nothing.
func (r *PostRepository) CreateMany(ctx context.Context, posts []types.Post) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
		INSERT INTO posts (id, title, content, tags, is_featured, status, views, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9)`

	now := time.Now()
	for _, post := range posts {
		if post.Status == "" {
			post.Status = types.PostDraft
		}
		if post.Tags == nil {
			post.Tags = []string{}
		}
		if _, err := tx.ExecContext(
			ctx,
			query,
			uuid.NewString(),
			post.Title,
			post.Content,
			pq.Array(post.Tags),
			post.IsFeatured,
			post.Status,
			post.AuthorID,
			now,
			now,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(posts)), nil
}

// List returns the page of posts matching params plus the total count
// under the same filter, independent of skip/take.
func (r *PostRepository) List(ctx context.Context, params ListPostsParams) ([]types.Post, int64, error) {
	where, args := params.Filter.whereClause()

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM posts p %s`, where)
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`
		SELECT %s,
			u.name, u.email,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		JOIN users u ON u.id = p.author_id
		%s
		%s
		OFFSET $%d LIMIT $%d`,
		postColumns, where, params.orderClause(), len(args)+1, len(args)+2)
	args = append(args, params.Skip, params.Take)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0, params.Take)
	for rows.Next() {
		var post types.Post
		var tags pq.StringArray
		var authorName, authorEmail string
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&tags,
			&post.IsFeatured,
			&post.Status,
			&post.Views,
			&post.AuthorID,
			&post.CreatedAt,
			&post.UpdatedAt,
			&authorName,
			&authorEmail,
			&post.CommentCount,
		); err != nil {
			return nil, 0, err
		}
		post.Tags = tags
		post.Author = &types.Author{ID: post.AuthorID, Name: authorName, Email: authorEmail}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Get returns a post without its comment thread and without touching
// the view counter.
func (r *PostRepository) Get(ctx context.Context, id string) (types.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`
	var post types.Post
	if err := scanPost(r.db.QueryRowContext(ctx, query, id), &post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, notFound("post")
		}
		return types.Post{}, err
	}
	return post, nil
}

// GetDetail returns the post with its approved comment thread
// materialized to three levels, and increments the view counter as a
// side effect of the same transaction. The increment is additive
// (views = views + 1) so concurrent fetches never lose updates, and it
// can never apply to a missing post because the existence check shares
// the transaction.
func (r *PostRepository) GetDetail(ctx context.Context, id string) (types.PostDetail, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.PostDetail{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const postQuery = `
		SELECT ` + postColumns + `,
			u.name, u.email,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	var detail types.PostDetail
	var tags pq.StringArray
	var authorName, authorEmail string
	err = tx.QueryRowContext(ctx, postQuery, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Content,
		&tags,
		&detail.IsFeatured,
		&detail.Status,
		&detail.Views,
		&detail.AuthorID,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&authorName,
		&authorEmail,
		&detail.CommentCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.PostDetail{}, notFound("post")
		}
		return types.PostDetail{}, err
	}
	detail.Tags = tags
	detail.Author = &types.Author{ID: detail.AuthorID, Name: authorName, Email: authorEmail}

	// Level 1: approved root comments, newest first.
	level1, err := queryComments(ctx, tx,
		`c.post_id = $1 AND c.parent_id IS NULL AND c.status = 'APPROVED'`,
		`c.created_at DESC`, id)
	if err != nil {
		return types.PostDetail{}, err
	}

	// Levels 2 and 3: approved replies, oldest first.
	level2, err := queryReplies(ctx, tx, commentIDs(level1))
	if err != nil {
		return types.PostDetail{}, err
	}
	level3, err := queryReplies(ctx, tx, commentIDs(level2))
	if err != nil {
		return types.PostDetail{}, err
	}

	// Reply counts cover all stored children, not only approved ones,
	// so cut-off nodes still report how many replies exist.
	parentIDs := append(commentIDs(level1), commentIDs(level2)...)
	replyCounts, err := queryReplyCounts(ctx, tx, parentIDs)
	if err != nil {
		return types.PostDetail{}, err
	}

	detail.Comments = assembleCommentTree(level1, level2, level3, replyCounts)

	if _, err := tx.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1`, id); err != nil {
		return types.PostDetail{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.PostDetail{}, err
	}
	return detail, nil
}

// PostPatch carries the optional fields of a partial post update. Nil
// fields are left unchanged.
type PostPatch struct {
	Title      *string
	Content    *string
	Tags       *[]string
	Status     *types.PostStatus
	IsFeatured *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.Status == nil && p.IsFeatured == nil
}

// Update applies a partial update and returns the updated post.
func (r *PostRepository) Update(ctx context.Context, id string, patch PostPatch) (types.Post, error) {
	var assignments []string
	var args []any

	set := func(column string, value any) {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.Tags != nil {
		set("tags", pq.Array(*patch.Tags))
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.IsFeatured != nil {
		set("is_featured", *patch.IsFeatured)
	}
	set("updated_at", time.Now())

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d`,
		strings.Join(assignments, ", "), len(args)+1)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return types.Post{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Post{}, err
	}
	if affected == 0 {
		return types.Post{}, notFound("post")
	}

	return r.Get(ctx, id)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound("post")
	}
	return nil
}

// Stats computes the aggregate snapshot in one transaction so no
// concurrent writer can produce a result mixing pre- and post-update
// counts.
func (r *PostRepository) Stats(ctx context.Context) (types.BlogStats, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return types.BlogStats{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var stats types.BlogStats

	const postQuery = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PUBLISHED'),
			COUNT(*) FILTER (WHERE status = 'DRAFT'),
			COUNT(*) FILTER (WHERE status = 'ARCHIVED'),
			COUNT(*) FILTER (WHERE is_featured),
			COALESCE(SUM(views), 0),
			COALESCE(ROUND(AVG(views), 2), 0),
			COALESCE(MIN(views), 0),
			COALESCE(MAX(views), 0)
		FROM posts`
	if err := tx.QueryRowContext(ctx, postQuery).Scan(
		&stats.Posts.Total,
		&stats.Posts.Published,
		&stats.Posts.Draft,
		&stats.Posts.Archived,
		&stats.Posts.Featured,
		&stats.Views.Total,
		&stats.Views.Avg,
		&stats.Views.Min,
		&stats.Views.Max,
	); err != nil {
		return types.BlogStats{}, err
	}

	const authorQuery = `
		SELECT COUNT(DISTINCT p.author_id)
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE u.role = $1`
	if err := tx.QueryRowContext(ctx, authorQuery, types.RoleAdmin).Scan(&stats.Posts.AdminAuthors); err != nil {
		return types.BlogStats{}, err
	}
	if err := tx.QueryRowContext(ctx, authorQuery, types.RoleUser).Scan(&stats.Posts.UserAuthors); err != nil {
		return types.BlogStats{}, err
	}

	const commentQuery = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED')
		FROM comments`
	if err := tx.QueryRowContext(ctx, commentQuery).Scan(
		&stats.Comments.Total,
		&stats.Comments.Pending,
		&stats.Comments.Approved,
		&stats.Comments.Rejected,
	); err != nil {
		return types.BlogStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.BlogStats{}, err
	}
	return stats, nil
}
