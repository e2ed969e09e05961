package types

import "time"

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
	PostArchived  PostStatus = "ARCHIVED"
)

// ValidPostStatus reports whether s is a known post status.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

// Post represents a blog post authored by a user.
type Post struct {
	// ID is the unique identifier of the post.
	ID string `json:"id" db:"id"`

	// Title is the human-readable headline of the post.
	Title string `json:"title" db:"title"`

	// Content is the full body of the post.
	Content string `json:"content" db:"content"`

	// Tags are free-form labels associated with the post, used for
	// categorization, filtering, and search. Order carries no meaning.
	Tags []string `json:"tags" db:"tags"`

	// IsFeatured marks the post for featured placement. Only
	// administrators may change this flag.
	IsFeatured bool `json:"isFeatured" db:"is_featured"`

	// Status is the lifecycle state of the post.
	Status PostStatus `json:"status" db:"status"`

	// Views counts full detail fetches of this post. It increments by
	// exactly one per detail fetch, atomically with the read.
	Views int64 `json:"views" db:"views"`

	// AuthorID references the user who created the post. Immutable.
	AuthorID string `json:"authorId" db:"author_id"`

	// CreatedAt is the timestamp at which the post was created.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the post.
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Author carries the post author's public fields on read paths.
	Author *Author `json:"author,omitempty"`

	// CommentCount is the total number of comments on the post,
	// regardless of moderation status. Populated on read paths.
	CommentCount int64 `json:"commentCount"`
}

// PostDetail is a post together with its approved comment thread,
// materialized to three levels.
type PostDetail struct {
	Post
	Comments []CommentThread `json:"comments"`
}

// PostMedia is a file attached to a post. The bytes live in object
// storage; this row carries the metadata and the object key.
type PostMedia struct {
	ID          string    `json:"id" db:"id"`
	PostID      string    `json:"postId" db:"post_id"`
	ObjectKey   string    `json:"-" db:"object_key"`
	Filename    string    `json:"filename" db:"filename"`
	ContentType string    `json:"contentType" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
