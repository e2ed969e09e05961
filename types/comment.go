package types

import "time"

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECTED"
)

// ValidCommentStatus reports whether s is a known moderation status.
func ValidCommentStatus(s CommentStatus) bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

// Comment represents a comment on a post. A comment may reply to
// another comment on the same post via ParentID, forming a tree.
type Comment struct {
	// ID is the unique identifier of the comment.
	ID string `json:"id" db:"id"`

	// Content is the body of the comment.
	Content string `json:"content" db:"content"`

	// AuthorID references the user who wrote the comment. Immutable.
	AuthorID string `json:"authorId" db:"author_id"`

	// PostID references the post this comment belongs to.
	PostID string `json:"postId" db:"post_id"`

	// ParentID references the parent comment when this comment is a
	// reply. The parent must belong to the same post.
	ParentID *string `json:"parentId,omitempty" db:"parent_id"`

	// Status is the moderation state. Only approved comments appear in
	// the post detail thread.
	Status CommentStatus `json:"status" db:"status"`

	// CreatedAt is the timestamp when the comment was created.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update.
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Author carries the comment author's public fields on read paths.
	Author *Author `json:"author,omitempty"`

	// Parent carries the parent comment when it was requested.
	Parent *Comment `json:"parent,omitempty"`
}

// CommentThread is a comment node in a materialized thread. ReplyCount
// counts all stored children regardless of moderation status, so a node
// whose replies are cut off by the depth limit still reports how many
// it has.
type CommentThread struct {
	Comment
	ReplyCount int             `json:"replyCount"`
	Replies    []CommentThread `json:"replies"`
}
