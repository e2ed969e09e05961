package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/inkwell-blog/apiserver/types"
)

// The thread assembler fetches the approved comment tree for one post
// level by level (three queries, no recursion) and stitches the levels
// together in memory. The three-level cutoff is a read-path policy:
// storage accepts arbitrarily deep nesting, this code just stops
// materializing below level three.

const commentColumns = `c.id, c.content, c.author_id, c.post_id, c.parent_id, c.status, c.created_at, c.updated_at`

func queryComments(ctx context.Context, tx *sql.Tx, where, orderBy string, arg any) ([]types.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.name, u.email
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE %s
		ORDER BY %s`, commentColumns, where, orderBy)

	rows, err := tx.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []types.Comment
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

// queryReplies loads the approved children of the given parents,
// oldest first.
func queryReplies(ctx context.Context, tx *sql.Tx, parentIDs []string) ([]types.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	return queryComments(ctx, tx,
		`c.parent_id = ANY($1) AND c.status = 'APPROVED'`,
		`c.created_at ASC`, pq.Array(parentIDs))
}

// queryReplyCounts counts all stored children per parent, regardless
// of moderation status.
func queryReplyCounts(ctx context.Context, tx *sql.Tx, parentIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	const query = `
		SELECT parent_id, COUNT(*)
		FROM comments
		WHERE parent_id = ANY($1)
		GROUP BY parent_id`
	rows, err := tx.QueryContext(ctx, query, pq.Array(parentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var parentID string
		var count int
		if err := rows.Scan(&parentID, &count); err != nil {
			return nil, err
		}
		counts[parentID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func commentIDs(comments []types.Comment) []string {
	ids := make([]string, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}
	return ids
}

// assembleCommentTree builds the three-level thread from the per-level
// slices. Input ordering is preserved: level 1 arrives newest-first,
// levels 2 and 3 oldest-first. Reply counts are attached to levels 1
// and 2; level-3 nodes carry none because their children are never
// rendered.
func assembleCommentTree(level1, level2, level3 []types.Comment, replyCounts map[string]int) []types.CommentThread {
	// Group the deepest level under its parents first.
	level3ByParent := make(map[string][]types.CommentThread)
	for _, comment := range level3 {
		parent := *comment.ParentID
		level3ByParent[parent] = append(level3ByParent[parent], types.CommentThread{
			Comment: comment,
			Replies: []types.CommentThread{},
		})
	}

	level2ByParent := make(map[string][]types.CommentThread)
	for _, comment := range level2 {
		parent := *comment.ParentID
		node := types.CommentThread{
			Comment:    comment,
			ReplyCount: replyCounts[comment.ID],
			Replies:    level3ByParent[comment.ID],
		}
		if node.Replies == nil {
			node.Replies = []types.CommentThread{}
		}
		level2ByParent[parent] = append(level2ByParent[parent], node)
	}

	roots := make([]types.CommentThread, 0, len(level1))
	for _, comment := range level1 {
		node := types.CommentThread{
			Comment:    comment,
			ReplyCount: replyCounts[comment.ID],
			Replies:    level2ByParent[comment.ID],
		}
		if node.Replies == nil {
			node.Replies = []types.CommentThread{}
		}
		roots = append(roots, node)
	}
	return roots
}
