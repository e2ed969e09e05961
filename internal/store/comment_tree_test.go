package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/apiserver/types"
)

func comment(id string, parentID *string) types.Comment {
	return types.Comment{ID: id, ParentID: parentID, Status: types.CommentApproved}
}

func ptr(s string) *string { return &s }

func TestAssembleCommentTreeEmpty(t *testing.T) {
	tree := assembleCommentTree(nil, nil, nil, map[string]int{})

	require.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestAssembleCommentTreeThreeLevels(t *testing.T) {
	level1 := []types.Comment{comment("c1", nil), comment("c2", nil)}
	level2 := []types.Comment{comment("r1", ptr("c1")), comment("r2", ptr("c1"))}
	level3 := []types.Comment{comment("rr1", ptr("r2"))}
	counts := map[string]int{"c1": 2, "r2": 1}

	tree := assembleCommentTree(level1, level2, level3, counts)

	require.Len(t, tree, 2)
	assert.Equal(t, "c1", tree[0].ID)
	assert.Equal(t, 2, tree[0].ReplyCount)
	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, "r1", tree[0].Replies[0].ID)
	assert.Equal(t, "r2", tree[0].Replies[1].ID)
	assert.Equal(t, 1, tree[0].Replies[1].ReplyCount)
	require.Len(t, tree[0].Replies[1].Replies, 1)
	assert.Equal(t, "rr1", tree[0].Replies[1].Replies[0].ID)

	assert.Equal(t, "c2", tree[1].ID)
	assert.Zero(t, tree[1].ReplyCount)
	assert.Empty(t, tree[1].Replies)
}

func TestAssembleCommentTreePreservesLevelOrder(t *testing.T) {
	// Level 1 arrives newest-first, level 2 oldest-first; the assembler
	// must not reorder either.
	level1 := []types.Comment{comment("newest", nil), comment("older", nil)}
	level2 := []types.Comment{comment("first-reply", ptr("older")), comment("second-reply", ptr("older"))}

	tree := assembleCommentTree(level1, level2, nil, map[string]int{})

	require.Len(t, tree, 2)
	assert.Equal(t, "newest", tree[0].ID)
	require.Len(t, tree[1].Replies, 2)
	assert.Equal(t, "first-reply", tree[1].Replies[0].ID)
	assert.Equal(t, "second-reply", tree[1].Replies[1].ID)
}

func TestAssembleCommentTreeRepliesNeverNil(t *testing.T) {
	level1 := []types.Comment{comment("c1", nil)}
	level2 := []types.Comment{comment("r1", ptr("c1"))}
	level3 := []types.Comment{comment("rr1", ptr("r1"))}

	tree := assembleCommentTree(level1, level2, level3, map[string]int{})

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	// Leaf nodes still marshal as [] rather than null.
	assert.NotNil(t, tree[0].Replies[0].Replies[0].Replies)
	assert.Empty(t, tree[0].Replies[0].Replies[0].Replies)
}

func TestAssembleCommentTreeReplyCountCoversAllStatuses(t *testing.T) {
	// The count map is computed over every stored child, so a node with
	// no approved replies can still report pending ones.
	level1 := []types.Comment{comment("c1", nil)}
	counts := map[string]int{"c1": 3}

	tree := assembleCommentTree(level1, nil, nil, counts)

	require.Len(t, tree, 1)
	assert.Equal(t, 3, tree[0].ReplyCount)
	assert.Empty(t, tree[0].Replies)
}
