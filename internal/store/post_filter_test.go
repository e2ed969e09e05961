package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-blog/apiserver/types"
)

func TestWhereClauseEmptyFilter(t *testing.T) {
	where, args := PostFilter{}.whereClause()

	assert.Equal(t, "", where)
	assert.Nil(t, args)
}

func TestWhereClauseSearch(t *testing.T) {
	where, args := PostFilter{Search: "golang"}.whereClause()

	assert.Equal(t, "WHERE (p.title ILIKE $1 OR p.content ILIKE $1 OR $2 = ANY(p.tags))", where)
	assert.Equal(t, []any{"%golang%", "golang"}, args)
}

func TestWhereClauseCombinesWithAnd(t *testing.T) {
	featured := true
	filter := PostFilter{
		Search:     "go",
		IsFeatured: &featured,
		Status:     types.PostPublished,
		AuthorID:   "author-1",
	}

	where, args := filter.whereClause()

	assert.Equal(t,
		"WHERE (p.title ILIKE $1 OR p.content ILIKE $1 OR $2 = ANY(p.tags))"+
			" AND p.is_featured = $3 AND p.status = $4 AND p.author_id = $5",
		where)
	assert.Len(t, args, 5)
	assert.Equal(t, "%go%", args[0])
	assert.Equal(t, true, args[2])
	assert.Equal(t, "PUBLISHED", args[3])
	assert.Equal(t, "author-1", args[4])
}

func TestWhereClauseTagsUseContainment(t *testing.T) {
	where, args := PostFilter{Tags: []string{"go", "sql"}}.whereClause()

	assert.Equal(t, "WHERE p.tags @> $1", where)
	assert.Len(t, args, 1)
}

func TestWhereClauseIgnoresBlankSearch(t *testing.T) {
	where, args := PostFilter{Search: "   "}.whereClause()

	assert.Equal(t, "", where)
	assert.Nil(t, args)
}

func TestWhereClauseIsFeaturedFalseStillFilters(t *testing.T) {
	featured := false
	where, args := PostFilter{IsFeatured: &featured}.whereClause()

	assert.Equal(t, "WHERE p.is_featured = $1", where)
	assert.Equal(t, []any{false}, args)
}

func TestOrderClauseDefaultsToNewestFirst(t *testing.T) {
	assert.Equal(t, "ORDER BY p.created_at DESC", ListPostsParams{}.orderClause())
}

func TestOrderClauseRequiresBothSortFields(t *testing.T) {
	params := ListPostsParams{SortBy: "views"}
	assert.Equal(t, "ORDER BY p.created_at DESC", params.orderClause())

	params = ListPostsParams{SortOrder: "asc"}
	assert.Equal(t, "ORDER BY p.created_at DESC", params.orderClause())
}

func TestOrderClauseWhitelistsColumns(t *testing.T) {
	params := ListPostsParams{SortBy: "views; DROP TABLE posts", SortOrder: "asc"}
	assert.Equal(t, "ORDER BY p.created_at DESC", params.orderClause())

	params = ListPostsParams{SortBy: "views", SortOrder: "asc"}
	assert.Equal(t, "ORDER BY p.views ASC", params.orderClause())

	params = ListPostsParams{SortBy: "createdAt", SortOrder: "desc"}
	assert.Equal(t, "ORDER BY p.created_at DESC", params.orderClause())
}

func TestOrderClauseUnknownDirectionFallsBackToAsc(t *testing.T) {
	params := ListPostsParams{SortBy: "title", SortOrder: "sideways"}
	assert.Equal(t, "ORDER BY p.title ASC", params.orderClause())
}
