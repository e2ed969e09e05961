package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/apiserver/types"
)

func TestParseListQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/posts", nil)

	params, page, limit, err := parseListQuery(r)
	require.NoError(t, err)

	assert.Equal(t, 1, page)
	assert.Equal(t, 5, limit)
	assert.Equal(t, 0, params.Skip)
	assert.Equal(t, 5, params.Take)
	assert.Empty(t, params.Filter.Search)
	assert.Nil(t, params.Filter.IsFeatured)
}

func TestParseListQuerySkipFromPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/posts?page=3&limit=10", nil)

	params, page, limit, err := parseListQuery(r)
	require.NoError(t, err)

	assert.Equal(t, 3, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, params.Skip)
	assert.Equal(t, 10, params.Take)
}

func TestParseListQueryClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/posts?limit=5000", nil)

	params, _, limit, err := parseListQuery(r)
	require.NoError(t, err)

	assert.Equal(t, 100, limit)
	assert.Equal(t, 100, params.Take)
}

func TestParseListQueryFilterFields(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/posts?search=go&tags=go,sql&isFeatured=true&status=published&authorId=u1", nil)

	params, _, _, err := parseListQuery(r)
	require.NoError(t, err)

	assert.Equal(t, "go", params.Filter.Search)
	assert.Equal(t, []string{"go", "sql"}, params.Filter.Tags)
	require.NotNil(t, params.Filter.IsFeatured)
	assert.True(t, *params.Filter.IsFeatured)
	assert.Equal(t, types.PostPublished, params.Filter.Status)
	assert.Equal(t, "u1", params.Filter.AuthorID)
}

func TestParseListQueryRejectsBadValues(t *testing.T) {
	for _, query := range []string{
		"page=0", "page=abc", "limit=-1", "isFeatured=maybe", "status=BOGUS",
	} {
		r := httptest.NewRequest("GET", "/posts?"+query, nil)
		_, _, _, err := parseListQuery(r)
		assert.Error(t, err, query)
	}
}

func TestParseListQuerySortPassthrough(t *testing.T) {
	r := httptest.NewRequest("GET", "/posts?sortBy=views&sortOrder=desc", nil)

	params, _, _, err := parseListQuery(r)
	require.NoError(t, err)

	assert.Equal(t, "views", params.SortBy)
	assert.Equal(t, "desc", params.SortOrder)
}

func TestNewMetaRoundsTotalPagesUp(t *testing.T) {
	meta := newMeta(11, 2, 5)

	assert.Equal(t, int64(11), meta.Total)
	assert.Equal(t, int64(3), meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 5, meta.Limit)
	assert.Equal(t, 5, meta.Skip)
}

func TestNewMetaEmptyResult(t *testing.T) {
	meta := newMeta(0, 1, 5)

	assert.Equal(t, int64(0), meta.Total)
	assert.Equal(t, int64(0), meta.TotalPages)
	assert.Equal(t, 0, meta.Skip)
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, parseTags(""))
	assert.Nil(t, parseTags("   "))
	assert.Equal(t, []string{"go"}, parseTags("go"))
	assert.Equal(t, []string{"go", "sql"}, parseTags(" go , sql ,, "))
}
