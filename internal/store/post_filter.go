package store

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/inkwell-blog/apiserver/types"
)

// PostFilter holds the optional criteria for listing posts. Absent
// fields impose no constraint; present fields combine with AND.
type PostFilter struct {
	// Search matches case-insensitively against title or content, or
	// exactly against a tag.
	Search string

	// Tags requires the post's tag set to contain every listed tag.
	Tags []string

	IsFeatured *bool
	Status     types.PostStatus
	AuthorID   string
}

// ListPostsParams combines a filter with pagination and sorting.
type ListPostsParams struct {
	Filter    PostFilter
	Skip      int
	Take      int
	SortBy    string
	SortOrder string
}

// sortColumns whitelists the API sort fields against column names.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"views":     "views",
	"status":    "status",
}

// whereClause renders the filter as an AND of SQL predicates over the
// posts table aliased "p". Placeholders start at $1; the same clause
// and args feed both the page query and the count query so total is
// always computed under the identical filter.
func (f PostFilter) whereClause() (string, []any) {
	var conditions []string
	var args []any

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + search + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.content ILIKE $%d OR $%d = ANY(p.tags))",
			len(args)+1, len(args)+1, len(args)+2))
		args = append(args, pattern, search)
	}

	if len(f.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf("p.tags @> $%d", len(args)+1))
		args = append(args, pq.Array(f.Tags))
	}

	if f.IsFeatured != nil {
		conditions = append(conditions, fmt.Sprintf("p.is_featured = $%d", len(args)+1))
		args = append(args, *f.IsFeatured)
	}

	if f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)+1))
		args = append(args, string(f.Status))
	}

	if f.AuthorID != "" {
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)+1))
		args = append(args, f.AuthorID)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause renders the sort pair, falling back to newest-first when
// the pair is absent or the field is not whitelisted.
func (p ListPostsParams) orderClause() string {
	column, ok := sortColumns[p.SortBy]
	if !ok || p.SortOrder == "" {
		return "ORDER BY p.created_at DESC"
	}

	direction := "ASC"
	if strings.EqualFold(p.SortOrder, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY p.%s %s", column, direction)
}
