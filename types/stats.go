package types

// BlogStats is a consistent snapshot of aggregate statistics across
// posts and comments, computed in a single transaction.
type BlogStats struct {
	Posts    PostTotals    `json:"posts"`
	Views    ViewStats     `json:"views"`
	Comments CommentTotals `json:"comments"`
}

// PostTotals breaks down post counts by lifecycle status and author role.
type PostTotals struct {
	Total        int64 `json:"total"`
	Published    int64 `json:"published"`
	Draft        int64 `json:"draft"`
	Archived     int64 `json:"archived"`
	Featured     int64 `json:"featured"`
	AdminAuthors int64 `json:"adminAuthors"`
	UserAuthors  int64 `json:"userAuthors"`
}

// ViewStats aggregates post view counters. All fields are zero when no
// posts exist. Avg is rounded to two decimal places.
type ViewStats struct {
	Total int64   `json:"total"`
	Avg   float64 `json:"avg"`
	Min   int64   `json:"min"`
	Max   int64   `json:"max"`
}

// CommentTotals breaks down comment counts by moderation status.
type CommentTotals struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
