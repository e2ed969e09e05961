package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/inkwell-blog/apiserver/internal/services"
	"github.com/inkwell-blog/apiserver/internal/store"
	"github.com/inkwell-blog/apiserver/types"
)

type contextKey string

const contextSessionKey contextKey = "session"

func sessionFromContext(ctx context.Context) (types.Session, error) {
	session, ok := ctx.Value(contextSessionKey).(types.Session)
	if !ok || session.ID == "" {
		return types.Session{}, errors.New("missing session")
	}
	return session, nil
}

// Response is the envelope wrapping every payload.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Meta carries pagination details on list responses.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int64 `json:"totalPages"`
	Limit      int   `json:"limit"`
	Skip       int   `json:"skip"`
}

func newMeta(total int64, page, limit int) *Meta {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &Meta{
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Limit:      limit,
		Skip:       (page - 1) * limit,
	}
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

func writeSuccessMeta(w http.ResponseWriter, status int, message string, data any, meta *Meta) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data, Meta: meta})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message, Error: message})
}

// writeServiceError maps the service and store error taxonomy onto HTTP
// statuses, with fallback as the opaque 500 message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "you are not allowed to perform this action")
	case errors.Is(err, services.ErrUserInactive):
		writeError(w, http.StatusForbidden, "your account is not active")
	case errors.Is(err, services.ErrNoUpdates):
		writeError(w, http.StatusBadRequest, "no update data provided")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

const (
	defaultPage  = 1
	defaultLimit = 5
	maxLimit     = 100
)

// parseListQuery extracts filter, pagination and sort parameters from a
// list request. Both sortBy and sortOrder must be present for an order
// clause to apply.
func parseListQuery(r *http.Request) (store.ListPostsParams, int, int, error) {
	query := r.URL.Query()
	var params store.ListPostsParams

	params.Filter.Search = strings.TrimSpace(query.Get("search"))
	params.Filter.Tags = parseTags(query.Get("tags"))
	params.Filter.AuthorID = strings.TrimSpace(query.Get("authorId"))

	if raw := strings.TrimSpace(query.Get("isFeatured")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return store.ListPostsParams{}, 0, 0, errors.New("invalid isFeatured")
		}
		params.Filter.IsFeatured = &value
	}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status := types.PostStatus(strings.ToUpper(raw))
		if !types.ValidPostStatus(status) {
			return store.ListPostsParams{}, 0, 0, errors.New("invalid status")
		}
		params.Filter.Status = status
	}

	page := defaultPage
	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return store.ListPostsParams{}, 0, 0, errors.New("invalid page")
		}
		page = parsed
	}

	limit := defaultLimit
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return store.ListPostsParams{}, 0, 0, errors.New("invalid limit")
		}
		limit = parsed
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	params.Skip = (page - 1) * limit
	params.Take = limit
	params.SortBy = strings.TrimSpace(query.Get("sortBy"))
	params.SortOrder = strings.TrimSpace(query.Get("sortOrder"))

	return params, page, limit, nil
}

func parseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
