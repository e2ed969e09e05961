package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-blog/apiserver/internal/services"
	"github.com/inkwell-blog/apiserver/types"
)

// CommentHandler provides HTTP handlers for comments.
type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRouter registers comment routes on the given router.
func CommentRouter(
	r chi.Router,
	commentService *services.CommentService,
	sessionMiddleware func(http.Handler) http.Handler,
) {
	handler := NewCommentHandler(commentService)

	r.With(sessionMiddleware).Post("/", handler.CreateComment)
	r.Get("/author/{authorID}", handler.ListByAuthor)
	r.Route("/{commentID}", func(r chi.Router) {
		r.Get("/", handler.GetComment)
		r.With(sessionMiddleware).Patch("/", handler.UpdateComment)
		r.With(sessionMiddleware, RequireRoles(types.RoleAdmin)).Patch("/status", handler.ModerateComment)
		r.With(sessionMiddleware).Delete("/", handler.DeleteComment)
	})
}

// CreateComment stores a new comment in PENDING state.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CommentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	req.PostID = strings.TrimSpace(req.PostID)
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.PostID == "" {
		writeError(w, http.StatusBadRequest, "postId is required")
		return
	}

	created, err := h.commentService.Create(r.Context(), types.Comment{
		Content:  req.Content,
		PostID:   req.PostID,
		ParentID: req.ParentID,
		AuthorID: session.ID,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create comment")
		return
	}

	writeSuccess(w, http.StatusCreated, "comment created", created)
}

// GetComment returns one comment with its author and parent attached.
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "commentID")

	comment, err := h.commentService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch comment")
		return
	}

	writeSuccess(w, http.StatusOK, "comment fetched", comment)
}

// ListByAuthor returns one author's comments, newest first.
func (h *CommentHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := chi.URLParam(r, "authorID")

	comments, err := h.commentService.ListByAuthor(r.Context(), authorID)
	if err != nil {
		writeServiceError(w, err, "failed to list comments")
		return
	}

	writeSuccess(w, http.StatusOK, "comments fetched", comments)
}

// UpdateComment edits a comment's text.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "commentID")

	var req CommentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	updated, err := h.commentService.UpdateContent(r.Context(), id, req.Content, session.ID, session.Role)
	if err != nil {
		writeServiceError(w, err, "failed to update comment")
		return
	}

	writeSuccess(w, http.StatusOK, "comment updated", updated)
}

// ModerateComment sets a comment's moderation status.
func (h *CommentHandler) ModerateComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "commentID")

	var req CommentModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	status := types.CommentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !types.ValidCommentStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := h.commentService.Moderate(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, err, "failed to update comment status")
		return
	}

	writeSuccess(w, http.StatusOK, "comment status updated", updated)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "commentID")

	if err := h.commentService.Delete(r.Context(), id, session.ID, session.Role); err != nil {
		writeServiceError(w, err, "failed to delete comment")
		return
	}

	writeSuccess(w, http.StatusOK, "comment deleted", nil)
}

type CommentCreateRequest struct {
	Content  string  `json:"content"`
	PostID   string  `json:"postId"`
	ParentID *string `json:"parentId"`
}

type CommentUpdateRequest struct {
	Content string `json:"content"`
}

type CommentModerateRequest struct {
	Status string `json:"status"`
}
