package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-blog/apiserver/internal/services"
	"github.com/inkwell-blog/apiserver/internal/store"
	"github.com/inkwell-blog/apiserver/types"
)

// PostHandler provides HTTP handlers for posts.
type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRouter registers post routes on the given router. mediaRoutes,
// when non-nil, is mounted under /{postID}/media.
func PostRouter(
	r chi.Router,
	postService *services.PostService,
	sessionMiddleware func(http.Handler) http.Handler,
	mediaRoutes func(chi.Router),
) {
	handler := NewPostHandler(postService)

	r.Get("/", handler.ListPosts)
	r.With(sessionMiddleware).Post("/", handler.CreatePost)
	r.With(sessionMiddleware).Post("/create-many", handler.CreateManyPosts)
	r.With(sessionMiddleware).Get("/my-posts", handler.MyPosts)
	r.With(sessionMiddleware, RequireRoles(types.RoleAdmin)).Get("/stats", handler.Stats)
	r.Route("/{postID}", func(r chi.Router) {
		r.Get("/", handler.GetPost)
		r.With(sessionMiddleware).Patch("/", handler.UpdatePost)
		r.With(sessionMiddleware).Delete("/", handler.DeletePost)
		if mediaRoutes != nil {
			r.Route("/media", mediaRoutes)
		}
	})
}

// ListPosts returns the filtered, paginated, sorted page of posts.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	params, page, limit, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, total, err := h.postService.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err, "failed to list posts")
		return
	}

	writeSuccessMeta(w, http.StatusOK, "posts fetched", posts, newMeta(total, page, limit))
}

// MyPosts returns the requester's own posts.
func (h *PostHandler) MyPosts(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	params, page, limit, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, total, err := h.postService.ListMine(r.Context(), params, session.ID)
	if err != nil {
		writeServiceError(w, err, "failed to list posts")
		return
	}

	writeSuccessMeta(w, http.StatusOK, "posts fetched", posts, newMeta(total, page, limit))
}

// GetPost returns one post with its approved comment thread. Each fetch
// counts a view.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "postID")

	detail, err := h.postService.GetDetail(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch post")
		return
	}

	writeSuccess(w, http.StatusOK, "post fetched", detail)
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	req, err := decodePostCreate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.postService.Create(r.Context(), types.Post{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Status:     types.PostStatus(req.Status),
		IsFeatured: req.IsFeatured && session.Role == types.RoleAdmin,
		AuthorID:   session.ID,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create post")
		return
	}

	writeSuccess(w, http.StatusCreated, "post created", created)
}

// CreateManyPosts inserts a batch of posts in one transaction and
// returns the count created.
func (h *PostHandler) CreateManyPosts(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var reqs []PostCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(reqs) == 0 {
		writeError(w, http.StatusBadRequest, "no posts provided")
		return
	}

	posts := make([]types.Post, 0, len(reqs))
	for _, req := range reqs {
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		posts = append(posts, types.Post{
			Title:      req.Title,
			Content:    req.Content,
			Tags:       req.Tags,
			Status:     types.PostStatus(req.Status),
			IsFeatured: req.IsFeatured && session.Role == types.RoleAdmin,
		})
	}

	count, err := h.postService.CreateMany(r.Context(), posts, session.ID)
	if err != nil {
		writeServiceError(w, err, "failed to create posts")
		return
	}

	writeSuccess(w, http.StatusCreated, "posts created", map[string]int64{"count": count})
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "postID")

	var req PostUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	patch, err := req.patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.postService.Update(r.Context(), id, patch, session.ID, session.Role)
	if err != nil {
		writeServiceError(w, err, "failed to update post")
		return
	}

	writeSuccess(w, http.StatusOK, "post updated", updated)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "postID")

	if err := h.postService.Delete(r.Context(), id, session.ID, session.Role); err != nil {
		writeServiceError(w, err, "failed to delete post")
		return
	}

	writeSuccess(w, http.StatusOK, "post deleted", nil)
}

// Stats returns the aggregate snapshot over posts, views and comments.
func (h *PostHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.postService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to compute statistics")
		return
	}

	writeSuccess(w, http.StatusOK, "statistics fetched", stats)
}

type PostCreateRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status"`
	IsFeatured bool     `json:"isFeatured"`
}

func (r *PostCreateRequest) validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.Content == "" {
		return errors.New("content is required")
	}
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if r.Status != "" && !types.ValidPostStatus(types.PostStatus(r.Status)) {
		return errors.New("invalid status")
	}
	return nil
}

func decodePostCreate(r *http.Request) (PostCreateRequest, error) {
	var req PostCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return PostCreateRequest{}, errors.New("invalid request")
	}
	if err := req.validate(); err != nil {
		return PostCreateRequest{}, err
	}
	return req, nil
}

// PostUpdateRequest carries the optional fields of a partial update.
type PostUpdateRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	Status     *string   `json:"status"`
	IsFeatured *bool     `json:"isFeatured"`
}

func (r PostUpdateRequest) patch() (store.PostPatch, error) {
	patch := store.PostPatch{
		Title:      r.Title,
		Content:    r.Content,
		Tags:       r.Tags,
		IsFeatured: r.IsFeatured,
	}
	if r.Status != nil {
		status := types.PostStatus(strings.ToUpper(strings.TrimSpace(*r.Status)))
		if !types.ValidPostStatus(status) {
			return store.PostPatch{}, errors.New("invalid status")
		}
		patch.Status = &status
	}
	return patch, nil
}
