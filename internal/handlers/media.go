package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-blog/apiserver/internal/services"
)

const (
	maxMultipartMemory = 10 << 20
	maxMediaBytes      = 10 << 20
	formFieldFile      = "file"
)

// MediaHandler provides HTTP handlers for post media attachments.
type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// MediaRouter registers media routes under a post route. The routes are
// only mounted when an object storage backend is configured.
func MediaRouter(
	r chi.Router,
	mediaService *services.MediaService,
	sessionMiddleware func(http.Handler) http.Handler,
) {
	handler := NewMediaHandler(mediaService)

	r.With(sessionMiddleware).Post("/", handler.Upload)
	r.Get("/", handler.ListByPost)
	r.Route("/{mediaID}", func(r chi.Router) {
		r.Get("/", handler.Download)
		r.With(sessionMiddleware).Delete("/", handler.Delete)
	})
}

// Upload attaches a file to a post from a multipart form.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID := chi.URLParam(r, "postID")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile(formFieldFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxMediaBytes {
		writeError(w, http.StatusBadRequest, "uploaded file too large")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	media, err := h.mediaService.Upload(
		r.Context(),
		postID,
		session.ID,
		session.Role,
		header.Filename,
		contentType,
		header.Size,
		io.LimitReader(file, maxMediaBytes),
	)
	if err != nil {
		writeServiceError(w, err, "failed to upload media")
		return
	}

	writeSuccess(w, http.StatusCreated, "media uploaded", media)
}

// ListByPost returns the attachments of one post.
func (h *MediaHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	media, err := h.mediaService.ListByPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err, "failed to list media")
		return
	}

	writeSuccess(w, http.StatusOK, "media fetched", media)
}

// Download streams the object bytes for one attachment.
func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mediaID")

	media, reader, err := h.mediaService.Open(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch media")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", media.ContentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+media.Filename+`"`)
	if media.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(media.Size, 10))
	}
	_, _ = io.Copy(w, reader)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "mediaID")

	if err := h.mediaService.Delete(r.Context(), id, session.ID, session.Role); err != nil {
		writeServiceError(w, err, "failed to delete media")
		return
	}

	writeSuccess(w, http.StatusOK, "media deleted", nil)
}
