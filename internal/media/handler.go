// AngelaMos | 2026
// handler.go

package media

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/coursekit/internal/config"
	"github.com/carterperez-dev/coursekit/internal/core"
)

type Handler struct {
	store   Store
	maxSize int64
}

func NewHandler(store Store, cfg config.MediaConfig) *Handler {
	return &Handler{
		store:   store,
		maxSize: cfg.MaxSize,
	}
}

func (h *Handler) RegisterInstructorRoutes(r chi.Router) {
	r.Post("/instructor/media", h.Upload)
}

type UploadResponse struct {
	URL string `json:"url"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			core.BadRequest(w, "file exceeds the upload size limit")
			return
		}
		core.BadRequest(w, "file is required")
		return
	}
	defer file.Close() //nolint:errcheck // read-only close

	url, err := h.store.Save(
		r.Context(),
		filepath.Ext(header.Filename),
		file,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, UploadResponse{URL: url})
}
