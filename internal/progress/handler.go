// AngelaMos | 2026
// handler.go

package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/coursekit/internal/core"
	"github.com/carterperez-dev/coursekit/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts progress endpoints for authenticated callers. The
// service enforces enrollment per course.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/courses/{courseID}/progress", h.Get)
	r.Post("/courses/{courseID}/progress/lectures/{lectureID}", h.MarkLecture)
	r.Post("/courses/{courseID}/progress/complete", h.Complete)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "courseID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) MarkLecture(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.MarkLecture(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "courseID"),
		chi.URLParam(r, "lectureID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Complete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "courseID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}
