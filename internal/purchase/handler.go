// AngelaMos | 2026
// handler.go

package purchase

import (
	"encoding/json"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/enrollments", h.CompleteEnrollment)
	r.Get("/purchases", h.List)
}

func (h *Handler) RegisterInstructorRoutes(r chi.Router) {
	r.Get("/instructor/enrolled-students", h.EnrolledStudents)
}

// EnrolledStudents serves the instructor's roster of buyers. The caller's
// identity scopes the view; there is no way to read another instructor's
// roster through this route.
func (h *Handler) EnrolledStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.EnrolledStudents(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, students)
}

func (h *Handler) CompleteEnrollment(w http.ResponseWriter, r *http.Request) {
	var req EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.service.CompleteEnrollment(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	pageSize := 20

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil &&
		s > 0 && s <= 100 {
		pageSize = s
	}

	purchases, total, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, purchases, page, pageSize, total)
}
