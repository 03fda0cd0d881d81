// AngelaMos | 2026
// handler.go

package course

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
	gate    *middleware.Gate
}

func NewHandler(service *Service, gate *middleware.Gate) *Handler {
	return &Handler{
		service: service,
		gate:    gate,
	}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/courses", h.ListPublished)
	r.Get("/courses/{courseID}", h.Get)
}

func (h *Handler) RegisterInstructorRoutes(r chi.Router) {
	r.Post("/instructor/courses", h.Create)
	r.Get("/instructor/courses", h.ListMine)
	r.Get("/instructor/courses/{courseID}", h.GetMine)
	r.Patch("/instructor/courses/{courseID}", h.Update)
	r.Delete("/instructor/courses/{courseID}", h.DeleteByInstructor)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/courses", h.ListAll)
	r.Patch("/courses/{courseID}/publish", h.TogglePublish)
	r.Delete("/courses/{courseID}", h.DeleteByAdmin)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.service.Create(r.Context(), h.actor(r), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.service.Update(
		r.Context(),
		h.actor(r),
		chi.URLParam(r, "courseID"),
		req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.TogglePublish(
		r.Context(),
		chi.URLParam(r, "courseID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) DeleteByInstructor(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteByInstructor(
		r.Context(),
		h.actor(r),
		chi.URLParam(r, "courseID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) DeleteByAdmin(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteByAdmin(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(
		r.Context(),
		h.actor(r),
		chi.URLParam(r, "courseID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetMine(
		r.Context(),
		h.actor(r),
		chi.URLParam(r, "courseID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	courses, total, err := h.service.ListPublished(r.Context(), page, pageSize)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, courses, page, pageSize, total)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	courses, total, err := h.service.ListAll(r.Context(), page, pageSize)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, courses, page, pageSize, total)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListMine(r.Context(), h.actor(r))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, courses)
}

func (h *Handler) actor(r *http.Request) Actor {
	return Actor{
		ID:    middleware.GetUserID(r.Context()),
		Admin: h.gate.ClassifyRequest(r) == middleware.LevelAdmin,
	}
}

func parsePagination(r *http.Request) (int, int) {
	page := 1
	pageSize := 20

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	if s, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil &&
		s > 0 && s <= 100 {
		pageSize = s
	}

	return page, pageSize
}
