// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/coursekit/internal/core"
	"github.com/carterperez-dev/coursekit/internal/middleware"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the self-service endpoints. Callers are already
// authenticated by the time these run.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users/me", h.Me)
	r.Get("/users/me/courses", h.MyCourses)
	r.Post("/instructor/role", h.BecomeInstructor)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/users", h.ListUsers)
	r.Post("/users/role", h.SetRole)
}

// RegisterBootstrapRoute is mounted behind the admin-candidate gate, not the
// admin gate: it must be reachable before the admin claim exists.
func (h *Handler) RegisterBootstrapRoute(r chi.Router) {
	r.Post("/bootstrap", h.Bootstrap)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) MyCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.MyCourses(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, courses)
}

func (h *Handler) BecomeInstructor(w http.ResponseWriter, r *http.Request) {
	err := h.service.BecomeInstructor(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, RoleResponse{
		UserID: middleware.GetUserID(r.Context()),
		Role:   "instructor",
	})
}

func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.SetRole(r.Context(), req); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, RoleResponse{UserID: req.UserID, Role: req.Role})
}

func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	err := h.service.Bootstrap(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, RoleResponse{
		UserID: middleware.GetUserID(r.Context()),
		Role:   "admin",
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	users, total, err := h.service.ListUsers(r.Context(), page, pageSize)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, users, page, pageSize, total)
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
