// AngelaMos | 2026
// handler.go

package dashboard

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

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/dashboard", h.Admin)
}

func (h *Handler) RegisterInstructorRoutes(r chi.Router) {
	r.Get("/instructor/dashboard", h.Instructor)
}

func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.service.AdminDashboard(r.Context()))
}

func (h *Handler) Instructor(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.service.InstructorDashboard(
		r.Context(),
		middleware.GetUserID(r.Context()),
	))
}
