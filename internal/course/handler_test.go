// AngelaMos | 2026
// handler_test.go

package course

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursekit/internal/identity"
	"github.com/carterperez-dev/coursekit/internal/middleware"
)

const testAdminID = "usr_admin"

// newTestRouter mounts the handler the way the API does: public routes
// open, instructor routes behind the gate.
func newTestRouter(store *fakeStore) *chi.Mux {
	svc, _, _ := newTestService(store)
	gate := middleware.NewGate(testAdminID)
	h := NewHandler(svc, gate)

	r := chi.NewRouter()
	r.Group(h.RegisterPublicRoutes)
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireInstructor)
		h.RegisterInstructorRoutes(r)
	})
	return r
}

func instructorRequest(target, userID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := context.WithValue(r.Context(), middleware.ClaimsKey,
		&identity.Claims{Subject: userID, Role: identity.RoleInstructor})
	return r.WithContext(ctx)
}

func TestInstructorCourseRouteServesOwnDraft(t *testing.T) {
	store := newFakeStore(&Course{ID: "c1", Title: "Go",
		InstructorID: "usr_owner"})
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, instructorRequest("/instructor/courses/c1", "usr_owner"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    CourseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "c1", body.Data.ID)
	assert.False(t, body.Data.IsPublished)
}

func TestInstructorCourseRouteHidesForeignCourse(t *testing.T) {
	store := newFakeStore(&Course{ID: "c1", InstructorID: "usr_owner",
		IsPublished: true})
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, instructorRequest("/instructor/courses/c1", "usr_other"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicCourseRouteHidesDrafts(t *testing.T) {
	store := newFakeStore(&Course{ID: "c1", InstructorID: "usr_owner"})
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/courses/c1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
