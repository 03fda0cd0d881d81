// AngelaMos | 2026
// handler_test.go

package purchase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursekit/internal/core"
	"github.com/carterperez-dev/coursekit/internal/identity"
	"github.com/carterperez-dev/coursekit/internal/middleware"
)

type fakeStore struct {
	purchases []Purchase
	roster    map[string][]EnrolledStudent
}

func (f *fakeStore) Create(ctx context.Context, tx core.DBTX, p *Purchase) error {
	f.purchases = append(f.purchases, *p)
	return nil
}

func (f *fakeStore) List(ctx context.Context, page, pageSize int) ([]Purchase, int, error) {
	return f.purchases, len(f.purchases), nil
}

func (f *fakeStore) EnrolledStudentsByInstructor(
	ctx context.Context,
	instructorID string,
) ([]EnrolledStudent, error) {
	return f.roster[instructorID], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rosterRequest(userID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/instructor/enrolled-students", nil)
	ctx := context.WithValue(r.Context(), middleware.ClaimsKey,
		&identity.Claims{Subject: userID, Role: identity.RoleInstructor})
	return r.WithContext(ctx)
}

func TestEnrolledStudentsScopedToCaller(t *testing.T) {
	bought := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{roster: map[string][]EnrolledStudent{
		"usr_owner": {
			{
				StudentName:  "Ada",
				StudentImage: "/media/ada.png",
				CourseTitle:  "Go Basics",
				PurchasedAt:  bought,
			},
		},
		"usr_other": {
			{StudentName: "Eve", CourseTitle: "Rust Basics"},
		},
	}}

	svc := NewService(nil, store, nil, nil, nil, testLogger())
	h := NewHandler(svc)

	r := chi.NewRouter()
	h.RegisterInstructorRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, rosterRequest("usr_owner"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    []EnrolledStudent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1, "only the caller's own buyers are visible")
	assert.Equal(t, "Ada", body.Data[0].StudentName)
	assert.Equal(t, "Go Basics", body.Data[0].CourseTitle)
	assert.True(t, bought.Equal(body.Data[0].PurchasedAt))
}

func TestEnrolledStudentsEmptyRoster(t *testing.T) {
	svc := NewService(nil, &fakeStore{}, nil, nil, nil, testLogger())
	h := NewHandler(svc)

	r := chi.NewRouter()
	h.RegisterInstructorRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, rosterRequest("usr_owner"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []EnrolledStudent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
}
