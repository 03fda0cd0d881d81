// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursekit/internal/core"
	"github.com/carterperez-dev/coursekit/internal/course"
	"github.com/carterperez-dev/coursekit/internal/identity"
)

type fakeStore struct {
	users map[string]*User
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.NotFoundError("user")
	}
	return u, nil
}

func (f *fakeStore) List(ctx context.Context, page, pageSize int) ([]User, int, error) {
	out := []User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeStore) EnrolledCourseIDs(ctx context.Context, userID string) ([]string, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, core.NotFoundError("user")
	}
	return u.EnrolledCourses, nil
}

func (f *fakeStore) GetRole(ctx context.Context, externalID string) (string, error) {
	u, ok := f.users[externalID]
	if !ok {
		return "", core.NotFoundError("user")
	}
	return u.Role, nil
}

func (f *fakeStore) UpdateRole(ctx context.Context, externalID, role string) error {
	u, ok := f.users[externalID]
	if !ok {
		return core.NotFoundError("user")
	}
	u.Role = role
	return nil
}

type fakeProvider struct {
	claims map[string]string
}

func (f *fakeProvider) VerifyCaller(ctx context.Context, token string) (*identity.Claims, error) {
	return nil, core.TokenInvalidError()
}

func (f *fakeProvider) SetRoleClaim(ctx context.Context, externalID, role string) error {
	if f.claims == nil {
		f.claims = map[string]string{}
	}
	f.claims[externalID] = role
	return nil
}

type fakeCatalog struct {
	courses map[string]course.Course
}

func (f *fakeCatalog) ListByIDs(ctx context.Context, ids []string) ([]course.Course, error) {
	out := []course.Course{}
	for _, id := range ids {
		if c, ok := f.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestService(store *fakeStore, provider *fakeProvider, catalog *fakeCatalog) *Service {
	mirror := identity.NewMirror(provider, store, "usr_admin")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, catalog, mirror, logger)
}

func TestSetRoleSyncsProviderAndMirror(t *testing.T) {
	store := &fakeStore{users: map[string]*User{
		"usr_1": {ID: "usr_1", Role: identity.RoleStudent},
	}}
	provider := &fakeProvider{}
	svc := newTestService(store, provider, &fakeCatalog{})

	err := svc.SetRole(context.Background(), SetRoleRequest{
		UserID: "usr_1",
		Role:   identity.RoleInstructor,
	})
	require.NoError(t, err)

	assert.Equal(t, identity.RoleInstructor, provider.claims["usr_1"])
	assert.Equal(t, identity.RoleInstructor, store.users["usr_1"].Role)
}

func TestSetRoleNeverAssignsAdmin(t *testing.T) {
	store := &fakeStore{users: map[string]*User{
		"usr_1": {ID: "usr_1", Role: identity.RoleStudent},
	}}
	provider := &fakeProvider{}
	svc := newTestService(store, provider, &fakeCatalog{})

	err := svc.SetRole(context.Background(), SetRoleRequest{
		UserID: "usr_1",
		Role:   identity.RoleAdmin,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Empty(t, provider.claims)
	assert.Equal(t, identity.RoleStudent, store.users["usr_1"].Role)
}

func TestBecomeInstructor(t *testing.T) {
	store := &fakeStore{users: map[string]*User{
		"usr_1": {ID: "usr_1", Role: identity.RoleStudent},
	}}
	provider := &fakeProvider{}
	svc := newTestService(store, provider, &fakeCatalog{})

	require.NoError(t, svc.BecomeInstructor(context.Background(), "usr_1"))
	assert.Equal(t, identity.RoleInstructor, store.users["usr_1"].Role)
}

func TestBootstrapOnlyAdminIdentity(t *testing.T) {
	store := &fakeStore{users: map[string]*User{
		"usr_admin": {ID: "usr_admin", Role: identity.RoleStudent},
		"usr_1":     {ID: "usr_1", Role: identity.RoleStudent},
	}}
	provider := &fakeProvider{}
	svc := newTestService(store, provider, &fakeCatalog{})

	err := svc.Bootstrap(context.Background(), "usr_1")
	assert.ErrorIs(t, err, core.ErrForbidden)

	require.NoError(t, svc.Bootstrap(context.Background(), "usr_admin"))
	assert.Equal(t, identity.RoleAdmin, store.users["usr_admin"].Role)

	// repeat run is a no-op success
	require.NoError(t, svc.Bootstrap(context.Background(), "usr_admin"))
}

func TestMyCoursesResolvesEnrollments(t *testing.T) {
	store := &fakeStore{users: map[string]*User{
		"usr_1": {ID: "usr_1", EnrolledCourses: []string{"c1", "c_deleted"}},
	}}
	catalog := &fakeCatalog{courses: map[string]course.Course{
		"c1": {ID: "c1", Title: "Go"},
	}}
	svc := newTestService(store, &fakeProvider{}, catalog)

	courses, err := svc.MyCourses(context.Background(), "usr_1")
	require.NoError(t, err)

	// a dangling id resolves to nothing rather than an error
	require.Len(t, courses, 1)
	assert.Equal(t, "c1", courses[0].ID)
}

func TestMyCoursesEmptyEnrollment(t *testing.T) {
	store := &fakeStore{users: map[string]*User{
		"usr_1": {ID: "usr_1"},
	}}
	svc := newTestService(store, &fakeProvider{}, &fakeCatalog{})

	courses, err := svc.MyCourses(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestMeUnknownUser(t *testing.T) {
	svc := newTestService(&fakeStore{users: map[string]*User{}}, &fakeProvider{}, &fakeCatalog{})

	_, err := svc.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
