// AngelaMos | 2026
// mirror_test.go

package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursekit/internal/core"
)

type fakeProvider struct {
	claims   map[string]string
	setErr   error
	setCalls int
}

func (f *fakeProvider) VerifyCaller(ctx context.Context, token string) (*Claims, error) {
	return nil, errors.New("not used")
}

func (f *fakeProvider) SetRoleClaim(ctx context.Context, externalID, role string) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	if f.claims == nil {
		f.claims = map[string]string{}
	}
	f.claims[externalID] = role
	return nil
}

type fakeRoleStore struct {
	roles     map[string]string
	updateErr error
}

func (f *fakeRoleStore) GetRole(ctx context.Context, externalID string) (string, error) {
	role, ok := f.roles[externalID]
	if !ok {
		return "", core.NotFoundError("user")
	}
	return role, nil
}

func (f *fakeRoleStore) UpdateRole(ctx context.Context, externalID, role string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.roles == nil {
		f.roles = map[string]string{}
	}
	f.roles[externalID] = role
	return nil
}

func TestSyncRoleWritesBothStores(t *testing.T) {
	provider := &fakeProvider{}
	local := &fakeRoleStore{roles: map[string]string{"usr_1": RoleStudent}}
	m := NewMirror(provider, local, "usr_admin")

	err := m.SyncRole(context.Background(), "usr_1", RoleInstructor)
	require.NoError(t, err)

	assert.Equal(t, RoleInstructor, provider.claims["usr_1"])
	assert.Equal(t, RoleInstructor, local.roles["usr_1"])
}

func TestSyncRoleRejectsAdmin(t *testing.T) {
	provider := &fakeProvider{}
	local := &fakeRoleStore{}
	m := NewMirror(provider, local, "usr_admin")

	err := m.SyncRole(context.Background(), "usr_1", RoleAdmin)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Zero(t, provider.setCalls)
}

func TestSyncRoleRejectsUnknownRole(t *testing.T) {
	m := NewMirror(&fakeProvider{}, &fakeRoleStore{}, "usr_admin")

	err := m.SyncRole(context.Background(), "usr_1", "moderator")
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestSyncRoleProviderFailureLeavesMirrorUntouched(t *testing.T) {
	provider := &fakeProvider{setErr: errors.New("provider down")}
	local := &fakeRoleStore{roles: map[string]string{"usr_1": RoleStudent}}
	m := NewMirror(provider, local, "usr_admin")

	err := m.SyncRole(context.Background(), "usr_1", RoleInstructor)
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrPartialSync)
	assert.Equal(t, RoleStudent, local.roles["usr_1"])
}

func TestSyncRoleLocalFailureIsPartialSync(t *testing.T) {
	provider := &fakeProvider{}
	local := &fakeRoleStore{updateErr: errors.New("db down")}
	m := NewMirror(provider, local, "usr_admin")

	err := m.SyncRole(context.Background(), "usr_1", RoleInstructor)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPartialSync)
	assert.Equal(t, RoleInstructor, provider.claims["usr_1"])
}

func TestBootstrapAdminOnlyConfiguredIdentity(t *testing.T) {
	provider := &fakeProvider{}
	local := &fakeRoleStore{roles: map[string]string{"usr_other": RoleStudent}}
	m := NewMirror(provider, local, "usr_admin")

	err := m.BootstrapAdmin(context.Background(), "usr_other")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Zero(t, provider.setCalls)
}

func TestBootstrapAdminSetsAdminRole(t *testing.T) {
	provider := &fakeProvider{}
	local := &fakeRoleStore{roles: map[string]string{"usr_admin": RoleStudent}}
	m := NewMirror(provider, local, "usr_admin")

	err := m.BootstrapAdmin(context.Background(), "usr_admin")
	require.NoError(t, err)

	assert.Equal(t, RoleAdmin, provider.claims["usr_admin"])
	assert.Equal(t, RoleAdmin, local.roles["usr_admin"])
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	local := &fakeRoleStore{roles: map[string]string{"usr_admin": RoleAdmin}}
	m := NewMirror(provider, local, "usr_admin")

	err := m.BootstrapAdmin(context.Background(), "usr_admin")
	require.NoError(t, err)
	assert.Zero(t, provider.setCalls)
}

func TestBootstrapAdminUnconfigured(t *testing.T) {
	m := NewMirror(&fakeProvider{}, &fakeRoleStore{}, "")

	err := m.BootstrapAdmin(context.Background(), "usr_1")
	assert.ErrorIs(t, err, core.ErrForbidden)
}
