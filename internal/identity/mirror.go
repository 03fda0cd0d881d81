// AngelaMos | 2026
// mirror.go

package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/coursekit/internal/core"
)

// RoleStore is the local side of the mirror: the denormalized role column
// on the users table. It exists for cheap queries and display only and is
// never consulted for authorization decisions.
type RoleStore interface {
	GetRole(ctx context.Context, externalID string) (string, error)
	UpdateRole(ctx context.Context, externalID, role string) error
}

// Mirror keeps the provider's role claim and the local role column in sync.
// Every role change goes through SyncRole or BootstrapAdmin; nothing else
// writes either store.
type Mirror struct {
	provider Provider
	local    RoleStore
	adminID  string
}

func NewMirror(provider Provider, local RoleStore, adminID string) *Mirror {
	return &Mirror{
		provider: provider,
		local:    local,
		adminID:  adminID,
	}
}

// SyncRole writes role to the provider's claim store and the local mirror as
// a unit. Admin is never a legal target here; the bootstrap path is the only
// operation that ever produces an admin.
func (m *Mirror) SyncRole(ctx context.Context, externalID, role string) error {
	if role != RoleStudent && role != RoleInstructor {
		return core.ValidationError(
			"role must be one of: student, instructor",
		)
	}

	return m.writeThrough(ctx, externalID, role)
}

// BootstrapAdmin is the distinguished one-time setup path: only the single
// configured admin identity may call it, and calling it again is a no-op
// success.
func (m *Mirror) BootstrapAdmin(ctx context.Context, callerID string) error {
	if m.adminID == "" {
		return core.ForbiddenError("admin identity is not configured")
	}

	if callerID != m.adminID {
		return core.ForbiddenError("")
	}

	current, err := m.local.GetRole(ctx, callerID)
	if err == nil && current == RoleAdmin {
		return nil
	}

	return m.writeThrough(ctx, callerID, RoleAdmin)
}

// writeThrough updates the provider first, then the mirror. A failure after
// the provider write succeeded leaves the two stores divergent; that is
// reported as a partial sync and raised on the operator channel, never
// swallowed.
func (m *Mirror) writeThrough(ctx context.Context, externalID, role string) error {
	if err := m.provider.SetRoleClaim(ctx, externalID, role); err != nil {
		return fmt.Errorf("sync role: %w", err)
	}

	if err := m.local.UpdateRole(ctx, externalID, role); err != nil {
		slog.Error("role mirror diverged, reconciliation required",
			"external_id", externalID,
			"role", role,
			"error", err,
		)
		return core.PartialSyncError(fmt.Sprintf(
			"provider claim updated but local mirror write failed for %s",
			externalID,
		))
	}

	return nil
}
