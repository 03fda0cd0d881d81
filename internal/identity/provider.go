// AngelaMos | 2026
// provider.go

package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/coursekit/internal/config"
	"github.com/carterperez-dev/coursekit/internal/core"
)

// Role values as they appear in the provider's claim store and the local
// mirror. The provider's claim is authoritative at authorization time.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor || role == RoleAdmin
}

// Claims is the verified caller identity handed to the authorization gate.
// Role carries the provider's claim, not the local mirror.
type Claims struct {
	Subject string
	Role    string
}

// Provider is the external identity provider at its interface: session
// verification and role-claim management. Session issuance itself lives
// entirely on the provider's side.
type Provider interface {
	VerifyCaller(ctx context.Context, token string) (*Claims, error)
	SetRoleClaim(ctx context.Context, externalID, role string) error
}

// HTTPProvider verifies session tokens against the provider's JWKS and
// manages role claims through its REST API.
type HTTPProvider struct {
	client *resty.Client
	cfg    config.IdentityConfig

	mu        sync.RWMutex
	keySet    jwk.Set
	fetchedAt time.Time
}

const jwksRefreshInterval = 15 * time.Minute

func NewHTTPProvider(cfg config.IdentityConfig) *HTTPProvider {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &HTTPProvider{
		client: client,
		cfg:    cfg,
	}
}

func (p *HTTPProvider) VerifyCaller(
	ctx context.Context,
	token string,
) (*Claims, error) {
	keySet, err := p.keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch provider keys: %w", err)
	}

	parsed, err := jwt.Parse(
		[]byte(token),
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithIssuer(p.cfg.Issuer),
		jwt.WithAudience(p.cfg.Audience),
	)
	if err != nil {
		if isExpiredError(err) {
			return nil, fmt.Errorf("verify session: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenInvalid)
	}

	subject, ok := parsed.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify session: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	// A session minted before any role was assigned has no role claim;
	// the gate classifies those callers as students.
	var role string
	if err := parsed.Get("role", &role); err != nil || !ValidRole(role) {
		role = RoleStudent
	}

	return &Claims{Subject: subject, Role: role}, nil
}

func (p *HTTPProvider) SetRoleClaim(
	ctx context.Context,
	externalID, role string,
) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"public_metadata": map[string]string{"role": role},
		}).
		Patch("/users/" + externalID + "/metadata")
	if err != nil {
		return fmt.Errorf("set role claim: %w", err)
	}

	if resp.IsError() {
		if resp.StatusCode() == 404 {
			return fmt.Errorf("set role claim: %w", core.ErrNotFound)
		}
		return fmt.Errorf(
			"set role claim: provider returned %d",
			resp.StatusCode(),
		)
	}

	return nil
}

func (p *HTTPProvider) keys(ctx context.Context) (jwk.Set, error) {
	p.mu.RLock()
	if p.keySet != nil && time.Since(p.fetchedAt) < jwksRefreshInterval {
		set := p.keySet
		p.mu.RUnlock()
		return set, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.keySet != nil && time.Since(p.fetchedAt) < jwksRefreshInterval {
		return p.keySet, nil
	}

	set, err := jwk.Fetch(ctx, p.cfg.JWKSURL)
	if err != nil {
		if p.keySet != nil {
			// Serve the stale set rather than failing every request.
			return p.keySet, nil
		}
		return nil, err
	}

	p.keySet = set
	p.fetchedAt = time.Now()
	return set, nil
}

// Ping satisfies the health checker interface by probing the JWKS endpoint.
func (p *HTTPProvider) Ping(ctx context.Context) error {
	if _, err := p.keys(ctx); err != nil {
		return fmt.Errorf("identity provider ping failed: %w", err)
	}
	return nil
}

func isExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

var _ Provider = (*HTTPProvider)(nil)
