// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/carterperez-dev/coursekit/internal/core"
	"github.com/carterperez-dev/coursekit/internal/identity"
)

type contextKey string

const (
	ClaimsKey contextKey = "identity_claims"
)

// Level is the classified authority of a caller. Exactly one level applies
// to every request; ordering matters only within Classify.
type Level int

const (
	LevelAnonymous Level = iota
	LevelStudent
	LevelInstructor
	LevelAdmin
)

func (l Level) String() string {
	switch l {
	case LevelStudent:
		return "student"
	case LevelInstructor:
		return "instructor"
	case LevelAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Classify maps verified claims onto an authority level, evaluated in strict
// order. Admin requires both the configured identifier and the provider's
// admin claim: the identifier alone could predate bootstrap, and the claim
// alone could come from a spoofed mirror.
func Classify(claims *identity.Claims, adminID string) Level {
	if claims == nil || claims.Subject == "" {
		return LevelAnonymous
	}

	if adminID != "" &&
		claims.Subject == adminID &&
		claims.Role == identity.RoleAdmin {
		return LevelAdmin
	}

	if claims.Role == identity.RoleInstructor {
		return LevelInstructor
	}

	return LevelStudent
}

type CallerVerifier interface {
	VerifyCaller(ctx context.Context, token string) (*identity.Claims, error)
}

func Authenticator(verifier CallerVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthenticatedError("missing authorization token"),
				)
				return
			}

			claims, err := verifier.VerifyCaller(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Gate enforces authority levels on route groups. The admin identifier is
// process-wide read-only configuration.
type Gate struct {
	AdminID string
}

func NewGate(adminID string) *Gate {
	return &Gate{AdminID: adminID}
}

// RequireInstructor admits instructors and the admin. Ownership of
// individual courses is checked in the service layer, where the resource is
// at hand.
func (g *Gate) RequireInstructor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch g.ClassifyRequest(r) {
		case LevelInstructor, LevelAdmin:
			next.ServeHTTP(w, r)
		case LevelAnonymous:
			core.JSONError(w, core.UnauthenticatedError(""))
		default:
			core.JSONError(w, core.ForbiddenError(""))
		}
	})
}

func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch g.ClassifyRequest(r) {
		case LevelAdmin:
			next.ServeHTTP(w, r)
		case LevelAnonymous:
			core.JSONError(w, core.UnauthenticatedError(""))
		default:
			core.JSONError(w, core.ForbiddenError(""))
		}
	})
}

// RequireAdminCandidate admits the configured admin identifier regardless of
// its current role claim. This exists solely for the bootstrap operation,
// which must be reachable before the admin claim has ever been set.
func (g *Gate) RequireAdminCandidate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil || claims.Subject == "" {
			core.JSONError(w, core.UnauthenticatedError(""))
			return
		}

		if g.AdminID == "" || claims.Subject != g.AdminID {
			core.JSONError(w, core.ForbiddenError(""))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Gate) ClassifyRequest(r *http.Request) Level {
	return Classify(GetClaims(r.Context()), g.AdminID)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetClaims(ctx context.Context) *identity.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*identity.Claims); ok {
		return claims
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Subject
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}
