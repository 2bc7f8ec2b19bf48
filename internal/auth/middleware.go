package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "fruitseason/internal/errors"
	"fruitseason/internal/model"
)

// identityKey is the echo context key the gate stores the resolved identity
// under.
const identityKey = "auth.identity"

// Identity is the request-scoped authenticated principal.
type Identity struct {
	Username string
	Role     string
}

// UserSource resolves token subjects to stored users.
type UserSource interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// Gate returns the per-request identity resolution middleware. It reads the
// Authorization header, verifies the bearer token and loads the subject's
// role. The gate never rejects a request: a missing header, malformed scheme,
// invalid or expired token, or unknown subject all leave the request
// anonymous. Route-level policies (RequireUser, RequireRole) decide whether
// an identity is required.
func Gate(jwtService *JWTService, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFromContext(c); ok {
				return next(c) // already resolved
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := bearerToken(header)
			if !ok {
				return next(c)
			}

			claims, err := jwtService.VerifySubject(token)
			if err != nil {
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				return next(c)
			}

			c.Set(identityKey, Identity{Username: user.Username, Role: user.Role})
			return next(c)
		}
	}
}

// bearerToken extracts the token from a "Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// IdentityFromContext returns the identity resolved by the gate, if any.
func IdentityFromContext(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFromContext(c); !ok {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
				return echo.NewHTTPError(http.StatusUnauthorized, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// RequireRole rejects requests whose identity does not carry the role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFromContext(c)
			if !ok {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
				return echo.NewHTTPError(http.StatusUnauthorized, httpErr.ToErrorResponse())
			}
			if identity.Role != role {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
				return echo.NewHTTPError(http.StatusForbidden, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}
