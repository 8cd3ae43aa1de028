package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ViewerKey is the echo context key holding the authenticated user's id.
const ViewerKey = "viewerID"

// TokenVerifier checks a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Identity resolves the optional bearer token into a viewer id. Requests
// without an Authorization header pass through anonymously; a header that is
// malformed or carries a bad token is rejected.
func Identity(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			subject, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token").SetInternal(err)
			}

			viewerID, err := uuid.Parse(subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token subject is not a user id").SetInternal(err)
			}

			c.Set(ViewerKey, viewerID)
			return next(c)
		}
	}
}

// ViewerID returns the authenticated viewer, if any.
func ViewerID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ViewerKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
