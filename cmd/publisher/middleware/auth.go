package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// CredentialKey is the context key for the forwarded bearer credential
const CredentialKey ContextKey = "credential"

// RequireCredential rejects requests without an Authorization header.
// The credential itself is opaque here: authorization is delegated to the
// external identity provider, this service only forwards the token.
func RequireCredential() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := c.Request().Header.Get("Authorization")

			if credential == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Missing Authorization header",
				})
			}

			c.Set(string(CredentialKey), credential)
			return next(c)
		}
	}
}

// GetCredential retrieves the forwarded credential from the request context.
// Returns empty string if not set.
func GetCredential(c echo.Context) string {
	credential := c.Get(string(CredentialKey))
	if credential == nil {
		return ""
	}
	return credential.(string)
}
