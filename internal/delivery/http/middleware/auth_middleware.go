package middleware

import (
	"strings"

	deliverycontext "taskdeck/internal/delivery/context"
	"taskdeck/internal/delivery/http/response"
	"taskdeck/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware authenticates requests carrying a bearer ID token minted by
// the external identity provider.
type AuthMiddleware struct {
	identityProvider service.IdentityProvider
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(identityProvider service.IdentityProvider) *AuthMiddleware {
	return &AuthMiddleware{identityProvider: identityProvider}
}

// Authenticate verifies the Authorization header and stores the asserted
// external UID in the request context for handlers and services.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Authorization header is missing")
		}

		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if idToken == authHeader || idToken == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		identity, err := m.identityProvider.VerifyIDToken(c.Request().Context(), idToken)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(string(deliverycontext.KeyExternalUID), identity.UID)
		ctx := deliverycontext.WithExternalUID(c.Request().Context(), identity.UID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// ExternalUID returns the UID stored by Authenticate, or empty string when the
// route was reached without it.
func ExternalUID(c echo.Context) string {
	if uid, ok := c.Get(string(deliverycontext.KeyExternalUID)).(string); ok {
		return uid
	}

	return ""
}
