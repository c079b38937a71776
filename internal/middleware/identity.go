package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"buildsite-service/pkg/jwtutil"
	"buildsite-service/pkg/logger"
)

// IdentityMiddleware extracts the caller's identity from a bearer token when
// one is present. The API surface is open; a missing or invalid token never
// rejects the request, it only leaves the identity unset.
func IdentityMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return next(c)
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			logger.FromContext(c).Warn("Ignoring invalid bearer token", zap.Error(err))
			return next(c)
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		return next(c)
	}
}

// GetUserIDFromContext retrieves the authenticated user ID from the context.
// Returns "", false if no identity was attached to the request.
func GetUserIDFromContext(c echo.Context) (string, bool) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
