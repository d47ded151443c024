package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware checks the configured API key and resolves the acting
// user from the X-User-ID header. When no API key is configured the
// check is skipped, which is the local development setup.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		app := c.(*AppContext).App

		if app.APIKey != "" {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			if strings.TrimPrefix(authHeader, "Bearer ") != app.APIKey {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
		}

		userID := c.Request().Header.Get("X-User-ID")
		if userID == "" {
			userID = "local"
		}

		c.(*AppContext).User = &AppUser{UserID: userID}

		return next(c)
	}
}
