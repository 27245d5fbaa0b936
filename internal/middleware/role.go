package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RoleStore resolves the role of an authenticated username.  The role is
// read from the store on every request rather than baked into the token, so
// a demoted account loses access as soon as the row changes.
type RoleStore interface {
	GetRole(ctx context.Context, username string) (string, error)
}

// RequireRole returns a middleware that only lets through users whose stored
// role is in the allowed set.  It assumes JWTAuth already ran and stored the
// username in context.
func RequireRole(store RoleStore, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, ok := c.Get("username").(string)
			if !ok || username == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
			}
			role, err := store.GetRole(c.Request().Context(), username)
			if err != nil || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "forbidden"})
			}
			c.Set("role", role)
			return next(c)
		}
	}
}
