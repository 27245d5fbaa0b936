package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/token"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stashes its subject in the request context under "username".  The
// middleware fails closed: a missing header, wrong algorithm, bad signature,
// expired token or refresh token presented in place of an access token all
// end the request with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims := &token.Claims{}
			tok, err := jwt.ParseWithClaims(raw, claims,
				func(t *jwt.Token) (interface{}, error) { return key, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid token"})
			}
			// Refresh tokens are only good for the refresh endpoint, never
			// as an API credential.
			if claims.Type != token.TypeAccess || claims.Subject == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid token"})
			}

			c.Set("username", claims.Subject)
			return next(c)
		}
	}
}
