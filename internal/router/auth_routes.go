package router

import (
	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/handler"
	"github.com/TienDung030704/datlichkhambenh/internal/middleware"
)

// RegisterAuth registers the authentication endpoints under /api/auth.
// Login, register, refresh and logout work without a session; me and the
// profile endpoints require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login)
	g.POST("/register", a.Register)
	// Rotates the refresh token: the presented token is superseded by a new
	// pair on every successful call.
	g.POST("/refresh", a.Refresh)
	// Idempotent; always answers success so clients can drop local state.
	g.POST("/logout", a.Logout)

	protected := g.Group("", middleware.JWTAuth(jwtSecret))
	protected.GET("/me", a.Me)
	protected.GET("/profile", a.Profile)
	protected.PUT("/profile", a.UpdateProfile)
}
