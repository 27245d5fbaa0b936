package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/handler"
)

// RegisterRoutes registers the routes that require neither authentication
// nor any repository: the health check and the static page forwards.
func RegisterRoutes(e *echo.Echo, pages *handler.PageHandler) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)

	// Browser-facing paths map onto the static HTML files, the same way the
	// old backend forwarded them.
	e.GET("/", pages.Home)
	e.GET("/home", pages.Home)
	e.GET("/login", pages.Login)
	e.GET("/register", pages.Register)
	e.GET("/forgot-password", pages.ForgotPassword)

	// Everything else under the static dir (css, javascript, images) is
	// served as-is.
	e.Static("/static", pages.StaticDir)
}
