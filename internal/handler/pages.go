package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// PageHandler forwards the browser-facing paths to the static HTML pages,
// mirroring the old backend's controller that mapped clean URLs onto files.
// The pages themselves are plain files; no templating happens server-side.
type PageHandler struct {
	StaticDir string
}

func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{StaticDir: staticDir}
}

func (p *PageHandler) file(c echo.Context, parts ...string) error {
	return c.File(filepath.Join(append([]string{p.StaticDir}, parts...)...))
}

// Home serves the landing page for both / and /home.
func (p *PageHandler) Home(c echo.Context) error {
	return p.file(c, "index.html")
}

// Login serves the login page.
func (p *PageHandler) Login(c echo.Context) error {
	return p.file(c, "html", "login.html")
}

// Register serves the registration page.
func (p *PageHandler) Register(c echo.Context) error {
	return p.file(c, "html", "register.html")
}

// ForgotPassword serves the password-recovery page.
func (p *PageHandler) ForgotPassword(c echo.Context) error {
	return p.file(c, "html", "forgot-password.html")
}
