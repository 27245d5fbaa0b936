package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every page route must resolve to a file shipped under web/static, so a
// default STATIC_DIR never produces a 404.
func TestPageHandler_ServesShippedPages(t *testing.T) {
	p := NewPageHandler("../../web/static")

	cases := []struct {
		target string
		h      echo.HandlerFunc
	}{
		{"/", p.Home},
		{"/login", p.Login},
		{"/register", p.Register},
		{"/forgot-password", p.ForgotPassword},
	}
	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, tc.target, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, tc.h(e.NewContext(req, rec)), "target %s", tc.target)
		assert.Equal(t, http.StatusOK, rec.Code, "target %s", tc.target)
		assert.Contains(t, rec.Body.String(), "<html", "target %s", tc.target)
	}
}
