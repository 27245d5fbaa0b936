package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
)

func doProfile(t *testing.T, h echo.HandlerFunc, method, target, body, username string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if username != "" {
		c.Set("username", username)
	}
	require.NoError(t, h(c))
	return rec
}

func TestProfile_ReturnsOwnProfile(t *testing.T) {
	h, users, _ := newTestAuth(t)
	users.seed("alice", "secret1", "alice@example.com")

	rec := doProfile(t, h.Profile, http.MethodGet, "/api/auth/profile", "", "alice")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool          `json:"success"`
		Profile model.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "alice", resp.Profile.Username)
	assert.Equal(t, "alice@example.com", resp.Profile.Email)
}

func TestProfile_ForbidsOtherUsers(t *testing.T) {
	h, users, _ := newTestAuth(t)
	users.seed("alice", "secret1", "alice@example.com")
	users.seed("bob", "secret2", "bob@example.com")

	rec := doProfile(t, h.Profile, http.MethodGet, "/api/auth/profile?username=bob", "", "alice")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProfile_Unauthenticated(t *testing.T) {
	h, _, _ := newTestAuth(t)

	rec := doProfile(t, h.Profile, http.MethodGet, "/api/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfile_MapsGenderVocabulary(t *testing.T) {
	h, users, _ := newTestAuth(t)
	users.seed("alice", "secret1", "alice@example.com")

	rec := doProfile(t, h.UpdateProfile, http.MethodPut, "/api/auth/profile",
		`{"fullName":"Alice Tran","phone":"0901234567","gender":"Nữ"}`, "alice")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, model.GenderFemale, users.users["alice"].Gender)
	assert.Equal(t, "Alice Tran", users.users["alice"].FullName)
}

func TestUpdateProfile_RejectsUnknownGender(t *testing.T) {
	h, users, _ := newTestAuth(t)
	users.seed("alice", "secret1", "alice@example.com")

	rec := doProfile(t, h.UpdateProfile, http.MethodPut, "/api/auth/profile",
		`{"fullName":"Alice Tran","gender":"dragon"}`, "alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfile_BlankFullName(t *testing.T) {
	h, users, _ := newTestAuth(t)
	users.seed("alice", "secret1", "alice@example.com")

	rec := doProfile(t, h.UpdateProfile, http.MethodPut, "/api/auth/profile",
		`{"fullName":"  "}`, "alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
