package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
	"github.com/TienDung030704/datlichkhambenh/internal/repository"
)

// Profile returns the authenticated user's editable profile.  A ?username=
// query parameter is accepted for frontend compatibility but must match the
// token subject; reading someone else's profile is forbidden.
func (h *AuthHandler) Profile(c echo.Context) error {
	username, ok := c.Get("username").(string)
	if !ok || username == "" {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	if q := strings.TrimSpace(c.QueryParam("username")); q != "" && q != username {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Users.GetProfile(ctx, username)
	if err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "user not found")
		}
		log.Printf("profile: load %s: %v", username, err)
		return fail(c, http.StatusInternalServerError, "could not load profile")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "profile": p})
}

// UpdateProfile writes the editable profile fields for the authenticated
// user.  Blank optional fields clear the corresponding columns to NULL.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	username, ok := c.Get("username").(string)
	if !ok || username == "" {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var p model.Profile
	if err := c.Bind(&p); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return fail(c, http.StatusBadRequest, "full name must not be blank")
	}
	if g := strings.TrimSpace(p.Gender); g != "" {
		if _, ok := model.ParseGender(g); !ok {
			return fail(c, http.StatusBadRequest, "invalid gender value")
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, username, p); err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "user not found")
		}
		log.Printf("profile: update %s: %v", username, err)
		return fail(c, http.StatusInternalServerError, "could not update profile")
	}

	updated, err := h.Users.GetProfile(ctx, username)
	if err != nil {
		log.Printf("profile: reload %s: %v", username, err)
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "profile updated"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "profile updated", "profile": updated})
}
