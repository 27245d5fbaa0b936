package handler

import (
	"context"  // provides context with cancellation for DB calls
	"log"      // logs store failures that are masked at the boundary
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4"

	"github.com/TienDung030704/datlichkhambenh/internal/config"
	"github.com/TienDung030704/datlichkhambenh/internal/model"
	"github.com/TienDung030704/datlichkhambenh/internal/queue"
	"github.com/TienDung030704/datlichkhambenh/internal/repository"
	"github.com/TienDung030704/datlichkhambenh/internal/token"
)

// UserStore is the slice of the credential store the auth endpoints need.
// *repository.UserRepo satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, nu repository.NewUser, cost int) (uint64, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	VerifyCredentials(ctx context.Context, identifier, password string) (model.User, error)
	GetProfile(ctx context.Context, username string) (model.Profile, error)
	UpdateProfile(ctx context.Context, username string, p model.Profile) error
}

// AuthHandler bundles dependencies for the auth endpoints.  PublishRegistered
// is optional; when set it is called after a successful registration and its
// error is only logged, never surfaced to the client.
type AuthHandler struct {
	Cfg               config.Config
	Users             UserStore
	Tokens            *token.Service
	PublishRegistered func(ctx context.Context, ev queue.PatientRegisteredEvent) error
}

func NewAuthHandler(cfg config.Config, users UserStore, tokens *token.Service) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerReq struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
}

type logoutReq struct {
	Username string `json:"username"`
}

// authResp is the uniform response body of every auth endpoint.  Failures
// carry only success=false and a message.
type authResp struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Username     string `json:"username,omitempty"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, authResp{Success: false, Message: msg})
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// Login verifies credentials against active accounts (username or email)
// and returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return fail(c, http.StatusBadRequest, "username must not be blank")
	}
	if strings.TrimSpace(req.Password) == "" {
		return fail(c, http.StatusBadRequest, "password must not be blank")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// The password is compared verbatim against what register stored;
	// trimming here would lock out accounts whose password carries
	// leading or trailing whitespace.
	u, err := h.Users.VerifyCredentials(ctx, username, req.Password)
	if err != nil {
		if err == repository.ErrInvalidCredentials {
			// One message for both unknown user and wrong password.
			return fail(c, http.StatusUnauthorized, "incorrect username or password")
		}
		log.Printf("auth: verify credentials: %v", err)
		return fail(c, http.StatusInternalServerError, "login failed")
	}

	pair, err := h.Tokens.IssuePair(ctx, u.Username)
	if err != nil {
		log.Printf("auth: issue tokens for %s: %v", u.Username, err)
		return fail(c, http.StatusInternalServerError, "could not issue tokens")
	}

	return c.JSON(http.StatusOK, authResp{
		Success:      true,
		Message:      "login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Username:     u.Username,
	})
}

// Register creates a new active PATIENT account and logs it in immediately
// by returning a token pair.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if req.Username == "" {
		return fail(c, http.StatusBadRequest, "username must not be blank")
	}
	if req.Password == "" {
		return fail(c, http.StatusBadRequest, "password must not be blank")
	}
	if req.Email == "" {
		return fail(c, http.StatusBadRequest, "email must not be blank")
	}
	if req.FullName == "" {
		return fail(c, http.StatusBadRequest, "full name must not be blank")
	}
	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return fail(c, http.StatusBadRequest, "invalid email format")
	}
	if len(req.Password) < 6 {
		return fail(c, http.StatusBadRequest, "password must be at least 6 characters")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if taken, err := h.Users.UsernameExists(ctx, req.Username); err != nil {
		log.Printf("auth: username check: %v", err)
		return fail(c, http.StatusInternalServerError, "registration failed")
	} else if taken {
		return fail(c, http.StatusConflict, "username already exists")
	}
	if taken, err := h.Users.EmailExists(ctx, req.Email); err != nil {
		log.Printf("auth: email check: %v", err)
		return fail(c, http.StatusInternalServerError, "registration failed")
	} else if taken {
		return fail(c, http.StatusConflict, "email already exists")
	}

	// The unique indexes still back the checks above, so a race between two
	// concurrent registrations resolves to a conflict here.
	_, err := h.Users.Create(ctx, repository.NewUser{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	}, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return fail(c, http.StatusConflict, "username already exists")
		case repository.ErrEmailExists:
			return fail(c, http.StatusConflict, "email already exists")
		}
		log.Printf("auth: create user: %v", err)
		return fail(c, http.StatusInternalServerError, "registration failed")
	}

	pair, err := h.Tokens.IssuePair(ctx, req.Username)
	if err != nil {
		log.Printf("auth: issue tokens for %s: %v", req.Username, err)
		return fail(c, http.StatusInternalServerError, "could not issue tokens")
	}

	if h.PublishRegistered != nil {
		ev := queue.PatientRegisteredEvent{
			Username:     req.Username,
			Email:        req.Email,
			FullName:     req.FullName,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.PublishRegistered(ctx, ev); err != nil {
			log.Printf("auth: publish patient.registered: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, authResp{
		Success:      true,
		Message:      "registration successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Username:     req.Username,
	})
}

// Refresh exchanges a live refresh token for a brand-new pair.  The old
// refresh token is invalidated by the overwrite even though its signature
// would still verify.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	username := strings.TrimSpace(req.Username)
	raw := strings.TrimSpace(req.RefreshToken)
	if username == "" || raw == "" {
		return fail(c, http.StatusBadRequest, "username and refreshToken are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Tokens.ValidateRefresh(ctx, raw, username)
	if err != nil {
		log.Printf("auth: validate refresh for %s: %v", username, err)
		return fail(c, http.StatusInternalServerError, "refresh failed")
	}
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}

	pair, err := h.Tokens.IssuePair(ctx, username)
	if err != nil {
		log.Printf("auth: rotate tokens for %s: %v", username, err)
		return fail(c, http.StatusInternalServerError, "could not issue tokens")
	}

	return c.JSON(http.StatusOK, authResp{
		Success:      true,
		Message:      "token refreshed",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Username:     username,
	})
}

// Logout revokes the account's stored refresh token.  It always reports
// success: revoking an account with no session is a no-op, and a store
// failure is logged but not surfaced so clients can always drop their local
// session state.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutReq
	_ = c.Bind(&req)
	username := strings.TrimSpace(req.Username)

	if username != "" {
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := h.Tokens.Revoke(ctx, username); err != nil {
			log.Printf("auth: revoke refresh token for %s: %v", username, err)
		}
	}
	return c.JSON(http.StatusOK, authResp{Success: true, Message: "logged out"})
}

// Me returns the authenticated identity extracted by the JWT middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"username": c.Get("username"),
	})
}
