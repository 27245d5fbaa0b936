// Package token implements the session-token subsystem: short-lived access
// tokens and longer-lived rotating refresh tokens, both HS256-signed JWTs
// bound to a username.  Refresh tokens are additionally persisted through a
// RefreshStore, so revocation works by clearing the stored value even while
// the signature would still verify.
package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TypeAccess and TypeRefresh are the values of the `type` claim.
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	// renewalWindow is how close to expiry a token counts as expiring soon.
	renewalWindow = 5 * time.Minute
)

// RefreshStore persists each account's single refresh-token slot.  Saving
// overwrites the previous token (last write wins, no concurrent-session
// support) and clearing an empty slot must not error.
type RefreshStore interface {
	SaveRefreshToken(ctx context.Context, username, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, username string) (string, error)
	ClearRefreshToken(ctx context.Context, username string) error
}

// Claims are the signed contents of every token.  Subject carries the
// username, Type distinguishes access from refresh tokens and ID carries a
// per-token UUID so individual tokens can be told apart in logs.
type Claims struct {
	jwt.RegisteredClaims
	Type string `json:"type"`
}

// Service signs and verifies tokens with a single process-lifetime secret.
// It is safe for concurrent use: all fields are read-only after construction
// and the refresh-token state lives in the store.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      RefreshStore
}

// Pair bundles the two tokens handed to a client after login, register or
// refresh.
type Pair struct {
	AccessToken  string
	RefreshToken string
	RefreshExp   time.Time
}

// NewService builds a Service.  It panics on a nil store or empty secret
// because both indicate broken wiring, not a runtime condition.
func NewService(secret []byte, accessTTL, refreshTTL time.Duration, store RefreshStore) *Service {
	if len(secret) == 0 {
		panic("empty signing secret passed to token.NewService")
	}
	if store == nil {
		panic("nil RefreshStore passed to token.NewService")
	}
	return &Service{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL, store: store}
}

func (s *Service) sign(username, typ string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
		Type: typ,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// parse verifies the signature and registered claims (including expiry) and
// returns the claims.  Only HS256 is accepted; any structural, signature or
// validation problem is an error.
func (s *Service) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// NewAccessToken signs a 15-minute access token for the user.  Pure
// computation, no persistence.
func (s *Service) NewAccessToken(username string) (string, error) {
	signed, _, err := s.sign(username, TypeAccess, s.accessTTL)
	return signed, err
}

// NewRefreshToken signs a 7-day refresh token for the user and returns its
// expiry.  Persisting it is a separate, explicit step.
func (s *Service) NewRefreshToken(username string) (string, time.Time, error) {
	return s.sign(username, TypeRefresh, s.refreshTTL)
}

// IssuePair mints an access/refresh pair and persists the refresh token,
// superseding whatever token the account held before.
func (s *Service) IssuePair(ctx context.Context, username string) (Pair, error) {
	access, err := s.NewAccessToken(username)
	if err != nil {
		return Pair{}, err
	}
	refresh, exp, err := s.NewRefreshToken(username)
	if err != nil {
		return Pair{}, err
	}
	if err := s.store.SaveRefreshToken(ctx, username, refresh, exp); err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh, RefreshExp: exp}, nil
}

// ValidateAccess reports whether raw is a live access token for username.
// It fails closed: any parse, signature or claim problem yields false.
func (s *Service) ValidateAccess(raw, username string) bool {
	claims, err := s.parse(raw)
	if err != nil {
		return false
	}
	return claims.Subject == username && claims.Type == TypeAccess
}

// ValidateRefresh reports whether raw is the account's live refresh token.
// Four conditions must all hold: the stored token is non-empty and
// string-equal to raw, the signature verifies, the subject matches, and the
// type claim is "refresh" (expiry is enforced during parsing).  The error is
// non-nil only when the store itself failed, so callers can distinguish an
// invalid token from an unavailable store.
func (s *Service) ValidateRefresh(ctx context.Context, raw, username string) (bool, error) {
	stored, err := s.store.GetRefreshToken(ctx, username)
	if err != nil {
		return false, err
	}
	if stored == "" || stored != raw {
		return false, nil
	}
	claims, err := s.parse(raw)
	if err != nil {
		return false, nil
	}
	return claims.Subject == username && claims.Type == TypeRefresh, nil
}

// Revoke clears the account's stored refresh token.  Revoking an account
// with no outstanding token is a no-op.
func (s *Service) Revoke(ctx context.Context, username string) error {
	return s.store.ClearRefreshToken(ctx, username)
}

// ExpiringSoon reports whether the token has less than five minutes of
// validity left.  Unparsable tokens report true, biasing callers toward
// renewal.
func (s *Service) ExpiringSoon(raw string) bool {
	claims, err := s.parse(raw)
	if err != nil || claims.ExpiresAt == nil {
		return true
	}
	return time.Until(claims.ExpiresAt.Time) < renewalWindow
}

// Subject extracts the username from a verified token.
func (s *Service) Subject(raw string) (string, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
