package token

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory RefreshStore with one token slot per username.
type fakeStore struct {
	mu     sync.Mutex
	tokens map[string]string
	fail   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{tokens: map[string]string{}}
}

func (f *fakeStore) SaveRefreshToken(_ context.Context, username, token string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("store down")
	}
	f.tokens[username] = token
	return nil
}

func (f *fakeStore) GetRefreshToken(_ context.Context, username string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", errors.New("store down")
	}
	return f.tokens[username], nil
}

func (f *fakeStore) ClearRefreshToken(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("store down")
	}
	delete(f.tokens, username)
	return nil
}

func newTestService(store RefreshStore) *Service {
	return NewService([]byte("test-secret"), 15*time.Minute, 7*24*time.Hour, store)
}

func TestIssuePairAndValidate(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := newTestService(store)

	pair, err := svc.IssuePair(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	assert.True(t, svc.ValidateAccess(pair.AccessToken, "alice"))
	assert.False(t, svc.ValidateAccess(pair.AccessToken, "bob"))

	ok, err := svc.ValidateRefresh(context.Background(), pair.RefreshToken, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	sub, err := svc.Subject(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestValidateAccess_TamperedToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeStore())

	access, err := svc.NewAccessToken("alice")
	require.NoError(t, err)

	// Flip one character of the signature.
	tampered := []byte(access)
	last := len(tampered) - 1
	if tampered[last] == 'a' {
		tampered[last] = 'b'
	} else {
		tampered[last] = 'a'
	}
	assert.False(t, svc.ValidateAccess(string(tampered), "alice"))
}

func TestValidateAccess_RejectsRefreshToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeStore())

	refresh, _, err := svc.NewRefreshToken("alice")
	require.NoError(t, err)
	assert.False(t, svc.ValidateAccess(refresh, "alice"))
}

func TestValidateRefresh_RejectsAccessTokenEvenIfStored(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := newTestService(store)

	// Smuggle an access token into the refresh slot: string equality and
	// signature both hold, but the type claim must still reject it.
	access, err := svc.NewAccessToken("alice")
	require.NoError(t, err)
	require.NoError(t, store.SaveRefreshToken(context.Background(), "alice", access, time.Now().Add(time.Hour)))

	ok, err := svc.ValidateRefresh(context.Background(), access, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateRefresh_SupersededByRotation(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeStore())

	first, err := svc.IssuePair(context.Background(), "alice")
	require.NoError(t, err)
	second, err := svc.IssuePair(context.Background(), "alice")
	require.NoError(t, err)

	ok, err := svc.ValidateRefresh(context.Background(), first.RefreshToken, "alice")
	require.NoError(t, err)
	assert.False(t, ok, "superseded refresh token must fail even though its signature verifies")

	ok, err = svc.ValidateRefresh(context.Background(), second.RefreshToken, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRevoke_InvalidatesAndIsIdempotent(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeStore())

	pair, err := svc.IssuePair(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), "alice"))
	ok, err := svc.ValidateRefresh(context.Background(), pair.RefreshToken, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	// Revoking an empty slot is not an error.
	require.NoError(t, svc.Revoke(context.Background(), "alice"))
	require.NoError(t, svc.Revoke(context.Background(), "nobody"))
}

func TestValidateRefresh_Expired(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := NewService([]byte("test-secret"), 15*time.Minute, -time.Minute, store)

	pair, err := svc.IssuePair(context.Background(), "alice")
	require.NoError(t, err)

	ok, err := svc.ValidateRefresh(context.Background(), pair.RefreshToken, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateAccess_Expired(t *testing.T) {
	t.Parallel()
	svc := NewService([]byte("test-secret"), -time.Minute, 7*24*time.Hour, newFakeStore())

	access, err := svc.NewAccessToken("alice")
	require.NoError(t, err)
	assert.False(t, svc.ValidateAccess(access, "alice"))
}

func TestValidateRefresh_StoreFailure(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := newTestService(store)

	pair, err := svc.IssuePair(context.Background(), "alice")
	require.NoError(t, err)

	store.fail = true
	ok, err := svc.ValidateRefresh(context.Background(), pair.RefreshToken, "alice")
	assert.Error(t, err, "store failure must be distinguishable from an invalid token")
	assert.False(t, ok)
}

func TestExpiringSoon(t *testing.T) {
	t.Parallel()

	short := NewService([]byte("s"), 2*time.Minute, time.Hour, newFakeStore())
	access, err := short.NewAccessToken("alice")
	require.NoError(t, err)
	assert.True(t, short.ExpiringSoon(access))

	long := NewService([]byte("s"), time.Hour, time.Hour, newFakeStore())
	access, err = long.NewAccessToken("alice")
	require.NoError(t, err)
	assert.False(t, long.ExpiringSoon(access))

	// Unparsable tokens bias toward renewal.
	assert.True(t, long.ExpiringSoon("not.a.jwt"))
}
