package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSession_BeginAndToken(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(epoch)
	store := NewMemoryStore()
	s := New(store, clock)

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)

	token := signedToken(t, jwt.MapClaims{"user": "u1", "exp": epoch.Add(time.Hour).Unix()})
	require.NoError(t, s.Begin(ctx, token))

	got, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, token, got)

	stored, err := store.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, token, stored)

	st := s.Status()
	assert.True(t, st.Active)
	require.NotNil(t, st.ExpiresAt)
	assert.True(t, st.ExpiresAt.Equal(epoch.Add(time.Hour)))
}

func TestSession_ExpiryClearsToken(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(epoch)
	store := NewMemoryStore()
	s := New(store, clock)

	token := signedToken(t, jwt.MapClaims{"exp": epoch.Add(10 * time.Minute).Unix()})
	require.NoError(t, s.Begin(ctx, token))

	clock.Advance(11 * time.Minute)

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, s.Status().Active)
}

func TestSession_BeginRejectsExpiredToken(t *testing.T) {
	s := New(NewMemoryStore(), clockwork.NewFakeClockAt(epoch))
	token := signedToken(t, jwt.MapClaims{"exp": epoch.Add(-time.Minute).Unix()})

	err := s.Begin(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_OpaqueTokenNeverExpires(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	s := New(nil, clock)

	require.NoError(t, s.Begin(context.Background(), "opaque-token"))
	clock.Advance(24 * 365 * time.Hour)

	got, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", got)
	assert.Nil(t, s.Status().ExpiresAt)
}

type failingStore struct {
	*MemoryStore
	err error
}

func (f failingStore) Set(ctx context.Context, key, value string) error {
	return f.err
}

func TestSession_BeginLeavesNoSessionWhenPersistFails(t *testing.T) {
	diskFull := errors.New("disk full")
	s := New(failingStore{MemoryStore: NewMemoryStore(), err: diskFull}, clockwork.NewFakeClockAt(epoch))

	err := s.Begin(context.Background(), "opaque-token")
	require.ErrorIs(t, err, diskFull)

	_, err = s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, s.Status().Active)
}

func TestSession_EndAndRestore(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(epoch)
	store := NewMemoryStore()

	first := New(store, clock)
	token := signedToken(t, jwt.MapClaims{"exp": epoch.Add(time.Hour).Unix()})
	require.NoError(t, first.Begin(ctx, token))

	second := New(store, clock)
	require.NoError(t, second.Restore(ctx))
	got, err := second.Token()
	require.NoError(t, err)
	assert.Equal(t, token, got)

	require.NoError(t, second.End(ctx))
	third := New(store, clock)
	require.NoError(t, third.Restore(ctx))
	_, err = third.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_RestoreDiscardsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	token := signedToken(t, jwt.MapClaims{"exp": epoch.Add(-time.Hour).Unix()})
	require.NoError(t, store.Set(ctx, TokenKey, token))

	s := New(store, clockwork.NewFakeClockAt(epoch))
	require.NoError(t, s.Restore(ctx))

	_, err := store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "storage.db")

	store, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)

	_, err = store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, TokenKey, "a"))
	require.NoError(t, store.Set(ctx, TokenKey, "b"))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	require.NoError(t, reopened.Delete(ctx, TokenKey))
	_, err = reopened.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, ErrNotFound)
}
