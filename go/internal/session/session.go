package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoSession      = errors.New("session: not signed in")
	ErrSessionExpired = errors.New("session: token expired")
	ErrInvalidToken   = errors.New("session: invalid token")
)

// Session owns the bearer token used by the API client. Login begins it,
// logout or token expiry ends it.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time // zero when the token carries no exp claim

	store TokenStore
	clock clockwork.Clock
}

// Status describes the current session for display
type Status struct {
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func New(store TokenStore, clock clockwork.Clock) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Session{store: store, clock: clock}
}

// Begin installs token as the active session and persists it.
func (s *Session) Begin(ctx context.Context, token string) error {
	expiresAt, err := tokenExpiry(token)
	if err != nil {
		return err
	}
	if !expiresAt.IsZero() && !s.clock.Now().Before(expiresAt) {
		return ErrSessionExpired
	}

	if s.store != nil {
		if err := s.store.Set(ctx, TokenKey, token); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
	}

	s.mu.Lock()
	s.token = token
	s.expiresAt = expiresAt
	s.mu.Unlock()

	log.Debug().Time("expires_at", expiresAt).Msg("session started")
	return nil
}

// Restore loads a previously persisted token. A missing or expired token
// leaves the session empty without error.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	token, err := s.store.Get(ctx, TokenKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if err := s.Begin(ctx, token); err != nil {
		if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrInvalidToken) {
			log.Info().Err(err).Msg("discarding stored session")
			return s.End(ctx)
		}
		return err
	}
	return nil
}

// Token returns the active bearer token. An expired token is cleared.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	token, expiresAt := s.token, s.expiresAt
	s.mu.RUnlock()

	if token == "" {
		return "", ErrNoSession
	}
	if !expiresAt.IsZero() && !s.clock.Now().Before(expiresAt) {
		if err := s.End(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to clear expired session")
		}
		return "", ErrSessionExpired
	}
	return token, nil
}

// End clears the session and its persisted token.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Delete(ctx, TokenKey); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}
	return nil
}

func (s *Session) Status() Status {
	if _, err := s.Token(); err != nil {
		return Status{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{Active: true}
	if !s.expiresAt.IsZero() {
		exp := s.expiresAt
		st.ExpiresAt = &exp
	}
	return st
}

// tokenExpiry reads the exp claim without verifying the signature; the API
// remains the authority on token validity.
func tokenExpiry(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque tokens are accepted as-is and never expire client-side.
		log.Debug().Err(err).Msg("token is not a JWT")
		return time.Time{}, nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
