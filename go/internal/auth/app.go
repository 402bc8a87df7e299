package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/clubmanager/go/clients"
	"github.com/mcdev12/clubmanager/go/internal/notify"
	"github.com/mcdev12/clubmanager/go/internal/session"
)

const (
	MsgLoggedIn   = "Login successful"
	MsgRegistered = "Registration successful"
	MsgLoggedOut  = "Logged out"
	MsgAuthFailed = "An error occurred. Please try again."
)

// Credentials are submitted to log in, or to register when TeamName is set
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TeamName string `json:"team_name,omitempty"`
}

// AuthRepository defines what the app layer needs from the repository
type AuthRepository interface {
	Authenticate(ctx context.Context, creds Credentials) (string, error)
}

// Sessions defines what the app layer needs from the session
type Sessions interface {
	Begin(ctx context.Context, token string) error
	End(ctx context.Context) error
	Status() session.Status
}

// App signs the manager in and out
type App struct {
	repo     AuthRepository
	sessions Sessions
	notifier notify.Notifier
	clock    clockwork.Clock
}

func NewApp(repo AuthRepository, sessions Sessions, notifier notify.Notifier, clock clockwork.Clock) *App {
	if notifier == nil {
		notifier = notify.Discard
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{repo: repo, sessions: sessions, notifier: notifier, clock: clock}
}

// Login signs in an existing manager and begins a session
func (a *App) Login(ctx context.Context, email, password string) (session.Status, error) {
	return a.authenticate(ctx, Credentials{Email: email, Password: password}, MsgLoggedIn)
}

// Register creates a manager with a new team and begins a session
func (a *App) Register(ctx context.Context, email, password, teamName string) (session.Status, error) {
	if strings.TrimSpace(teamName) == "" {
		return session.Status{}, fmt.Errorf("%w: %w", ErrValidation, ErrMissingTeamName)
	}
	return a.authenticate(ctx, Credentials{Email: email, Password: password, TeamName: teamName}, MsgRegistered)
}

func (a *App) authenticate(ctx context.Context, creds Credentials, success string) (session.Status, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validateCredentials(creds); err != nil {
		return session.Status{}, err
	}

	token, err := a.repo.Authenticate(ctx, creds)
	if err != nil {
		log.Warn().Err(err).Str("email", creds.Email).Msg("authentication failed")
		notify.Error(ctx, a.notifier, failureMessage(err), a.clock.Now())
		return session.Status{}, err
	}

	if err := a.sessions.Begin(ctx, token); err != nil {
		notify.Error(ctx, a.notifier, MsgAuthFailed, a.clock.Now())
		return session.Status{}, fmt.Errorf("failed to begin session: %w", err)
	}

	log.Info().Str("email", creds.Email).Bool("registered", creds.TeamName != "").Msg("signed in")
	notify.Success(ctx, a.notifier, success, a.clock.Now())
	return a.sessions.Status(), nil
}

// Logout ends the session and clears the stored token
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.End(ctx); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	notify.Success(ctx, a.notifier, MsgLoggedOut, a.clock.Now())
	return nil
}

// Status reports whether a session is active
func (a *App) Status() session.Status {
	return a.sessions.Status()
}

func validateCredentials(creds Credentials) error {
	if creds.Email == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingEmail)
	}
	if creds.Password == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingPassword)
	}
	return nil
}

func failureMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	if msg, ok := clients.ServerMessage(err); ok {
		return msg
	}
	return MsgAuthFailed
}
