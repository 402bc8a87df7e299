package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/mcdev12/clubmanager/go/internal/httputil"
	"github.com/mcdev12/clubmanager/go/internal/session"
)

// AuthApp defines what the service layer needs from the auth application
type AuthApp interface {
	Login(ctx context.Context, email, password string) (session.Status, error)
	Register(ctx context.Context, email, password, teamName string) (session.Status, error)
	Logout(ctx context.Context) error
	Status() session.Status
}

type Service struct {
	app AuthApp
}

func NewService(app AuthApp) *Service {
	return &Service{app: app}
}

func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", s.HandleLogin)
	mux.HandleFunc("POST /api/auth/register", s.HandleRegister)
	mux.HandleFunc("POST /api/auth/logout", s.HandleLogout)
	mux.HandleFunc("GET /api/auth/status", s.HandleStatus)
}

// HandleLogin handles POST /api/auth/login
func (s *Service) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := httputil.DecodeJSON(w, r, &creds); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err)
		return
	}

	status, err := s.app.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

// HandleRegister handles POST /api/auth/register
func (s *Service) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := httputil.DecodeJSON(w, r, &creds); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err)
		return
	}

	status, err := s.app.Register(r.Context(), creds.Email, creds.Password, creds.TeamName)
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, status)
}

// HandleLogout handles POST /api/auth/logout
func (s *Service) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Logout(r.Context()); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStatus handles GET /api/auth/status
func (s *Service) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, s.app.Status())
}

func statusFor(err error) int {
	var rejected *RejectedError
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.As(err, &rejected):
		return http.StatusUnauthorized
	default:
		return httputil.StatusFor(err)
	}
}
