package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/clubmanager/go/clients"
	"github.com/mcdev12/clubmanager/go/internal/session"
)

// maxBodyBytes caps request bodies accepted by the JSON handlers
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes v as the response body
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// WriteError writes err with the given status. Server messages from the club
// API are passed through, other errors are reduced to their text.
func WriteError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if m, ok := clients.ServerMessage(err); ok {
		msg = m
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	}
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// DecodeJSON reads a JSON request body into v
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// StatusFor maps errors shared by every handler to an HTTP status
func StatusFor(err error) int {
	var apiErr *clients.APIError
	switch {
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		return apiErr.StatusCode
	case errors.Is(err, clients.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, clients.ErrTransport):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
