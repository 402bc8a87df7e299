package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks credentials rejected before contacting the server
	ErrValidation = errors.New("validation failed")

	ErrMissingEmail    = errors.New("email is required")
	ErrMissingPassword = errors.New("password is required")
	ErrMissingTeamName = errors.New("team name is required")

	// ErrAuthFailed is returned when the API answers without a token
	ErrAuthFailed = errors.New("authentication failed")
)

// RejectedError carries the API's reason for refusing credentials
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrAuthFailed.Error()
	}
	return fmt.Sprintf("%s: %s", ErrAuthFailed, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrAuthFailed
}
