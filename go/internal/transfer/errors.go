package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a request rejected before contacting the server
	ErrValidation = errors.New("validation failed")

	ErrMissingPlayerID   = errors.New("player id is required")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrAskingPriceTooLow = errors.New("asking price is below the minimum")
	ErrPlayerNotOwned    = errors.New("player is not on your team")
	ErrListingNotFound   = errors.New("player is not on the transfer list")

	// ErrRequestInFlight is returned when a mutation for the same player is pending
	ErrRequestInFlight = errors.New("request already in progress for player")
)

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
