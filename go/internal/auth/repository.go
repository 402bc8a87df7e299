package auth

import (
	"context"
	"fmt"

	"github.com/mcdev12/clubmanager/go/clients/club_api_client"
)

// ClubAPI is the part of the club API client the auth repository uses
type ClubAPI interface {
	Authenticate(ctx context.Context, req club_api_client.AuthRequest) (*club_api_client.AuthResponse, error)
}

type Repository struct {
	api ClubAPI
}

func NewRepository(api ClubAPI) *Repository {
	return &Repository{api: api}
}

// Authenticate exchanges credentials for a bearer token. A response without
// a token is a *RejectedError carrying the server's message.
func (r *Repository) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	resp, err := r.api.Authenticate(ctx, club_api_client.AuthRequest{
		Email:    creds.Email,
		Password: creds.Password,
		TeamName: creds.TeamName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to authenticate: %w", err)
	}
	if resp.Token == "" {
		return "", &RejectedError{Message: resp.Msg}
	}
	return resp.Token, nil
}
