package club_api_client

import (
	"context"
	"fmt"
)

// Authenticate logs in, or registers when req.TeamName is set.
// The API answers 200 with a msg and no token for rejected credentials, so an
// empty token is not treated as a malformed payload here.
func (c *ClubApiClient) Authenticate(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	body, err := c.PostJSON(ctx, AuthEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	var response AuthResponse
	if err := decode(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}

	return &response, nil
}

func (r *AuthResponse) validate() error {
	if r.Token == "" && r.Msg == "" {
		return fmt.Errorf("either token or msg is required")
	}
	return nil
}
