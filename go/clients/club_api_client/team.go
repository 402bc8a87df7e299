package club_api_client

import (
	"context"
	"fmt"
)

func (c *ClubApiClient) GetMyTeam(ctx context.Context) (*MyTeamResponse, error) {
	body, err := c.Get(ctx, MyTeamEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	var response MyTeamResponse
	if err := decode(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode team response: %w", err)
	}

	return &response, nil
}
