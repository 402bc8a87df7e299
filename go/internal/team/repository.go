package team

import (
	"context"
	"fmt"

	"github.com/mcdev12/clubmanager/go/clients/club_api_client"
	"github.com/mcdev12/clubmanager/go/internal/models"
)

// ClubAPI is the part of the club API client the team repository uses
type ClubAPI interface {
	GetMyTeam(ctx context.Context) (*club_api_client.MyTeamResponse, error)
}

type Repository struct {
	api ClubAPI
}

func NewRepository(api ClubAPI) *Repository {
	return &Repository{api: api}
}

func (r *Repository) GetMyTeam(ctx context.Context) (*models.Team, error) {
	resp, err := r.api.GetMyTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get my team: %w", err)
	}
	return resp.ToModel(), nil
}
