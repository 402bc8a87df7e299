package club_api_client

import (
	"github.com/mcdev12/clubmanager/go/internal/models"
)

func (t *TeamRef) ToModel() *models.TeamRef {
	if t == nil {
		return nil
	}
	return &models.TeamRef{ID: t.ID, Name: t.Name}
}

func (p Player) ToModel() models.Player {
	return models.Player{
		ID:               p.ID,
		Name:             p.Name,
		Position:         models.Position(p.Position),
		Price:            p.Price,
		Team:             p.Team.ToModel(),
		IsOnTransferList: p.IsOnTransferList,
		AskingPrice:      p.AskingPrice,
	}
}

// PlayersToModels converts a validated roster; a nil roster becomes empty.
func PlayersToModels(players *[]Player) []models.Player {
	if players == nil {
		return []models.Player{}
	}
	out := make([]models.Player, len(*players))
	for i, p := range *players {
		out[i] = p.ToModel()
	}
	return out
}

func (t Transfer) ToModel() models.Listing {
	listing := models.Listing{
		ID:    t.ID,
		Price: t.Price,
	}
	if t.Player != nil {
		listing.Player = t.Player.ToModel()
	}
	if t.FromTeam != nil {
		listing.FromTeam = *t.FromTeam.ToModel()
	}
	if t.CreatedAt != nil {
		listing.CreatedAt = *t.CreatedAt
	}
	return listing
}

func (r *TransferListResponse) ToModels() []models.Listing {
	if r.Transfers == nil {
		return []models.Listing{}
	}
	out := make([]models.Listing, len(*r.Transfers))
	for i, t := range *r.Transfers {
		out[i] = t.ToModel()
	}
	return out
}

func (r *MyTeamResponse) ToModel() *models.Team {
	return &models.Team{
		ID:      r.ID,
		Name:    r.Name,
		Budget:  r.Budget,
		Players: PlayersToModels(r.Players),
	}
}
