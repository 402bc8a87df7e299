package transfer

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mcdev12/clubmanager/go/clients/club_api_client"
	"github.com/mcdev12/clubmanager/go/internal/models"
)

// ClubAPI is the part of the club API client the transfer repository uses
type ClubAPI interface {
	GetMarket(ctx context.Context) (*club_api_client.MarketResponse, error)
	GetTransferList(ctx context.Context) (*club_api_client.TransferListResponse, error)
	ToggleTransferList(ctx context.Context, playerID string, listed bool, askingPrice decimal.Decimal) (*club_api_client.ToggleResponse, error)
	BuyPlayer(ctx context.Context, playerID string, price decimal.Decimal) (*club_api_client.BuyResponse, error)
}

// Repository adapts the club API to domain models
type Repository struct {
	api ClubAPI
}

func NewRepository(api ClubAPI) *Repository {
	return &Repository{api: api}
}

func (r *Repository) GetMarket(ctx context.Context) (*models.MarketSnapshot, error) {
	resp, err := r.api.GetMarket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get market: %w", err)
	}
	return &models.MarketSnapshot{
		Players:       club_api_client.PlayersToModels(resp.Players),
		MyTeamPlayers: club_api_client.PlayersToModels(resp.MyTeamPlayers),
	}, nil
}

func (r *Repository) GetListings(ctx context.Context) ([]models.Listing, error) {
	resp, err := r.api.GetTransferList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer list: %w", err)
	}
	return resp.ToModels(), nil
}

func (r *Repository) ToggleListing(ctx context.Context, playerID string, listed bool, askingPrice decimal.Decimal) ([]models.Player, error) {
	resp, err := r.api.ToggleTransferList(ctx, playerID, listed, askingPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle transfer list: %w", err)
	}
	return club_api_client.PlayersToModels(resp.Players), nil
}

func (r *Repository) BuyPlayer(ctx context.Context, playerID string, price decimal.Decimal) (*models.MarketSnapshot, error) {
	resp, err := r.api.BuyPlayer(ctx, playerID, price)
	if err != nil {
		return nil, fmt.Errorf("failed to buy player: %w", err)
	}
	return &models.MarketSnapshot{
		Players:       club_api_client.PlayersToModels(resp.Players),
		MyTeamPlayers: club_api_client.PlayersToModels(resp.MyTeamPlayers),
	}, nil
}
