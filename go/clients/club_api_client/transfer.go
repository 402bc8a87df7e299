package club_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func (c *ClubApiClient) GetMarket(ctx context.Context) (*MarketResponse, error) {
	body, err := c.Get(ctx, MarketEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get market: %w", err)
	}

	var response MarketResponse
	if err := decode(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode market response: %w", err)
	}

	return &response, nil
}

func (c *ClubApiClient) GetTransferList(ctx context.Context) (*TransferListResponse, error) {
	body, err := c.Get(ctx, TransferListEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer list: %w", err)
	}

	var response TransferListResponse
	if err := decode(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode transfer list response: %w", err)
	}

	return &response, nil
}

// ToggleTransferList sets the player's transfer-list membership to listed.
func (c *ClubApiClient) ToggleTransferList(ctx context.Context, playerID string, listed bool, askingPrice decimal.Decimal) (*ToggleResponse, error) {
	body, err := c.PostJSON(ctx, ToggleEndpoint, ToggleRequest{
		PlayerID:         playerID,
		IsOnTransferList: listed,
		AskingPrice:      json.Number(askingPrice.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle transfer list: %w", err)
	}

	var response ToggleResponse
	if err := decode(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode toggle response: %w", err)
	}

	return &response, nil
}

// BuyPlayer submits an offer of exactly price for the listed player.
func (c *ClubApiClient) BuyPlayer(ctx context.Context, playerID string, price decimal.Decimal) (*BuyResponse, error) {
	body, err := c.PostJSON(ctx, BuyEndpoint, BuyRequest{
		PlayerID: playerID,
		Price:    json.Number(price.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to buy player: %w", err)
	}

	var response BuyResponse
	if err := decode(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode buy response: %w", err)
	}

	return &response, nil
}
