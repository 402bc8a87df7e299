package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is a market offer for a player made by the selling team
type Listing struct {
	ID        string          `json:"id"`
	Player    Player          `json:"player"`
	FromTeam  TeamRef         `json:"from_team"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// MarketSnapshot is the player pool together with the signed-in team's roster
type MarketSnapshot struct {
	Players       []Player `json:"players"`
	MyTeamPlayers []Player `json:"my_team_players"`
}
