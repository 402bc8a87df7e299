package models

import "github.com/shopspring/decimal"

// TeamRef identifies the club that owns a player or sells a listing
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Team represents the signed-in manager's club
type Team struct {
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name"`
	Budget  decimal.Decimal `json:"budget"`
	Players []Player        `json:"players"`
}
