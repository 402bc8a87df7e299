package club_api_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcdev12/clubmanager/go/clients"
)

var validPositions = map[string]bool{
	"Goalkeeper": true, "Defender": true, "Midfielder": true, "Attacker": true,
}

// TeamRef is a team reference as sent by the API: either a bare id string or
// a populated {_id, name} document.
type TeamRef struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (t *TeamRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.ID)
	}

	type plain TeamRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = TeamRef(p)
	return nil
}

type Player struct {
	ID               string          `json:"_id"`
	Name             string          `json:"name"`
	Position         string          `json:"position"`
	Price            decimal.Decimal `json:"price"`
	Team             *TeamRef        `json:"team,omitempty"`
	IsOnTransferList bool            `json:"isOnTransferList"`
	AskingPrice      decimal.Decimal `json:"askingPrice"`
}

type Transfer struct {
	ID        string          `json:"_id"`
	Player    *Player         `json:"player"`
	Price     decimal.Decimal `json:"price"`
	FromTeam  *TeamRef        `json:"fromTeam"`
	CreatedAt *time.Time      `json:"createdAt"`
}

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TeamName string `json:"teamName,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Msg   string `json:"msg,omitempty"`
}

type MyTeamResponse struct {
	ID      string          `json:"_id"`
	Name    string          `json:"name"`
	Budget  decimal.Decimal `json:"budget"`
	Players *[]Player       `json:"players"`
}

type MarketResponse struct {
	Players       *[]Player `json:"players"`
	MyTeamPlayers *[]Player `json:"myTeamPlayers"`
}

type TransferListResponse struct {
	Transfers *[]Transfer `json:"transfers"`
}

type ToggleRequest struct {
	PlayerID         string      `json:"playerId"`
	IsOnTransferList bool        `json:"isOnTransferList"`
	AskingPrice      json.Number `json:"askingPrice"`
}

type ToggleResponse struct {
	Players *[]Player `json:"players"`
}

type BuyRequest struct {
	PlayerID string      `json:"playerId"`
	Price    json.Number `json:"price"`
}

type BuyResponse struct {
	Players       *[]Player `json:"players"`
	MyTeamPlayers *[]Player `json:"myTeamPlayers"`
}

// Validation methods

func (p *Player) validate() error {
	if p.ID == "" {
		return fmt.Errorf("player _id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player %s: name is required", p.ID)
	}
	if !validPositions[p.Position] {
		return fmt.Errorf("player %s: invalid position %q", p.ID, p.Position)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("player %s: negative price %s", p.ID, p.Price)
	}
	if p.AskingPrice.IsNegative() {
		return fmt.Errorf("player %s: negative asking price %s", p.ID, p.AskingPrice)
	}
	return nil
}

func (t *Transfer) validate() error {
	if t.ID == "" {
		return fmt.Errorf("transfer _id is required")
	}
	if t.Player == nil {
		return fmt.Errorf("transfer %s: player is required", t.ID)
	}
	if err := t.Player.validate(); err != nil {
		return fmt.Errorf("transfer %s: %w", t.ID, err)
	}
	if t.FromTeam == nil {
		return fmt.Errorf("transfer %s: fromTeam is required", t.ID)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("transfer %s: negative price %s", t.ID, t.Price)
	}
	if t.CreatedAt == nil || t.CreatedAt.IsZero() {
		return fmt.Errorf("transfer %s: createdAt is required", t.ID)
	}
	return nil
}

func validatePlayers(field string, players *[]Player) error {
	if players == nil {
		return fmt.Errorf("%s is required", field)
	}
	for i := range *players {
		if err := (*players)[i].validate(); err != nil {
			return fmt.Errorf("%s[%d]: %w", field, i, err)
		}
	}
	return nil
}

func (r *MyTeamResponse) validate() error {
	if r.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return validatePlayers("players", r.Players)
}

func (r *MarketResponse) validate() error {
	if err := validatePlayers("players", r.Players); err != nil {
		return err
	}
	return validatePlayers("myTeamPlayers", r.MyTeamPlayers)
}

func (r *TransferListResponse) validate() error {
	if r.Transfers == nil {
		return fmt.Errorf("transfers is required")
	}
	for i := range *r.Transfers {
		if err := (*r.Transfers)[i].validate(); err != nil {
			return fmt.Errorf("transfers[%d]: %w", i, err)
		}
	}
	return nil
}

func (r *ToggleResponse) validate() error {
	return validatePlayers("players", r.Players)
}

func (r *BuyResponse) validate() error {
	if err := validatePlayers("players", r.Players); err != nil {
		return err
	}
	return validatePlayers("myTeamPlayers", r.MyTeamPlayers)
}

type validator interface {
	validate() error
}

// decode unmarshals body into v and checks it against the response schema.
func decode(body []byte, v validator) error {
	if err := clients.DecodeJSON(body, v); err != nil {
		return err
	}
	if err := v.validate(); err != nil {
		return fmt.Errorf("%w: %v", clients.ErrMalformedResponse, err)
	}
	return nil
}
