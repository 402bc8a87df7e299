package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Position represents where a player lines up on the pitch
type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionAttacker   Position = "Attacker"
)

// Positions lists every valid position in display order
var Positions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionAttacker,
}

// Valid reports whether p is one of the known positions
func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionAttacker:
		return true
	default:
		return false
	}
}

// ParsePosition accepts a position name in any letter case
func ParsePosition(s string) (Position, error) {
	for _, p := range Positions {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid position: %q", s)
}

// Player represents a footballer owned by a club
type Player struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Position         Position        `json:"position"`
	Price            decimal.Decimal `json:"price"`
	Team             *TeamRef        `json:"team,omitempty"`
	IsOnTransferList bool            `json:"is_on_transfer_list"`
	AskingPrice      decimal.Decimal `json:"asking_price"` // only meaningful while IsOnTransferList
}
