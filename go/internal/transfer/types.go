package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/mcdev12/clubmanager/go/internal/models"
)

var (
	// DefaultMinAskingPrice is the lowest asking price a player can be listed at
	DefaultMinAskingPrice = decimal.NewFromInt(100000)

	// PurchaseDiscount is applied to the asking price when buying a listed player
	PurchaseDiscount = decimal.New(95, -2)

	// DefaultMaxFilterPrice is the upper bound of the default price filter
	DefaultMaxFilterPrice = decimal.NewFromInt(1000000)
)

// Notification messages shown to the manager
const (
	MsgListed          = "Player added to transfer list"
	MsgUnlisted        = "Player removed from transfer list"
	MsgToggleFailed    = "Failed to update transfer list"
	MsgBought          = "Player bought successfully!"
	MsgBuyFailed       = "Failed to buy player. Check your budget or team size."
	MsgMarketFailed    = "Error fetching players"
	MsgListingsFailed  = "Error fetching transfer list"
	MsgRequestInFlight = "A request for this player is already in progress"
)

// ListingState is the transfer-list state of a single owned player
type ListingState string

const (
	StateNotListed ListingState = "NOT_LISTED"
	StateListed    ListingState = "LISTED"
)

// StateOf returns the listing state of p
func StateOf(p models.Player) ListingState {
	if p.IsOnTransferList {
		return StateListed
	}
	return StateNotListed
}

// Next is the state a toggle moves to
func (s ListingState) Next() ListingState {
	if s == StateListed {
		return StateNotListed
	}
	return StateListed
}

// FilterCriteria narrows the active listings shown on the market screen.
// An empty Position matches every position.
type FilterCriteria struct {
	Name     string          `json:"name"`
	Position models.Position `json:"position,omitempty"`
	MinPrice decimal.Decimal `json:"min_price"`
	MaxPrice decimal.Decimal `json:"max_price"`
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		MinPrice: decimal.Zero,
		MaxPrice: DefaultMaxFilterPrice,
	}
}

// Config holds workflow settings
type Config struct {
	MinAskingPrice decimal.Decimal
}

func DefaultConfig() Config {
	return Config{MinAskingPrice: DefaultMinAskingPrice}
}

// ToggleResult is the outcome of a successful listing toggle
type ToggleResult struct {
	PlayerID string          `json:"player_id"`
	State    ListingState    `json:"state"`
	Message  string          `json:"message"`
	Roster   []models.Player `json:"roster"`
}

// BuyResult is the outcome of a successful purchase
type BuyResult struct {
	PlayerID  string          `json:"player_id"`
	PricePaid decimal.Decimal `json:"price_paid"`
	Message   string          `json:"message"`
	Roster    []models.Player `json:"roster"`
}
