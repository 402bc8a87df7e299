package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mcdev12/clubmanager/go/internal/httputil"
	"github.com/mcdev12/clubmanager/go/internal/models"
)

// TransferApp defines what the service layer needs from the transfer application
type TransferApp interface {
	ToggleListing(ctx context.Context, playerID string, currentlyListed bool, askingPrice decimal.Decimal) (*ToggleResult, error)
	TogglePlayer(ctx context.Context, playerID string) (*ToggleResult, error)
	BuyPlayer(ctx context.Context, playerID string, askingPrice decimal.Decimal) (*BuyResult, error)
	BuyListed(ctx context.Context, playerID string) (*BuyResult, error)
	SetAskingPrice(playerID string, price decimal.Decimal) error
	Store() *Store
}

// Service serves the transfer market over JSON HTTP
type Service struct {
	app TransferApp
}

func NewService(app TransferApp) *Service {
	return &Service{app: app}
}

// ToggleRequest toggles a player's listing. When CurrentlyListed is omitted
// the cached roster supplies the state and asking price.
type ToggleRequest struct {
	PlayerID        string           `json:"player_id"`
	CurrentlyListed *bool            `json:"currently_listed,omitempty"`
	AskingPrice     *decimal.Decimal `json:"asking_price,omitempty"`
}

// BuyRequest buys a listed player. When AskingPrice is omitted the cached
// listing supplies it.
type BuyRequest struct {
	PlayerID    string           `json:"player_id"`
	AskingPrice *decimal.Decimal `json:"asking_price,omitempty"`
}

// AskingPriceRequest edits an owned player's asking price
type AskingPriceRequest struct {
	PlayerID    string          `json:"player_id"`
	AskingPrice decimal.Decimal `json:"asking_price"`
}

// PlayersResponse is the cached roster and player pool
type PlayersResponse struct {
	MyTeamPlayers []models.Player `json:"my_team_players"`
	Players       []models.Player `json:"players"`
}

// ListingView is a listing together with the price a buyer pays for it
type ListingView struct {
	models.Listing
	BuyPrice decimal.Decimal `json:"buy_price"`
}

// ListingsResponse is the filtered market view
type ListingsResponse struct {
	Listings []ListingView `json:"listings"`
	Filter   FilterCriteria `json:"filter"`
}

// RegisterRoutes mounts the market routes on mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/market/listings", s.HandleListings)
	mux.HandleFunc("GET /api/market/players", s.HandlePlayers)
	mux.HandleFunc("POST /api/market/refresh", s.HandleRefresh)
	mux.HandleFunc("POST /api/market/price", s.HandleSetAskingPrice)
	mux.HandleFunc("POST /api/market/toggle", s.HandleToggle)
	mux.HandleFunc("POST /api/market/buy", s.HandleBuy)
}

// HandleListings handles GET /api/market/listings
func (s *Service) HandleListings(w http.ResponseWriter, r *http.Request) {
	criteria, err := ParseFilterQuery(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err)
		return
	}

	listings := s.app.Store().Filtered(criteria)
	views := make([]ListingView, len(listings))
	for i, l := range listings {
		views[i] = ListingView{Listing: l, BuyPrice: EffectivePrice(l.Price)}
	}

	httputil.WriteJSON(w, http.StatusOK, ListingsResponse{Listings: views, Filter: criteria})
}

// HandlePlayers handles GET /api/market/players
func (s *Service) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	store := s.app.Store()
	httputil.WriteJSON(w, http.StatusOK, PlayersResponse{
		MyTeamPlayers: store.OwnedPlayers(),
		Players:       store.MarketPlayers(),
	})
}

// HandleRefresh handles POST /api/market/refresh
func (s *Service) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	store := s.app.Store()
	if err := store.RefreshMarket(r.Context()); err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PlayersResponse{
		MyTeamPlayers: store.OwnedPlayers(),
		Players:       store.MarketPlayers(),
	})
}

// HandleSetAskingPrice handles POST /api/market/price
func (s *Service) HandleSetAskingPrice(w http.ResponseWriter, r *http.Request) {
	var req AskingPriceRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.app.SetAskingPrice(req.PlayerID, req.AskingPrice); err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggle handles POST /api/market/toggle
func (s *Service) HandleToggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err)
		return
	}

	var (
		result *ToggleResult
		err    error
	)
	if req.CurrentlyListed == nil {
		result, err = s.app.TogglePlayer(r.Context(), req.PlayerID)
	} else {
		askingPrice := decimal.Zero
		if req.AskingPrice != nil {
			askingPrice = *req.AskingPrice
		}
		result, err = s.app.ToggleListing(r.Context(), req.PlayerID, *req.CurrentlyListed, askingPrice)
	}
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleBuy handles POST /api/market/buy
func (s *Service) HandleBuy(w http.ResponseWriter, r *http.Request) {
	var req BuyRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err)
		return
	}

	var (
		result *BuyResult
		err    error
	)
	if req.AskingPrice == nil {
		result, err = s.app.BuyListed(r.Context(), req.PlayerID)
	} else {
		result, err = s.app.BuyPlayer(r.Context(), req.PlayerID, *req.AskingPrice)
	}
	if err != nil {
		httputil.WriteError(w, statusFor(err), err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ParseFilterQuery reads filter criteria from the name, position, min_price
// and max_price query parameters, starting from DefaultFilterCriteria.
func ParseFilterQuery(r *http.Request) (FilterCriteria, error) {
	q := r.URL.Query()
	criteria := DefaultFilterCriteria()
	criteria.Name = q.Get("name")

	if v := q.Get("position"); v != "" {
		pos, err := models.ParsePosition(v)
		if err != nil {
			return criteria, err
		}
		criteria.Position = pos
	}

	for param, dst := range map[string]*decimal.Decimal{
		"min_price": &criteria.MinPrice,
		"max_price": &criteria.MaxPrice,
	} {
		v := q.Get(param)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return criteria, fmt.Errorf("invalid %s: %q", param, v)
		}
		*dst = d
	}
	return criteria, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrRequestInFlight):
		return http.StatusConflict
	default:
		return httputil.StatusFor(err)
	}
}
