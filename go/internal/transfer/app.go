package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/clubmanager/go/internal/models"
	"github.com/mcdev12/clubmanager/go/internal/notify"
)

const (
	opToggle = "toggle"
	opBuy    = "buy"
)

// App handles transfer market business logic: listing toggles, purchases and
// the listing resync that follows each of them.
type App struct {
	store    *Store
	repo     MarketRepository
	notifier notify.Notifier
	clock    clockwork.Clock
	inflight *inflight
	config   Config
}

// NewApp creates a transfer App operating on store. Callers wanting the
// standard minimum asking price pass DefaultConfig.
func NewApp(store *Store, config Config) *App {
	return &App{
		store:    store,
		repo:     store.repo,
		notifier: store.notifier,
		clock:    store.clock,
		inflight: newInflight(),
		config:   config,
	}
}

// Store returns the listing store the App keeps in sync
func (a *App) Store() *Store {
	return a.store
}

// MinAskingPrice is the lowest price a player can be listed at
func (a *App) MinAskingPrice() decimal.Decimal {
	return a.config.MinAskingPrice
}

// EffectivePrice is what a buyer pays for a listing with the given asking price
func EffectivePrice(askingPrice decimal.Decimal) decimal.Decimal {
	return askingPrice.Mul(PurchaseDiscount)
}

// Pending reports whether a mutation for playerID is awaiting the server
func (a *App) Pending(playerID string) bool {
	_, ok := a.inflight.op(playerID)
	return ok
}

// ToggleListing moves an owned player between NOT_LISTED and LISTED.
// Listing requires askingPrice to be at least the configured minimum; a
// rejected request never reaches the server.
func (a *App) ToggleListing(ctx context.Context, playerID string, currentlyListed bool, askingPrice decimal.Decimal) (*ToggleResult, error) {
	next := StateNotListed
	if !currentlyListed {
		next = StateListed
	}

	if err := a.validateToggle(playerID, next, askingPrice); err != nil {
		a.notifyError(ctx, a.validationMessage(err))
		return nil, err
	}

	release, ok := a.inflight.acquire(playerID, opToggle)
	if !ok {
		a.notifyError(ctx, MsgRequestInFlight)
		return nil, fmt.Errorf("%w: %s", ErrRequestInFlight, playerID)
	}
	defer release()

	players, err := a.repo.ToggleListing(ctx, playerID, next == StateListed, askingPrice)
	if err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("failed to toggle transfer list")
		a.notifyError(ctx, failureMessage(err, MsgToggleFailed))
		return nil, fmt.Errorf("failed to toggle transfer list: %w", err)
	}

	roster := a.store.replaceOwned(players)
	a.resync(ctx)

	msg := MsgUnlisted
	if next == StateListed {
		msg = MsgListed
	}
	notify.Success(ctx, a.notifier, msg, a.clock.Now())

	log.Info().
		Str("player_id", playerID).
		Str("state", string(next)).
		Str("asking_price", askingPrice.String()).
		Msg("transfer list updated")

	return &ToggleResult{
		PlayerID: playerID,
		State:    next,
		Message:  msg,
		Roster:   roster,
	}, nil
}

// TogglePlayer toggles an owned player using its cached listing state and
// asking price.
func (a *App) TogglePlayer(ctx context.Context, playerID string) (*ToggleResult, error) {
	if playerID == "" {
		err := validationError(ErrMissingPlayerID)
		a.notifyError(ctx, a.validationMessage(err))
		return nil, err
	}

	player, ok := a.store.OwnedPlayer(playerID)
	if !ok {
		err := validationError(ErrPlayerNotOwned)
		a.notifyError(ctx, a.validationMessage(err))
		return nil, err
	}
	return a.ToggleListing(ctx, playerID, player.IsOnTransferList, player.AskingPrice)
}

// BuyPlayer purchases a listed player for EffectivePrice(askingPrice).
func (a *App) BuyPlayer(ctx context.Context, playerID string, askingPrice decimal.Decimal) (*BuyResult, error) {
	if err := a.validateBuy(playerID, askingPrice); err != nil {
		a.notifyError(ctx, a.validationMessage(err))
		return nil, err
	}

	release, ok := a.inflight.acquire(playerID, opBuy)
	if !ok {
		a.notifyError(ctx, MsgRequestInFlight)
		return nil, fmt.Errorf("%w: %s", ErrRequestInFlight, playerID)
	}
	defer release()

	price := EffectivePrice(askingPrice)
	snapshot, err := a.repo.BuyPlayer(ctx, playerID, price)
	if err != nil {
		log.Error().Err(err).Str("player_id", playerID).Str("price", price.String()).Msg("failed to buy player")
		a.notifyError(ctx, MsgBuyFailed)
		return nil, fmt.Errorf("failed to buy player: %w", err)
	}

	roster := a.store.replaceMarket(snapshot)
	a.resync(ctx)

	notify.Success(ctx, a.notifier, MsgBought, a.clock.Now())
	log.Info().Str("player_id", playerID).Str("price", price.String()).Msg("player bought")

	return &BuyResult{
		PlayerID:  playerID,
		PricePaid: price,
		Message:   MsgBought,
		Roster:    roster,
	}, nil
}

// BuyListed buys a player at the asking price of its cached listing
func (a *App) BuyListed(ctx context.Context, playerID string) (*BuyResult, error) {
	if playerID == "" {
		err := validationError(ErrMissingPlayerID)
		a.notifyError(ctx, a.validationMessage(err))
		return nil, err
	}

	listing, ok := a.store.ListingFor(playerID)
	if !ok {
		err := validationError(ErrListingNotFound)
		a.notifyError(ctx, a.validationMessage(err))
		return nil, err
	}
	return a.BuyPlayer(ctx, playerID, listing.Price)
}

// SetAskingPrice edits the cached asking price of an owned player ahead of
// listing it. Nothing is sent to the server.
func (a *App) SetAskingPrice(playerID string, price decimal.Decimal) error {
	if playerID == "" {
		return validationError(ErrMissingPlayerID)
	}
	if price.IsNegative() {
		return validationError(ErrNegativePrice)
	}
	if !a.store.setAskingPrice(playerID, price) {
		return validationError(ErrPlayerNotOwned)
	}
	return nil
}

// resync refreshes the listings after an acknowledged mutation. A failed
// refresh is reported by the store and does not undo the mutation.
func (a *App) resync(ctx context.Context) {
	if err := a.store.resyncListings(ctx); err != nil {
		log.Warn().Err(err).Msg("transfer list is stale after mutation")
	}
}

func (a *App) notifyError(ctx context.Context, msg string) {
	notify.Error(ctx, a.notifier, msg, a.clock.Now())
}

func (a *App) validateToggle(playerID string, next ListingState, askingPrice decimal.Decimal) error {
	if playerID == "" {
		return validationError(ErrMissingPlayerID)
	}
	if askingPrice.IsNegative() {
		return validationError(ErrNegativePrice)
	}
	if next == StateListed && askingPrice.LessThan(a.config.MinAskingPrice) {
		return validationError(ErrAskingPriceTooLow)
	}
	return nil
}

func (a *App) validateBuy(playerID string, askingPrice decimal.Decimal) error {
	if playerID == "" {
		return validationError(ErrMissingPlayerID)
	}
	if askingPrice.IsNegative() {
		return validationError(ErrNegativePrice)
	}
	return nil
}

func (a *App) validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrAskingPriceTooLow):
		return fmt.Sprintf("Asking price must be at least %s", models.FormatMoney(a.config.MinAskingPrice))
	case errors.Is(err, ErrNegativePrice):
		return "Price must not be negative"
	case errors.Is(err, ErrMissingPlayerID):
		return "No player selected"
	case errors.Is(err, ErrPlayerNotOwned):
		return "Player is not on your team"
	case errors.Is(err, ErrListingNotFound):
		return "Player is not on the transfer list"
	default:
		return err.Error()
	}
}
