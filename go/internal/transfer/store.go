package transfer

import (
	"context"
	"errors"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/mcdev12/clubmanager/go/clients"
	"github.com/mcdev12/clubmanager/go/internal/models"
	"github.com/mcdev12/clubmanager/go/internal/notify"
)

const (
	marketKey   = "market"
	listingsKey = "listings"
)

// MarketRepository defines what the transfer layer needs from the API
type MarketRepository interface {
	GetMarket(ctx context.Context) (*models.MarketSnapshot, error)
	GetListings(ctx context.Context) ([]models.Listing, error)
	ToggleListing(ctx context.Context, playerID string, listed bool, askingPrice decimal.Decimal) ([]models.Player, error)
	BuyPlayer(ctx context.Context, playerID string, price decimal.Decimal) (*models.MarketSnapshot, error)
}

// Store caches the signed-in team's roster, the market player pool and the
// active transfer listings. Collections are only ever replaced wholesale and
// callers always receive copies.
type Store struct {
	repo     MarketRepository
	notifier notify.Notifier
	clock    clockwork.Clock

	group singleflight.Group

	mu               sync.RWMutex
	ownedPlayers     []models.Player
	allMarketPlayers []models.Player
	activeListings   []models.Listing

	// fetch sequence numbers; a response older than the last applied one is dropped
	marketSeq, marketApplied     uint64
	listingsSeq, listingsApplied uint64
}

func NewStore(repo MarketRepository, notifier notify.Notifier, clock clockwork.Clock) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
	}
}

// RefreshMarket reloads the roster and player pool, then the listings. On
// failure the cached collections are kept and the error is reported.
func (s *Store) RefreshMarket(ctx context.Context) error {
	err := s.shared(ctx, marketKey, func(ctx context.Context) error {
		seq := s.nextSeq(&s.marketSeq)

		snapshot, err := s.repo.GetMarket(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to refresh market")
			s.reportFailure(ctx, err, MsgMarketFailed)
			return err
		}

		s.mu.Lock()
		if seq > s.marketApplied {
			s.marketApplied = seq
			s.ownedPlayers = copyPlayers(snapshot.MyTeamPlayers)
			s.allMarketPlayers = copyPlayers(snapshot.Players)
		}
		s.mu.Unlock()

		log.Debug().
			Int("owned", len(snapshot.MyTeamPlayers)).
			Int("market", len(snapshot.Players)).
			Msg("market refreshed")
		return nil
	})
	if err != nil {
		return err
	}

	return s.RefreshListings(ctx)
}

// RefreshListings reloads the active transfer listings. On failure the cached
// listings are kept and the error is reported.
func (s *Store) RefreshListings(ctx context.Context) error {
	return s.shared(ctx, listingsKey, s.fetchListings)
}

// shared runs fetch once for all concurrent callers of key. The fetch is
// detached from any single caller's cancellation; each caller stops waiting
// when its own ctx is done.
func (s *Store) shared(ctx context.Context, key string, fetch func(ctx context.Context) error) error {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return nil, fetch(detached)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resyncListings reloads the listings without joining a fetch that may have
// started before the caller's mutation was acknowledged.
func (s *Store) resyncListings(ctx context.Context) error {
	s.group.Forget(listingsKey)
	return s.RefreshListings(ctx)
}

func (s *Store) fetchListings(ctx context.Context) error {
	seq := s.nextSeq(&s.listingsSeq)

	listings, err := s.repo.GetListings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh transfer list")
		s.reportFailure(ctx, err, MsgListingsFailed)
		return err
	}

	s.mu.Lock()
	if seq > s.listingsApplied {
		s.listingsApplied = seq
		s.activeListings = copyListings(listings)
	}
	s.mu.Unlock()

	log.Debug().Int("listings", len(listings)).Msg("transfer list refreshed")
	return nil
}

func (s *Store) nextSeq(counter *uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	*counter++
	return *counter
}

func (s *Store) reportFailure(ctx context.Context, err error, fallback string) {
	notify.Error(ctx, s.notifier, failureMessage(err, fallback), s.clock.Now())
}

// OwnedPlayers returns the signed-in team's roster
func (s *Store) OwnedPlayers() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPlayers(s.ownedPlayers)
}

// MarketPlayers returns the global player pool
func (s *Store) MarketPlayers() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPlayers(s.allMarketPlayers)
}

// Listings returns the active transfer listings in server order
func (s *Store) Listings() []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyListings(s.activeListings)
}

// Filtered applies criteria to the cached listings
func (s *Store) Filtered(criteria FilterCriteria) []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ApplyFilter(s.activeListings, criteria)
}

// OwnedPlayer looks up a player on the signed-in team's roster
func (s *Store) OwnedPlayer(playerID string) (models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.ownedPlayers {
		if p.ID == playerID {
			return p, true
		}
	}
	return models.Player{}, false
}

// ListingFor looks up the active listing of a player
func (s *Store) ListingFor(playerID string) (models.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.activeListings {
		if l.Player.ID == playerID {
			return l, true
		}
	}
	return models.Listing{}, false
}

// replaceOwned installs a server roster with every asking price reset
func (s *Store) replaceOwned(players []models.Player) []models.Player {
	roster := resetAskingPrices(players)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownedPlayers = roster
	s.marketApplied = s.marketSeq
	return copyPlayers(roster)
}

// replaceMarket installs a server snapshot with the roster's asking prices reset
func (s *Store) replaceMarket(snapshot *models.MarketSnapshot) []models.Player {
	roster := resetAskingPrices(snapshot.MyTeamPlayers)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownedPlayers = roster
	s.allMarketPlayers = copyPlayers(snapshot.Players)
	s.marketApplied = s.marketSeq
	return copyPlayers(roster)
}

func (s *Store) setAskingPrice(playerID string, price decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ownedPlayers {
		if s.ownedPlayers[i].ID == playerID {
			s.ownedPlayers[i].AskingPrice = price
			return true
		}
	}
	return false
}

func resetAskingPrices(players []models.Player) []models.Player {
	out := copyPlayers(players)
	for i := range out {
		out[i].AskingPrice = decimal.Zero
	}
	return out
}

func copyPlayers(players []models.Player) []models.Player {
	out := make([]models.Player, len(players))
	copy(out, players)
	return out
}

func copyListings(listings []models.Listing) []models.Listing {
	out := make([]models.Listing, len(listings))
	copy(out, listings)
	return out
}

// failureMessage prefers the server's own explanation over fallback
func failureMessage(err error, fallback string) string {
	if msg, ok := clients.ServerMessage(err); ok {
		return msg
	}
	if errors.Is(err, clients.ErrMalformedResponse) {
		log.Warn().Err(err).Msg("server returned an unexpected payload")
	}
	return fallback
}
