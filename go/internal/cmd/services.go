package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/clubmanager/go/clients/club_api_client"
	"github.com/mcdev12/clubmanager/go/internal/auth"
	"github.com/mcdev12/clubmanager/go/internal/config"
	"github.com/mcdev12/clubmanager/go/internal/notify"
	"github.com/mcdev12/clubmanager/go/internal/session"
	"github.com/mcdev12/clubmanager/go/internal/team"
	"github.com/mcdev12/clubmanager/go/internal/transfer"
)

type Services struct {
	Session  *session.Session
	Notifier notify.Notifier
	Hub      *notify.Hub

	Auth     *auth.App
	Team     *team.App
	Transfer *transfer.App

	closers []func() error
}

// setupServices wires storage, session, API client and the apps. withHub
// adds the websocket hub and, when configured, the NATS publisher.
func setupServices(ctx context.Context, cfg *config.Config, withHub bool) (*Services, error) {
	// Wire up dependency injection chain
	// Storage → Session → API client → Repository layer → App layer
	s := &Services{}
	clock := clockwork.NewRealClock()

	tokens, err := setupStorage(ctx, cfg.StoragePath)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, tokens.Close)

	s.Session = session.New(tokens, clock)
	if err := s.Session.Restore(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	client := club_api_client.NewClubApiClient(cfg.APIURL, s.Session)
	client.SetTimeout(cfg.APITimeout)
	client.SetUnauthorizedHandler(func() {
		log.Warn().Msg("API rejected the session token, signing out")
		if err := s.Session.End(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to clear rejected session")
		}
	})

	// Notifications
	sinks := notify.Fanout{notify.LogNotifier{}}
	if withHub {
		s.Hub = notify.NewHub(notify.DefaultHubConfig())
		sinks = append(sinks, s.Hub)

		if cfg.NATSURL != "" {
			natsCfg := notify.DefaultNATSConfig()
			natsCfg.URL = cfg.NATSURL
			natsCfg.SubjectPrefix = cfg.NATSSubjectPrefix

			publisher, err := notify.NewNATSPublisher(natsCfg)
			if err != nil {
				s.Close()
				return nil, err
			}
			s.closers = append(s.closers, publisher.Close)
			sinks = append(sinks, publisher)
		}
	}
	s.Notifier = sinks

	// Auth
	s.Auth = auth.NewApp(auth.NewRepository(client), s.Session, s.Notifier, clock)

	// Team
	s.Team = team.NewApp(team.NewRepository(client), s.Notifier, clock)

	// Transfer market
	store := transfer.NewStore(transfer.NewRepository(client), s.Notifier, clock)
	s.Transfer = transfer.NewApp(store, transfer.Config{MinAskingPrice: cfg.MinAskingPrice})

	return s, nil
}

func setupStorage(ctx context.Context, path string) (*session.SQLiteStore, error) {
	store, err := session.OpenSQLiteStore(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	log.Debug().Str("path", path).Msg("opened local storage")
	return store, nil
}

// Close releases storage and broker connections in reverse order
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
