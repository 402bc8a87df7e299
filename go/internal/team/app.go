package team

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/clubmanager/go/clients"
	"github.com/mcdev12/clubmanager/go/internal/models"
	"github.com/mcdev12/clubmanager/go/internal/notify"
)

// MsgTeamFailed is shown when the team cannot be loaded
const MsgTeamFailed = "Error fetching team"

// TeamRepository defines what the app layer needs from the repository
type TeamRepository interface {
	GetMyTeam(ctx context.Context) (*models.Team, error)
}

// App loads the signed-in manager's team
type App struct {
	repo     TeamRepository
	notifier notify.Notifier
	clock    clockwork.Clock
}

func NewApp(repo TeamRepository, notifier notify.Notifier, clock clockwork.Clock) *App {
	if notifier == nil {
		notifier = notify.Discard
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{repo: repo, notifier: notifier, clock: clock}
}

// GetMyTeam returns the team's name, budget and roster
func (a *App) GetMyTeam(ctx context.Context) (*models.Team, error) {
	team, err := a.repo.GetMyTeam(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load team")
		msg := MsgTeamFailed
		if m, ok := clients.ServerMessage(err); ok {
			msg = m
		}
		notify.Error(ctx, a.notifier, msg, a.clock.Now())
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	log.Debug().Str("team", team.Name).Int("players", len(team.Players)).Msg("team loaded")
	return team, nil
}
