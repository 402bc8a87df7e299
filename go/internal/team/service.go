package team

import (
	"context"
	"net/http"

	"github.com/mcdev12/clubmanager/go/internal/httputil"
	"github.com/mcdev12/clubmanager/go/internal/models"
)

// TeamApp defines what the service layer needs from the team application
type TeamApp interface {
	GetMyTeam(ctx context.Context) (*models.Team, error)
}

type Service struct {
	app TeamApp
}

func NewService(app TeamApp) *Service {
	return &Service{app: app}
}

func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/team", s.HandleGetMyTeam)
}

// HandleGetMyTeam handles GET /api/team
func (s *Service) HandleGetMyTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.app.GetMyTeam(r.Context())
	if err != nil {
		httputil.WriteError(w, httputil.StatusFor(err), err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, team)
}
