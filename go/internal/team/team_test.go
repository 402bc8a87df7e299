package team

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/clubmanager/go/clients/club_api_client"
	"github.com/mcdev12/clubmanager/go/internal/notify"
)

func newTestApp(t *testing.T, handler http.HandlerFunc, notifier notify.Notifier) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := club_api_client.NewClubApiClient(srv.URL, nil)
	return NewApp(NewRepository(client), notifier, nil)
}

func TestApp_GetMyTeam(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, club_api_client.MyTeamEndpoint, r.URL.Path)
		_, _ = io.WriteString(w, `{
			"name": "Gunners",
			"budget": 4250000.5,
			"players": [
				{"_id":"p1","name":"Saka","position":"Attacker","price":900000,"team":"t1","isOnTransferList":false,"askingPrice":0}
			]
		}`)
	}, nil)

	team, err := app.GetMyTeam(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Gunners", team.Name)
	assert.True(t, team.Budget.Equal(decimal.RequireFromString("4250000.5")))
	require.Len(t, team.Players, 1)
	assert.Equal(t, "Saka", team.Players[0].Name)
}

func TestApp_GetMyTeamFailureNotifies(t *testing.T) {
	var got []notify.Notification
	sink := notify.NotifierFunc(func(_ context.Context, n notify.Notification) {
		got = append(got, n)
	})

	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"msg":"Team not found"}`)
	}, sink)

	_, err := app.GetMyTeam(context.Background())
	require.Error(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, notify.LevelError, got[0].Level)
	assert.Equal(t, "Team not found", got[0].Message)
}

func TestService_GetMyTeam(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"name":"Gunners","budget":100,"players":[]}`)
		}, nil)
		mux := http.NewServeMux()
		NewService(app).RegisterRoutes(mux)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/team", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Gunners"`)
	})

	t.Run("missing roster is a bad gateway", func(t *testing.T) {
		app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"name":"Gunners","budget":100}`)
		}, nil)
		mux := http.NewServeMux()
		NewService(app).RegisterRoutes(mux)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/team", nil))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
