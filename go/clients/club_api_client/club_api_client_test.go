package club_api_client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/clubmanager/go/clients"
)

type staticToken string

func (s staticToken) Token() (string, error) {
	if s == "" {
		return "", errors.New("no token")
	}
	return string(s), nil
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *ClubApiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClubApiClient(srv.URL, staticToken(token))
}

const marketBody = `{
	"players": [
		{"_id": "p1", "name": "Alisson", "position": "Goalkeeper", "price": 1200000, "team": "t2", "isOnTransferList": true, "askingPrice": 1500000}
	],
	"myTeamPlayers": [
		{"_id": "p2", "name": "Saka", "position": "Attacker", "price": 900000, "team": {"_id": "t1", "name": "Gunners"}, "isOnTransferList": false, "askingPrice": 0}
	]
}`

func TestGetMarket(t *testing.T) {
	t.Run("attaches bearer token and decodes both rosters", func(t *testing.T) {
		var gotAuth, gotRequestID string
		client := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, MarketEndpoint, r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get("X-Request-ID")
			_, _ = io.WriteString(w, marketBody)
		})

		resp, err := client.GetMarket(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Bearer tok-123", gotAuth)
		assert.NotEmpty(t, gotRequestID)
		require.Len(t, *resp.Players, 1)
		require.Len(t, *resp.MyTeamPlayers, 1)

		pool := (*resp.Players)[0]
		assert.Equal(t, "t2", pool.Team.ID)
		assert.True(t, pool.AskingPrice.Equal(decimal.NewFromInt(1500000)))

		mine := (*resp.MyTeamPlayers)[0]
		assert.Equal(t, "t1", mine.Team.ID)
		assert.Equal(t, "Gunners", mine.Team.Name)
	})

	t.Run("omits authorization without a session", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, marketBody)
		})

		_, err := client.GetMarket(context.Background())
		require.NoError(t, err)
	})

	t.Run("missing roster is malformed", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"players": []}`)
		})

		_, err := client.GetMarket(context.Background())
		assert.ErrorIs(t, err, clients.ErrMalformedResponse)
	})

	t.Run("unknown position is malformed", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"players": [{"_id": "p", "name": "X", "position": "Striker", "price": 1}], "myTeamPlayers": []}`)
		})

		_, err := client.GetMarket(context.Background())
		assert.ErrorIs(t, err, clients.ErrMalformedResponse)
	})

	t.Run("invalid json is malformed", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>oops</html>`)
		})

		_, err := client.GetMarket(context.Background())
		assert.ErrorIs(t, err, clients.ErrMalformedResponse)
	})
}

func TestGetTransferList(t *testing.T) {
	t.Run("decodes populated listings", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, TransferListEndpoint, r.URL.Path)
			_, _ = io.WriteString(w, `{"transfers": [{
				"_id": "tr1",
				"player": {"_id": "p1", "name": "Rice", "position": "Midfielder", "price": 800000, "isOnTransferList": true, "askingPrice": 950000},
				"price": 950000,
				"fromTeam": {"_id": "t9", "name": "Hammers"},
				"createdAt": "2024-03-01T10:00:00.000Z"
			}]}`)
		})

		resp, err := client.GetTransferList(context.Background())
		require.NoError(t, err)
		require.Len(t, *resp.Transfers, 1)

		tr := (*resp.Transfers)[0]
		assert.Equal(t, "Hammers", tr.FromTeam.Name)
		assert.Equal(t, 2024, tr.CreatedAt.Year())
	})

	t.Run("listing without timestamp is malformed", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"transfers": [{
				"_id": "tr1",
				"player": {"_id": "p1", "name": "Rice", "position": "Midfielder", "price": 1},
				"price": 1,
				"fromTeam": "t9"
			}]}`)
		})

		_, err := client.GetTransferList(context.Background())
		assert.ErrorIs(t, err, clients.ErrMalformedResponse)
	})
}

func TestToggleTransferList(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, ToggleEndpoint, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"players": []}`)
	})

	_, err := client.ToggleTransferList(context.Background(), "p1", true, decimal.NewFromInt(150000))
	require.NoError(t, err)

	assert.Equal(t, "p1", got["playerId"])
	assert.Equal(t, true, got["isOnTransferList"])
	assert.Equal(t, float64(150000), got["askingPrice"])
}

func TestBuyPlayer(t *testing.T) {
	t.Run("sends price as a json number", func(t *testing.T) {
		var raw map[string]json.RawMessage
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			_, _ = io.WriteString(w, `{"players": [], "myTeamPlayers": []}`)
		})

		_, err := client.BuyPlayer(context.Background(), "p1", decimal.RequireFromString("142500.95"))
		require.NoError(t, err)
		assert.Equal(t, "142500.95", string(raw["price"]))
	})

	t.Run("surfaces server message", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message": "Insufficient budget"}`)
		})

		_, err := client.BuyPlayer(context.Background(), "p1", decimal.NewFromInt(1))

		var apiErr *clients.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Insufficient budget", apiErr.Message)

		msg, ok := clients.ServerMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "Insufficient budget", msg)
	})

	t.Run("unauthorized runs the handler", func(t *testing.T) {
		client := newTestClient(t, "stale", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"msg": "Token is not valid"}`)
		})
		called := false
		client.SetUnauthorizedHandler(func() { called = true })

		_, err := client.BuyPlayer(context.Background(), "p1", decimal.NewFromInt(1))
		require.Error(t, err)
		assert.True(t, called)
	})
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClubApiClient(url, nil)
	_, err := client.GetMyTeam(context.Background())
	assert.ErrorIs(t, err, clients.ErrTransport)
}

func TestAuthenticate(t *testing.T) {
	t.Run("register sends team name", func(t *testing.T) {
		var got AuthRequest
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = io.WriteString(w, `{"token": "jwt"}`)
		})

		resp, err := client.Authenticate(context.Background(), AuthRequest{Email: "a@b.c", Password: "pw", TeamName: "Gunners"})
		require.NoError(t, err)
		assert.Equal(t, "jwt", resp.Token)
		assert.Equal(t, "Gunners", got.TeamName)
	})

	t.Run("msg without token is returned", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"msg": "Invalid credentials"}`)
		})

		resp, err := client.Authenticate(context.Background(), AuthRequest{Email: "a@b.c", Password: "bad"})
		require.NoError(t, err)
		assert.Empty(t, resp.Token)
		assert.Equal(t, "Invalid credentials", resp.Msg)
	})

	t.Run("empty body is malformed", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{}`)
		})

		_, err := client.Authenticate(context.Background(), AuthRequest{Email: "a@b.c", Password: "pw"})
		assert.ErrorIs(t, err, clients.ErrMalformedResponse)
	})
}
