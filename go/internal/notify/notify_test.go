package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var at = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

type recorder struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func TestFanout(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	f := Fanout{a, nil, b}

	n := New(LevelSuccess, "Player bought successfully!", at)
	f.Notify(context.Background(), n)

	require.Len(t, a.seen, 1)
	require.Len(t, b.seen, 1)
	assert.Equal(t, n.ID, a.seen[0].ID)
	assert.Equal(t, "Player bought successfully!", b.seen[0].Message)
}

func TestNew(t *testing.T) {
	local := time.FixedZone("CET", 3600)
	n := New(LevelError, "boom", at.In(local))

	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, time.UTC, n.CreatedAt.Location())
	assert.True(t, n.CreatedAt.Equal(at))
	assert.NotEqual(t, n.ID, New(LevelError, "boom", at).ID)
}

type fakeNATS struct {
	msgs   []*nats.Msg
	err    error
	closed bool
}

func (f *fakeNATS) PublishMsg(m *nats.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func (f *fakeNATS) Close() { f.closed = true }

func TestNATSPublisher(t *testing.T) {
	t.Run("publishes on level subject", func(t *testing.T) {
		nc := &fakeNATS{}
		p := newNATSPublisher(nc, "clubmanager.notifications")

		n := New(LevelError, "Failed to update transfer list", at)
		p.Notify(context.Background(), n)

		require.Len(t, nc.msgs, 1)
		msg := nc.msgs[0]
		assert.Equal(t, "clubmanager.notifications.error", msg.Subject)
		assert.Equal(t, n.ID.String(), msg.Header.Get("Notification-ID"))

		var decoded Notification
		require.NoError(t, json.Unmarshal(msg.Data, &decoded))
		assert.Equal(t, n.Message, decoded.Message)

		require.NoError(t, p.Close())
		assert.True(t, nc.closed)
	})

	t.Run("publish failure is swallowed", func(t *testing.T) {
		nc := &fakeNATS{err: errors.New("nats: connection closed")}
		p := newNATSPublisher(nc, "x")

		assert.NotPanics(t, func() {
			p.Notify(context.Background(), New(LevelSuccess, "ok", at))
		})
	})
}

func TestHub_BroadcastsToClients(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(DefaultHubConfig())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Start(ctx)
		close(done)
	}()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleConnection))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)

	sent := New(LevelSuccess, "Player added to transfer list", at)
	hub.Notify(context.Background(), sent)

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var got Notification
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, sent.Message, got.Message)

	cancel()
	<-done

	// the hub sends a close frame on shutdown
	_, _, err = client.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.ConnectionCount())
}
