package ws_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/delivery/ws"
	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/usecase/dto"
)

// fakeSource - источник событий, управляемый тестом
type fakeSource struct {
	events chan domain.LocationEvent
}

func (s *fakeSource) Snapshot() *dto.LocationResponse {
	return &dto.LocationResponse{Authorization: "authorized", Updating: true}
}

func (s *fakeSource) Subscribe(ctx context.Context) <-chan domain.LocationEvent {
	out := make(chan domain.LocationEvent)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-s.events:
				out <- e
			}
		}
	}()
	return out
}

type received struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) received {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, data, err := conn.Read(readCtx)
	require.NoError(t, err)

	var msg received
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestLocationFeed_SnapshotThenEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := zap.NewNop()
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	source := &fakeSource{events: make(chan domain.LocationEvent)}
	feed := ws.NewLocationFeed(hub, source, logger)
	go feed.Pump(ctx)

	srv := httptest.NewServer(ws.NewHandler(feed))
	defer srv.Close()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/location", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	msg := readMessage(t, ctx, conn)
	assert.Equal(t, "snapshot", msg.Type)
	assert.Contains(t, string(msg.Payload), `"authorization":"authorized"`)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	source.events <- domain.LocationEvent{
		Type:       domain.LocationEventCoordinate,
		Coordinate: &domain.Coordinate{Lat: 6.9355, Lng: 79.8428},
		At:         time.Now(),
	}

	msg = readMessage(t, ctx, conn)
	assert.Equal(t, "event", msg.Type)
	var event domain.LocationEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, domain.LocationEventCoordinate, event.Type)
	require.NotNil(t, event.Coordinate)
	assert.Equal(t, 6.9355, event.Coordinate.Lat)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(`{"type":"ping"}`)))
	msg = readMessage(t, ctx, conn)
	assert.Equal(t, "pong", msg.Type)
}

func TestLocationFeed_ClientDisconnectUnregisters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := zap.NewNop()
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	feed := ws.NewLocationFeed(hub, &fakeSource{events: make(chan domain.LocationEvent)}, logger)
	srv := httptest.NewServer(ws.NewHandler(feed))
	defer srv.Close()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/location", nil)
	require.NoError(t, err)
	readMessage(t, ctx, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
