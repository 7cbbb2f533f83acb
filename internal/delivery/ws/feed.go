package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/usecase/dto"
)

const (
	clientBuffer = 64
	pingInterval = 30 * time.Second
	writeTimeout = 5 * time.Second
)

// LocationSource - провайдер локации с точки зрения фида
type LocationSource interface {
	Snapshot() *dto.LocationResponse
	Subscribe(ctx context.Context) <-chan domain.LocationEvent
}

// Message - конверт сообщений фида: snapshot, event, pong
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type inbound struct {
	Type string `json:"type"`
}

// LocationFeed - /ws/location: при подключении снимок состояния,
// дальше каждое изменение провайдера
type LocationFeed struct {
	hub    *Hub
	source LocationSource
	logger *zap.Logger
}

func NewLocationFeed(hub *Hub, source LocationSource, logger *zap.Logger) *LocationFeed {
	return &LocationFeed{
		hub:    hub,
		source: source,
		logger: logger,
	}
}

// Pump пересылает события провайдера в хаб до отмены ctx
func (f *LocationFeed) Pump(ctx context.Context) {
	events := f.source.Subscribe(ctx)
	for event := range events {
		data, err := json.Marshal(Message{Type: "event", Payload: event})
		if err != nil {
			f.logger.Warn("Failed to encode location event", zap.Error(err))
			continue
		}
		f.hub.Broadcast(data)
	}
}

func (f *LocationFeed) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		f.logger.Warn("WebSocket accept failed", zap.Error(err))
		return
	}

	client := NewClient(uuid.NewString(), clientBuffer)
	f.send(client, Message{Type: "snapshot", Payload: f.source.Snapshot()})
	f.hub.Register(client)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go f.writeLoop(ctx, conn, client)

	f.readLoop(ctx, conn, client)
}

func (f *LocationFeed) readLoop(ctx context.Context, conn *websocket.Conn, client *Client) {
	defer func() {
		f.hub.Unregister(client)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				f.logger.Debug("WebSocket read error", zap.String("client_id", client.ID), zap.Error(err))
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "ping":
			f.send(client, Message{Type: "pong"})
		case "snapshot":
			f.send(client, Message{Type: "snapshot", Payload: f.source.Snapshot()})
		}
	}
}

func (f *LocationFeed) writeLoop(ctx context.Context, conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-client.Send:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// send - адресное сообщение, не блокируется
func (f *LocationFeed) send(client *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	if !client.Offer(data) {
		f.logger.Debug("Live client buffer full", zap.String("client_id", client.ID))
	}
}
