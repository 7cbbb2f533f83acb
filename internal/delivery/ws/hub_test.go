package ws_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/delivery/ws"
)

func TestHub_BroadcastAndUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(zap.NewNop())
	go hub.Run(ctx)

	a, b := ws.NewClient("a", 4), ws.NewClient("b", 4)
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte("hello"))
	for _, c := range []*ws.Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "hello", string(msg))
		case <-time.After(time.Second):
			t.Fatalf("client %s got nothing", c.ID)
		}
	}

	hub.Unregister(a)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	_, open := <-a.Send
	assert.False(t, open)
	assert.False(t, a.Offer([]byte("late")))
}

func TestHub_SlowClientDropsMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(zap.NewNop())
	go hub.Run(ctx)

	slow := ws.NewClient("slow", 1)
	hub.Register(slow)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte("1"))
	hub.Broadcast([]byte("2"))
	require.Eventually(t, func() bool { return len(slow.Send) == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, "1", string(<-slow.Send))
}

func TestHub_StopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub(zap.NewNop())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := ws.NewClient("c", 1)
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	_, open := <-c.Send
	assert.False(t, open)

	// регистрация после остановки не блокируется
	late := ws.NewClient("late", 1)
	hub.Register(late)
	_, open = <-late.Send
	assert.False(t, open)
}
