package observable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startCell[T any](t *testing.T, buffer int) (*Cell[T], context.CancelFunc) {
	t.Helper()
	c := NewCell[T](buffer)
	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)
	t.Cleanup(cancel)
	return c, cancel
}

func TestCell_EmptyUntilFirstWrite(t *testing.T) {
	c, _ := startCell[int](t, 4)

	v, ok := c.Get()
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestCell_UpdateIsVisibleImmediately(t *testing.T) {
	c, _ := startCell[string](t, 4)

	require.NoError(t, c.Update(context.Background(), "Colombo Fort"))

	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, "Colombo Fort", v)
}

func TestCell_LastWriterWins(t *testing.T) {
	c, _ := startCell[int](t, 16)
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		require.NoError(t, c.Update(ctx, i))
	}

	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestCell_SubscribeReceivesUpdates(t *testing.T) {
	c, _ := startCell[int](t, 4)
	updates, release := c.Subscribe(4)
	defer release()

	require.NoError(t, c.Update(context.Background(), 42))

	select {
	case v := <-updates:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}
}

func TestCell_ReleaseIsIdempotent(t *testing.T) {
	c, _ := startCell[int](t, 4)
	_, release := c.Subscribe(1)

	release()
	assert.NotPanics(t, release)
}

func TestCell_WriteAfterStopReturnsErrClosed(t *testing.T) {
	c, cancel := startCell[int](t, 1)
	updates, _ := c.Subscribe(1)
	cancel()

	// subscriber channel is closed once Run exits
	_, open := <-updates
	assert.False(t, open)

	err := c.Update(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClosed)
}
