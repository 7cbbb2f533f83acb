package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/pkg/errors"
	"github.com/nextbus-service/internal/repository/memory"
)

func TestScheduleRepository_InsertNListsInInsertionOrder(t *testing.T) {
	repo := memory.NewScheduleRepository(zap.NewNop())
	ctx := context.Background()

	const n = 25
	var ids []uuid.UUID
	for i := 0; i < n; i++ {
		s := &domain.BusSchedule{Timestamp: time.Now(), Route: fmt.Sprintf("%d", 100+i), Bus: &domain.Bus{}}
		require.NoError(t, repo.Insert(ctx, s))
		ids = append(ids, s.ID)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
	for i := range list {
		assert.Equal(t, ids[i], list[i].ID)
	}
}

func TestScheduleRepository_NoDeduplication(t *testing.T) {
	repo := memory.NewScheduleRepository(zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Insert(ctx, &domain.BusSchedule{Route: "138"}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestScheduleRepository_DeleteKeepsOthers(t *testing.T) {
	repo := memory.NewScheduleRepository(zap.NewNop())
	ctx := context.Background()

	a := &domain.BusSchedule{Route: "a"}
	b := &domain.BusSchedule{Route: "b"}
	c := &domain.BusSchedule{Route: "c"}
	for _, s := range []*domain.BusSchedule{a, b, c} {
		require.NoError(t, repo.Insert(ctx, s))
	}

	require.NoError(t, repo.Delete(ctx, b.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Route)
	assert.Equal(t, "c", list[1].Route)

	assert.ErrorIs(t, repo.Delete(ctx, b.ID), errors.ErrScheduleNotFound)
	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, errors.ErrScheduleNotFound)
}

func TestScheduleRepository_RejectsBlankRoutes(t *testing.T) {
	repo := memory.NewScheduleRepository(zap.NewNop())
	ctx := context.Background()

	for _, route := range []string{"", " ", "\t", "\n  "} {
		err := repo.Insert(ctx, &domain.BusSchedule{Route: route})
		assert.ErrorIs(t, err, errors.ErrRouteRequired)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScheduleRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewScheduleRepository(zap.NewNop())
	ctx := context.Background()

	s := &domain.BusSchedule{Route: "138", Location: domain.PickupLocation{"address": "Kandy"}}
	require.NoError(t, repo.Insert(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	got.Route = "changed"
	got.Location["address"] = "changed"

	again, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "138", again.Route)
	assert.Equal(t, "Kandy", again.Location.Address())
}
