package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/pkg/errors"
	"github.com/nextbus-service/internal/repository/postgres/testhelpers"
)

func newSchedule(route string) *domain.BusSchedule {
	rating := 4.5
	return &domain.BusSchedule{
		Timestamp: time.Date(2025, 10, 23, 7, 30, 0, 0, time.UTC),
		Route:     route,
		Place:     "Colombo Fort",
		Location:  domain.PickupLocation{"lat": "6.9355", "lng": "79.8428", "address": "Colombo Fort, Sri Lanka"},
		Seating:   domain.ParseSeating("Available"),
		Bus: &domain.Bus{
			Type:   domain.ParseProvider("sltb"),
			Tier:   domain.ParseTier("x2"),
			Rating: &rating,
			Plate:  "NA-6969",
		},
	}
}

func TestScheduleRepository_InsertAndListInOrder(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()
	repo := testhelpers.NewScheduleRepositoryForTest(t, tdb)
	ctx := context.Background()

	const n = 5
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		s := newSchedule(fmt.Sprintf("route-%d", i))
		require.NoError(t, repo.Insert(ctx, s))
		ids = append(ids, s.ID)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
	for i, s := range list {
		assert.Equal(t, ids[i], s.ID)
		assert.Equal(t, fmt.Sprintf("route-%d", i), s.Route)
	}

	first := list[0]
	assert.Equal(t, domain.TierLuxury, first.Bus.Tier.Kind())
	assert.Equal(t, domain.ProviderSLTB, first.Bus.Type.Kind())
	assert.Equal(t, "NA-6969", first.Bus.Plate)
	require.NotNil(t, first.Bus.Rating)
	assert.Equal(t, 4.5, *first.Bus.Rating)
	assert.True(t, first.Location.MapEligible())
	assert.Equal(t, "Available", first.Seating.Label())
}

func TestScheduleRepository_OptionalFieldsStayEmpty(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()
	repo := testhelpers.NewScheduleRepositoryForTest(t, tdb)
	ctx := context.Background()

	s := &domain.BusSchedule{Timestamp: time.Now().UTC(), Route: "138", Bus: &domain.Bus{}}
	require.NoError(t, repo.Insert(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Location)
	assert.False(t, got.Seating.IsSet())
	assert.False(t, got.Bus.Tier.IsSet())
	assert.Nil(t, got.Bus.Rating)
	assert.Equal(t, "", got.Place)
}

func TestScheduleRepository_DeleteRemovesOnlyTarget(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()
	repo := testhelpers.NewScheduleRepositoryForTest(t, tdb)
	ctx := context.Background()

	a, b, c := newSchedule("a"), newSchedule("b"), newSchedule("c")
	for _, s := range []*domain.BusSchedule{a, b, c} {
		require.NoError(t, repo.Insert(ctx, s))
	}

	require.NoError(t, repo.Delete(ctx, b.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	var busCount int
	require.NoError(t, tdb.DB.GetContext(ctx, &busCount, "SELECT COUNT(*) FROM buses"))
	assert.Equal(t, 2, busCount)

	err = repo.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, errors.ErrScheduleNotFound)
}

func TestScheduleRepository_RejectsBlankRoute(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()
	repo := testhelpers.NewScheduleRepositoryForTest(t, tdb)
	ctx := context.Background()

	err := repo.Insert(ctx, newSchedule("   "))
	assert.ErrorIs(t, err, errors.ErrRouteRequired)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScheduleRepository_GetByIDNotFound(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()
	repo := testhelpers.NewScheduleRepositoryForTest(t, tdb)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errors.ErrScheduleNotFound)
}
