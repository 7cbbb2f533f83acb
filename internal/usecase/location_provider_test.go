package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/config"
	"github.com/nextbus-service/internal/domain"
	apperrors "github.com/nextbus-service/internal/pkg/errors"
	"github.com/nextbus-service/internal/usecase"
)

// MockGeocoder is a mock of GeocoderRepository
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error) {
	args := m.Called(ctx, coord)
	return args.String(0), args.Error(1)
}

func newRunningProvider(t *testing.T, geocoder *MockGeocoder, wait time.Duration) *usecase.LocationProvider {
	t.Helper()

	p := usecase.NewLocationProvider(geocoder, config.LocationConfig{
		PollInterval:  5 * time.Millisecond,
		WaitTimeout:   wait,
		UpdatesBuffer: 8,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return p
}

func TestLocationProvider_Authorization(t *testing.T) {
	ctx := context.Background()

	t.Run("request moves not_determined to requested", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)
		assert.Equal(t, domain.AuthorizationNotDetermined, p.Authorization())

		status, err := p.RequestAuthorization(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.AuthorizationRequested, status)
		assert.Equal(t, domain.AuthorizationRequested, p.Authorization())
	})

	t.Run("authorized starts updating", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)

		require.NoError(t, p.SetAuthorization(ctx, domain.AuthorizationAuthorized))
		assert.True(t, p.Updating())
		assert.Equal(t, domain.AuthorizationAuthorized, p.Authorization())

		// повторный запрос не откатывает выданное разрешение
		status, err := p.RequestAuthorization(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.AuthorizationAuthorized, status)
	})

	t.Run("denied and restricted stop updating", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)

		for _, status := range []domain.AuthorizationStatus{domain.AuthorizationDenied, domain.AuthorizationRestricted} {
			p.StartUpdating()
			require.NoError(t, p.SetAuthorization(ctx, status))
			assert.False(t, p.Updating())
			assert.Equal(t, status, p.Authorization())
		}
	})

	t.Run("not_determined re-requests", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)

		require.NoError(t, p.SetAuthorization(ctx, domain.AuthorizationNotDetermined))
		assert.Equal(t, domain.AuthorizationRequested, p.Authorization())
	})
}

func TestLocationProvider_ReportFix(t *testing.T) {
	ctx := context.Background()

	t.Run("dropped while updating is off", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)

		accepted, err := p.ReportFix(ctx, domain.Coordinate{Lat: 6.9, Lng: 79.8})
		require.NoError(t, err)
		assert.False(t, accepted)

		_, ok := p.LastKnownCoordinate()
		assert.False(t, ok)
	})

	t.Run("last writer wins", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)
		p.StartUpdating()

		for _, c := range []domain.Coordinate{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 6.9355, Lng: 79.8428}} {
			accepted, err := p.ReportFix(ctx, c)
			require.NoError(t, err)
			assert.True(t, accepted)
		}

		coord, ok := p.LastKnownCoordinate()
		require.True(t, ok)
		assert.Equal(t, domain.Coordinate{Lat: 6.9355, Lng: 79.8428}, coord)
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)
		p.StartUpdating()

		_, err := p.ReportFix(ctx, domain.Coordinate{Lat: 91, Lng: 0})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	})

	t.Run("stop updating drops later fixes", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)
		p.StartUpdating()
		_, err := p.ReportFix(ctx, domain.Coordinate{Lat: 1, Lng: 1})
		require.NoError(t, err)

		p.StopUpdating()
		accepted, err := p.ReportFix(ctx, domain.Coordinate{Lat: 2, Lng: 2})
		require.NoError(t, err)
		assert.False(t, accepted)

		coord, _ := p.LastKnownCoordinate()
		assert.Equal(t, domain.Coordinate{Lat: 1, Lng: 1}, coord)
	})
}

func TestLocationProvider_FetchAddress(t *testing.T) {
	ctx := context.Background()
	colombo := domain.Coordinate{Lat: 6.9355, Lng: 79.8428}

	t.Run("no coordinate", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		p := newRunningProvider(t, geocoder, time.Second)

		address, ok := p.FetchAddress(ctx, nil)
		assert.False(t, ok)
		assert.Empty(t, address)
		geocoder.AssertNotCalled(t, "ReverseGeocode", mock.Anything, mock.Anything)
	})

	t.Run("explicit coordinate", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("ReverseGeocode", mock.Anything, colombo).Return("Fort, Colombo, Western, Sri Lanka", nil)
		p := newRunningProvider(t, geocoder, time.Second)

		address, ok := p.FetchAddress(ctx, &colombo)
		require.True(t, ok)
		assert.Equal(t, "Fort, Colombo, Western, Sri Lanka", address)

		current, ok := p.CurrentAddress()
		assert.True(t, ok)
		assert.Equal(t, address, current)
	})

	t.Run("last known coordinate", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("ReverseGeocode", mock.Anything, colombo).Return("Colombo", nil)
		p := newRunningProvider(t, geocoder, time.Second)
		p.StartUpdating()
		_, err := p.ReportFix(ctx, colombo)
		require.NoError(t, err)

		address, ok := p.FetchAddress(ctx, nil)
		assert.True(t, ok)
		assert.Equal(t, "Colombo", address)
		geocoder.AssertExpectations(t)
	})

	t.Run("geocoder failure keeps previous address", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("ReverseGeocode", mock.Anything, colombo).Return("Colombo", nil).Once()
		geocoder.On("ReverseGeocode", mock.Anything, colombo).Return("", errors.New("timeout")).Once()
		p := newRunningProvider(t, geocoder, time.Second)

		_, ok := p.FetchAddress(ctx, &colombo)
		require.True(t, ok)

		address, ok := p.FetchAddress(ctx, &colombo)
		assert.False(t, ok)
		assert.Empty(t, address)

		current, ok := p.CurrentAddress()
		assert.True(t, ok)
		assert.Equal(t, "Colombo", current)
	})

	t.Run("empty result is unavailable", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("ReverseGeocode", mock.Anything, colombo).Return("", nil)
		p := newRunningProvider(t, geocoder, time.Second)

		_, ok := p.FetchAddress(ctx, &colombo)
		assert.False(t, ok)

		_, ok = p.CurrentAddress()
		assert.False(t, ok)
	})
}

func TestLocationProvider_WaitForCoordinate(t *testing.T) {
	t.Run("returns immediately when known", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, time.Second)
		p.StartUpdating()
		_, err := p.ReportFix(context.Background(), domain.Coordinate{Lat: 1, Lng: 2})
		require.NoError(t, err)

		coord, err := p.WaitForCoordinate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.Coordinate{Lat: 1, Lng: 2}, coord)
	})

	t.Run("fix arrives while waiting", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, 2*time.Second)
		p.StartUpdating()

		go func() {
			time.Sleep(30 * time.Millisecond)
			_, _ = p.ReportFix(context.Background(), domain.Coordinate{Lat: 7.29, Lng: 80.63})
		}()

		coord, err := p.WaitForCoordinate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.Coordinate{Lat: 7.29, Lng: 80.63}, coord)
	})

	t.Run("times out", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, 40*time.Millisecond)

		_, err := p.WaitForCoordinate(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrLocationUnavailable)
	})

	t.Run("cancelled", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, 5*time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := p.WaitForCoordinate(ctx)
		assert.ErrorIs(t, err, apperrors.ErrLocationUnavailable)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		p := newRunningProvider(t, &MockGeocoder{}, 5*time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := p.LocateAndResolve(ctx)
		assert.ErrorIs(t, err, apperrors.ErrLocationUnavailable)
	})
}

func TestLocationProvider_LocateAndResolve(t *testing.T) {
	colombo := domain.Coordinate{Lat: 6.9355, Lng: 79.8428}
	geocoder := &MockGeocoder{}
	geocoder.On("ReverseGeocode", mock.Anything, colombo).Return("Colombo", nil)
	p := newRunningProvider(t, geocoder, time.Second)
	p.StartUpdating()
	_, err := p.ReportFix(context.Background(), colombo)
	require.NoError(t, err)

	resolved, err := p.LocateAndResolve(context.Background())
	require.NoError(t, err)
	assert.True(t, resolved.Available)
	assert.Equal(t, "Colombo", resolved.Address)
	assert.Equal(t, &colombo, resolved.Coordinate)

	snapshot := p.Snapshot()
	assert.Equal(t, "Colombo", snapshot.Address)
	assert.True(t, snapshot.AddressAvailable)
	assert.True(t, snapshot.Updating)
	assert.Equal(t, string(domain.AuthorizationNotDetermined), snapshot.Authorization)
}

func TestLocationProvider_Subscribe(t *testing.T) {
	p := newRunningProvider(t, &MockGeocoder{}, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	events := p.Subscribe(ctx)

	p.StartUpdating()
	_, err := p.ReportFix(context.Background(), domain.Coordinate{Lat: 1, Lng: 2})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, domain.LocationEventCoordinate, event.Type)
		require.NotNil(t, event.Coordinate)
		assert.Equal(t, domain.Coordinate{Lat: 1, Lng: 2}, *event.Coordinate)
		assert.False(t, event.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no coordinate event")
	}

	require.NoError(t, p.SetAuthorization(context.Background(), domain.AuthorizationDenied))
	select {
	case event := <-events:
		assert.Equal(t, domain.LocationEventAuthorization, event.Type)
		assert.Equal(t, domain.AuthorizationDenied, event.Authorization)
	case <-time.After(time.Second):
		t.Fatal("no authorization event")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
