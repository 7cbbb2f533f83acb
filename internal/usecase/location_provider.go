package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nextbus-service/internal/config"
	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/pkg/errors"
	"github.com/nextbus-service/internal/pkg/observable"
	"github.com/nextbus-service/internal/pkg/utils"
	"github.com/nextbus-service/internal/usecase/dto"
)

// LocationProvider - источник текущей позиции устройства и её адреса.
// Координата, адрес и статус разрешения живут в observable ячейках,
// у каждой один писатель (Run), читатели получают снимки.
type LocationProvider struct {
	geocoder repository.GeocoderRepository
	logger   *zap.Logger

	coordinate    *observable.Cell[domain.Coordinate]
	address       *observable.Cell[string]
	authorization *observable.Cell[domain.AuthorizationStatus]

	mu       sync.RWMutex
	updating bool

	pollInterval  time.Duration
	waitTimeout   time.Duration
	updatesBuffer int
	now           func() time.Time
}

// NewLocationProvider - ячейки начинают работать только после Run
func NewLocationProvider(
	geocoder repository.GeocoderRepository,
	cfg config.LocationConfig,
	logger *zap.Logger,
) *LocationProvider {
	return &LocationProvider{
		geocoder:      geocoder,
		logger:        logger,
		coordinate:    observable.NewCell[domain.Coordinate](cfg.UpdatesBuffer),
		address:       observable.NewCell[string](cfg.UpdatesBuffer),
		authorization: observable.NewCell[domain.AuthorizationStatus](cfg.UpdatesBuffer),
		pollInterval:  cfg.PollInterval,
		waitTimeout:   cfg.WaitTimeout,
		updatesBuffer: cfg.UpdatesBuffer,
		now:           time.Now,
	}
}

// Run запускает писателей ячеек и блокируется до отмены ctx
func (p *LocationProvider) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); p.coordinate.Run(ctx) }()
	go func() { defer wg.Done(); p.address.Run(ctx) }()
	go func() { defer wg.Done(); p.authorization.Run(ctx) }()

	p.logger.Info("Location provider started")
	wg.Wait()
	p.logger.Info("Location provider stopped")
}

// Authorization - текущий статус разрешения
func (p *LocationProvider) Authorization() domain.AuthorizationStatus {
	status, ok := p.authorization.Get()
	if !ok {
		return domain.AuthorizationNotDetermined
	}
	return status
}

// RequestAuthorization не блокируется: статус становится requested,
// ответ устройства придёт позже через SetAuthorization
func (p *LocationProvider) RequestAuthorization(ctx context.Context) (domain.AuthorizationStatus, error) {
	current := p.Authorization()
	if current != domain.AuthorizationNotDetermined {
		return current, nil
	}

	if err := p.authorization.Update(ctx, domain.AuthorizationRequested); err != nil {
		return current, err
	}
	p.logger.Info("Location authorization requested")
	return domain.AuthorizationRequested, nil
}

// SetAuthorization - результат системного диалога разрешения
func (p *LocationProvider) SetAuthorization(ctx context.Context, status domain.AuthorizationStatus) error {
	if err := p.authorization.Update(ctx, status); err != nil {
		return err
	}

	switch status {
	case domain.AuthorizationAuthorized:
		p.StartUpdating()
	case domain.AuthorizationDenied, domain.AuthorizationRestricted:
		p.StopUpdating()
		p.logger.Warn("Location access not granted", zap.String("status", string(status)))
	case domain.AuthorizationNotDetermined:
		if _, err := p.RequestAuthorization(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (p *LocationProvider) StartUpdating() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.updating {
		p.logger.Debug("Location updating started")
	}
	p.updating = true
}

func (p *LocationProvider) StopUpdating() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.updating {
		p.logger.Debug("Location updating stopped")
	}
	p.updating = false
}

func (p *LocationProvider) Updating() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updating
}

// ReportFix - колбэк нового фикса. Пока обновления выключены фикс
// отбрасывается (accepted=false). Побеждает последняя запись.
func (p *LocationProvider) ReportFix(ctx context.Context, coord domain.Coordinate) (bool, error) {
	if !utils.ValidateCoordinates(coord.Lat, coord.Lng) {
		return false, errors.ErrInvalidCoordinates
	}
	if !p.Updating() {
		p.logger.Debug("Location fix dropped, updating is off",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lng", coord.Lng))
		return false, nil
	}

	if err := p.coordinate.Update(ctx, coord); err != nil {
		return false, err
	}
	return true, nil
}

// LastKnownCoordinate - последняя координата, ok=false если фиксов ещё не было
func (p *LocationProvider) LastKnownCoordinate() (domain.Coordinate, bool) {
	return p.coordinate.Get()
}

// CurrentAddress - последний успешно определённый адрес
func (p *LocationProvider) CurrentAddress() (string, bool) {
	address, ok := p.address.Get()
	if !ok || address == "" {
		return "", false
	}
	return address, true
}

// FetchAddress - обратное геокодирование coord, либо последней известной
// координаты если coord == nil. Ошибки только логируются, наружу
// отдаётся available=false.
func (p *LocationProvider) FetchAddress(ctx context.Context, coord *domain.Coordinate) (string, bool) {
	target, ok := domain.Coordinate{}, false
	if coord != nil {
		target, ok = *coord, true
	} else {
		target, ok = p.LastKnownCoordinate()
	}
	if !ok {
		p.logger.Debug("No coordinate to resolve address for")
		return "", false
	}

	address, err := p.geocoder.ReverseGeocode(ctx, target)
	if err != nil {
		p.logger.Warn("Reverse geocoding failed",
			zap.Float64("lat", target.Lat),
			zap.Float64("lng", target.Lng),
			zap.Error(err))
		return "", false
	}
	if address == "" {
		p.logger.Debug("Reverse geocoding returned no address",
			zap.Float64("lat", target.Lat),
			zap.Float64("lng", target.Lng))
		return "", false
	}

	if err := p.address.Update(ctx, address); err != nil {
		p.logger.Warn("Failed to store current address", zap.Error(err))
	}
	return address, true
}

// WaitForCoordinate опрашивает ячейку каждые pollInterval, пока не появится
// координата, не истечёт waitTimeout или не отменят ctx
func (p *LocationProvider) WaitForCoordinate(ctx context.Context) (domain.Coordinate, error) {
	if coord, ok := p.LastKnownCoordinate(); ok {
		return coord, nil
	}

	timeout := time.NewTimer(p.waitTimeout)
	defer timeout.Stop()
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// отмена запроса - та же недоступность, а не 500
			p.logger.Debug("Wait for coordinate cancelled", zap.Error(ctx.Err()))
			return domain.Coordinate{}, errors.ErrLocationUnavailable
		case <-timeout.C:
			return domain.Coordinate{}, errors.ErrLocationUnavailable
		case <-ticker.C:
			if coord, ok := p.LastKnownCoordinate(); ok {
				return coord, nil
			}
		}
	}
}

// LocateAndResolve - дождаться координаты и определить её адрес
func (p *LocationProvider) LocateAndResolve(ctx context.Context) (*dto.AddressResponse, error) {
	coord, err := p.WaitForCoordinate(ctx)
	if err != nil {
		return nil, err
	}

	address, ok := p.FetchAddress(ctx, &coord)
	return &dto.AddressResponse{
		Address:    address,
		Available:  ok,
		Coordinate: &coord,
	}, nil
}

// Snapshot - состояние провайдера для GET /location
func (p *LocationProvider) Snapshot() *dto.LocationResponse {
	resp := &dto.LocationResponse{
		Authorization: string(p.Authorization()),
		Updating:      p.Updating(),
	}
	if coord, ok := p.LastKnownCoordinate(); ok {
		resp.Coordinate = &coord
	}
	resp.Address, resp.AddressAvailable = p.CurrentAddress()
	return resp
}

// Subscribe - поток изменений для live фида. Канал закрывается при отмене
// ctx или остановке провайдера; медленный читатель теряет события.
func (p *LocationProvider) Subscribe(ctx context.Context) <-chan domain.LocationEvent {
	coords, unsubCoords := p.coordinate.Subscribe(p.updatesBuffer)
	addresses, unsubAddresses := p.address.Subscribe(p.updatesBuffer)
	statuses, unsubStatuses := p.authorization.Subscribe(p.updatesBuffer)

	out := make(chan domain.LocationEvent, p.updatesBuffer)

	go func() {
		defer close(out)
		defer unsubStatuses()
		defer unsubAddresses()
		defer unsubCoords()

		for {
			var event domain.LocationEvent
			select {
			case <-ctx.Done():
				return
			case coord, ok := <-coords:
				if !ok {
					return
				}
				event = domain.LocationEvent{Type: domain.LocationEventCoordinate, Coordinate: &coord}
			case address, ok := <-addresses:
				if !ok {
					return
				}
				event = domain.LocationEvent{Type: domain.LocationEventAddress, Address: address}
			case status, ok := <-statuses:
				if !ok {
					return
				}
				event = domain.LocationEvent{Type: domain.LocationEventAuthorization, Authorization: status}
			}
			event.At = p.now().UTC()

			select {
			case out <- event:
			default:
			}
		}
	}()

	return out
}
