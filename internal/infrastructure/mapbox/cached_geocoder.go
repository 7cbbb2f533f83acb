package mapbox

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/config"
	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/pkg/utils"
)

// cachedGeocoder - двухуровневый кеш поверх геокодера:
// go-cache в процессе и Redis (если задан) между инстансами.
// Координаты округляются, так что соседние фиксы попадают в один ключ.
type cachedGeocoder struct {
	next      repository.GeocoderRepository
	local     *gocache.Cache
	shared    repository.CacheRepository
	sharedTTL time.Duration
	precision int
	logger    *zap.Logger
}

// NewCachedGeocoder - shared может быть nil, тогда используется только локальный кеш
func NewCachedGeocoder(
	next repository.GeocoderRepository,
	shared repository.CacheRepository,
	cfg config.CacheConfig,
	logger *zap.Logger,
) repository.GeocoderRepository {
	return &cachedGeocoder{
		next:      next,
		local:     gocache.New(cfg.AddressLocalTTL, cfg.AddressLocalCleanup),
		shared:    shared,
		sharedTTL: cfg.AddressCacheTTL,
		precision: cfg.AddressCoordPrecision,
		logger:    logger,
	}
}

func (g *cachedGeocoder) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error) {
	key := utils.RoundedKey("geocode", coord.Lat, coord.Lng, g.precision)

	if v, ok := g.local.Get(key); ok {
		return v.(string), nil
	}

	if g.shared != nil {
		cached, err := g.shared.Get(ctx, key)
		if err != nil {
			// Redis недоступен - идём в геокодер напрямую
			g.logger.Warn("Address cache read failed", zap.String("key", key), zap.Error(err))
		} else if cached != nil {
			address := string(cached)
			g.local.SetDefault(key, address)
			return address, nil
		}
	}

	address, err := g.next.ReverseGeocode(ctx, coord)
	if err != nil || address == "" {
		return address, err
	}

	g.local.SetDefault(key, address)
	if g.shared != nil {
		if err := g.shared.Set(ctx, key, []byte(address), g.sharedTTL); err != nil {
			g.logger.Warn("Address cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return address, nil
}
