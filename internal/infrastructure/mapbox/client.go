package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/nextbus-service/internal/config"
	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/domain/repository"
)

// geocodingResponse - нужная часть ответа Geocoding API v5
type geocodingResponse struct {
	Type     string `json:"type"`
	Features []struct {
		ID        string    `json:"id"`
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"`
	} `json:"features"`
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	language    string
	logger      *zap.Logger
}

// NewMapboxClient создает клиент обратного геокодирования Mapbox
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		language:    cfg.Language,
		logger:      logger,
	}
}

// ReverseGeocode возвращает place_name ближайшего объекта или "" если ничего не найдено
func (c *client) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error) {
	query := url.Values{}
	query.Set("access_token", c.accessToken)
	query.Set("limit", "1")
	if c.language != "" {
		query.Set("language", c.language)
	}

	// Mapbox ожидает порядок lon,lat
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%f,%f.json?%s",
		c.baseURL, coord.Lng, coord.Lat, query.Encode())

	c.logger.Debug("Calling Mapbox Geocoding API",
		zap.Float64("lat", coord.Lat),
		zap.Float64("lng", coord.Lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return "", fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var geoResp geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(geoResp.Features) == 0 {
		c.logger.Debug("Mapbox returned no features")
		return "", nil
	}

	return geoResp.Features[0].PlaceName, nil
}
