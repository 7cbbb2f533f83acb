package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.Location.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Location.WaitTimeout)
	assert.Equal(t, "sltb", cfg.Composer.DefaultType)
	assert.Equal(t, "x1", cfg.Composer.DefaultTier)
	assert.Equal(t, "Available", cfg.Composer.DefaultSeating)
	assert.Equal(t, "https://api.mapbox.com", cfg.Mapbox.BaseURL)
	assert.Equal(t, 20, cfg.Worker.BatchSize)
}

func TestConfig_ApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Store:    StoreConfig{Driver: "memory"},
		Location: LocationConfig{WaitTimeout: 5 * time.Second},
		Composer: ComposerConfig{DefaultType: "private"},
	}
	cfg.applyDefaults()

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Location.WaitTimeout)
	assert.Equal(t, "private", cfg.Composer.DefaultType)
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 9000},
		Live:   LiveConfig{Host: "127.0.0.1", Port: 9001},
		Redis:  RedisConfig{Host: "redis", Port: 6379},
	}

	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddr())
	assert.Equal(t, "127.0.0.1:9001", cfg.GetLiveAddr())
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
}
