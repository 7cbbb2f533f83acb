package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Live     LiveConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Mapbox   MapboxConfig
	Location LocationConfig
	Composer ComposerConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

// LiveConfig - отдельный net/http листенер для WebSocket фида локации
type LiveConfig struct {
	Enabled bool
	Host    string
	Port    int
}

type StoreConfig struct {
	Driver string // postgres | memory
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	AddressCacheTTL       time.Duration
	AddressLocalTTL       time.Duration
	AddressLocalCleanup   time.Duration
	AddressCoordPrecision int
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	Language       string
	RequestTimeout int // seconds
}

type LocationConfig struct {
	PollInterval  time.Duration
	WaitTimeout   time.Duration
	UpdatesBuffer int
}

type ComposerConfig struct {
	DraftTTL       time.Duration
	DefaultType    string
	DefaultTier    string
	DefaultSeating string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	BatchSize     int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env не обязателен, переменные окружения имеют приоритет
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("API_CORS_ORIGINS"),
		},
		Live: LiveConfig{
			Enabled: viper.GetBool("LIVE_ENABLED"),
			Host:    viper.GetString("LIVE_HOST"),
			Port:    viper.GetInt("LIVE_PORT"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(viper.GetString("STORE_DRIVER")),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			AddressCacheTTL:       time.Duration(viper.GetInt("ADDRESS_CACHE_TTL")) * time.Second,
			AddressLocalTTL:       time.Duration(viper.GetInt("ADDRESS_LOCAL_CACHE_TTL")) * time.Second,
			AddressLocalCleanup:   time.Duration(viper.GetInt("ADDRESS_LOCAL_CACHE_CLEANUP")) * time.Second,
			AddressCoordPrecision: viper.GetInt("ADDRESS_COORD_PRECISION"),
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			Language:       viper.GetString("MAPBOX_LANGUAGE"),
			RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Location: LocationConfig{
			PollInterval:  time.Duration(viper.GetInt("LOCATION_POLL_INTERVAL")) * time.Millisecond,
			WaitTimeout:   time.Duration(viper.GetInt("LOCATION_WAIT_TIMEOUT")) * time.Second,
			UpdatesBuffer: viper.GetInt("LOCATION_UPDATES_BUFFER"),
		},
		Composer: ComposerConfig{
			DraftTTL:       time.Duration(viper.GetInt("COMPOSER_DRAFT_TTL")) * time.Second,
			DefaultType:    viper.GetString("COMPOSER_DEFAULT_TYPE"),
			DefaultTier:    viper.GetString("COMPOSER_DEFAULT_TIER"),
			DefaultSeating: viper.GetString("COMPOSER_DEFAULT_SEATING"),
		},
		Log: LogConfig{
			Level:      viper.GetString("LOG_LEVEL"),
			File:       viper.GetString("LOG_FILE"),
			MaxSizeMB:  viper.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: viper.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: viper.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:     viper.GetInt("WORKER_BATCH_SIZE"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных ключей
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if c.Live.Port == 0 {
		c.Live.Port = 8081
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "postgres"
	}
	if c.Cache.AddressCacheTTL == 0 {
		c.Cache.AddressCacheTTL = 24 * time.Hour
	}
	if c.Cache.AddressLocalTTL == 0 {
		c.Cache.AddressLocalTTL = 10 * time.Minute
	}
	if c.Cache.AddressLocalCleanup == 0 {
		c.Cache.AddressLocalCleanup = 20 * time.Minute
	}
	if c.Cache.AddressCoordPrecision == 0 {
		c.Cache.AddressCoordPrecision = 4
	}
	if c.Mapbox.BaseURL == "" {
		c.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if c.Mapbox.Language == "" {
		c.Mapbox.Language = "en"
	}
	if c.Mapbox.RequestTimeout == 0 {
		c.Mapbox.RequestTimeout = 10
	}
	if c.Location.PollInterval == 0 {
		c.Location.PollInterval = 500 * time.Millisecond
	}
	if c.Location.WaitTimeout == 0 {
		c.Location.WaitTimeout = 30 * time.Second
	}
	if c.Location.UpdatesBuffer == 0 {
		c.Location.UpdatesBuffer = 16
	}
	if c.Composer.DraftTTL == 0 {
		c.Composer.DraftTTL = 30 * time.Minute
	}
	if c.Composer.DefaultType == "" {
		c.Composer.DefaultType = "sltb"
	}
	if c.Composer.DefaultTier == "" {
		c.Composer.DefaultTier = "x1"
	}
	if c.Composer.DefaultSeating == "" {
		c.Composer.DefaultSeating = "Available"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 30
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "nextbus-location-fixes"
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 20
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetLiveAddr() string {
	return fmt.Sprintf("%s:%d", c.Live.Host, c.Live.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
