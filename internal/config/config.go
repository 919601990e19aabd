package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration, read from the environment
// (optionally seeded from a .env file).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	Redis RedisConfig
	Cache CacheConfig
	Minio MinioConfig
	Jobs  JobsConfig
}

type AppConfig struct {
	Env      string
	LogLevel string
	Port     int
}

type DBConfig struct {
	URL string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig selects where metrics snapshots live: "redis" or "postgres".
type CacheConfig struct {
	Backend string
	MaxAge  time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type JobsConfig struct {
	Enabled                bool
	MetricsRefreshInterval time.Duration
	LowStockScanInterval   time.Duration
	SnapshotInterval       time.Duration
}

// Addr returns the HTTP listen address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration. A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
			Port:     v.GetInt("PORT"),
		},
		DB: DBConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(v.GetString("CACHE_BACKEND")),
			MaxAge:  v.GetDuration("METRICS_CACHE_MAX_AGE"),
		},
		Minio: MinioConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		Jobs: JobsConfig{
			Enabled:                v.GetBool("JOBS_ENABLED"),
			MetricsRefreshInterval: v.GetDuration("METRICS_REFRESH_INTERVAL"),
			LowStockScanInterval:   v.GetDuration("LOW_STOCK_SCAN_INTERVAL"),
			SnapshotInterval:       v.GetDuration("SNAPSHOT_INTERVAL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", 8080)
	v.SetDefault("JWT_EXPIRATION_HOURS", 24*7)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_BACKEND", "redis")
	v.SetDefault("METRICS_CACHE_MAX_AGE", "15m")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_BUCKET", "retail-snapshots")
	v.SetDefault("JOBS_ENABLED", true)
	v.SetDefault("METRICS_REFRESH_INTERVAL", "10m")
	v.SetDefault("LOW_STOCK_SCAN_INTERVAL", "1h")
	v.SetDefault("SNAPSHOT_INTERVAL", "24h")
}

func (c *Config) validate() error {
	if c.DB.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.JWT.Secret == "" && !c.App.IsDevelopment() {
		return errors.New("JWT_SECRET environment variable is required outside development")
	}
	if c.Cache.Backend != "redis" && c.Cache.Backend != "postgres" {
		return fmt.Errorf("CACHE_BACKEND must be redis or postgres, got %q", c.Cache.Backend)
	}
	return nil
}
