package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	Env        string           `json:"env"`
	Http       HttpConfig       `json:"http"`
	Storage    StorageConfig    `json:"storage"`
	Postgres   PostgresConfig   `json:"postgres"`
	Redis      RedisConfig      `json:"redis"`
	APIKey     string           `json:"api_key,omitempty"`
	Webhook    WebhookConfig    `json:"webhook"`
	MQTT       MQTTConfig       `json:"mqtt"`
	ClickHouse ClickHouseConfig `json:"clickhouse"`
	Detector   DetectorConfig   `json:"detector"`
	Engine     EngineConfig     `json:"engine"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver  string        `json:"driver"`
	Timeout time.Duration `json:"timeout"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr       string `json:"addr"`
	Password   string `json:"password,omitempty"`
	DB         int    `json:"db"`
	KeyPrefix  string `json:"key_prefix"`
	AlertQueue string `json:"alert_queue"`
}

type WebhookConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

type MQTTConfig struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password,omitempty"`
	TopicPrefix string `json:"topic_prefix"`
}

type ClickHouseConfig struct {
	Enabled  bool   `json:"enabled"`
	Addr     string `json:"addr"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
}

type DetectorConfig struct {
	Enabled      bool          `json:"enabled"`
	URL          string        `json:"url"`
	PollInterval time.Duration `json:"poll_interval"`
	Timeout      time.Duration `json:"timeout"`
}

type EngineConfig struct {
	VehicleID              string        `json:"vehicle_id"`
	AlertRadiusMeters      float64       `json:"alert_radius_m"`
	ProximityInterval      time.Duration `json:"proximity_interval"`
	ResolutionThreshold    int           `json:"resolution_threshold"`
	VoteCooldown           time.Duration `json:"vote_cooldown"`
	StaleTTL               time.Duration `json:"stale_ttl"`
	StaleSweepInterval     time.Duration `json:"stale_sweep_interval"`
	DetectionLogCap        int           `json:"detection_log_cap"`
	DedupeRadiusMeters     float64       `json:"dedupe_radius_m"`
	PositionAcquireTimeout time.Duration `json:"position_acquire_timeout"`
	AlertRepeatInterval    time.Duration `json:"alert_repeat_interval"`
	SeedSampleHazards      bool          `json:"seed_sample_hazards"`
}

func Load(ctx context.Context) (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", StorageMemory),
			Timeout: getEnvDuration("STORAGE_TIMEOUT", 2*time.Second),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "arm_scout"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "redis-local:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			KeyPrefix:  getEnv("REDIS_KEY_PREFIX", "armscout:"),
			AlertQueue: getEnv("REDIS_ALERT_QUEUE", "alerts:queue"),
		},
		APIKey: getEnv("API_KEY", "super-secret-key"),
		Webhook: WebhookConfig{
			URL:      getEnv("WEBHOOK_URL", ""),
			Disabled: getEnvBool("WEBHOOK_DISABLED", true),
		},
		MQTT: MQTTConfig{
			Enabled:     getEnvBool("MQTT_ENABLED", false),
			Broker:      getEnv("MQTT_BROKER", "tcp://localhost:1883"),
			ClientID:    getEnv("MQTT_CLIENT_ID", "arm-scout"),
			Username:    getEnv("MQTT_USERNAME", ""),
			Password:    getEnv("MQTT_PASSWORD", ""),
			TopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "armscout"),
		},
		ClickHouse: ClickHouseConfig{
			Enabled:  getEnvBool("CLICKHOUSE_ENABLED", false),
			Addr:     getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
			Database: getEnv("CLICKHOUSE_DB", "armscout"),
			User:     getEnv("CLICKHOUSE_USER", "default"),
			Password: getEnv("CLICKHOUSE_PASS", ""),
		},
		Detector: DetectorConfig{
			Enabled:      getEnvBool("DETECTOR_ENABLED", false),
			URL:          getEnv("DETECTOR_URL", "http://raspberrypi.local:5000/api"),
			PollInterval: getEnvDuration("DETECTOR_POLL_INTERVAL", 3*time.Second),
			Timeout:      getEnvDuration("DETECTOR_TIMEOUT", 5*time.Second),
		},
		Engine: EngineConfig{
			VehicleID:              getEnv("VEHICLE_ID", "vehicle-1"),
			AlertRadiusMeters:      getEnvFloat("ALERT_RADIUS_M", 500),
			ProximityInterval:      getEnvDuration("PROXIMITY_INTERVAL", 2*time.Second),
			ResolutionThreshold:    getEnvInt("RESOLUTION_THRESHOLD", 3),
			VoteCooldown:           getEnvDuration("VOTE_COOLDOWN", time.Hour),
			StaleTTL:               getEnvDuration("STALE_TTL", 0),
			StaleSweepInterval:     getEnvDuration("STALE_SWEEP_INTERVAL", 5*time.Minute),
			DetectionLogCap:        getEnvInt("DETECTION_LOG_CAP", 1000),
			DedupeRadiusMeters:     getEnvFloat("DEDUPE_RADIUS_M", 0),
			PositionAcquireTimeout: getEnvDuration("POSITION_ACQUIRE_TIMEOUT", 5*time.Second),
			AlertRepeatInterval:    getEnvDuration("ALERT_REPEAT_INTERVAL", time.Minute),
			SeedSampleHazards:      getEnvBool("SEED_SAMPLE_HAZARDS", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("mqtt", cfg.MQTT.Enabled),
		slog.Bool("clickhouse", cfg.ClickHouse.Enabled),
		slog.String("vehicle_id", cfg.Engine.VehicleID))

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || (len(c.Http.Port) > 0 && c.Http.Port[0] != ':') {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	switch c.Storage.Driver {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if c.Postgres.Host == "" {
			return errors.New("POSTGRES_HOST required")
		}
	default:
		return errors.New("STORAGE_DRIVER must be one of memory, redis, postgres")
	}

	if c.Engine.AlertRadiusMeters <= 0 {
		return errors.New("ALERT_RADIUS_M must be positive")
	}
	if c.Engine.ProximityInterval <= 0 {
		return errors.New("PROXIMITY_INTERVAL must be positive")
	}
	if c.Engine.ResolutionThreshold < 1 {
		return errors.New("RESOLUTION_THRESHOLD must be at least 1")
	}
	if c.Engine.DetectionLogCap < 1 {
		return errors.New("DETECTION_LOG_CAP must be at least 1")
	}
	if c.Engine.StaleTTL > 0 && c.Engine.StaleSweepInterval <= 0 {
		return errors.New("STALE_SWEEP_INTERVAL must be positive when STALE_TTL is set")
	}
	if !c.Webhook.Disabled && c.Webhook.URL == "" {
		return errors.New("WEBHOOK_URL required unless WEBHOOK_DISABLED=true")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
