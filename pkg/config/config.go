package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Platform PlatformConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Cache    CacheConfig
	Refresh  RefreshConfig
	Exports  ExportsConfig
	Journal  JournalConfig
}

// PlatformConfig points the console at the upstream platform API that owns
// persistence, schedule generation, standings and MVP rating.
type PlatformConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig controls the short-lived snapshot cache in front of the
// platform list endpoints.
type CacheConfig struct {
	Enabled        bool
	InstitutionTTL time.Duration
	ScheduleTTL    time.Duration
}

// RefreshConfig sizes the background queue that re-primes cached lists
// after a successful mutation.
type RefreshConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// ExportsConfig toggles results export rendering.
type ExportsConfig struct {
	Enabled bool
}

// JournalConfig toggles the operator action journal.
type JournalConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Platform = PlatformConfig{
		BaseURL: strings.TrimRight(v.GetString("PLATFORM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("PLATFORM_TIMEOUT"), 15*time.Second),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:        v.GetBool("ENABLE_SNAPSHOT_CACHE"),
		InstitutionTTL: parseDuration(v.GetString("INSTITUTION_CACHE_TTL"), time.Minute),
		ScheduleTTL:    parseDuration(v.GetString("SCHEDULE_CACHE_TTL"), time.Minute),
	}

	cfg.Refresh = RefreshConfig{
		Workers:    v.GetInt("REFRESH_WORKERS"),
		BufferSize: v.GetInt("REFRESH_BUFFER_SIZE"),
		MaxRetries: v.GetInt("REFRESH_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("REFRESH_RETRY_DELAY"), time.Second),
	}

	cfg.Exports = ExportsConfig{Enabled: v.GetBool("ENABLE_EXPORTS")}
	cfg.Journal = JournalConfig{Enabled: v.GetBool("ENABLE_JOURNAL")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("PLATFORM_BASE_URL", "http://localhost:8000/api")
	v.SetDefault("PLATFORM_TIMEOUT", "15s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "arena_console")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SNAPSHOT_CACHE", false)
	v.SetDefault("INSTITUTION_CACHE_TTL", "1m")
	v.SetDefault("SCHEDULE_CACHE_TTL", "1m")

	v.SetDefault("REFRESH_WORKERS", 1)
	v.SetDefault("REFRESH_BUFFER_SIZE", 8)
	v.SetDefault("REFRESH_MAX_RETRIES", 3)
	v.SetDefault("REFRESH_RETRY_DELAY", "1s")

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("ENABLE_JOURNAL", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
