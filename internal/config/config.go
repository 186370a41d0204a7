package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Data sources a city repository can be built from.
const (
	SourceDir    = "dir"
	SourceHTTP   = "http"
	SourceS3     = "s3"
	SourceSQLite = "sqlite"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// City data source.
	DataSource      string
	DataDir         string
	DataBaseURL     string
	SQLitePath      string
	LoadConcurrency int
	ReloadSchedule  string

	S3Endpoint  string
	S3Bucket    string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool

	// Optional shared cache in front of the data source.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	ComparisonCitiesFile string

	// Derive-request pipeline.
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaSourceTopic   string
	KafkaSinkTopic     string
	KafkaGroupID       string
	BatchSize          int
	BatchFlushInterval time.Duration

	// Nominatim geocoding configuration.
	NominatimURL       string
	NominatimEnabled   bool
	NominatimUserAgent string
	NominatimTimeout   time.Duration
	NominatimCacheSize int
	NominatimInterval  time.Duration

	OpenAIAPIKey string
	OpenAIModel  string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file (or ENV_FILE) is read first when present; values
// already in the environment win.
func Load() (*Config, error) {
	if err := loadEnvFile(sharedcfg.EnvOrDefault("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	nominatimTimeout, err := parseDuration("NOMINATIM_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	nominatimInterval, err := parseDuration("NOMINATIM_MIN_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}
	redisTTL, err := parseDuration("REDIS_TTL", "1h")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataSource:      strings.ToLower(sharedcfg.EnvOrDefault("DATA_SOURCE", SourceDir)),
		DataDir:         sharedcfg.EnvOrDefault("DATA_DIR", "data"),
		DataBaseURL:     strings.TrimRight(os.Getenv("DATA_BASE_URL"), "/"),
		SQLitePath:      sharedcfg.EnvOrDefault("SQLITE_PATH", "climate.db"),
		LoadConcurrency: parsePositiveInt("LOAD_CONCURRENCY", 8),
		ReloadSchedule:  os.Getenv("RELOAD_SCHEDULE"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    sharedcfg.EnvOrDefault("S3_PREFIX", "data/"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3UseSSL:    os.Getenv("S3_USE_SSL") != "false",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       parseNonNegativeInt("REDIS_DB", 0),
		RedisTTL:      redisTTL,

		ComparisonCitiesFile: os.Getenv("COMPARISON_CITIES_FILE"),

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "climate-derive-requests"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "climate-day-reports"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "climate-insights"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		NominatimURL:       strings.TrimRight(sharedcfg.EnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"), "/"),
		NominatimEnabled:   os.Getenv("NOMINATIM_ENABLED") == "true",
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "climate-insights-service/1.0"),
		NominatimTimeout:   nominatimTimeout,
		NominatimCacheSize: parsePositiveInt("NOMINATIM_CACHE_SIZE", 1000),
		NominatimInterval:  nominatimInterval,

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  sharedcfg.EnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DataSource {
	case SourceDir:
		if c.DataDir == "" {
			return errors.New("DATA_DIR is required")
		}
	case SourceHTTP:
		if c.DataBaseURL == "" {
			return errors.New("DATA_BASE_URL is required when DATA_SOURCE=http")
		}
	case SourceS3:
		if c.S3Endpoint == "" {
			return errors.New("S3_ENDPOINT is required when DATA_SOURCE=s3")
		}
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when DATA_SOURCE=s3")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when DATA_SOURCE=sqlite")
		}
	default:
		return fmt.Errorf("invalid DATA_SOURCE %q: want dir, http, s3 or sqlite", c.DataSource)
	}

	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required")
		}
		if c.KafkaSourceTopic == "" {
			return errors.New("KAFKA_SOURCE_TOPIC is required")
		}
		if c.KafkaSinkTopic == "" {
			return errors.New("KAFKA_SINK_TOPIC is required")
		}
	}
	if c.NominatimEnabled && c.NominatimURL == "" {
		return errors.New("NOMINATIM_ENABLED is true but NOMINATIM_URL is not set")
	}
	return nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func parseNonNegativeInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
