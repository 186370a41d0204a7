package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

// noEnvFile points Load at a file that does not exist so a developer's .env
// cannot leak into the defaults.
func noEnvFile(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	noEnvFile(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, SourceDir, cfg.DataSource)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 8, cfg.LoadConcurrency)
	assert.Empty(t, cfg.ReloadSchedule)
	assert.Equal(t, "data/", cfg.S3Prefix)
	assert.True(t, cfg.S3UseSSL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.RedisTTL)

	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "climate-derive-requests", cfg.KafkaSourceTopic)
	assert.Equal(t, "climate-day-reports", cfg.KafkaSinkTopic)
	assert.Equal(t, "climate-insights", cfg.KafkaGroupID)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)

	assert.False(t, cfg.NominatimEnabled)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimURL)
	assert.Equal(t, 5*time.Second, cfg.NominatimTimeout)
	assert.Equal(t, time.Second, cfg.NominatimInterval)
	assert.Equal(t, 1000, cfg.NominatimCacheSize)

	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
}

func TestLoad_CustomEnv(t *testing.T) {
	noEnvFile(t)
	t.Setenv("DATA_SOURCE", "HTTP")
	t.Setenv("DATA_BASE_URL", "https://example.test/climate/")
	t.Setenv("LOAD_CONCURRENCY", "3")
	t.Setenv("RELOAD_SCHEDULE", "@hourly")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TTL", "15m")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("NOMINATIM_ENABLED", "true")
	t.Setenv("NOMINATIM_TIMEOUT", "10s")
	t.Setenv("NOMINATIM_CACHE_SIZE", "500")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceHTTP, cfg.DataSource)
	assert.Equal(t, "https://example.test/climate", cfg.DataBaseURL)
	assert.Equal(t, 3, cfg.LoadConcurrency)
	assert.Equal(t, "@hourly", cfg.ReloadSchedule)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 15*time.Minute, cfg.RedisTTL)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.True(t, cfg.NominatimEnabled)
	assert.Equal(t, 10*time.Second, cfg.NominatimTimeout)
	assert.Equal(t, 500, cfg.NominatimCacheSize)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ENVFILE_ONLY_SETTING=from-file\nHTTP_ADDR=:7070\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Cleanup(func() { os.Unsetenv("ENVFILE_ONLY_SETTING") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr, "process environment wins")
	assert.Equal(t, "from-file", os.Getenv("ENVFILE_ONLY_SETTING"))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "not-a-duration"}, wantErr: "SHUTDOWN_TIMEOUT"},
		{name: "negative shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}, wantErr: "SHUTDOWN_TIMEOUT"},
		{name: "zero batch size", env: map[string]string{"BATCH_SIZE": "0"}, wantErr: "BATCH_SIZE"},
		{name: "batch size too large", env: map[string]string{"BATCH_SIZE": "9999"}, wantErr: "BATCH_SIZE"},
		{name: "flush interval", env: map[string]string{"BATCH_FLUSH_INTERVAL": "nope"}, wantErr: "BATCH_FLUSH_INTERVAL"},
		{name: "nominatim timeout", env: map[string]string{"NOMINATIM_TIMEOUT": "bad"}, wantErr: "NOMINATIM_TIMEOUT"},
		{name: "redis ttl", env: map[string]string{"REDIS_TTL": "0s"}, wantErr: "REDIS_TTL"},
		{name: "unknown source", env: map[string]string{"DATA_SOURCE": "ftp"}, wantErr: "DATA_SOURCE"},
		{name: "http without base url", env: map[string]string{"DATA_SOURCE": "http"}, wantErr: "DATA_BASE_URL"},
		{name: "s3 without endpoint", env: map[string]string{"DATA_SOURCE": "s3", "S3_BUCKET": "b"}, wantErr: "S3_ENDPOINT"},
		{name: "s3 without bucket", env: map[string]string{"DATA_SOURCE": "s3", "S3_ENDPOINT": "localhost:9000"}, wantErr: "S3_BUCKET"},
		{name: "kafka without brokers", env: map[string]string{"KAFKA_ENABLED": "true", "KAFKA_BROKERS": " , "}, wantErr: "KAFKA_BROKERS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noEnvFile(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_KafkaDisabledSkipsValidation(t *testing.T) {
	noEnvFile(t)
	t.Setenv("KAFKA_BROKERS", " , ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_InvalidCacheSizeFallsBack(t *testing.T) {
	noEnvFile(t)
	t.Setenv("NOMINATIM_CACHE_SIZE", "-5")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.NominatimCacheSize)
}
