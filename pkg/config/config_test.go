package config

import (
	"testing"
	"time"

	"salon/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		MongoURI:          DefaultMongoURI,
		MongoDatabaseName: DefaultMongoDatabaseName,
		MongoConnTimeout:  DefaultMongoConnTimeout,
		StorageDriver:     StorageMongo,
		Port:              DefaultPort,
		CORSOrigins:       []string{"*"},
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
		RequestTimeout:    DefaultRequestTimeout,
		IdempotencyTTL:    DefaultIdempotencyTTL,
		MaxRequestSize:    DefaultMaxRequestSize,
		ReadTimeout:       DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		KafkaBookingTopic: DefaultKafkaBookingTopic,
		Log:               logger.Discard(),

		EventPublishTimeout: DefaultEventPublishTimeout,
		EventQueueSize:      DefaultEventQueueSize,
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvMongoURI, EnvMongoDatabaseName, EnvStorageDriver, EnvPort,
		EnvCORSOrigins, EnvCORSAllowCredentials, EnvKafkaBrokers,
		EnvEventPublishTimeout, EnvEventQueueSize, EnvTrustProxyHeaders,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load("config-test")

	assert.Equal(t, DefaultMongoURI, cfg.MongoURI)
	assert.Equal(t, DefaultMongoDatabaseName, cfg.MongoDatabaseName)
	assert.Equal(t, StorageMongo, cfg.StorageDriver)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.CORSAllowCredentials)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, DefaultEventPublishTimeout, cfg.EventPublishTimeout)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.NotNil(t, cfg.Log)
	assert.NotNil(t, cfg.Client)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvStorageDriver, "MEMORY")
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvCORSOrigins, "https://salon.example, http://localhost:3000 ,")
	t.Setenv(EnvRateLimitRPS, "2.5")
	t.Setenv(EnvRequestTimeout, "5s")
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092,kafka-2:9092")
	t.Setenv(EnvMongoAutoMigrate, "false")
	t.Setenv(EnvRedisDB, "not-a-number")

	cfg := Load("config-test")

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.False(t, cfg.UsesMongo())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://salon.example", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.False(t, cfg.MongoAutoMigrate)
	assert.Equal(t, DefaultRedisDB, cfg.RedisDB, "unparsable values fall back to defaults")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "70000" }, "Port must be between"},
		{"bad mongo uri", func(c *Config) { c.MongoURI = "postgres://localhost" }, "MongoURI must start with"},
		{"memory ignores mongo uri", func(c *Config) { c.StorageDriver = StorageMemory; c.MongoURI = "" }, ""},
		{"unknown driver", func(c *Config) { c.StorageDriver = "sqlite" }, "StorageDriver must be one of"},
		{"no cors origins", func(c *Config) { c.CORSOrigins = nil }, "CORSOrigins"},
		{"zero rate", func(c *Config) { c.RateLimitRPS = 0 }, "RateLimitRPS"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "RequestTimeout"},
		{"zero event publish timeout", func(c *Config) { c.EventPublishTimeout = 0 }, "EventPublishTimeout"},
		{"kafka without topic", func(c *Config) { c.KafkaBrokers = []string{"k:9092"}; c.KafkaBookingTopic = "" }, "KafkaBookingTopic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NumbersEveryError(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "x"
	cfg.MaxRequestSize = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1. Port")
	assert.Contains(t, err.Error(), "2. MaxRequestSize")
}

func TestRedactMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb://***:***@db:27017", redactMongoURI("mongodb://admin:secret@db:27017"))
	assert.Equal(t, "mongodb://localhost:27017", redactMongoURI("mongodb://localhost:27017"))
}
