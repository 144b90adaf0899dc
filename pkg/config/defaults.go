package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "salon"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultMongoAutoMigrate  = true

	StorageMongo         = "mongo"
	StorageMemory        = "memory"
	DefaultStorageDriver = StorageMongo

	DefaultPort     = "8001"
	DefaultLogLevel = "info"

	DefaultCORSOrigins          = "*"
	DefaultCORSAllowCredentials = true

	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 40

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRedisDB = 0

	DefaultKafkaBookingTopic = "salon.bookings"

	DefaultEventPublishTimeout = 5 * time.Second
	DefaultEventQueueSize      = 256

	DefaultTrustProxyHeaders = false
)
