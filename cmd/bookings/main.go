package main

import (
	"context"
	"time"

	"salon/internal/bookings/events"
	"salon/internal/bookings/handler"
	"salon/internal/bookings/repository"
	"salon/internal/bookings/service"
	"salon/internal/bookings/validator"
	migrations "salon/internal/migrations/mongo"
	"salon/pkg/app"
	"salon/pkg/config"
	"salon/pkg/kafka"
	kafka_config "salon/pkg/kafka/config"
	kafka_middleware "salon/pkg/kafka/middleware"
)

const (
	ServiceName    = "bookings"
	migrateTimeout = 30 * time.Second
)

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.Log.Info("Starting Wedding Salon bookings service")

	if cfg.RedisAddr != "" {
		cfg.SetRedis()
	}

	repo := initRepository(cfg)
	publisher := initPublisher(cfg)

	bookingService := service.NewBookingService(
		repo,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(repo, cfg.Log),
	)
	serverApp.OnShutdown(bookingService.Close)
	serverApp.Run()
}

func initRepository(cfg *config.Config) repository.BookingRepository {
	if !cfg.UsesMongo() {
		cfg.Log.Warn("Using in-memory booking storage, data is lost on restart")
		return repository.NewMemoryBookingRepository()
	}

	cfg.SetMongo()

	if cfg.MongoAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
		defer cancel()
		db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
		if err := migrations.Migrate(ctx, db, cfg.Log); err != nil {
			cfg.GracefulShutdown()
			cfg.Log.Fatal("Failed to migrate database", "error", err)
		}
	}

	cfg.Log.Info("Booking repository initialized", "database", cfg.MongoDatabaseName)
	return repository.NewMongoBookingRepository(cfg)
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NewNoopPublisher()
	}

	kafkaCfg, err := kafka_config.Load(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.KafkaBookingTopic, kafkaCfg.DLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}

	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}
