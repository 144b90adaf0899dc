package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"salon/internal/bookings/repository"
	"salon/internal/bookings/service"
	"salon/internal/bookings/validator"
	migrations "salon/internal/migrations/mongo"
	"salon/pkg/config"
	"salon/pkg/model"
)

const (
	ServiceName = "seed"
	seedTimeout = 30 * time.Second
)

func main() {
	reset := flag.Bool("reset", false, "delete every booking before seeding")
	flag.Parse()

	cfg := config.Load(ServiceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	if !cfg.UsesMongo() {
		cfg.Log.Fatal("Seeding requires the mongo storage driver", "storage_driver", cfg.StorageDriver)
	}

	cfg.SetMongo()

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	migrate := func(ctx context.Context) error {
		return migrations.Migrate(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	}
	repo := repository.NewMongoBookingRepository(cfg)

	if err := run(ctx, cfg, repo, migrate, *reset); err != nil {
		cancel()
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Seeding failed", "error", err)
	}

	cfg.GracefulShutdown()
	cfg.Log.Info("Seeding completed")
}

// run returns every failure so main can exit non-zero.
func run(ctx context.Context, cfg *config.Config, repo repository.BookingRepository, migrate func(context.Context) error, reset bool) error {
	if err := migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if reset {
		deleted, err := repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to reset bookings: %w", err)
		}
		cfg.Log.Info("Bookings reset", "deleted", deleted)
	}

	svc := service.NewBookingService(repo, validator.NewBookingValidator(cfg.Log), nil, cfg)
	defer svc.Close()

	return seed(ctx, svc, time.Now())
}

func seed(ctx context.Context, svc service.BookingService, now time.Time) error {
	john := &model.Booking{
		CustomerName:    "John Doe",
		Email:           "john@example.com",
		Phone:           "+1234567890",
		BookingDate:     now.AddDate(0, 0, 7).Format(time.DateOnly),
		TimeSlot:        model.TimeSlotMorning,
		EventType:       "Wedding",
		GuestCount:      100,
		SpecialRequests: "Need vegetarian options",
	}
	if err := svc.Create(ctx, john); err != nil {
		return err
	}

	jane := &model.Booking{
		CustomerName:    "Jane Smith",
		Email:           "jane@example.com",
		Phone:           "+0987654321",
		BookingDate:     now.AddDate(0, 0, 14).Format(time.DateOnly),
		TimeSlot:        model.TimeSlotEvening,
		EventType:       "Anniversary",
		GuestCount:      50,
		SpecialRequests: "Decoration in blue theme",
	}
	if err := svc.Create(ctx, jane); err != nil {
		return err
	}

	_, err := svc.UpdateStatus(ctx, jane.ID, &model.BookingUpdate{Status: model.StatusConfirmed})
	return err
}
