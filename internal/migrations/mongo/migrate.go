package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"salon/internal/migrations/mongo/validators"
	"salon/pkg/logger"
)

// The booking repository reads BookingsCollection; ActiveSlotIndex is
// the index whose duplicate-key errors it reports as a taken slot.
const (
	BookingsCollection = "bookings"
	ActiveSlotIndex    = "uniq_active_slot"
)

var BookingsIndexes = []mongo.IndexModel{
	{
		Keys: bson.D{{Key: "booking_date", Value: 1}, {Key: "time_slot", Value: 1}},
		Options: options.Index().
			SetName(ActiveSlotIndex).
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: "active", Value: true}}),
	},
	{
		Keys:    bson.D{{Key: "booking_date", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("booking_date_status"),
	},
	{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetName("created_at"),
	},
}

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Migrate creates or updates every collection the service owns, with its
// schema validator and indexes. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	collections := map[string]collectionDef{
		BookingsCollection: {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully", "database", db.Name())
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}
