package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingserrors "salon/internal/bookings/errors"
	"salon/pkg/config"
	"salon/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// bookingDocument is the stored shape of a booking. Active mirrors
// status != cancelled and backs the partial unique slot index.
type bookingDocument struct {
	model.Booking `bson:",inline"`
	Active        bool `bson:"active"`
}

func toDocument(booking *model.Booking) *bookingDocument {
	return &bookingDocument{Booking: *booking, Active: booking.IsActive()}
}

type mongoBookingRepository struct {
	cfg        *config.Config
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		client:     cfg.Client.Mongo,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a store call, keeping a caller deadline that is shorter.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, toDocument(booking)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return classifyDuplicate(err)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc bookingDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &doc.Booking, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoBookingRepository) FindActiveBySlot(ctx context.Context, date, slot string) ([]*model.Booking, error) {
	filter := bson.M{
		"booking_date": date,
		"time_slot":    slot,
		"status":       bson.M{"$ne": model.StatusCancelled},
	}
	return r.find(ctx, filter, options.Find())
}

func (r *mongoBookingRepository) FindActiveByDateRange(ctx context.Context, start, end string) ([]*model.Booking, error) {
	// Dates are fixed-width YYYY-MM-DD strings, so lexical order is calendar order.
	filter := bson.M{
		"booking_date": bson.M{"$gte": start, "$lte": end},
		"status":       bson.M{"$ne": model.StatusCancelled},
	}
	opts := options.Find().SetSort(bson.D{{Key: "booking_date", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	bookings := make([]*model.Booking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, &docs[i].Booking)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status": status,
			"active": model.IsActiveStatus(status),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookingDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, bookingserrors.ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	return &doc.Booking, nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoBookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.client.Ping(ctx, readpref.Primary())
}

// classifyDuplicate tells a clash on _id apart from a clash on the slot index.
func classifyDuplicate(err error) error {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == 11000 && strings.Contains(we.Message, "index: _id_ ") {
				return bookingserrors.ErrDuplicateID
			}
		}
	}
	return bookingserrors.ErrSlotTaken
}
