package repository

import (
	"context"

	migrations "salon/internal/migrations/mongo"
	"salon/pkg/model"
)

// CollectionName is the collection the migrations create.
const CollectionName = migrations.BookingsCollection

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindAll(ctx context.Context) ([]*model.Booking, error)
	FindActiveBySlot(ctx context.Context, date, slot string) ([]*model.Booking, error)
	// FindActiveByDateRange returns active bookings with start <= booking_date <= end,
	// ordered by date.
	FindActiveByDateRange(ctx context.Context, start, end string) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
