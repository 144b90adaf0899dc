package repository

import (
	"context"
	"sort"
	"sync"

	bookingserrors "salon/internal/bookings/errors"
	"salon/pkg/model"
)

type slotKey struct {
	date string
	slot string
}

// memoryBookingRepository keeps bookings in process. One mutex guards every
// operation, so the slot check and the write happen atomically and the
// one-active-booking-per-slot rule holds the way the Mongo index enforces it.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*model.Booking
	order    []string
	active   map[slotKey]string
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[string]*model.Booking),
		active:   make(map[slotKey]string),
	}
}

func keyOf(b *model.Booking) slotKey {
	return slotKey{date: b.BookingDate, slot: b.TimeSlot}
}

func clone(b *model.Booking) *model.Booking {
	c := *b
	return &c
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		return bookingserrors.ErrDuplicateID
	}
	if booking.IsActive() {
		if _, taken := r.active[keyOf(booking)]; taken {
			return bookingserrors.ErrSlotTaken
		}
		r.active[keyOf(booking)] = booking.ID
	}

	r.bookings[booking.ID] = clone(booking)
	r.order = append(r.order, booking.ID)
	return nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return clone(booking), nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	return r.filter(ctx, func(*model.Booking) bool { return true })
}

func (r *memoryBookingRepository) FindActiveBySlot(ctx context.Context, date, slot string) ([]*model.Booking, error) {
	return r.filter(ctx, func(b *model.Booking) bool {
		return b.IsActive() && b.BookingDate == date && b.TimeSlot == slot
	})
}

func (r *memoryBookingRepository) FindActiveByDateRange(ctx context.Context, start, end string) ([]*model.Booking, error) {
	bookings, err := r.filter(ctx, func(b *model.Booking) bool {
		return b.IsActive() && b.BookingDate >= start && b.BookingDate <= end
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].BookingDate < bookings[j].BookingDate
	})
	return bookings, nil
}

// filter returns copies of the matching bookings in insertion order, which
// is created_at order.
func (r *memoryBookingRepository) filter(ctx context.Context, match func(*model.Booking) bool) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Booking, 0)
	for _, id := range r.order {
		if b := r.bookings[id]; match(b) {
			result = append(result, clone(b))
		}
	}
	return result, nil
}

func (r *memoryBookingRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}

	key := keyOf(booking)
	wasActive := booking.IsActive()
	nowActive := model.IsActiveStatus(status)

	if nowActive && !wasActive {
		if _, taken := r.active[key]; taken {
			return nil, bookingserrors.ErrSlotTaken
		}
		r.active[key] = id
	}
	if wasActive && !nowActive {
		delete(r.active, key)
	}

	booking.Status = status
	return clone(booking), nil
}

func (r *memoryBookingRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return bookingserrors.ErrNotFound
	}
	if booking.IsActive() {
		delete(r.active, keyOf(booking))
	}
	delete(r.bookings, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryBookingRepository) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.bookings))
	r.bookings = make(map[string]*model.Booking)
	r.active = make(map[slotKey]string)
	r.order = nil
	return n, nil
}

func (r *memoryBookingRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
