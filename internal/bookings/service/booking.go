package service

import (
	"context"
	"errors"
	"sort"
	"time"

	bookingserrors "salon/internal/bookings/errors"
	"salon/internal/bookings/events"
	"salon/internal/bookings/repository"
	"salon/internal/bookings/validator"
	"salon/pkg/config"
	apperrors "salon/pkg/errors"
	"salon/pkg/metrics"
	"salon/pkg/model"
	"salon/pkg/sanitizer"

	"github.com/google/uuid"
)

const (
	MsgSlotTaken = "This time slot is already booked"

	opCreate       = "create"
	opUpdateStatus = "update_status"
	opDelete       = "delete"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, date string) (*model.Availability, error)
	AvailabilityRange(ctx context.Context, startDate, endDate string) (model.AvailabilityRange, error)
	// Close flushes queued events and closes the publisher.
	Close() error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	timeout := cfg.EventPublishTimeout
	if timeout <= 0 {
		timeout = config.DefaultEventPublishTimeout
	}
	queueSize := cfg.EventQueueSize
	if queueSize <= 0 {
		queueSize = config.DefaultEventQueueSize
	}
	metrics.Register()
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: events.NewAsyncPublisher(publisher, timeout, queueSize, cfg.Log),
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create stores a new pending booking. Any id, status or created_at sent by
// the client is replaced.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (err error) {
	defer func() { s.record(opCreate, err) }()

	booking.ID = ""
	booking.Status = model.StatusPending
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	if err := s.verifySlotFree(ctx, booking.BookingDate, booking.TimeSlot, ""); err != nil {
		return err
	}

	booking.ID = uuid.NewString()
	booking.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			s.cfg.Log.Warn("Slot taken by a concurrent booking",
				"booking_date", booking.BookingDate,
				"time_slot", booking.TimeSlot,
			)
			return apperrors.Conflict(MsgSlotTaken)
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"booking_date", booking.BookingDate,
		"time_slot", booking.TimeSlot,
	)
	s.publish(ctx, events.TypeBookingCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id, "Failed to retrieve booking")
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// UpdateStatus changes the status of a booking. Moving a cancelled booking
// back to an active status needs its slot to be free.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, update *model.BookingUpdate) (_ *model.Booking, err error) {
	defer func() { s.record(opUpdateStatus, err) }()

	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	update.Status = sanitizer.NormalizeToken(update.Status)
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, validationError(err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id, "Failed to check booking existence")
	}

	if existing.Status == update.Status {
		return existing, nil
	}

	if !existing.IsActive() && model.IsActiveStatus(update.Status) {
		if err := s.verifySlotFree(ctx, existing.BookingDate, existing.TimeSlot, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, id, update.Status)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			return nil, apperrors.Conflict(MsgSlotTaken)
		}
		return nil, s.translateLookupError(err, id, "Failed to update booking")
	}

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"from", existing.Status,
		"to", updated.Status,
	)
	s.publish(ctx, events.TypeBookingStatusUpdated, updated)
	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.record(opDelete, err) }()

	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateLookupError(err, id, "Failed to check booking existence")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translateLookupError(err, id, "Failed to delete booking")
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.publish(ctx, events.TypeBookingDeleted, existing)
	return nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, date string) (*model.Availability, error) {
	date = sanitizer.NormalizeToken(date)
	if err := s.validator.ValidateAvailabilityRequest(&model.AvailabilityRequest{BookingDate: date}); err != nil {
		return nil, validationError(err)
	}

	bookings, err := s.repo.FindActiveByDateRange(ctx, date, date)
	if err != nil {
		s.cfg.Log.Error("Failed to check availability", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	occupied := make([]string, 0, len(bookings))
	for _, b := range bookings {
		occupied = append(occupied, b.TimeSlot)
	}
	return model.NewAvailability(date, occupied), nil
}

// AvailabilityRange lists the occupied slots of every date in
// [startDate, endDate] that has at least one active booking.
func (s *bookingService) AvailabilityRange(ctx context.Context, startDate, endDate string) (model.AvailabilityRange, error) {
	startDate = sanitizer.NormalizeToken(startDate)
	endDate = sanitizer.NormalizeToken(endDate)

	var verrs validator.ValidationErrors
	for field, value := range map[string]string{"start_date": startDate, "end_date": endDate} {
		if err := s.validator.ValidateDate(field, value); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return nil, apperrors.Internal("Failed to validate dates", err)
			}
			verrs = append(verrs, fieldErrs...)
		}
	}
	if len(verrs) > 0 {
		sort.Slice(verrs, func(i, j int) bool { return verrs[i].Field > verrs[j].Field })
		return nil, validationError(verrs)
	}

	result := make(model.AvailabilityRange)
	if startDate > endDate {
		return result, nil
	}

	bookings, err := s.repo.FindActiveByDateRange(ctx, startDate, endDate)
	if err != nil {
		s.cfg.Log.Error("Failed to load availability range", "start_date", startDate, "end_date", endDate, "error", err)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	for _, b := range bookings {
		result[b.BookingDate] = append(result[b.BookingDate], b.TimeSlot)
	}
	for date, slots := range result {
		sort.Slice(slots, func(i, j int) bool { return slotOrder(slots[i]) < slotOrder(slots[j]) })
		result[date] = slots
	}
	return result, nil
}

func slotOrder(slot string) int {
	for i, s := range model.TimeSlots {
		if s == slot {
			return i
		}
	}
	return len(model.TimeSlots)
}

// verifySlotFree fails with a conflict when an active booking other than
// exceptID holds the slot.
func (s *bookingService) verifySlotFree(ctx context.Context, date, slot, exceptID string) error {
	active, err := s.repo.FindActiveBySlot(ctx, date, slot)
	if err != nil {
		s.cfg.Log.Error("Failed to check slot", "booking_date", date, "time_slot", slot, "error", err)
		return apperrors.Internal("Failed to check slot availability", err)
	}
	for _, b := range active {
		if b.ID != exceptID {
			s.cfg.Log.Info("Slot already booked",
				"booking_date", date,
				"time_slot", slot,
				"holder_id", b.ID,
			)
			return apperrors.Conflict(MsgSlotTaken)
		}
	}
	return nil
}

func (s *bookingService) translateLookupError(err error, id, internalMsg string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	s.cfg.Log.Error(internalMsg, "id", id, "error", err)
	return apperrors.Internal(internalMsg, err)
}

func (s *bookingService) sanitize(booking *model.Booking) {
	booking.CustomerName = sanitizer.NormalizeName(booking.CustomerName)
	booking.Email = sanitizer.NormalizeEmail(booking.Email)
	booking.Phone = sanitizer.NormalizePhone(booking.Phone)
	booking.BookingDate = sanitizer.NormalizeToken(booking.BookingDate)
	booking.TimeSlot = sanitizer.NormalizeToken(booking.TimeSlot)
	booking.EventType = sanitizer.NormalizeLabel(booking.EventType)
	booking.SpecialRequests = sanitizer.NormalizeFreeText(booking.SpecialRequests)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"booking_date", booking.BookingDate,
			"time_slot", booking.TimeSlot,
			"error", err,
		)
		return validationError(err)
	}
	return nil
}

// validationError reports the first problem as the message and every
// offending field in the details.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.Validation(verrs[0].Message, verrs.Fields())
	}
	return apperrors.Validation("Invalid input", map[string]any{"error": err.Error()})
}

// publish never fails the caller: the booking is already stored. Delivery
// happens in the background so the request deadline cannot cut it short.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if err := s.publisher.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Warn("Failed to queue booking event",
			"event_type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}

func (s *bookingService) Close() error {
	return s.publisher.Close()
}

func (s *bookingService) record(operation string, err error) {
	metrics.IncBooking(operation, outcome(err))
}

func outcome(err error) string {
	var appErr *apperrors.AppError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case !errors.As(err, &appErr):
		return metrics.OutcomeError
	case appErr.Code == apperrors.CodeConflict:
		return metrics.OutcomeConflict
	case appErr.Code == apperrors.CodeNotFound:
		return metrics.OutcomeNotFound
	case appErr.Code == apperrors.CodeValidation, appErr.Code == apperrors.CodeInvalidInput:
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}
