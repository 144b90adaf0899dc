package validator

import (
	"errors"
	"strings"
	"testing"

	"salon/pkg/logger"
	"salon/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking() *model.Booking {
	return &model.Booking{
		CustomerName: "Jane Smith",
		Email:        "jane@example.com",
		Phone:        "+1 555 0100",
		BookingDate:  "2026-06-20",
		TimeSlot:     model.TimeSlotEvening,
		EventType:    "Wedding",
		GuestCount:   120,
		Status:       model.StatusPending,
	}
}

func TestValidate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantField string
	}{
		{name: "valid booking", mutate: func(*model.Booking) {}},
		{name: "zero guests allowed", mutate: func(b *model.Booking) { b.GuestCount = 0 }},
		{name: "missing name", mutate: func(b *model.Booking) { b.CustomerName = "" }, wantField: "customer_name"},
		{name: "bad email", mutate: func(b *model.Booking) { b.Email = "not-an-email" }, wantField: "email"},
		{name: "missing phone", mutate: func(b *model.Booking) { b.Phone = "" }, wantField: "phone"},
		{name: "date with time", mutate: func(b *model.Booking) { b.BookingDate = "2026-06-20T10:00:00" }, wantField: "booking_date"},
		{name: "impossible date", mutate: func(b *model.Booking) { b.BookingDate = "2026-02-30" }, wantField: "booking_date"},
		{name: "unknown slot", mutate: func(b *model.Booking) { b.TimeSlot = "night" }, wantField: "time_slot"},
		{name: "missing event type", mutate: func(b *model.Booking) { b.EventType = "" }, wantField: "event_type"},
		{name: "negative guests", mutate: func(b *model.Booking) { b.GuestCount = -1 }, wantField: "guest_count"},
		{name: "unknown status", mutate: func(b *model.Booking) { b.Status = "done" }, wantField: "status"},
		{name: "long requests", mutate: func(b *model.Booking) { b.SpecialRequests = strings.Repeat("x", 2001) }, wantField: "special_requests"},
		{name: "bad id", mutate: func(b *model.Booking) { b.ID = "123" }, wantField: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
			assert.Contains(t, verrs.Fields(), tt.wantField)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	b := validBooking()
	b.Email = ""
	b.TimeSlot = "noon"

	err := v.Validate(b)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.Fields()
	assert.Equal(t, "email is required", fields["email"])
	assert.Equal(t, "time_slot must be one of: morning afternoon evening", fields["time_slot"])
	assert.Contains(t, err.Error(), "validation failed: 2 error(s)")
}

func TestValidateUpdate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	for _, status := range []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled} {
		assert.NoError(t, v.ValidateUpdate(&model.BookingUpdate{Status: status}), status)
	}
	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{Status: "archived"}))
	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{}))
}

func TestValidateDate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	assert.NoError(t, v.ValidateDate("start_date", "2026-01-31"))
	assert.NoError(t, v.ValidateAvailabilityRequest(&model.AvailabilityRequest{BookingDate: "2026-01-31"}))

	err := v.ValidateDate("start_date", "31/01/2026")
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "start_date must be a date in YYYY-MM-DD format", verrs.Fields()["start_date"])

	err = v.ValidateDate("end_date", "")
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "end_date is required", verrs.Fields()["end_date"])
}
