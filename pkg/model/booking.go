package model

import (
	"time"
)

const (
	TimeSlotMorning   = "morning"
	TimeSlotAfternoon = "afternoon"
	TimeSlotEvening   = "evening"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	// DateLayout is the booking_date wire format. Dates carry no time zone.
	DateLayout = "2006-01-02"
)

// TimeSlots lists the bookable slots of a day in chronological order.
var TimeSlots = []string{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening}

type Booking struct {
	ID              string    `json:"id" bson:"_id" validate:"omitempty,uuid4"`
	CustomerName    string    `json:"customer_name" bson:"customer_name" validate:"required,max=200"`
	Email           string    `json:"email" bson:"email" validate:"required,email,max=254"`
	Phone           string    `json:"phone" bson:"phone" validate:"required,max=50"`
	BookingDate     string    `json:"booking_date" bson:"booking_date" validate:"required,datetime=2006-01-02"`
	TimeSlot        string    `json:"time_slot" bson:"time_slot" validate:"required,oneof=morning afternoon evening"`
	EventType       string    `json:"event_type" bson:"event_type" validate:"required,max=100"`
	GuestCount      int       `json:"guest_count" bson:"guest_count" validate:"min=0,max=100000"`
	SpecialRequests string    `json:"special_requests" bson:"special_requests" validate:"max=2000"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// IsActive reports whether the booking holds its slot.
func (b *Booking) IsActive() bool {
	return IsActiveStatus(b.Status)
}

func IsActiveStatus(status string) bool {
	return status != StatusCancelled
}

// BookingUpdate is the only mutation allowed after creation.
type BookingUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type AvailabilityRequest struct {
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
}

type Availability struct {
	Date               string `json:"date"`
	MorningAvailable   bool   `json:"morning_available"`
	AfternoonAvailable bool   `json:"afternoon_available"`
	EveningAvailable   bool   `json:"evening_available"`
}

// NewAvailability builds the per-slot view for date from the slots that are
// currently held by active bookings.
func NewAvailability(date string, occupied []string) *Availability {
	taken := make(map[string]bool, len(occupied))
	for _, slot := range occupied {
		taken[slot] = true
	}
	return &Availability{
		Date:               date,
		MorningAvailable:   !taken[TimeSlotMorning],
		AfternoonAvailable: !taken[TimeSlotAfternoon],
		EveningAvailable:   !taken[TimeSlotEvening],
	}
}

// IsAvailable reports the availability flag of a single slot.
func (a *Availability) IsAvailable(slot string) bool {
	switch slot {
	case TimeSlotMorning:
		return a.MorningAvailable
	case TimeSlotAfternoon:
		return a.AfternoonAvailable
	case TimeSlotEvening:
		return a.EveningAvailable
	}
	return false
}

// AvailabilityRange maps a booking_date to the slots occupied on it. Dates
// without active bookings are absent.
type AvailabilityRange map[string][]string
