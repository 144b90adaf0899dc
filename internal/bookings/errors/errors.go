package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrSlotTaken is returned by the store when a write would leave two
	// active bookings on the same date and time slot.
	ErrSlotTaken = errors.New("time slot already holds an active booking")

	ErrDuplicateID = errors.New("booking id already exists")
)
