package reservationRepo

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotConflict means another booking already holds the date and time.
	ErrSlotConflict = errors.New("slot already booked")
	// ErrDuplicateBooking means the booking identifier was already used.
	ErrDuplicateBooking = errors.New("booking id already exists")
	ErrNotFound         = errors.New("booking not found")
)

// StoreError carries a message meant to be shown to the guest.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(msg string) error {
	return &StoreError{Message: msg}
}
