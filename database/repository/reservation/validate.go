package reservationRepo

import (
	"time"

	"dinevoice/models"
	"dinevoice/services/slots"

	"github.com/google/uuid"
)

// prepare validates a draft and applies the boundary's defaults before insert.
func prepare(draft models.BookingDraft, now time.Time) (*models.ConfirmedBooking, error) {
	if draft.NumberOfGuests < 1 {
		return nil, NewStoreError("number of guests must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", draft.BookingDate); err != nil {
		return nil, NewStoreError("booking date must be YYYY-MM-DD")
	}
	hhmm, ok := slots.Truncate(draft.BookingTime)
	if !ok {
		return nil, NewStoreError("booking time must be HH:MM")
	}
	draft.BookingTime = hhmm

	// Unset seating defaults to indoor.
	if !draft.SeatingPreference.Valid() {
		draft.SeatingPreference = models.SeatingIndoor
	}

	id := draft.BookingID
	if id == "" {
		id = uuid.New().String()
	}
	return draft.Confirm(id, now), nil
}
