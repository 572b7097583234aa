// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"dinevoice/models"
)

// ReservationRepository is the persistence boundary for bookings. Implementations
// must guarantee at most one booking per (date, time) and per booking ID.
type ReservationRepository interface {
	CreateBooking(ctx context.Context, draft models.BookingDraft) (*models.ConfirmedBooking, error)
	QueryAvailability(ctx context.Context, date, openTime, closeTime string, durationMinutes int) (*models.SlotGrid, error)
	GetByID(ctx context.Context, id string) (*models.ConfirmedBooking, error)
	ListByDate(ctx context.Context, date string) ([]models.ConfirmedBooking, error)
}
