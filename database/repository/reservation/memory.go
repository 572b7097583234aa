package reservationRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"dinevoice/models"
	"dinevoice/services/slots"
)

// MemoryReservationRepo keeps bookings in process. Tests use it in place of
// MongoDB.
type MemoryReservationRepo struct {
	mu     sync.Mutex
	byID   map[string]models.ConfirmedBooking
	bySlot map[string]string
	now    func() time.Time
}

func NewMemoryReservationRepo() *MemoryReservationRepo {
	return &MemoryReservationRepo{
		byID:   make(map[string]models.ConfirmedBooking),
		bySlot: make(map[string]string),
		now:    time.Now,
	}
}

func slotKey(date, hhmm string) string {
	return date + " " + hhmm
}

func (r *MemoryReservationRepo) CreateBooking(_ context.Context, draft models.BookingDraft) (*models.ConfirmedBooking, error) {
	booking, err := prepare(draft, r.now().UTC())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[booking.ID]; ok {
		return nil, ErrDuplicateBooking
	}
	key := slotKey(booking.BookingDate, booking.BookingTime)
	if _, ok := r.bySlot[key]; ok {
		return nil, ErrSlotConflict
	}
	r.byID[booking.ID] = *booking
	r.bySlot[key] = booking.ID
	return booking, nil
}

func (r *MemoryReservationRepo) QueryAvailability(ctx context.Context, date, openTime, closeTime string, durationMinutes int) (*models.SlotGrid, error) {
	existing, err := r.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return slots.Compute(date, openTime, closeTime, durationMinutes, existing)
}

func (r *MemoryReservationRepo) GetByID(_ context.Context, id string) (*models.ConfirmedBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *MemoryReservationRepo) ListByDate(_ context.Context, date string) ([]models.ConfirmedBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ConfirmedBooking
	for _, b := range r.byID {
		if b.BookingDate == date {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingTime < out[j].BookingTime })
	return out, nil
}
