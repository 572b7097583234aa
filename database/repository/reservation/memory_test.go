package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"dinevoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftFor(id, date, hhmm string) models.BookingDraft {
	d := models.NewDraft(id, "en-IN")
	d.CustomerName = "Asha"
	d.NumberOfGuests = 2
	d.BookingDate = date
	d.BookingTime = hhmm
	return *d
}

func TestCreateBookingConfirms(t *testing.T) {
	repo := NewMemoryReservationRepo()

	got, err := repo.CreateBooking(context.Background(), draftFor("b-1", "2024-05-11", "19:00"))
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.ID)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, models.SeatingIndoor, got.SeatingPreference, "unset seating gets the boundary default")

	stored, err := repo.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, got.BookingTime, stored.BookingTime)
}

func TestCreateBookingConflicts(t *testing.T) {
	repo := NewMemoryReservationRepo()
	ctx := context.Background()

	_, err := repo.CreateBooking(ctx, draftFor("b-1", "2024-05-11", "19:00"))
	require.NoError(t, err)

	_, err = repo.CreateBooking(ctx, draftFor("b-2", "2024-05-11", "19:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	_, err = repo.CreateBooking(ctx, draftFor("b-1", "2024-05-11", "20:00"))
	assert.ErrorIs(t, err, ErrDuplicateBooking)

	_, err = repo.CreateBooking(ctx, draftFor("b-3", "2024-05-12", "19:00"))
	assert.NoError(t, err)
}

func TestCreateBookingValidates(t *testing.T) {
	repo := NewMemoryReservationRepo()
	d := draftFor("b-1", "2024-05-11", "19:00")
	d.NumberOfGuests = 0

	_, err := repo.CreateBooking(context.Background(), d)
	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Contains(t, storeErr.Message, "guests")
}

func TestConcurrentSubmissionsForSameSlot(t *testing.T) {
	repo := NewMemoryReservationRepo()
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateBooking(ctx, draftFor(fmt.Sprintf("b-%d", i), "2024-05-11", "19:00"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, ErrSlotConflict) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 19, conflicts)
}

func TestQueryAvailability(t *testing.T) {
	repo := NewMemoryReservationRepo()
	ctx := context.Background()
	_, err := repo.CreateBooking(ctx, draftFor("b-1", "2024-05-11", "19:00"))
	require.NoError(t, err)

	grid, err := repo.QueryAvailability(ctx, "2024-05-11", "18:00", "20:00", 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"19:00"}, grid.Taken)
	assert.Equal(t, []string{"18:00", "18:30", "19:30", "20:00"}, grid.Available)
}
