package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	reservationRepo "dinevoice/database/repository/reservation"
	"dinevoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteStoreMapsStatusCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var draft models.BookingDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		w.Header().Set("Content-Type", "application/json")
		switch draft.BookingTime {
		case "19:00":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(draft.Confirm(draft.BookingID, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)))
		case "20:00":
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"conflict":true}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"booking time must be HH:MM"}`))
		}
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL + "/")
	ctx := context.Background()

	booking, err := store.CreateBooking(ctx, *testDraft("r-1", "19:00"))
	require.NoError(t, err)
	assert.Equal(t, "r-1", booking.ID)

	_, err = store.CreateBooking(ctx, *testDraft("r-2", "20:00"))
	assert.True(t, errors.Is(err, reservationRepo.ErrSlotConflict))

	_, err = store.CreateBooking(ctx, *testDraft("r-3", "bogus"))
	var se *reservationRepo.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "booking time must be HH:MM", se.Message)
}

func TestRemoteStoreQueryAvailability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/availability", r.URL.Path)
		assert.Equal(t, "2024-05-11", r.URL.Query().Get("date"))
		assert.Equal(t, "30", r.URL.Query().Get("duration"))
		json.NewEncoder(w).Encode(models.SlotGrid{Date: "2024-05-11", Available: []string{"18:00"}})
	}))
	defer srv.Close()

	grid, err := NewRemoteStore(srv.URL).QueryAvailability(context.Background(), "2024-05-11", "18:00", "19:30", 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"18:00"}, grid.Available)
}
