package slots

import (
	"encoding/json"
	"sort"
	"testing"

	"dinevoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingAt(date, hhmm string) models.ConfirmedBooking {
	return models.ConfirmedBooking{ID: date + hhmm, BookingDate: date, BookingTime: hhmm, Status: models.StatusConfirmed}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		close    string
		duration int
		want     []string
	}{
		{"even window", "18:00", "19:30", 30, []string{"18:00", "18:30", "19:00", "19:30"}},
		{"uneven window stops before close", "18:00", "19:00", 25, []string{"18:00", "18:25", "18:50"}},
		{"single point", "20:00", "20:00", 15, []string{"20:00"}},
		{"zero padded", "09:05", "10:05", 60, []string{"09:05", "10:05"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.open, tt.close, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	_, err := Generate("22:00", "12:00", 30)
	assert.Error(t, err)

	_, err = Generate("12:00", "22:00", 0)
	assert.Error(t, err)

	_, err = Generate("noon", "22:00", 30)
	assert.Error(t, err)
}

func TestComputePartitionsGrid(t *testing.T) {
	existing := []models.ConfirmedBooking{
		bookingAt("2024-05-11", "18:30"),
		bookingAt("2024-05-11", "18:30:00"),
		bookingAt("2024-05-11", "19:15"), // off grid
		bookingAt("2024-05-12", "19:00"), // other date
	}

	grid, err := Compute("2024-05-11", "18:00", "20:00", 30, existing)
	require.NoError(t, err)

	assert.Equal(t, []string{"18:00", "18:30", "19:00", "19:30", "20:00"}, grid.AllSlots)
	assert.Equal(t, []string{"18:30"}, grid.Taken)
	assert.Equal(t, []string{"18:00", "19:00", "19:30", "20:00"}, grid.Available)
	assert.True(t, grid.IsAvailable("19:00"))
	assert.False(t, grid.IsAvailable("18:30"))
}

func TestComputeProperties(t *testing.T) {
	windows := []struct {
		open, close string
		duration    int
	}{
		{"12:00", "22:00", 30},
		{"11:15", "23:00", 45},
		{"00:00", "23:59", 7},
		{"19:00", "19:00", 60},
	}
	existing := []models.ConfirmedBooking{
		bookingAt("2024-06-15", "12:00"),
		bookingAt("2024-06-15", "19:00"),
		bookingAt("2024-06-15", "21:30"),
	}

	for _, w := range windows {
		grid, err := Compute("2024-06-15", w.open, w.close, w.duration, existing)
		require.NoError(t, err)

		assert.True(t, sort.StringsAreSorted(grid.AllSlots))
		seen := map[string]bool{}
		for _, s := range grid.AllSlots {
			assert.False(t, seen[s], "duplicate slot %s", s)
			seen[s] = true
		}

		union := map[string]bool{}
		for _, s := range grid.Available {
			union[s] = true
		}
		for _, s := range grid.Taken {
			assert.False(t, union[s], "slot %s both taken and available", s)
			union[s] = true
		}
		assert.Equal(t, seen, union)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	existing := []models.ConfirmedBooking{bookingAt("2024-05-11", "19:00")}

	a, err := Compute("2024-05-11", "12:00", "22:00", 30, existing)
	require.NoError(t, err)
	b, err := Compute("2024-05-11", "12:00", "22:00", 30, existing)
	require.NoError(t, err)

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	assert.Equal(t, string(ja), string(jb))
}
