package slots

import (
	"fmt"
	"strconv"
	"strings"

	"dinevoice/models"
)

// ParseClock converts "HH:MM" (optionally followed by ":SS") to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Truncate normalizes a stored booking time to "HH:MM". ok is false when
// the value is not a clock time.
func Truncate(s string) (string, bool) {
	m, err := ParseClock(s)
	if err != nil {
		return "", false
	}
	return FormatClock(m), true
}

// Generate lists every start time from open to close inclusive, stepping by
// durationMinutes. The last slot never lands after close.
func Generate(open, close string, durationMinutes int) ([]string, error) {
	start, err := ParseClock(open)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(close)
	if err != nil {
		return nil, err
	}
	if start > end {
		return nil, fmt.Errorf("open time %s is after close time %s", open, close)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", durationMinutes)
	}

	out := make([]string, 0, (end-start)/durationMinutes+1)
	for t := start; t <= end; t += durationMinutes {
		out = append(out, FormatClock(t))
	}
	return out, nil
}

// Compute builds the SlotGrid for date. Bookings on other dates, and times
// that do not fall on the grid, are ignored.
func Compute(date, open, close string, durationMinutes int, existing []models.ConfirmedBooking) (*models.SlotGrid, error) {
	all, err := Generate(open, close, durationMinutes)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		if b.BookingDate != date {
			continue
		}
		if hhmm, ok := Truncate(b.BookingTime); ok {
			booked[hhmm] = struct{}{}
		}
	}

	grid := &models.SlotGrid{
		Date:      date,
		AllSlots:  all,
		Taken:     []string{},
		Available: []string{},
	}
	for _, s := range all {
		if _, ok := booked[s]; ok {
			grid.Taken = append(grid.Taken, s)
			continue
		}
		grid.Available = append(grid.Available, s)
	}
	return grid, nil
}
