package models

// SlotGrid is the computed schedule for one date and operating window.
type SlotGrid struct {
	Date      string   `json:"date"`      // "YYYY-MM-DD"
	AllSlots  []string `json:"allSlots"`  // every start time from open to close, ascending
	Taken     []string `json:"taken"`     // booked start times, in slot order
	Available []string `json:"available"` // AllSlots minus Taken, order preserved
}

// IsAvailable reports whether hhmm is an open slot.
func (g *SlotGrid) IsAvailable(hhmm string) bool {
	for _, s := range g.Available {
		if s == hhmm {
			return true
		}
	}
	return false
}
