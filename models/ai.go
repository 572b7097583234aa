package models

// Intent holds structured hints from the NLP extractor. Every field is optional.
type Intent struct {
	CustomerName      *string  `json:"customerName,omitempty"`
	NumberOfGuests    *int     `json:"numberOfGuests,omitempty"`
	BookingDate       *string  `json:"bookingDate,omitempty"` // "YYYY-MM-DD"
	BookingTime       *string  `json:"bookingTime,omitempty"` // "HH:MM"
	CuisinePreference *string  `json:"cuisinePreference,omitempty"`
	SpecialRequests   *string  `json:"specialRequests,omitempty"`
	SeatingPreference *Seating `json:"seatingPreference,omitempty"`
}

// Empty reports whether the extractor produced no usable signal.
func (i *Intent) Empty() bool {
	return i == nil || (i.CustomerName == nil && i.NumberOfGuests == nil && i.BookingDate == nil &&
		i.BookingTime == nil && i.CuisinePreference == nil && i.SpecialRequests == nil && i.SeatingPreference == nil)
}
