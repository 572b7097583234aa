package models

import "time"

type Seating string

const (
	SeatingIndoor  Seating = "indoor"
	SeatingOutdoor Seating = "outdoor"
	SeatingUnknown Seating = "unknown"
)

// Opposite flips indoor and outdoor; anything else is returned unchanged.
func (s Seating) Opposite() Seating {
	switch s {
	case SeatingIndoor:
		return SeatingOutdoor
	case SeatingOutdoor:
		return SeatingIndoor
	}
	return s
}

func (s Seating) Valid() bool {
	return s == SeatingIndoor || s == SeatingOutdoor
}

const StatusConfirmed = "confirmed"

// Field names a draft attribute collected during the conversation.
type Field string

const (
	FieldCustomerName Field = "customerName"
	FieldGuests       Field = "numberOfGuests"
	FieldDate         Field = "bookingDate"
	FieldTime         Field = "bookingTime"
	FieldCuisine      Field = "cuisinePreference"
	FieldRequests     Field = "specialRequests"
	FieldSeating      Field = "seatingPreference"
)

// FieldOrder is the order in which the conversation asks for fields.
var FieldOrder = []Field{FieldCustomerName, FieldGuests, FieldDate, FieldTime, FieldCuisine, FieldRequests}

// Optional reports whether an explicit "none" answer is acceptable.
func (f Field) Optional() bool {
	return f == FieldCuisine || f == FieldRequests
}

// Source records where a field value came from.
type Source string

const (
	SourceSlotPick Source = "slot_pick"
	SourceSpeech   Source = "speech"
	SourceNLP      Source = "nlp"
	SourceDefault  Source = "default"
	SourceWeather  Source = "weather"
)

// Rank orders sources by authority; higher wins.
func (s Source) Rank() int {
	switch s {
	case SourceSlotPick:
		return 4
	case SourceSpeech:
		return 3
	case SourceNLP:
		return 2
	case SourceDefault:
		return 1
	case SourceWeather:
		return 0
	}
	return -1
}

// BookingDraft is the in-progress reservation owned by a single conversation.
type BookingDraft struct {
	BookingID         string           `json:"bookingId"`                   // Caller-supplied unique identifier (UUID)
	CustomerName      string           `json:"customerName"`                // Name given by the guest
	NumberOfGuests    int              `json:"numberOfGuests"`              // Always >= 1 once resolved
	BookingDate       string           `json:"bookingDate"`                 // "YYYY-MM-DD"
	BookingTime       string           `json:"bookingTime"`                 // "HH:MM", 24h
	CuisinePreference string           `json:"cuisinePreference,omitempty"` // Optional
	SpecialRequests   string           `json:"specialRequests,omitempty"`   // Optional
	SeatingPreference Seating          `json:"seatingPreference,omitempty"` // Empty means unset
	SeatingFallback   bool             `json:"seatingFallback,omitempty"`   // Suggestion was the no-forecast default
	WeatherSummary    string           `json:"weatherSummary,omitempty"`
	Locale            string           `json:"locale"`
	ContactPhone      string           `json:"contactPhone,omitempty"`
	ContactEmail      string           `json:"contactEmail,omitempty"`
	Sources           map[Field]Source `json:"sources,omitempty"`
}

// NewDraft returns an empty draft for the given locale.
func NewDraft(bookingID, locale string) *BookingDraft {
	return &BookingDraft{
		BookingID: bookingID,
		Locale:    locale,
		Sources:   map[Field]Source{},
	}
}

// Resolved reports whether a field has been filled by any source, including
// an explicit empty answer for optional fields.
func (d *BookingDraft) Resolved(f Field) bool {
	if d.Sources == nil {
		return false
	}
	_, ok := d.Sources[f]
	return ok
}

// SourceOf returns the recorded source of a field or "" when unresolved.
func (d *BookingDraft) SourceOf(f Field) Source {
	if d.Sources == nil {
		return ""
	}
	return d.Sources[f]
}

func (d *BookingDraft) mark(f Field, src Source) {
	if d.Sources == nil {
		d.Sources = map[Field]Source{}
	}
	d.Sources[f] = src
}

// Set stores a value for f and records its source.
func (d *BookingDraft) Set(f Field, value string, src Source) {
	switch f {
	case FieldCustomerName:
		d.CustomerName = value
	case FieldDate:
		d.BookingDate = value
	case FieldTime:
		d.BookingTime = value
	case FieldCuisine:
		d.CuisinePreference = value
	case FieldRequests:
		d.SpecialRequests = value
	case FieldSeating:
		d.SeatingPreference = Seating(value)
	default:
		return
	}
	d.mark(f, src)
}

// SetGuests stores the party size and records its source.
func (d *BookingDraft) SetGuests(n int, src Source) {
	d.NumberOfGuests = n
	d.mark(FieldGuests, src)
}

// Clone returns a deep copy.
func (d *BookingDraft) Clone() *BookingDraft {
	out := *d
	out.Sources = make(map[Field]Source, len(d.Sources))
	for k, v := range d.Sources {
		out.Sources[k] = v
	}
	return &out
}

// ConfirmedBooking is the immutable record returned by the persistence boundary.
type ConfirmedBooking struct {
	ID                string    `bson:"id" json:"id"`
	CustomerName      string    `bson:"customer_name" json:"customerName"`
	NumberOfGuests    int       `bson:"number_of_guests" json:"numberOfGuests"`
	BookingDate       string    `bson:"date" json:"bookingDate"` // "YYYY-MM-DD"
	BookingTime       string    `bson:"time" json:"bookingTime"` // "HH:MM"
	CuisinePreference string    `bson:"cuisine_preference,omitempty" json:"cuisinePreference,omitempty"`
	SpecialRequests   string    `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`
	SeatingPreference Seating   `bson:"seating_preference" json:"seatingPreference"`
	SeatingFallback   bool      `bson:"seating_fallback" json:"seatingFallback"` // Seating came from the no-forecast default
	WeatherSummary    string    `bson:"weather_summary,omitempty" json:"weatherSummary,omitempty"`
	Locale            string    `bson:"locale" json:"locale"`
	ContactPhone      string    `bson:"contact_phone,omitempty" json:"contactPhone,omitempty"`
	ContactEmail      string    `bson:"contact_email,omitempty" json:"contactEmail,omitempty"`
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
}

// Confirm promotes a draft to a ConfirmedBooking with the given identifier.
func (d *BookingDraft) Confirm(id string, now time.Time) *ConfirmedBooking {
	return &ConfirmedBooking{
		ID:                id,
		CustomerName:      d.CustomerName,
		NumberOfGuests:    d.NumberOfGuests,
		BookingDate:       d.BookingDate,
		BookingTime:       d.BookingTime,
		CuisinePreference: d.CuisinePreference,
		SpecialRequests:   d.SpecialRequests,
		SeatingPreference: d.SeatingPreference,
		SeatingFallback:   d.SeatingFallback,
		WeatherSummary:    d.WeatherSummary,
		Locale:            d.Locale,
		ContactPhone:      d.ContactPhone,
		ContactEmail:      d.ContactEmail,
		Status:            StatusConfirmed,
		CreatedAt:         now,
	}
}
