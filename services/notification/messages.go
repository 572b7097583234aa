package notification

import (
	"fmt"
	"strings"

	"dinevoice/models"
	"dinevoice/services/intent"
)

var confirmationText = map[string]struct {
	subject, body string
	seating       map[models.Seating]string
}{
	"en": {
		subject: "Your table is confirmed",
		body:    "Hi %s, your table for %d on %s at %s is confirmed (seating: %s). Booking ID: %s.",
		seating: map[models.Seating]string{models.SeatingIndoor: "indoor", models.SeatingOutdoor: "outdoor"},
	},
	"hi": {
		subject: "आपकी टेबल बुक हो गई है",
		body:    "नमस्ते %s, %d लोगों के लिए %s को %s बजे आपकी टेबल बुक है (बैठने की जगह: %s)। बुकिंग आईडी: %s।",
		seating: map[models.Seating]string{models.SeatingIndoor: "अंदर", models.SeatingOutdoor: "बाहर"},
	},
}

// PayloadFor renders the guest and staff messages for a confirmed booking.
func PayloadFor(b *models.ConfirmedBooking) models.NotificationPayload {
	t, ok := confirmationText[intent.Lang(b.Locale)]
	if !ok {
		t = confirmationText["en"]
	}
	name := b.CustomerName
	if name == "" {
		name = "guest"
	}
	return models.NotificationPayload{
		BookingID: b.ID,
		Phone:     b.ContactPhone,
		Email:     b.ContactEmail,
		Subject:   t.subject,
		Body:      fmt.Sprintf(t.body, name, b.NumberOfGuests, b.BookingDate, b.BookingTime, t.seating[b.SeatingPreference], b.ID),
		StaffNote: staffNote(b),
	}
}

func staffNote(b *models.ConfirmedBooking) string {
	parts := []string{fmt.Sprintf("%s, %d guests, %s %s, %s", b.CustomerName, b.NumberOfGuests, b.BookingDate, b.BookingTime, b.SeatingPreference)}
	if b.SeatingFallback {
		parts = append(parts, "seating defaulted (no forecast)")
	}
	if b.CuisinePreference != "" {
		parts = append(parts, "cuisine: "+b.CuisinePreference)
	}
	if b.SpecialRequests != "" {
		parts = append(parts, "requests: "+b.SpecialRequests)
	}
	return strings.Join(parts, "; ")
}
