package models

// NotificationPayload is queued after a booking is confirmed.
type NotificationPayload struct {
	BookingID string `json:"bookingId"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	StaffNote string `json:"staffNote,omitempty"`
}
