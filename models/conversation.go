package models

import "time"

// ConversationState is a step of the reservation dialogue.
type ConversationState string

const (
	StateIdle              ConversationState = "idle"
	StateGreeting          ConversationState = "greeting"
	StateAskField          ConversationState = "ask_field"
	StateListening         ConversationState = "listening"
	StateReprompt          ConversationState = "reprompt"
	StateSeatingSuggestion ConversationState = "seating_suggestion"
	StateConfirmSummary    ConversationState = "confirm_summary"
	StateSubmitting        ConversationState = "submitting"
	StateConfirmed         ConversationState = "confirmed"
	StateCancelled         ConversationState = "cancelled"
	StateStopped           ConversationState = "stopped"
	StateFailed            ConversationState = "failed"
)

// Terminal reports whether no further steps follow.
func (s ConversationState) Terminal() bool {
	switch s {
	case StateConfirmed, StateCancelled, StateStopped, StateFailed:
		return true
	}
	return false
}

// ConversationSnapshot is the inspectable view of a running conversation.
type ConversationSnapshot struct {
	SessionID string            `json:"sessionId"`
	State     ConversationState `json:"state"`
	Field     Field             `json:"field,omitempty"`
	Draft     *BookingDraft     `json:"draft,omitempty"`
	Booking   *ConfirmedBooking `json:"booking,omitempty"`
	Outcome   string            `json:"outcome,omitempty"`
	Message   string            `json:"message,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
