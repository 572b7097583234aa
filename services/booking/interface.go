package booking

import (
	"context"

	"dinevoice/models"
)

// Prompter is the conversational channel the negotiator speaks through.
// Ask speaks text and returns the next captured reply. An error means the
// conversation is ending and no further booking attempt should be made.
type Prompter interface {
	Say(ctx context.Context, text string) error
	Ask(ctx context.Context, text string) (string, error)
	Lang() string
}

// Submitter hands a finalized draft to the persistence boundary and
// negotiates an alternative slot on conflict.
type Submitter interface {
	Submit(ctx context.Context, draft *models.BookingDraft, p Prompter) *Result
}

type Outcome string

const (
	OutcomeConfirmed         Outcome = "confirmed"
	OutcomeNoAlternatives    Outcome = "no_alternatives"
	OutcomeNoSelection       Outcome = "no_selection"
	OutcomeConflictExhausted Outcome = "conflict_exhausted"
	OutcomeFailed            Outcome = "failed"
)

// Result is the terminal state of one submission.
type Result struct {
	Outcome  Outcome                  `json:"outcome"`
	Booking  *models.ConfirmedBooking `json:"booking,omitempty"`
	Draft    *models.BookingDraft     `json:"draft,omitempty"`
	Offered  []string                 `json:"offered,omitempty"`
	Attempts int                      `json:"attempts"`
	Message  string                   `json:"message,omitempty"`
}

func (r *Result) Confirmed() bool {
	return r != nil && r.Outcome == OutcomeConfirmed
}
