package booking

import (
	"context"
	"errors"

	reservationRepo "dinevoice/database/repository/reservation"
	"dinevoice/models"
	"dinevoice/services/intent"
	"dinevoice/utils"

	"go.uber.org/zap"
)

// Hours describes the restaurant's bookable window.
type Hours struct {
	Open            string
	Close           string
	DurationMinutes int
}

// Negotiator submits drafts and, on a slot conflict, offers nearby free
// slots and retries exactly once with the guest's choice.
type Negotiator struct {
	store     reservationRepo.ReservationRepository
	hours     Hours
	browseURL string
	logger    *zap.Logger
}

func NewNegotiator(store reservationRepo.ReservationRepository, hours Hours, browseURL string, logger *zap.Logger) *Negotiator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Negotiator{store: store, hours: hours, browseURL: browseURL, logger: logger}
}

func (n *Negotiator) Submit(ctx context.Context, draft *models.BookingDraft, p Prompter) *Result {
	res := n.submit(ctx, draft, p)
	utils.IncBookingOutcome(string(res.Outcome))
	if res.Message != "" && !res.Confirmed() {
		if err := p.Say(ctx, res.Message); err != nil {
			n.logger.Warn("Failed to speak booking outcome", zap.Error(err))
		}
	}
	return res
}

func (n *Negotiator) submit(ctx context.Context, draft *models.BookingDraft, p Prompter) *Result {
	lang := p.Lang()
	res := &Result{Draft: draft, Attempts: 1}

	booking, err := n.store.CreateBooking(ctx, *draft)
	if err == nil {
		res.Outcome, res.Booking = OutcomeConfirmed, booking
		return res
	}
	if !errors.Is(err, reservationRepo.ErrSlotConflict) {
		return n.fail(res, lang, err)
	}

	n.logger.Info("Slot conflict, looking for alternatives",
		zap.String("bookingId", draft.BookingID),
		zap.String("date", draft.BookingDate),
		zap.String("time", draft.BookingTime))

	grid, err := n.store.QueryAvailability(ctx, draft.BookingDate, n.hours.Open, n.hours.Close, n.hours.DurationMinutes)
	if err != nil {
		return n.fail(res, lang, err)
	}
	offered := Alternatives(grid.Available, draft.BookingTime, MaxAlternatives)
	res.Offered = offered
	if len(offered) == 0 {
		res.Outcome = OutcomeNoAlternatives
		res.Message = text(lang, msgNoAlternatives, draft.BookingDate)
		return res
	}

	reply, err := p.Ask(ctx, text(lang, msgOffer, draft.BookingDate, draft.BookingTime, spokenList(lang, offered)))
	if err != nil {
		n.logger.Info("Alternative offer abandoned", zap.Error(err))
		res.Outcome = OutcomeNoSelection
		return res
	}
	choice, ok := MatchAlternative(reply, offered)
	if !ok {
		n.logger.Info("Reply did not select an alternative", zap.Error(&SelectionError{Reply: reply, Offered: offered}))
		res.Outcome = OutcomeNoSelection
		res.Message = text(lang, msgNoSelection, n.browseURL)
		return res
	}

	retry := draft.Clone()
	intent.Offer(retry, models.FieldTime, choice, models.SourceSlotPick)
	res.Draft = retry
	res.Attempts = 2

	booking, err = n.store.CreateBooking(ctx, *retry)
	switch {
	case err == nil:
		res.Outcome, res.Booking = OutcomeConfirmed, booking
	case errors.Is(err, reservationRepo.ErrSlotConflict):
		res.Outcome = OutcomeConflictExhausted
		res.Message = text(lang, msgExhausted, choice, n.browseURL)
	default:
		return n.fail(res, lang, err)
	}
	return res
}

// fail surfaces the boundary's message when it carries one.
func (n *Negotiator) fail(res *Result, lang string, err error) *Result {
	n.logger.Error("Booking submission failed", zap.Error(err))
	res.Outcome = OutcomeFailed
	var se *reservationRepo.StoreError
	if errors.As(err, &se) && se.Message != "" {
		res.Message = text(lang, msgFailedWith, se.Message)
	} else {
		res.Message = text(lang, msgFailed)
	}
	return res
}
