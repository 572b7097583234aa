package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"dinevoice/models"
	"dinevoice/services/booking"
	"dinevoice/services/intent"
	"dinevoice/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultListenTimeout = 14 * time.Second

// ErrStopped is returned to the negotiator when a stop arrives mid-offer.
var ErrStopped = errors.New("conversation stopped")

// Result is the terminal outcome of a conversation.
type Result struct {
	State   models.ConversationState `json:"state"`
	Draft   *models.BookingDraft     `json:"draft,omitempty"`
	Booking *models.ConfirmedBooking `json:"booking,omitempty"`
	Outcome booking.Outcome          `json:"outcome,omitempty"`
	Message string                   `json:"message,omitempty"`
}

// Orchestrator drives one guest through the reservation dialogue. It is
// strictly sequential: every prompt is spoken before the next capture and
// the draft is owned by the goroutine calling Run.
type Orchestrator struct {
	speech     Speech
	negotiator booking.Submitter
	logger     *zap.Logger

	normalizer *intent.Normalizer
	extractor  IntentExtractor
	weather    WeatherAdvisor
	dispatcher Dispatcher
	events     EventPublisher
	store      DraftStore

	sessionID     string
	locale        string
	lang          string
	listenTimeout time.Duration
	lat, lon      float64
	now           func() time.Time
	contactPhone  string
	contactEmail  string

	stop  *StopToken
	draft *models.BookingDraft

	mu   sync.RWMutex
	snap models.ConversationSnapshot
}

func NewOrchestrator(speech Speech, negotiator booking.Submitter, logger *zap.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		speech:        speech,
		negotiator:    negotiator,
		normalizer:    intent.NewNormalizer(nil),
		sessionID:     uuid.New().String(),
		locale:        "en-IN",
		listenTimeout: DefaultListenTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.lang = intent.Lang(o.locale)
	o.logger = logger.With(zap.String("sessionId", o.sessionID))

	o.draft = models.NewDraft(uuid.New().String(), o.locale)
	o.draft.ContactPhone = o.contactPhone
	o.draft.ContactEmail = o.contactEmail
	o.snap = models.ConversationSnapshot{
		SessionID: o.sessionID,
		State:     models.StateIdle,
		Draft:     o.draft.Clone(),
		UpdatedAt: o.now(),
	}
	return o
}

func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

// Lang is the prompt language, "en" or "hi".
func (o *Orchestrator) Lang() string {
	return o.lang
}

// Snapshot returns a copy of the latest state. Safe to call from any goroutine.
func (o *Orchestrator) Snapshot() models.ConversationSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	snap := o.snap
	if snap.Draft != nil {
		snap.Draft = snap.Draft.Clone()
	}
	return snap
}

// Run executes the dialogue until it confirms, cancels, fails or is stopped.
// The returned error is non-nil only when the conversation could not start.
func (o *Orchestrator) Run(ctx context.Context, stop *StopToken) (*Result, error) {
	if stop == nil {
		stop = NewStopToken()
	}
	o.stop = stop

	if o.speech == nil || !o.speech.Supported() {
		o.logger.Error("Speech capability unavailable")
		return o.finish(ctx, models.StateFailed, ErrSpeechUnsupported.Error(), nil), ErrSpeechUnsupported
	}

	o.transition(ctx, models.StateGreeting, "")
	o.say(ctx, phrase(o.lang, pGreeting))

	for _, f := range models.FieldOrder {
		if o.halted(ctx) {
			return o.stopped(ctx), nil
		}
		if f == models.FieldTime {
			o.suggestSeating(ctx)
			if o.halted(ctx) {
				return o.stopped(ctx), nil
			}
		}
		if o.draft.Resolved(f) {
			o.logger.Debug("Skipping resolved field",
				zap.String("field", string(f)),
				zap.String("source", string(o.draft.SourceOf(f))))
			continue
		}
		o.askField(ctx, f)
	}
	if o.halted(ctx) {
		return o.stopped(ctx), nil
	}

	o.transition(ctx, models.StateConfirmSummary, "")
	reply := o.ask(ctx, "", summary(o.lang, o.draft))
	if o.halted(ctx) {
		return o.stopped(ctx), nil
	}
	if intent.Classify(reply) != intent.Affirmative {
		msg := phrase(o.lang, pCancelled)
		o.say(ctx, msg)
		return o.finish(ctx, models.StateCancelled, msg, nil), nil
	}

	o.transition(ctx, models.StateSubmitting, "")
	res := o.negotiator.Submit(ctx, o.draft.Clone(), prompter{o})
	if res.Draft != nil {
		o.draft = res.Draft
	}
	if !res.Confirmed() {
		if o.halted(ctx) {
			return o.stopped(ctx), nil
		}
		return o.finish(ctx, models.StateFailed, res.Message, res), nil
	}

	msg := confirmation(o.lang, res.Booking)
	o.say(ctx, msg)
	o.announce(ctx, res.Booking)
	return o.finish(ctx, models.StateConfirmed, msg, res), nil
}

func (o *Orchestrator) askField(ctx context.Context, f models.Field) {
	o.transition(ctx, models.StateAskField, f)
	reply := o.ask(ctx, f, fieldPrompt(o.lang, f))
	if o.halted(ctx) {
		return
	}

	var hint *models.Intent
	if reply != "" && o.extractor != nil && intent.ShouldExtract(reply) {
		hint = o.extractor.ExtractIntent(ctx, reply, o.locale)
	}
	o.draft = o.normalizer.Normalize(o.draft, map[models.Field]string{f: reply}, hint)
	o.record(ctx)
}

// suggestSeating runs the weather sub-dialogue. A yes keeps the suggested
// side, a no flips it, anything else leaves the preference untouched.
func (o *Orchestrator) suggestSeating(ctx context.Context) {
	o.transition(ctx, models.StateSeatingSuggestion, models.FieldSeating)

	sug := o.forecast(ctx)
	suggested := sug.Recommendation
	if suggested.Valid() {
		o.draft.SeatingFallback = false
		o.draft.WeatherSummary = sug.SummaryText
	} else {
		suggested = models.SeatingIndoor
		o.draft.SeatingFallback = true
		o.draft.WeatherSummary = ""
	}

	reply := o.ask(ctx, models.FieldSeating, seatingQuestion(o.lang, o.draft.BookingDate, sug))
	switch intent.Classify(reply) {
	case intent.Affirmative:
		intent.Offer(o.draft, models.FieldSeating, string(suggested), models.SourceSpeech)
	case intent.Negative:
		intent.Offer(o.draft, models.FieldSeating, string(suggested.Opposite()), models.SourceSpeech)
	default:
		o.logger.Info("Seating reply ambiguous", zap.String("reply", reply))
	}
	o.record(ctx)
}

func (o *Orchestrator) forecast(ctx context.Context) *models.WeatherSuggestion {
	if o.weather == nil || o.draft.BookingDate == "" {
		return models.UnknownWeather()
	}
	sug, err := o.weather.GetForecast(ctx, o.draft.BookingDate, o.lat, o.lon)
	if err != nil || sug == nil {
		o.logger.Warn("Forecast unavailable, suggesting indoor seating",
			zap.String("date", o.draft.BookingDate), zap.Error(err))
		return models.UnknownWeather()
	}
	return sug
}

// ask speaks prompt and captures a reply. An empty capture gets exactly one
// reprompt; whatever comes back the second time is accepted.
func (o *Orchestrator) ask(ctx context.Context, f models.Field, prompt string) string {
	o.say(ctx, prompt)
	reply := o.listen(ctx, f)
	if reply != "" || o.halted(ctx) {
		return reply
	}
	o.transition(ctx, models.StateReprompt, f)
	o.say(ctx, phrase(o.lang, pReprompt)+" "+prompt)
	return o.listen(ctx, f)
}

func (o *Orchestrator) say(ctx context.Context, text string) {
	if err := o.speech.Speak(ctx, text, o.lang); err != nil {
		o.logger.Warn("Speak failed", zap.Error(err))
	}
}

func (o *Orchestrator) listen(ctx context.Context, f models.Field) string {
	o.transition(ctx, models.StateListening, f)
	text, err := o.speech.Listen(ctx, o.lang, o.listenTimeout)
	if err != nil {
		o.logger.Debug("Capture ended without transcript", zap.String("field", string(f)), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(text)
}

func (o *Orchestrator) halted(ctx context.Context) bool {
	return o.stop.Stopped() || ctx.Err() != nil
}

func (o *Orchestrator) stopped(ctx context.Context) *Result {
	msg := phrase(o.lang, pStopped)
	o.say(context.WithoutCancel(ctx), msg)
	return o.finish(ctx, models.StateStopped, msg, nil)
}

// announce fires notifications and the confirmation event. Neither can
// affect the outcome the guest has already heard.
func (o *Orchestrator) announce(ctx context.Context, b *models.ConfirmedBooking) {
	bg := context.WithoutCancel(ctx)
	if o.dispatcher != nil {
		o.dispatcher.Dispatch(bg, b)
	}
	if o.events != nil {
		if err := o.events.BookingConfirmed(bg, b); err != nil {
			o.logger.Warn("Failed to publish booking event", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
}

func (o *Orchestrator) transition(ctx context.Context, state models.ConversationState, f models.Field) {
	o.mu.Lock()
	o.snap.State = state
	o.snap.Field = f
	o.mu.Unlock()
	o.logger.Debug("Conversation step", zap.String("state", string(state)), zap.String("field", string(f)))
	o.record(ctx)
}

// record refreshes the snapshot and persists it while the dialogue is live.
func (o *Orchestrator) record(ctx context.Context) {
	o.mu.Lock()
	o.snap.Draft = o.draft.Clone()
	o.snap.UpdatedAt = o.now()
	snap := o.snap
	o.mu.Unlock()

	if o.store == nil || snap.State.Terminal() {
		return
	}
	if err := o.store.Set(ctx, &snap); err != nil {
		o.logger.Warn("Failed to save conversation snapshot", zap.Error(err))
	}
}

func (o *Orchestrator) finish(ctx context.Context, state models.ConversationState, msg string, res *booking.Result) *Result {
	out := &Result{State: state, Draft: o.draft.Clone(), Message: msg}
	if res != nil {
		out.Outcome = res.Outcome
		out.Booking = res.Booking
	}

	o.mu.Lock()
	o.snap.State = state
	o.snap.Field = ""
	o.snap.Draft = out.Draft.Clone()
	o.snap.Booking = out.Booking
	o.snap.Outcome = string(out.Outcome)
	o.snap.Message = msg
	o.snap.UpdatedAt = o.now()
	o.mu.Unlock()

	utils.IncConversationResult(string(state))
	if o.store != nil {
		if err := o.store.Clear(context.WithoutCancel(ctx), o.sessionID); err != nil {
			o.logger.Warn("Failed to clear conversation snapshot", zap.Error(err))
		}
	}
	o.logger.Info("Conversation finished",
		zap.String("state", string(state)),
		zap.String("outcome", string(out.Outcome)),
		zap.String("bookingId", out.Draft.BookingID))
	return out
}

// prompter lets the negotiator talk through this conversation.
type prompter struct {
	o *Orchestrator
}

func (p prompter) Say(ctx context.Context, text string) error {
	p.o.say(ctx, text)
	return nil
}

func (p prompter) Ask(ctx context.Context, text string) (string, error) {
	reply := p.o.ask(ctx, "", text)
	if p.o.halted(ctx) {
		return reply, ErrStopped
	}
	return reply, nil
}

func (p prompter) Lang() string {
	return p.o.lang
}
