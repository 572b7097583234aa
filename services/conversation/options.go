package conversation

import (
	"time"

	"dinevoice/services/intent"
)

type Option func(*Orchestrator)

func WithSessionID(id string) Option {
	return func(o *Orchestrator) { o.sessionID = id }
}

// WithLocale sets the language tag; "hi-IN" selects Hindi prompts.
func WithLocale(locale string) Option {
	return func(o *Orchestrator) { o.locale = locale }
}

func WithListenTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.listenTimeout = d }
}

// WithLocation sets the coordinates used for forecast lookups.
func WithLocation(lat, lon float64) Option {
	return func(o *Orchestrator) { o.lat, o.lon = lat, lon }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
		o.normalizer = intent.NewNormalizer(now)
	}
}

func WithExtractor(e IntentExtractor) Option {
	return func(o *Orchestrator) { o.extractor = e }
}

func WithWeather(w WeatherAdvisor) Option {
	return func(o *Orchestrator) { o.weather = w }
}

func WithDispatcher(d Dispatcher) Option {
	return func(o *Orchestrator) { o.dispatcher = d }
}

func WithEvents(p EventPublisher) Option {
	return func(o *Orchestrator) { o.events = p }
}

func WithStore(s DraftStore) Option {
	return func(o *Orchestrator) { o.store = s }
}

// WithContact attaches where confirmations should be sent.
func WithContact(phone, email string) Option {
	return func(o *Orchestrator) { o.contactPhone, o.contactEmail = phone, email }
}
