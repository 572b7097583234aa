package conversation

import (
	"context"

	"dinevoice/models"
)

// IntentExtractor returns nil when it has nothing to add.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, text, locale string) *models.Intent
}

type WeatherAdvisor interface {
	GetForecast(ctx context.Context, date string, lat, lon float64) (*models.WeatherSuggestion, error)
}

// Dispatcher sends confirmation notifications. It must not block the
// conversation and never reports failures back to the guest.
type Dispatcher interface {
	Dispatch(ctx context.Context, booking *models.ConfirmedBooking)
}

// EventPublisher announces confirmed bookings to other services.
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, booking *models.ConfirmedBooking) error
}
