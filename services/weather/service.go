package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"dinevoice/models"
	"dinevoice/utils"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrNoForecast means no forecast date lies within NearestWindowDays of the request.
var ErrNoForecast = errors.New("no forecast available for date")

// NearestWindowDays bounds how far a nearby date may be used as an approximation.
const NearestWindowDays = 3

// Service resolves a seating suggestion for a date from a cached, breaker
// protected provider.
type Service struct {
	provider Provider
	cache    ForecastCache
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithCache(c ForecastCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(provider Provider, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather-provider",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetForecast returns the suggestion for date. When date itself is outside
// the provider's window, the nearest date within NearestWindowDays is used and
// the result is marked approximate. ErrNoForecast is returned otherwise.
func (s *Service) GetForecast(ctx context.Context, date string, lat, lon float64) (*models.WeatherSuggestion, error) {
	return s.GetForecastIn(ctx, date, lat, lon, "en")
}

// GetForecastIn is GetForecast with the summary rendered in lang ("en" or "hi").
func (s *Service) GetForecastIn(ctx context.Context, date string, lat, lon float64, lang string) (*models.WeatherSuggestion, error) {
	target, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("weather: invalid date %q: %w", date, err)
	}

	records, err := s.records(ctx, lat, lon)
	if err != nil {
		utils.IncWeatherLookup("error")
		return nil, err
	}

	rec, approximate, ok := pickRecord(records, target)
	if !ok {
		utils.IncWeatherLookup("unavailable")
		return nil, ErrNoForecast
	}

	seating := RecommendSeating(rec)
	result := "exact"
	if approximate {
		result = "approximate"
	}
	utils.IncWeatherLookup(result)

	return &models.WeatherSuggestion{
		Recommendation:    seating,
		SummaryText:       Summarize(rec, lang),
		ConfidencePresent: !approximate,
		IsApproximate:     approximate,
		ForecastDate:      rec.Date,
	}, nil
}

func (s *Service) records(ctx context.Context, lat, lon float64) ([]models.ForecastRecord, error) {
	key := cacheKey(lat, lon, s.now().Format("2006-01-02"))
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("forecast cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.provider.Forecast(ctx, lat, lon)
	})
	if err != nil {
		return nil, fmt.Errorf("weather: provider unavailable: %w", err)
	}
	records := out.([]models.ForecastRecord)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, records); err != nil {
			s.logger.Warn("forecast cache write failed", zap.Error(err))
		}
	}
	return records, nil
}

// pickRecord returns the record for target, or the closest one within the
// window. Ties prefer the earlier date.
func pickRecord(records []models.ForecastRecord, target time.Time) (models.ForecastRecord, bool, bool) {
	bestIdx, bestDist := -1, math.MaxInt
	for i, r := range records {
		d, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		dist := int(math.Abs(d.Sub(target).Hours() / 24))
		if dist < bestDist || (dist == bestDist && bestIdx >= 0 && r.Date < records[bestIdx].Date) {
			bestIdx, bestDist = i, dist
		}
	}
	if bestIdx < 0 || bestDist > NearestWindowDays {
		return models.ForecastRecord{}, false, false
	}
	return records[bestIdx], bestDist != 0, true
}

// Summarize renders a short spoken description of a forecast record.
func Summarize(rec models.ForecastRecord, lang string) string {
	cond := rec.Description
	if cond == "" {
		cond = rec.Condition
	}
	if cond == "" {
		cond = "unclear skies"
	}
	if rec.PrecipitationProbability == nil {
		if lang == "hi" {
			return fmt.Sprintf("%s का मौसम: %s।", rec.Date, cond)
		}
		return fmt.Sprintf("Forecast for %s: %s.", rec.Date, cond)
	}
	pct := int(math.Round(*rec.PrecipitationProbability * 100))
	if lang == "hi" {
		return fmt.Sprintf("%s का मौसम: %s, बारिश की संभावना %d%%।", rec.Date, cond, pct)
	}
	return fmt.Sprintf("Forecast for %s: %s, %d%% chance of rain.", rec.Date, cond, pct)
}
