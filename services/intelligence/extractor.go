// File: services/intelligence/extractor.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dinevoice/models"
	"dinevoice/utils"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const extractTimeout = 6 * time.Second

const promptTemplate = `You extract restaurant booking details from a guest's spoken reply.
Today is %s. The reply language is %s.
Return one JSON object with only the keys you are confident about:
  customerName (string), numberOfGuests (integer >= 1),
  bookingDate ("YYYY-MM-DD"), bookingTime ("HH:MM", 24 hour),
  cuisinePreference (string), specialRequests (string),
  seatingPreference ("indoor" or "outdoor").
Omit unknown keys. Return {} when nothing applies.
Reply: %q`

// GeminiExtractor implements IntentExtractor over a text model.
type GeminiExtractor struct {
	gen     TextGenerator
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
	now     func() time.Time
}

func NewGeminiExtractor(gen TextGenerator, logger *zap.Logger) *GeminiExtractor {
	return &GeminiExtractor{
		gen:    gen,
		logger: logger,
		now:    time.Now,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "nlp-extractor",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("Circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

func (e *GeminiExtractor) ExtractIntent(ctx context.Context, text, locale string) *models.Intent {
	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	prompt := fmt.Sprintf(promptTemplate, e.now().Format("2006-01-02 (Monday)"), locale, text)
	out, err := e.breaker.Execute(func() (interface{}, error) {
		return e.gen.GenerateContent(ctx, prompt)
	})
	if err != nil {
		utils.IncNLPCall("error")
		e.logger.Warn("intent extraction failed", zap.String("locale", locale), zap.Error(err))
		return nil
	}

	intent, err := ParseIntentJSON(out.(string))
	if err != nil {
		utils.IncNLPCall("invalid")
		e.logger.Warn("intent extraction returned invalid JSON", zap.Error(err))
		return nil
	}
	if intent.Empty() {
		utils.IncNLPCall("empty")
		return nil
	}
	utils.IncNLPCall("ok")
	return intent
}

// ParseIntentJSON decodes a model reply, tolerating markdown code fences.
func ParseIntentJSON(raw string) (*models.Intent, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var intent models.Intent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
