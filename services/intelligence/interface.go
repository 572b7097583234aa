// File: services/intelligence/interface.go
package ai

import (
	"context"

	"dinevoice/models"
)

// IntentExtractor turns free-form speech into structured booking hints.
// It returns nil on any provider failure; callers treat that as no signal.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, text, locale string) *models.Intent
}

// TextGenerator is the model call the extractor depends on.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
