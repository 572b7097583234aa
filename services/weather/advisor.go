package weather

import (
	"strings"

	"dinevoice/models"
)

// PrecipitationThreshold is the probability at or above which guests are seated indoors.
const PrecipitationThreshold = 0.30

var wetConditions = []string{"rain", "thunder", "snow", "drizzle"}

// RecommendSeating maps a forecast to indoor or outdoor seating.
func RecommendSeating(rec models.ForecastRecord) models.Seating {
	if rec.PrecipitationProbability != nil && *rec.PrecipitationProbability >= PrecipitationThreshold {
		return models.SeatingIndoor
	}
	if isWet(rec.Condition) || isWet(rec.Description) {
		return models.SeatingIndoor
	}
	return models.SeatingOutdoor
}

func isWet(condition string) bool {
	c := strings.ToLower(condition)
	for _, w := range wetConditions {
		if strings.Contains(c, w) {
			return true
		}
	}
	return false
}
