package weather

import (
	"testing"

	"dinevoice/models"

	"github.com/stretchr/testify/assert"
)

func pop(v float64) *float64 { return &v }

func TestRecommendSeating(t *testing.T) {
	tests := []struct {
		name string
		rec  models.ForecastRecord
		want models.Seating
	}{
		{"threshold is inclusive", models.ForecastRecord{PrecipitationProbability: pop(0.3), Condition: "Clear"}, models.SeatingIndoor},
		{"thunderstorm text", models.ForecastRecord{PrecipitationProbability: pop(0.1), Condition: "Thunderstorm"}, models.SeatingIndoor},
		{"clear and dry", models.ForecastRecord{PrecipitationProbability: pop(0.1), Condition: "Clear"}, models.SeatingOutdoor},
		{"drizzle without probability", models.ForecastRecord{Condition: "light DRIZZLE"}, models.SeatingIndoor},
		{"snow", models.ForecastRecord{Condition: "Snow"}, models.SeatingIndoor},
		{"cloudy no probability", models.ForecastRecord{Condition: "Clouds"}, models.SeatingOutdoor},
		{"just below threshold", models.ForecastRecord{PrecipitationProbability: pop(0.29), Condition: "Clouds"}, models.SeatingOutdoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendSeating(tt.rec))
		})
	}
}
