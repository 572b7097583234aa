package handlers

import (
	"context"
	"errors"
	"net/http"

	"dinevoice/models"
	"dinevoice/services/conversation"
	"dinevoice/services/weather"
	"dinevoice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WeatherHandler serves seating suggestions for the restaurant's location.
type WeatherHandler struct {
	Advisor  conversation.WeatherAdvisor
	Lat, Lon float64
	logger   *zap.Logger
}

func NewWeatherHandler(advisor conversation.WeatherAdvisor, lat, lon float64, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{Advisor: advisor, Lat: lat, Lon: lon, logger: logger}
}

// localizedAdvisor renders the summary text in the caller's language.
type localizedAdvisor interface {
	GetForecastIn(ctx context.Context, date string, lat, lon float64, lang string) (*models.WeatherSuggestion, error)
}

// SeatingHandler answers ?date= (and optional ?lang=hi) with a suggestion.
// Any lookup failure yields recommendation "unknown" so clients fall back to
// indoor seating.
func (h *WeatherHandler) SeatingHandler(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", date)
		return
	}

	var (
		suggestion *models.WeatherSuggestion
		err        error
	)
	if la, ok := h.Advisor.(localizedAdvisor); ok && c.Query("lang") == "hi" {
		suggestion, err = la.GetForecastIn(c.Request.Context(), date, h.Lat, h.Lon, "hi")
	} else {
		suggestion, err = h.Advisor.GetForecast(c.Request.Context(), date, h.Lat, h.Lon)
	}
	if err != nil {
		if !errors.Is(err, weather.ErrNoForecast) {
			h.logger.Warn("Weather lookup failed", zap.String("date", date), zap.Error(err))
		}
		c.JSON(http.StatusOK, models.UnknownWeather())
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
