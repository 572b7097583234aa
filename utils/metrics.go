package utils

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	bookingOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinevoice",
			Name:      "booking_outcome_total",
			Help:      "Count of booking submissions by final outcome.",
		},
		[]string{"outcome"},
	)

	conversationResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinevoice",
			Name:      "conversation_result_total",
			Help:      "Count of finished conversations by terminal state.",
		},
		[]string{"state"},
	)

	nlpCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinevoice",
			Name:      "nlp_extract_total",
			Help:      "Count of NLP extractor calls by result.",
		},
		[]string{"result"},
	)

	weatherLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinevoice",
			Name:      "weather_lookup_total",
			Help:      "Count of forecast lookups by result.",
		},
		[]string{"result"},
	)

	notificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinevoice",
			Name:      "notification_sent_total",
			Help:      "Count of notification sends by channel and status.",
		},
		[]string{"channel", "status"},
	)

	liveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dinevoice",
			Name:      "voice_sessions_live",
			Help:      "Number of server-hosted voice sessions currently running.",
		},
	)
)

// RegisterMetrics registers metrics (idempotent).
func RegisterMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(bookingOutcomes, conversationResults, nlpCalls, weatherLookups, notificationsSent, liveSessions)
	})
}

func IncBookingOutcome(outcome string) {
	bookingOutcomes.WithLabelValues(outcome).Inc()
}

func IncConversationResult(state string) {
	conversationResults.WithLabelValues(state).Inc()
}

func IncNLPCall(result string) {
	nlpCalls.WithLabelValues(result).Inc()
}

func IncWeatherLookup(result string) {
	weatherLookups.WithLabelValues(result).Inc()
}

func IncNotification(channel, status string) {
	notificationsSent.WithLabelValues(channel, status).Inc()
}

func SetLiveSessions(n int) {
	liveSessions.Set(float64(n))
}
