package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking persistence endpoints
	CreateBookingHandler gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	AvailabilityHandler  gin.HandlerFunc

	// Weather endpoints
	SeatingHandler gin.HandlerFunc

	// Voice endpoints
	StartSessionHandler gin.HandlerFunc
	ReplyHandler        gin.HandlerFunc
	GetSessionHandler   gin.HandlerFunc
	StopSessionHandler  gin.HandlerFunc
	TranscribeHandler   gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the concrete handlers.
func NewHandlerBundle(b *BookingHandler, w *WeatherHandler, v *VoiceHandler, s *SpeechHandler) *HandlerBundle {
	return &HandlerBundle{
		CreateBookingHandler: b.CreateBookingHandler,
		GetBookingHandler:    b.GetBookingHandler,
		ListBookingsHandler:  b.ListBookingsHandler,
		AvailabilityHandler:  b.AvailabilityHandler,

		SeatingHandler: w.SeatingHandler,

		StartSessionHandler: v.StartSessionHandler,
		ReplyHandler:        v.ReplyHandler,
		GetSessionHandler:   v.GetSessionHandler,
		StopSessionHandler:  v.StopSessionHandler,
		TranscribeHandler:   s.TranscribeHandler,
	}
}
