package routes

import (
	"net/http"
	"time"

	"dinevoice/handlers"
	"dinevoice/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterBookingRoutes registers the persistence boundary used by clients.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/bookings", hb.CreateBookingHandler)
		api.GET("/bookings", hb.ListBookingsHandler)
		api.GET("/bookings/:id", hb.GetBookingHandler)
		api.GET("/availability", hb.AvailabilityHandler)
	}
}

// RegisterWeatherRoutes registers the seating advisor.
func RegisterWeatherRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/weather/seating", hb.SeatingHandler)
}

// RegisterVoiceRoutes registers server-hosted conversations and transcription.
func RegisterVoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	voice := r.Group("/api/voice")
	{
		voice.POST("/stt", hb.TranscribeHandler)
		voice.POST("/sessions", hb.StartSessionHandler)
		voice.POST("/sessions/:id/reply", hb.ReplyHandler)
		voice.GET("/sessions/:id", hb.GetSessionHandler)
		voice.DELETE("/sessions/:id", hb.StopSessionHandler)
	}
}

// RegisterHealthRoute registers health and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm DineVoice", "services": utils.GetHealthStatus()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterWeatherRoutes(r, hb)
	RegisterVoiceRoutes(r, hb)
}
