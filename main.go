package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinevoice/config"
	"dinevoice/cron"
	"dinevoice/database"
	reservationRepo "dinevoice/database/repository/reservation"
	"dinevoice/handlers"
	"dinevoice/middleware"
	"dinevoice/routes"
	"dinevoice/services/booking"
	"dinevoice/services/conversation"
	"dinevoice/services/events"
	ai "dinevoice/services/intelligence"
	"dinevoice/services/notification"
	"dinevoice/services/speech"
	"dinevoice/services/tasks"
	"dinevoice/services/voicesession"
	"dinevoice/services/weather"
	"dinevoice/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	utils.RegisterMetrics()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor(ctx, utils.RedisClients(), database.MongoClient)

	// repositories.
	if err := reservationRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	reservations := reservationRepo.NewMongoReservationRepo()

	open, closing, duration := config.Hours()
	hours := booking.Hours{Open: open, Close: closing, DurationMinutes: duration}
	negotiator := booking.NewNegotiator(reservations, hours, config.AppConfig.SlotBrowserURL, logger)

	// weather.
	forecasts := weather.NewService(
		weather.NewOpenWeatherClient(config.AppConfig.WeatherBaseURL, config.AppConfig.WeatherAPIKey),
		logger,
		weather.WithCache(weather.NewRedisForecastCache(utils.GetCacheClient(), time.Hour)),
	)

	// NLP extractor is optional; the normalizer works from transcripts alone.
	var extractor conversation.IntentExtractor
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("Gemini unavailable, continuing without NLP", zap.Error(err))
		} else {
			defer gemini.Close()
			extractor = ai.NewGeminiExtractor(gemini, logger)
		}
	}

	// notifications.
	fcmClient, err := utils.FirebaseInit(ctx)
	if err != nil {
		logger.Warn("Staff push disabled", zap.Error(err))
	}
	notificationService := notification.NewDefaultNotificationService(
		notification.NewTwilioSMS(config.AppConfig.TwilioAccountSID, config.AppConfig.TwilioAuthToken, config.AppConfig.TwilioFromNumber, logger),
		notification.NewFallbackMailer(logger,
			notification.NewSMTPMailer(config.AppConfig.SMTPHost, config.AppConfig.SMTPPort, config.AppConfig.SMTPUsername,
				config.AppConfig.SMTPPassword, config.AppConfig.MailFrom, config.AppConfig.MailFromName, config.AppConfig.SMTPUseTLS),
			notification.NewSendGridMailer(config.AppConfig.SendGridAPIKey, config.AppConfig.MailFrom, config.AppConfig.MailFromName),
			notification.NewLogMailer(!config.IsProduction(), logger),
		),
		notification.NewFCMPush(fcmClient, config.AppConfig.StaffPushTopic, logger),
		logger,
	)

	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	dispatcher := tasks.NewQueueDispatcher(queueClient, logger)
	worker := cron.InitNotificationWorker(ctx, notificationService, logger)

	var publisher conversation.EventPublisher
	if config.AppConfig.NatsURL != "" {
		bus, err := events.NewNATSBus(config.AppConfig.NatsURL, logger)
		if err != nil {
			logger.Warn("NATS unavailable, booking events disabled", zap.Error(err))
		} else {
			defer bus.Close()
			publisher = events.NewBookingEvents(bus)
		}
	}

	var transcriber speech.Transcriber
	if gst, err := speech.NewGoogleTranscriber(ctx, config.AppConfig.GoogleServiceAccountFile, logger); err != nil {
		logger.Warn("Speech-to-text disabled", zap.Error(err))
	} else {
		defer gst.Close()
		transcriber = gst
	}

	// voice sessions.
	drafts := conversation.NewRedisDraftStore(utils.GetSessionClient(), 2*config.SessionIdleTimeout())
	sessions := voicesession.NewManager(func(s conversation.Speech, id string, opts voicesession.StartOptions) *conversation.Orchestrator {
		return conversation.NewOrchestrator(s, negotiator, logger,
			conversation.WithSessionID(id),
			conversation.WithLocale(opts.Locale),
			conversation.WithContact(opts.Phone, opts.Email),
			conversation.WithLocation(config.AppConfig.RestaurantLat, config.AppConfig.RestaurantLon),
			conversation.WithExtractor(extractor),
			conversation.WithWeather(forecasts),
			conversation.WithDispatcher(dispatcher),
			conversation.WithEvents(publisher),
			conversation.WithStore(drafts),
		)
	}, config.RemoteListenTimeout(), logger)

	reaper, err := cron.StartSessionReaper(sessions, config.SessionIdleTimeout(), logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start session reaper: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewBookingHandler(reservations, hours, logger),
		handlers.NewWeatherHandler(forecasts, config.AppConfig.RestaurantLat, config.AppConfig.RestaurantLon, logger),
		handlers.NewVoiceHandler(sessions, config.AppConfig.DefaultLocale, logger),
		handlers.NewSpeechHandler(transcriber, config.AppConfig.DefaultLocale, logger),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	sessions.Shutdown()
	<-reaper.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	cancel()

	if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	logger.Sugar().Info("main: server stopped gracefully")
}
