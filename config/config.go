package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Google services.
	GeminiAPIKey             string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel              string `mapstructure:"GEMINI_MODEL"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// Weather provider and restaurant location.
	WeatherAPIKey  string  `mapstructure:"WEATHER_API_KEY"`
	WeatherBaseURL string  `mapstructure:"WEATHER_BASE_URL"`
	RestaurantLat  float64 `mapstructure:"RESTAURANT_LAT"`
	RestaurantLon  float64 `mapstructure:"RESTAURANT_LON"`

	// Operating hours and conversation timing.
	OpenTime                   string `mapstructure:"OPEN_TIME"`
	CloseTime                  string `mapstructure:"CLOSE_TIME"`
	SlotDurationMinutes        int    `mapstructure:"SLOT_DURATION_MINUTES"`
	ListenTimeoutSeconds       int    `mapstructure:"LISTEN_TIMEOUT_SECONDS"`
	RemoteListenTimeoutSeconds int    `mapstructure:"REMOTE_LISTEN_TIMEOUT_SECONDS"`
	SessionIdleMinutes         int    `mapstructure:"SESSION_IDLE_MINUTES"`
	DefaultLocale              string `mapstructure:"DEFAULT_LOCALE"`
	SlotBrowserURL             string `mapstructure:"SLOT_BROWSER_URL"`

	// Notifications.
	TwilioAccountSID        string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken         string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber        string `mapstructure:"TWILIO_FROM_NUMBER"`
	SMTPHost                string `mapstructure:"SMTP_HOST"`
	SMTPPort                int    `mapstructure:"SMTP_PORT"`
	SMTPUsername            string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword            string `mapstructure:"SMTP_PASSWORD"`
	SMTPUseTLS              bool   `mapstructure:"SMTP_USE_TLS"`
	SendGridAPIKey          string `mapstructure:"SENDGRID_API_KEY"`
	MailFrom                string `mapstructure:"MAIL_FROM"`
	MailFromName            string `mapstructure:"MAIL_FROM_NAME"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	StaffPushTopic          string `mapstructure:"STAFF_PUSH_TOPIC"`

	// Messaging.
	NatsURL string `mapstructure:"NATS_URL"`

	// Console client.
	APIBaseURL string `mapstructure:"API_BASE_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "dinevoice")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CACHE_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")

	viper.SetDefault("WEATHER_API_KEY", "")
	viper.SetDefault("WEATHER_BASE_URL", "https://api.openweathermap.org")
	viper.SetDefault("RESTAURANT_LAT", 19.0760)
	viper.SetDefault("RESTAURANT_LON", 72.8777)

	viper.SetDefault("OPEN_TIME", "12:00")
	viper.SetDefault("CLOSE_TIME", "22:00")
	viper.SetDefault("SLOT_DURATION_MINUTES", 30)
	viper.SetDefault("LISTEN_TIMEOUT_SECONDS", 14)
	viper.SetDefault("REMOTE_LISTEN_TIMEOUT_SECONDS", 60)
	viper.SetDefault("SESSION_IDLE_MINUTES", 10)
	viper.SetDefault("DEFAULT_LOCALE", "en-IN")
	viper.SetDefault("SLOT_BROWSER_URL", "http://localhost:8080/slots")

	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_FROM_NAME", "DineVoice")
	viper.SetDefault("STAFF_PUSH_TOPIC", "staff-bookings")

	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Hours returns the operating window used for slot generation.
func Hours() (open, close string, durationMinutes int) {
	return AppConfig.OpenTime, AppConfig.CloseTime, AppConfig.SlotDurationMinutes
}

func ListenTimeout() time.Duration {
	if AppConfig.ListenTimeoutSeconds <= 0 {
		return 14 * time.Second
	}
	return time.Duration(AppConfig.ListenTimeoutSeconds) * time.Second
}

func RemoteListenTimeout() time.Duration {
	if AppConfig.RemoteListenTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(AppConfig.RemoteListenTimeoutSeconds) * time.Second
}

func SessionIdleTimeout() time.Duration {
	if AppConfig.SessionIdleMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(AppConfig.SessionIdleMinutes) * time.Minute
}
