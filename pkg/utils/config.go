package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Booking  BookingConfig
	Payment  PaymentConfig
	Email    EmailConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string

	// CORSOrigins overrides the browser origins allowed to call the API.
	// Empty keeps the built-in production and local dev origins.
	CORSOrigins []string
}

type DatabaseConfig struct {
	// Driver selects the ledger backend: "postgres" (multi-instance safe)
	// or "memory" (single instance, non-durable).
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type BookingConfig struct {
	// Timezone is the tour reference timezone used to decide whether a date
	// is in the past. Kept explicit so client wall clocks never matter.
	Timezone string

	// PendingExpiryMinutes is how long a pending booking may hold seats
	// before the sweep cancels it and releases them.
	PendingExpiryMinutes int

	SweepIntervalMinutes int
}

type PaymentConfig struct {
	// WebhookSecret authenticates provider callbacks.
	WebhookSecret string
}

type EmailConfig struct {
	// ResendAPIKey enables the notification dispatcher; empty disables it.
	ResendAPIKey string
	From         string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "royalnordic")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("BOOKING_TZ", "Europe/Helsinki")
	viper.SetDefault("PENDING_EXPIRY_MINUTES", 30)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 5)
	viper.SetDefault("EMAIL_FROM", "Royal Nordic <bookings@royalnordic.fi>")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			CORSOrigins: splitOrigins(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			Timezone:             viper.GetString("BOOKING_TZ"),
			PendingExpiryMinutes: viper.GetInt("PENDING_EXPIRY_MINUTES"),
			SweepIntervalMinutes: viper.GetInt("SWEEP_INTERVAL_MINUTES"),
		},
		Payment: PaymentConfig{
			WebhookSecret: viper.GetString("WEBHOOK_SECRET"),
		},
		Email: EmailConfig{
			ResendAPIKey: viper.GetString("RESEND_API_KEY"),
			From:         viper.GetString("EMAIL_FROM"),
		},
	}

	return config, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
