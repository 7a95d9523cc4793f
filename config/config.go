package config

import (
	"os"
	"strings"
)

// Config holds everything read from the environment at startup. It is built
// once in main and passed down explicitly; nothing in the app reads env vars
// after Load returns.
type Config struct {
	Port string

	DBDriver   string // "postgres" or "sqlite"
	DBURL      string // postgres DSN
	SQLitePath string

	// Country calling code prepended to phone numbers given without one.
	DefaultCountryCode string

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	// DevMode controls whether driver error details are echoed in responses.
	DevMode bool
}

func Load() Config {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBURL:              os.Getenv("DB_URL"),
		SQLitePath:         getEnv("SQLITE_PATH", "frenos_local.db"),
		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "+57"),
		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminUsername:      os.Getenv("ADMIN_USERNAME"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		DevMode:            getEnv("APP_ENV", "development") == "development",
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
