package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Port    string
	GinMode string

	DatabaseURL  string
	DatabaseName string
	RedisURL     string

	Secret       string
	TokenTTL     time.Duration
	CookieSecure bool

	GoogleClientID string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	LogLevel        string
	RateLimit       uint
	ListingCacheTTL time.Duration
}

// Load reads the .env file when present and builds Config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DatabaseURL:  getEnv("DATABASE_URL", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DB_NAME", "estatery"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),

		Secret:       getEnv("SECRET", "change-me"),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 24*time.Hour),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUDNAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "estatery"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SenderEmail:  getEnv("SENDER_EMAIL", "no-reply@estatery.app"),

		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RateLimit:       uint(getEnvInt("RATE_LIMIT", 10)),
		ListingCacheTTL: getEnvDuration("LISTING_CACHE_TTL", 5*time.Minute),
	}
}

// MailEnabled reports whether an SMTP host was configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
