package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	ApiServicePort     string
	PostgreSQLHost     string
	PostgreSQLPort     int64
	PostgreSQLUser     string
	PostgreSQLPassword string
	PostgreSQLDatabase string
	IDTokenSecret      string
	IDTokenIssuer      string
	RedisHost          string
	RedisPort          int64
	RedisPassword      string
	RedisDB            int64
	RevealTTL          int64 // Contact-reveal cache TTL in seconds
	ListingListLimit   int64 // Default page size for GET /posts
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),                   // Default development
		LogLevel:           getLogLevel(),                                      // Default INFO
		ApiServicePort:     getEnv("API_SERVICE_PORT", "8080"),                 // Default 8080
		PostgreSQLHost:     getEnv("POSTGRESQL_HOST", "db"),                    // Default db
		PostgreSQLPort:     getEnvAsInt64("POSTGRESQL_PORT", 5432),             // Default 5432
		PostgreSQLUser:     getEnv("POSTGRESQL_USER", "roommate_user"),         // Default user
		PostgreSQLPassword: getEnv("POSTGRESQL_PASSWORD", "roommate_password"), // Default password
		PostgreSQLDatabase: getEnv("POSTGRESQL_DATABASE", "roommate_db"),       // Default database name
		IDTokenSecret:      getEnv("ID_TOKEN_SECRET", "roommate_secret"),       // Shared secret with the identity provider
		IDTokenIssuer:      getEnv("ID_TOKEN_ISSUER", "roommate-finder-auth"),  // Expected token issuer
		RedisHost:          getEnv("REDIS_HOST", "redis"),                      // Default redis
		RedisPort:          getEnvAsInt64("REDIS_PORT", 6379),                  // Default 6379
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),                       // Default empty
		RedisDB:            getEnvAsInt64("REDIS_DATABASE", 0),                 // Default 0
		RevealTTL:          getEnvAsInt64("REVEAL_TTL", 86400),                 // Default 24 hours (86400 seconds)
		ListingListLimit:   getEnvAsInt64("LISTING_LIST_LIMIT", 50),            // Default 50 listings per page
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
