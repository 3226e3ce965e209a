package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	DatabaseURL  string
	DatabaseName string
	Port         string
	Env          string
	LogLevel     string
	LogNoCaller  bool
	StoreTimeout time.Duration
	AllowOrigins []string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv reads the configuration without touching .env files.
func FromEnv() Config {
	return Config{
		DatabaseURL:  getEnvOrDefault("DATABASE_URL", ""),
		DatabaseName: getEnvOrDefault("DATABASE_NAME", "kidstore"),
		Port:         getEnvOrDefault("PORT", "8000"),
		Env:          getEnvOrDefault("APP_ENV", "production"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogNoCaller:  getBoolEnv("LOG_DISABLE_CALLER", false),
		StoreTimeout: getDurationEnv("STORE_TIMEOUT_SECONDS", 5, time.Second),
		AllowOrigins: getListEnv("CORS_ALLOW_ORIGINS", []string{"*"}),
	}
}

// DatabaseURLSet and DatabaseNameSet report presence only; the diagnostics
// endpoint must never echo the values.
func DatabaseURLSet() bool {
	return strings.TrimSpace(os.Getenv("DATABASE_URL")) != ""
}

func DatabaseNameSet() bool {
	return strings.TrimSpace(os.Getenv("DATABASE_NAME")) != ""
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
