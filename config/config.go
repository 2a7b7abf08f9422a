package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Host            string
	Port            string
	TrustedProxies  []string
	ShutdownTimeout time.Duration
	StaticDir       string

	// Logging
	LogLevel  string
	LogFormat string

	// Identity provider. Both empty means authentication is disabled.
	AuthProviderURL string
	AuthProviderKey string
	AuthJWTSecret   string

	// Generative language API
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// Rate limiting, 0 disables it
	RateLimitPerMinute int
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, using process environment")
	}

	return &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "8080"),
		TrustedProxies:  getListEnv("TRUSTED_PROXIES"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
		StaticDir:       getEnv("STATIC_DIR", "static"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AuthProviderURL: strings.TrimRight(getEnv("AUTH_PROVIDER_URL", ""), "/"),
		AuthProviderKey: getEnv("AUTH_PROVIDER_KEY", ""),
		AuthJWTSecret:   getEnv("AUTH_JWT_SECRET", ""),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: strings.TrimRight(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"), "/"),

		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 60),
	}
}

// AuthEnabled reports whether an identity provider is configured.
func (c *Config) AuthEnabled() bool {
	return c.AuthJWTSecret != "" || c.AuthProviderURL != ""
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warnf("Ignoring invalid integer for %s: %q", key, value)
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Warnf("Ignoring invalid duration for %s: %q", key, value)
	}
	return defaultValue
}

func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
