package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	// AuthToken is the shared bearer secret guarding every non-exempt route.
	AuthToken string

	RequestTimeout time.Duration
	MaxBodyBytes   int64

	// Each rate limiter has its own window and capacity.
	RateLimitIPWindow    time.Duration
	RateLimitTokenWindow time.Duration
	RateLimitPerIP       int
	RateLimitPerToken    int

	VectorDimensions   int
	ChunkSize          int
	SearchLimitDefault int
	SearchLimitMax     int

	// LLMBaseURL selects an OpenAI-compatible endpoint. When neither a base
	// URL nor an Anthropic provider is configured the service runs in echo mode.
	LLMProvider string
	LLMBaseURL  string
	LLMAPIKey   string
	LLMModel    string

	TracingEnabled bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "agentboard_user"),
		DBPassword: getEnv("DB_PASSWORD", "agentboard_pass"),
		DBName:     getEnv("DB_NAME", "agentboard_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		AuthToken: getEnv("AUTH_TOKEN", "local-dev-token"),

		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		MaxBodyBytes:   getEnvInt64("MAX_BODY_BYTES", 1_000_000),

		RateLimitIPWindow:    getEnvDuration("RATE_LIMIT_IP_WINDOW", time.Minute),
		RateLimitTokenWindow: getEnvDuration("RATE_LIMIT_TOKEN_WINDOW", time.Minute),
		RateLimitPerIP:       getEnvInt("RATE_LIMIT_PER_IP", 120),
		RateLimitPerToken:    getEnvInt("RATE_LIMIT_PER_TOKEN", 240),

		VectorDimensions:   getEnvPositiveInt("VECTOR_DIMENSIONS", 8),
		ChunkSize:          getEnvPositiveInt("CHUNK_SIZE", 300),
		SearchLimitDefault: getEnvPositiveInt("SEARCH_LIMIT_DEFAULT", 5),
		SearchLimitMax:     getEnvPositiveInt("SEARCH_LIMIT_MAX", 50),

		LLMProvider: getEnv("LLM_PROVIDER", ""),
		LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o-mini"),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Warnf("Invalid value for %s, falling back to %d", key, defaultVal)
	}
	return defaultVal
}

// getEnvPositiveInt is for settings where zero or negative values would be
// meaningless (dimensions, chunk sizes, limits).
func getEnvPositiveInt(key string, defaultVal int) int {
	value := getEnvInt(key, defaultVal)
	if value < 1 {
		log.Warnf("Non-positive value for %s, falling back to %d", key, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
		log.Warnf("Invalid value for %s, falling back to %d", key, defaultVal)
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Warnf("Invalid value for %s, falling back to %s", key, defaultVal)
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}
