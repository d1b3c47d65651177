package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	JWTSecret   string
	JWTExpiry   int64

	// Facebook Graph API
	GraphAPIBase      string
	FetchMaxPages     int
	FetchBatchSize    int
	FetchMessageLimit int
	RetryAttempts     int
	RetryDelayMs      int64
	MockDelayMs       int64

	// Gemini (OpenAI-compatible endpoint)
	GeminiAPIKey  string
	GeminiAPIBase string
	GeminiModel   string

	// Where the credential blob is persisted across restarts
	SessionFile string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:   getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours

		GraphAPIBase:      getEnv("GRAPH_API_BASE", "https://graph.facebook.com/v19.0"),
		FetchMaxPages:     getEnvAsInt("FETCH_MAX_PAGES", 6),
		FetchBatchSize:    getEnvAsInt("FETCH_BATCH_SIZE", 50),
		FetchMessageLimit: getEnvAsInt("FETCH_MESSAGE_LIMIT", 50),
		RetryAttempts:     getEnvAsInt("RETRY_ATTEMPTS", 5),
		RetryDelayMs:      getEnvAsInt64("RETRY_DELAY_MS", 1000),
		MockDelayMs:       getEnvAsInt64("MOCK_DELAY_MS", 1200),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiAPIBase: getEnv("GEMINI_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		SessionFile: getEnv("SESSION_FILE", "./data/session.json"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
