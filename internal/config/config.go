package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// LLM configuration
	Provider        string
	Model           string
	GeminiAPIKey    string
	AnthropicAPIKey string
	// WorkerSlots bounds concurrent calls to the generation service.
	WorkerSlots int
	// Retrieval configuration. When DatabaseURL is empty the in-memory
	// document store is used.
	DatabaseURL      string
	RetrievalEnabled bool
	// Optional bearer auth. Document management routes are open when unset.
	AuthJWKSURL string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		// LLM configuration
		Provider:        getEnv("LLM_PROVIDER", "gemini"),
		Model:           getEnv("MODEL_NAME", "gemini-2.5-flash"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		WorkerSlots:     clamp(getEnvInt("WORKER_SLOTS", DefaultWorkerSlots), MinWorkerSlots, MaxWorkerSlots),
		// Retrieval configuration
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RetrievalEnabled: getEnv("RETRIEVAL_ENABLED", "true") == "true",
		AuthJWKSURL:      getEnv("AUTH_JWKS_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
