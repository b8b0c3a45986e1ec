package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Environment      string
	FirestoreProject string
	AlphaVantageKey  string
	CacheTTLHours    int
	RatePeriodYears  int
	ScenarioFile     string
}

func Load() *Config {
	// A local .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "production"),
		FirestoreProject: getEnv("FIRESTORE_PROJECT_ID", ""),
		AlphaVantageKey:  getEnv("ALPHA_VANTAGE_KEY", ""),
		CacheTTLHours:    getEnvInt("CACHE_TTL_HOURS", 24),
		RatePeriodYears:  getEnvInt("RATE_PERIOD_YEARS", 5),
		ScenarioFile:     getEnv("DEFAULT_SCENARIO_FILE", ""),
	}

	if cfg.FirestoreProject == "" {
		log.Println("FIRESTORE_PROJECT_ID not set, scenarios and caches are in-memory only")
	}
	if cfg.AlphaVantageKey == "" {
		log.Println("ALPHA_VANTAGE_KEY not set, using Yahoo Finance only for market rates")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
