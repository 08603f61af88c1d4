package config

import (
	"os"
)

// Config is the process configuration, loaded from the environment.
// cmd/server loads a .env file first via godotenv.
type Config struct {
	DatabaseURL          string
	Port                 string
	CORSOrigin           string
	ExtractionServiceURL string
	ExtractionAPIKey     string
}

func Load() Config {
	return Config{
		DatabaseURL:          getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=reconciliation port=5432 sslmode=disable"),
		Port:                 getenv("PORT", "8080"),
		CORSOrigin:           getenv("CORS_ORIGIN", "http://localhost:3000"),
		ExtractionServiceURL: os.Getenv("EXTRACTION_SERVICE_URL"),
		ExtractionAPIKey:     os.Getenv("EXTRACTION_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
