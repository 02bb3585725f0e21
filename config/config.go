package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the client reads from the environment.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	PollInterval   time.Duration
}

// Load reads .env if present, then the environment, falling back to
// defaults that point at a local mock API.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	return Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:3001/api"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT_MS", 10_000),
		PollInterval:   getDuration("NOTIF_POLL_INTERVAL_MS", 60_000),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration reads a millisecond count from the environment.
func getDuration(key string, fallbackMs int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		log.Printf("Invalid %s=%q; using default", key, os.Getenv(key))
	}
	return time.Duration(fallbackMs) * time.Millisecond
}
