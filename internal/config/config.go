package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort string
	LogLevel   string

	APIBaseURL  string
	HTTPTimeout time.Duration

	SessionDir     string
	SearchDebounce time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must be set")
	}

	listenPort := os.Getenv("LISTEN_PORT")
	if listenPort == "" {
		listenPort = "8080"
	}

	sessionDir := os.Getenv("SESSION_DIR")
	if sessionDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		sessionDir = filepath.Join(home, ".invdesk")
	}

	timeout, err := durationEnv("HTTP_TIMEOUT_SECONDS", 10*time.Second, time.Second)
	if err != nil {
		return nil, err
	}
	debounce, err := durationEnv("SEARCH_DEBOUNCE_MS", 400*time.Millisecond, time.Millisecond)
	if err != nil {
		return nil, err
	}

	return &Config{
		ListenPort:     listenPort,
		LogLevel:       os.Getenv("LOG_LEVEL"),
		APIBaseURL:     apiBaseURL,
		HTTPTimeout:    timeout,
		SessionDir:     sessionDir,
		SearchDebounce: debounce,
	}, nil
}

func durationEnv(name string, def, unit time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return time.Duration(n) * unit, nil
}
