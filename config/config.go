package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	DatabaseURL string
	FMPKey      string
	FMPBaseURL  string
	OwnerOpenID string
	CookieName  string
	CookieTTL   time.Duration
	Port        string
}

const defaultFMPBaseURL = "https://financialmodelingprep.com/api/v3"

// Load reads configuration from the environment, after picking up a local
// .env file when one exists. Nothing here is mandatory: a missing
// DATABASE_URL or FMP_API_KEY puts the corresponding subsystem into
// degraded mode rather than preventing startup.
func Load() *Config {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		FMPKey:      os.Getenv("FMP_API_KEY"),
		FMPBaseURL:  os.Getenv("FMP_BASE_URL"),
		OwnerOpenID: os.Getenv("OWNER_OPEN_ID"),
		CookieName:  os.Getenv("SESSION_COOKIE_NAME"),
		CookieTTL:   30 * 24 * time.Hour,
		Port:        os.Getenv("PORT"),
	}

	if cfg.FMPBaseURL == "" {
		cfg.FMPBaseURL = defaultFMPBaseURL
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg
}
