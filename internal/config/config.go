// Package config reads the console's static settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFirestore = "firestore"
	BackendSpanner   = "spanner"
	BackendMemory    = "memory"
)

// Configuration holds everything needed to start the server.
type Configuration struct {
	Address      string `env:"ADDRESS" envDefault:":8080"`
	StoreBackend string `env:"STORE_BACKEND" envDefault:"firestore"`
	Collection   string `env:"PRODUCTS_COLLECTION" envDefault:"products"`

	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`

	// SpannerDatabase is projects/<p>/instances/<i>/databases/<d>.
	SpannerDatabase       string `env:"SPANNER_DATABASE"`
	SpannerPollIntervalMS int    `env:"SPANNER_POLL_INTERVAL_MS" envDefault:"2000"`

	LogMode string `env:"LOG_MODE" envDefault:"development"`
	LogFile string `env:"LOG_FILE"`
}

// Load reads the optional env files (".env" when none are given) and parses
// the environment. Variables already set in the process win over file values.
func Load(files ...string) (*Configuration, error) {
	if err := godotenv.Load(files...); err != nil {
		// A missing default .env is normal; an explicitly named file is not.
		if len(files) > 0 || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load env file: %w", err)
		}
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) validate() error {
	switch c.StoreBackend {
	case BackendFirestore, BackendSpanner, BackendMemory:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.SpannerPollIntervalMS <= 0 {
		return fmt.Errorf("config: SPANNER_POLL_INTERVAL_MS must be positive, got %d", c.SpannerPollIntervalMS)
	}
	return nil
}

// PollInterval is how often the Spanner store re-runs the subscribed query.
func (c *Configuration) PollInterval() time.Duration {
	return time.Duration(c.SpannerPollIntervalMS) * time.Millisecond
}
