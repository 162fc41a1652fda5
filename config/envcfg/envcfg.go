// Package envcfg reads process configuration from READEROPS_* environment
// variables.
package envcfg

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIBaseURL is the public REST endpoint.
const DefaultAPIBaseURL = "https://public-api.wordpress.com/rest/v1.1"

// Config holds values that may come from the environment. Empty strings mean
// the corresponding flag or file value wins.
type Config struct {
	DBURL       string        `env:"READEROPS_DB_URL"`
	LogFormat   string        `env:"READEROPS_LOG_FORMAT"`
	LogLevel    string        `env:"READEROPS_LOG_LEVEL"`
	LogOutput   string        `env:"READEROPS_LOG_OUTPUT"`
	LogDir      string        `env:"READEROPS_LOG_DIR"`
	APIBaseURL  string        `env:"READEROPS_API_BASE_URL"`
	APIToken    string        `env:"READEROPS_API_TOKEN"`
	PixelURL    string        `env:"READEROPS_PIXEL_URL" envDefault:"https://pixel.wp.com/g.gif"`
	UserID      int64         `env:"READEROPS_USER_ID"`
	Offline     bool          `env:"READEROPS_OFFLINE"`
	ProbeAddr   string        `env:"READEROPS_PROBE_ADDR" envDefault:"public-api.wordpress.com:443"`
	ProbeTTL    time.Duration `env:"READEROPS_PROBE_TTL" envDefault:"30s"`
	HTTPTimeout time.Duration `env:"READEROPS_HTTP_TIMEOUT" envDefault:"15s"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BaseURL returns the API base URL with fallbacks applied in order:
// environment, the given file value, then DefaultAPIBaseURL.
func (c Config) BaseURL(fromFile string) string {
	switch {
	case c.APIBaseURL != "":
		return c.APIBaseURL
	case fromFile != "":
		return fromFile
	default:
		return DefaultAPIBaseURL
	}
}
