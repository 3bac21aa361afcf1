package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Console holds the terminal console's settings.
type Console struct {
	// APIURL is the base URL of the FlowDeck API. Defaults to http://localhost:8080.
	APIURL string `yaml:"api_url"`

	// SearchDebounce delays the re-fetch after a search edit. Defaults to 300ms.
	SearchDebounce time.Duration `yaml:"search_debounce"`

	// RecentTags is how many registry entries the tag selector's recent view
	// shows. Defaults to 8.
	RecentTags int `yaml:"recent_tags"`

	// Timeout bounds every API call. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConsole returns the settings used when no file is present.
func DefaultConsole() Console {
	return Console{
		APIURL:         "http://localhost:8080",
		SearchDebounce: 300 * time.Millisecond,
		RecentTags:     8,
		Timeout:        10 * time.Second,
	}
}

// LoadConsole reads the YAML file at path over the defaults. A missing file
// is not an error. FLOWDECK_API_URL, when set, overrides api_url.
func LoadConsole(path string) (Console, error) {
	cfg := DefaultConsole()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Console{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Console{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("FLOWDECK_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if err := cfg.validate(); err != nil {
		return Console{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Console) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL, got %q", c.APIURL)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("search_debounce must not be negative")
	}
	if c.RecentTags <= 0 {
		return fmt.Errorf("recent_tags must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
