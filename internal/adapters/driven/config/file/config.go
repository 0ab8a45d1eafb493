// Package file loads levelscout configuration from a TOML file.
// Missing file or missing keys fall back to defaults, so a fresh install
// works with zero configuration against the default server.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultBaseURL is the level index used when none is configured.
const DefaultBaseURL = "https://gdindex.skyform.dev"

// Config is the levelscout process configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Search     SearchConfig     `toml:"search"`
	Pagination PaginationConfig `toml:"pagination"`
	Difficulty DifficultyConfig `toml:"difficulty"`
	Chat       ChatConfig       `toml:"chat"`
}

// APIConfig configures the remote level index client.
type APIConfig struct {
	// BaseURL is the level index root, without a trailing slash.
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// RequestsPerSecond is the proactive throttle rate.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// SearchConfig configures the search pipeline.
type SearchConfig struct {
	// MaxCheck caps the candidates examined per command.
	MaxCheck int `toml:"max_check"`

	// Concurrency bounds in-flight detail fetches.
	Concurrency int `toml:"concurrency"`
}

// PaginationConfig configures result pagination sessions.
type PaginationConfig struct {
	// PageSize is the number of matches per page.
	PageSize int `toml:"page_size"`

	// SessionTTLSeconds is the session lifetime.
	SessionTTLSeconds int `toml:"session_ttl_seconds"`
}

// DifficultyConfig overrides the difficulty-scale assumptions. The remote
// encoding is not authoritative; see the domain difficulty table.
type DifficultyConfig struct {
	// DemonThreshold is the lowest numeric code considered demon tier.
	// Zero keeps the built-in default.
	DemonThreshold int `toml:"demon_threshold"`
}

// ChatConfig carries the chat platform credentials. Consumed only by the
// gateway bootstrap, which lives outside this repo.
type ChatConfig struct {
	Token string `toml:"token"`
	AppID string `toml:"app_id"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:           DefaultBaseURL,
			TimeoutSeconds:    15,
			RequestsPerSecond: 4,
		},
		Search: SearchConfig{
			MaxCheck:    150,
			Concurrency: 6,
		},
		Pagination: PaginationConfig{
			PageSize:          5,
			SessionTTLSeconds: 120,
		},
	}
}

// DefaultPath returns ~/.levelscout/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".levelscout", "config.toml"), nil
}

// Load reads configuration from path, overlaying defaults. An empty path
// selects DefaultPath; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// SessionTTL returns the session lifetime as a duration.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Pagination.SessionTTLSeconds) * time.Second
}
