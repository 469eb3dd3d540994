// Package config loads runtime configuration from the environment.
//
// All variables use the SITECHAT_ prefix, e.g. SITECHAT_DATA_DIR.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime configuration.
type Config struct {
	// DataDir holds the sqlite database and the persisted session
	// token. Defaults to ~/.sitechat.
	DataDir string `envconfig:"DATA_DIR"`

	// SelfName is the display identity attributed to outgoing
	// messages.
	SelfName string `envconfig:"SELF_NAME" default:"Site Bot"`

	// MessageLimit is the default number of messages returned by a
	// group read when the caller doesn't ask for a specific count.
	MessageLimit int `envconfig:"MESSAGE_LIMIT" default:"10"`
}

// Load reads configuration from the environment and fills defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("sitechat", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("config: resolving home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".sitechat")
	}
	if cfg.MessageLimit <= 0 {
		return Config{}, fmt.Errorf("config: message limit must be positive, got %d", cfg.MessageLimit)
	}
	return cfg, nil
}
