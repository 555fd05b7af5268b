// Package config loads server configuration from an optional YAML file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config keys.
const (
	keyAddr   = "addr"
	keyDBPath = "db_path"
)

// Defaults.
const (
	DefaultAddr   = ":8080"
	DefaultDBPath = "najdeno.sqlite3"
)

// Config holds the runtime settings for the server.
type Config struct {
	Addr   string `mapstructure:"addr"`
	DBPath string `mapstructure:"db_path"`
}

// Load reads configuration from the given file (optional) and from
// NAJDENO_* environment variables, falling back to defaults. A missing
// config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyAddr, DefaultAddr)
	v.SetDefault(keyDBPath, DefaultDBPath)

	v.SetEnvPrefix("najdeno")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
