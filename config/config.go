package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Split   SplitConfig   `mapstructure:"split"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StorageConfig selects the local document store. The ledger is a single
// local document; there is no networked backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // file or sqlite
	Path    string `mapstructure:"path"`
}

// SplitConfig holds the fair-split knobs.
type SplitConfig struct {
	// Tolerance is the fairness tolerance in value units: the maximum spread
	// increase one coin assignment may cause before it is diverted to the fund.
	Tolerance int64 `mapstructure:"tolerance"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: LOOT.
// Nested keys use underscore: LOOT_STORAGE_PATH, LOOT_SPLIT_TOLERANCE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "party-ledger.json")
	v.SetDefault("split.tolerance", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: LOOT_STORAGE_BACKEND -> storage.backend
	v.SetEnvPrefix("LOOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Storage.Backend != "file" && cfg.Storage.Backend != "sqlite" {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Split.Tolerance < 0 {
		return nil, fmt.Errorf("split tolerance must not be negative")
	}

	return &cfg, nil
}
