package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every runtime knob of the server.
type Config struct {
	Server struct {
		Address string `mapstructure:"address"` // listen address, e.g. :8080
		Mode    string `mapstructure:"mode"`    // log mode: dev, prod
	} `mapstructure:"server"`

	State struct {
		Path string `mapstructure:"path"` // persisted view-state file
	} `mapstructure:"state"`

	Data struct {
		InitialRows   int `mapstructure:"initial_rows"`   // rows generated at startup
		GenerateTotal int `mapstructure:"generate_total"` // rows per "generate more" request
		ChunkSize     int `mapstructure:"chunk_size"`     // batch cap during generation
	} `mapstructure:"data"`
}

// Load reads config.yaml (if present) plus environment variables, falling
// back to defaults for anything unset.
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing file is fine, defaults cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.mode", "dev")
	viper.SetDefault("state.path", "table_state.json")
	viper.SetDefault("data.initial_rows", 25)
	viper.SetDefault("data.generate_total", 10000)
	viper.SetDefault("data.chunk_size", 1000)
}
