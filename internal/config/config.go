// Package config manages application configuration from files, environment
// and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "SHEETPEEK"

// Config holds the application configuration.
type Config struct {
	Output struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"output"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"log"`
	UI struct {
		MaxColumnWidth int  `mapstructure:"max_column_width"`
		ShowHidden     bool `mapstructure:"show_hidden"`
	} `mapstructure:"ui"`
}

// New returns a viper instance with defaults and environment overrides
// registered. Flags can be bound to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("output.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.max_column_width", 30)
	v.SetDefault("ui.show_hidden", false)

	// SHEETPEEK_OUTPUT_DIR, SHEETPEEK_LOG_LEVEL, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile, or config.yaml from the user config directory when
// configFile is empty. A missing default file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func Validate(cfg *Config) error {
	var errs []error

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format))
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level))
	}

	if cfg.UI.MaxColumnWidth <= 0 {
		errs = append(errs, fmt.Errorf("ui.max_column_width must be positive, got %d", cfg.UI.MaxColumnWidth))
	}

	return errors.Join(errs...)
}

// Dir returns the directory holding config.yaml.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".sheetpeek"
	}
	return filepath.Join(dir, "sheetpeek")
}
