// Package config loads tidy's settings from the environment, applying
// defaults for anything unset and validating the result before use.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Logging LoggingConfig
	Files   FilesConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"TIDY_LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"TIDY_LOG_FORMAT" default:"text"`

	// File receives log output while the interactive UI is running.
	// Empty discards logs in the UI.
	File string `env:"TIDY_LOG_FILE"`
}

// FilesConfig holds per-file processing settings.
type FilesConfig struct {
	// MaxFileSize is the largest file accepted, in bytes (default: 100MB)
	MaxFileSize int64 `env:"TIDY_MAX_FILE_SIZE" default:"104857600"`

	// PreviewRows is how many rows the preview shows (default: 5)
	PreviewRows int `env:"TIDY_PREVIEW_ROWS" default:"5"`

	// ChartRows is how many rows the numeric chart draws (default: 20)
	ChartRows int `env:"TIDY_CHART_ROWS" default:"20"`

	// OutputDir is where exports are written. Empty means next to the input.
	OutputDir string `env:"TIDY_OUTPUT_DIR"`
}

// Load reads configuration from environment variables, after pulling in a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	// A missing .env is normal; real env vars win over the file.
	_ = godotenv.Load()

	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value := os.Getenv(envName)
		if value == "" {
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Files.MaxFileSize <= 0 {
		errs = append(errs, "TIDY_MAX_FILE_SIZE must be positive")
	}
	if c.Files.PreviewRows <= 0 {
		errs = append(errs, "TIDY_PREVIEW_ROWS must be positive")
	}
	if c.Files.ChartRows <= 0 {
		errs = append(errs, "TIDY_CHART_ROWS must be positive")
	}
	if c.Files.OutputDir != "" {
		if info, err := os.Stat(c.Files.OutputDir); err != nil || !info.IsDir() {
			errs = append(errs, fmt.Sprintf("TIDY_OUTPUT_DIR (%q) must be an existing directory", c.Files.OutputDir))
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("TIDY_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("TIDY_LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
