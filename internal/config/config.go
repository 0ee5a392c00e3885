// Package config provides YAML-based configuration with defaults and
// validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the application configuration.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Note     NoteConfig     `yaml:"note"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Quotes   QuotesConfig   `yaml:"quotes"`
	Storage  StorageConfig  `yaml:"storage"`
	Sort     SortConfig     `yaml:"sort"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}
	if err := c.Note.Validate(); err != nil {
		return err
	}
	if err := c.Autosave.Validate(); err != nil {
		return err
	}
	if err := c.Quotes.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Sort.Validate()
}

// BoardConfig holds the canvas size in pixels, which bounds every card
// position.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate validates the board configuration.
func (c *BoardConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Width, validation.Required, validation.Min(100)),
		validation.Field(&c.Height, validation.Required, validation.Min(100)),
	)
}

// NoteConfig holds the fixed card size in pixels.
type NoteConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate validates the note configuration.
func (c *NoteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Width, validation.Required, validation.Min(50)),
		validation.Field(&c.Height, validation.Required, validation.Min(50)),
	)
}

// AutosaveConfig holds the periodic persistence interval.
type AutosaveConfig struct {
	Interval Duration `yaml:"interval"`
}

// Validate validates the autosave configuration.
func (c *AutosaveConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("config: autosave interval must be positive, got %v", c.Interval.Std())
	}
	return nil
}

// QuotesConfig holds the quote source endpoint.
type QuotesConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

// Validate validates the quotes configuration.
func (c *QuotesConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required),
	); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: quote timeout must be positive, got %v", c.Timeout.Std())
	}
	return nil
}

// StorageConfig holds the board file location.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SortConfig holds the layout-reset geometry applied after sorting: every
// card moves to X=StackX and cards stack downward in StackStep increments.
type SortConfig struct {
	StackX    int `yaml:"stack_x"`
	StackStep int `yaml:"stack_step"`
}

// Validate validates the sort configuration.
func (c *SortConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.StackX, validation.Min(0)),
		validation.Field(&c.StackStep, validation.Required, validation.Min(1)),
	)
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return &Config{
		Board:    BoardConfig{Width: 1200, Height: 800},
		Note:     NoteConfig{Width: 220, Height: 180},
		Autosave: AutosaveConfig{Interval: Duration(5 * time.Second)},
		Quotes: QuotesConfig{
			URL:     "https://api.quotable.io/random",
			Timeout: Duration(5 * time.Second),
		},
		Storage: StorageConfig{Path: filepath.Join(dir, "noteboard", "board.json")},
		Sort:    SortConfig{StackX: 40, StackStep: 40},
	}
}

// Load reads a YAML file over the defaults, expanding environment variables
// in its contents, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads the file when it exists and falls back to defaults
// when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}
