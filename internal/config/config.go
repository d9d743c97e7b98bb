package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default name of the project configuration file.
const FileName = "inab.yaml"

// Environment variables read on top of the config file.
const (
	EnvConfig   = "INAB_CONFIG"
	EnvLogLevel = "INAB_LOG_LEVEL"
)

// Output formats for the projection.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
)

// Config represents the top-level inab.yaml configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Projection ProjectionConfig `yaml:"projection"`
	Output     OutputConfig     `yaml:"output"`
}

// DataConfig locates the input files, relative to the config file.
type DataConfig struct {
	Recurring string `yaml:"recurring"`
	Actual    string `yaml:"actual"`
}

// ProjectionConfig controls the default projection window.
type ProjectionConfig struct {
	HorizonDays         int  `yaml:"horizon_days"`
	ShowStartingBalance bool `yaml:"show_starting_balance"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Currency         string `yaml:"currency"`
	DescriptionWidth int    `yaml:"description_width"`
	Format           string `yaml:"format"`
}

// Horizon returns the projection horizon as a duration.
func (p ProjectionConfig) Horizon() time.Duration {
	return time.Duration(p.HorizonDays) * 24 * time.Hour
}

// Load reads an inab.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Recurring: filepath.Join("data", "recurring.yaml"),
			Actual:    filepath.Join("data", "actual.yaml"),
		},
		Projection: ProjectionConfig{
			HorizonDays:         120,
			ShowStartingBalance: true,
		},
		Output: OutputConfig{
			Currency: "€",
			Format:   FormatTable,
		},
	}
}

// Validate rejects settings the projection cannot work with.
func (c *Config) Validate() error {
	if c.Projection.HorizonDays < 1 {
		return fmt.Errorf("invalid config: projection.horizon_days must be positive, got %d", c.Projection.HorizonDays)
	}
	if c.Output.DescriptionWidth < 0 {
		return fmt.Errorf("invalid config: output.description_width must not be negative, got %d", c.Output.DescriptionWidth)
	}
	switch c.Output.Format {
	case FormatTable, FormatCSV:
	default:
		return fmt.Errorf("invalid config: output.format must be %q or %q, got %q", FormatTable, FormatCSV, c.Output.Format)
	}
	if c.Data.Recurring == "" || c.Data.Actual == "" {
		return fmt.Errorf("invalid config: data.recurring and data.actual are required")
	}
	return nil
}

// Resolve returns path relative to the directory holding the config file
// at configPath. Absolute paths are returned unchanged.
func Resolve(configPath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), path)
}

// LoadEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// PathFromEnv returns the config path named by INAB_CONFIG, or fallback.
func PathFromEnv(fallback string) string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return fallback
}
