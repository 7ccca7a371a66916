// Package config loads lckmetrics settings from a TOML file, a .env file and
// LCK_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config represents the application configuration.
type Config struct {
	Data    DataConfig   `toml:"data"`
	Filters FilterConfig `toml:"filters"`
	Log     LogConfig    `toml:"log"`
	Report  ReportConfig `toml:"report"`
}

// DataConfig locates the input files.
type DataConfig struct {
	Path     string `toml:"path"`     // Match dataset (CSV or XLSX)
	Clusters string `toml:"clusters"` // Cluster definition CSV
}

// FilterConfig holds default values for the global filters. Empty or "All"
// means unfiltered.
type FilterConfig struct {
	Year     string `toml:"year"`
	Split    string `toml:"split"`
	Playoffs string `toml:"playoffs"`
	Patch    string `toml:"patch"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `toml:"level"`  // logrus level name
	Format string `toml:"format"` // "text" or "json"
}

// ReportConfig tunes report output.
type ReportConfig struct {
	MostN    int `toml:"most_n"`    // Champions listed on a player profile
	TopN     int `toml:"top_n"`     // Rows per overview leaderboard
	MinGames int `toml:"min_games"` // Picks needed for win/loss rate leaderboards
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:     filepath.Join("data", "lck.csv"),
			Clusters: filepath.Join("data", "clusters.csv"),
		},
		Filters: FilterConfig{
			Year:     "All",
			Split:    "All",
			Playoffs: "All",
			Patch:    "All",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Report: ReportConfig{
			MostN:    5,
			TopN:     10,
			MinGames: 18,
		},
	}
}

// DefaultPath returns ~/.lckmetrics/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".lckmetrics", "config.toml")
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error. Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// LoadDotEnv loads .env from the working directory when present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Debug("could not load .env")
	}
}

// ApplyEnv overrides file values with LCK_* and LOG_* environment variables.
func (c *Config) ApplyEnv() {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	str("LCK_DATA", &c.Data.Path)
	str("LCK_CLUSTERS", &c.Data.Clusters)
	str("LCK_YEAR", &c.Filters.Year)
	str("LCK_SPLIT", &c.Filters.Split)
	str("LCK_PLAYOFFS", &c.Filters.Playoffs)
	str("LCK_PATCH", &c.Filters.Patch)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	num("LCK_MOST_N", &c.Report.MostN)
	num("LCK_MIN_GAMES", &c.Report.MinGames)
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return errors.New("data path is empty")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Report.MostN < 1 {
		return fmt.Errorf("most_n must be positive: %d", c.Report.MostN)
	}
	if c.Report.TopN < 1 {
		return fmt.Errorf("top_n must be positive: %d", c.Report.TopN)
	}
	if c.Report.MinGames < 0 {
		return fmt.Errorf("min_games cannot be negative: %d", c.Report.MinGames)
	}
	return nil
}
