// Package config loads the tournament configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezBadminton/gocup/core"
	"github.com/ezBadminton/gocup/esports"
)

const (
	// StateDir is the directory that holds the persisted tournament
	StateDir = ".gocup"

	// Environment overrides
	envStatePath = "GOCUP_STATE_PATH"
	envLogLevel  = "GOCUP_LOG_LEVEL"
)

var DefaultStatePath = filepath.Join(StateDir, "state", "tournament.json")

var ErrInvalidConfig = errors.New("invalid config")

// RosterConfig bounds the number of registered teams.
type RosterConfig struct {
	MinTeams int `yaml:"min_teams"`
	MaxTeams int `yaml:"max_teams"`
}

// ScoringConfig holds the group stage scoring.
type ScoringConfig struct {
	PointsPerWin int `yaml:"points_per_win"`
}

// FormatsConfig holds the best-of-N format of each bracket round.
type FormatsConfig struct {
	Quarterfinal int `yaml:"quarterfinal"`
	Semifinal    int `yaml:"semifinal"`
	Final        int `yaml:"final"`
}

// StorageConfig holds the snapshot location.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds the logger setup.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// Config models the YAML configuration file.
type Config struct {
	Roster  RosterConfig  `yaml:"roster"`
	Scoring ScoringConfig `yaml:"scoring"`
	Formats FormatsConfig `yaml:"formats"`
	Seeding string        `yaml:"seeding"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	settings := core.DefaultSettings()
	return &Config{
		Roster: RosterConfig{
			MinTeams: settings.MinParticipants,
			MaxTeams: settings.MaxParticipants,
		},
		Scoring: ScoringConfig{PointsPerWin: settings.PointsPerWin},
		Formats: FormatsConfig{
			Quarterfinal: int(settings.QuarterfinalFormat),
			Semifinal:    int(settings.SemifinalFormat),
			Final:        int(settings.FinalFormat),
		},
		Seeding: settings.Seeding.String(),
		Storage: StorageConfig{Path: DefaultStatePath},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the configuration file at path. Keys missing from the
// file keep their defaults and a missing file yields the defaults.
// Environment variables override the storage path and log level.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if v := os.Getenv(envStatePath); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks every value that Settings and NewLogger depend on.
func (c *Config) Validate() error {
	if _, err := c.Settings(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("%w: storage.path is required", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Settings converts the configuration into validated engine settings.
func (c *Config) Settings() (core.Settings, error) {
	formats := make([]esports.BestOf, 0, 3)
	for _, n := range []int{c.Formats.Quarterfinal, c.Formats.Semifinal, c.Formats.Final} {
		f, err := esports.ParseBestOf(n)
		if err != nil {
			return core.Settings{}, fmt.Errorf("%w: formats: %w", ErrInvalidConfig, err)
		}
		formats = append(formats, f)
	}

	seeding, err := core.ParseSeeding(c.Seeding)
	if err != nil {
		return core.Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	settings := core.Settings{
		MinParticipants:    c.Roster.MinTeams,
		MaxParticipants:    c.Roster.MaxTeams,
		PointsPerWin:       c.Scoring.PointsPerWin,
		QuarterfinalFormat: formats[0],
		SemifinalFormat:    formats[1],
		FinalFormat:        formats[2],
		Seeding:            seeding,
	}
	if err := settings.Validate(); err != nil {
		return core.Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return settings, nil
}

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return l, fmt.Errorf("%w: unknown log.level %q", ErrInvalidConfig, level)
	}
	return l, nil
}

// NewLogger builds a logger writing to w as configured.
// Unknown levels fall back to info.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
