// Package config loads vanish settings from ~/.vanish/config.yaml with
// environment overrides applied on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vanish/constants"
)

// Config is the full settings tree
type Config struct {
	Timer   TimerConfig   `yaml:"timer"`
	Audio   AudioConfig   `yaml:"audio"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

// TimerConfig tunes the inactivity timer
type TimerConfig struct {
	TickInterval      time.Duration `yaml:"tick_interval"`
	InactivityTimeout time.Duration `yaml:"inactivity_timeout"`
}

// AudioConfig holds cue settings
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// HistoryConfig holds run journal settings
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig holds debug log settings
type LogConfig struct {
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

var (
	ErrInvalidTick    = errors.New("tick_interval must be positive")
	ErrInvalidTimeout = errors.New("inactivity_timeout must be positive")
	ErrInvalidVolume  = errors.New("volume must be between 0 and 1")
	ErrInvalidRate    = errors.New("sample_rate must be positive")
)

// Dir returns ~/.vanish, or ./.vanish when the home directory is unknown
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".vanish")
	}
	return filepath.Join(homeDir, ".vanish")
}

// DefaultPath is the config file read when no path is given
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration
func Default() *Config {
	dir := Dir()
	return &Config{
		Timer: TimerConfig{
			TickInterval:      constants.TickInterval,
			InactivityTimeout: constants.InactivityTimeout,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     constants.DefaultMasterVolume,
			SampleRate: constants.DefaultSampleRate,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "history.db"),
		},
		Log: LogConfig{
			Dir:           filepath.Join(dir, "logs"),
			RetentionDays: 7,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path means DefaultPath; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	// An unset or zeroed rate in the file falls back to the speaker default
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = constants.DefaultSampleRate
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("VANISH_TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("VANISH_TICK_INTERVAL: %w", err)
		}
		c.Timer.TickInterval = d
	}
	if v := os.Getenv("VANISH_INACTIVITY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("VANISH_INACTIVITY_TIMEOUT: %w", err)
		}
		c.Timer.InactivityTimeout = d
	}
	if v := os.Getenv("VANISH_AUDIO_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("VANISH_AUDIO_ENABLED: %w", err)
		}
		c.Audio.Enabled = b
	}
	if v := os.Getenv("VANISH_VOLUME"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("VANISH_VOLUME: %w", err)
		}
		c.Audio.Volume = f
	}
	if v := os.Getenv("VANISH_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	return nil
}

// Validate checks value ranges without modifying c
func (c *Config) Validate() error {
	if c.Timer.TickInterval <= 0 {
		return ErrInvalidTick
	}
	if c.Timer.InactivityTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return ErrInvalidVolume
	}
	if c.Audio.SampleRate <= 0 {
		return ErrInvalidRate
	}
	return nil
}
