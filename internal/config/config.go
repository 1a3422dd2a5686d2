// Package config loads the fortelion TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the settings shared by every command.
type Config struct {
	Device       string
	Timeout      time.Duration
	CommandDelay time.Duration
	Log          LogConfig
	Exporter     ExporterConfig
}

// LogConfig selects the log level and optional log file.
type LogConfig struct {
	Level string
	File  string
}

// ExporterConfig configures the Prometheus exporter.
type ExporterConfig struct {
	Listen      string
	Interval    time.Duration
	CORSOrigins []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Device:  "/dev/ttyUSB0",
		Timeout: time.Second,
		Log: LogConfig{
			Level: "info",
		},
		Exporter: ExporterConfig{
			Listen:   ":9109",
			Interval: 10 * time.Second,
		},
	}
}

type fileConfig struct {
	Device       string `toml:"device"`
	Timeout      string `toml:"timeout"`
	CommandDelay string `toml:"command_delay"`
	Log          struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
	Exporter struct {
		Listen      string   `toml:"listen"`
		Interval    string   `toml:"interval"`
		CORSOrigins []string `toml:"cors_origins"`
	} `toml:"exporter"`
}

// DefaultPath returns $XDG_CONFIG_HOME/fortelion/config.toml or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fortelion", "config.toml"), nil
}

// Load reads path on top of Default. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("device") {
		cfg.Device = strings.TrimSpace(raw.Device)
	}

	if meta.IsDefined("timeout") {
		d, err := parseDuration("timeout", raw.Timeout)
		if err != nil {
			return Config{}, err
		}
		cfg.Timeout = d
	}

	if meta.IsDefined("command_delay") {
		d, err := parseDuration("command_delay", raw.CommandDelay)
		if err != nil {
			return Config{}, err
		}
		cfg.CommandDelay = d
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}

	if meta.IsDefined("log", "file") {
		cfg.Log.File = strings.TrimSpace(raw.Log.File)
	}

	if meta.IsDefined("exporter", "listen") {
		cfg.Exporter.Listen = strings.TrimSpace(raw.Exporter.Listen)
	}

	if meta.IsDefined("exporter", "interval") {
		d, err := parseDuration("exporter.interval", raw.Exporter.Interval)
		if err != nil {
			return Config{}, err
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse exporter.interval: must be positive, got %s", d)
		}
		cfg.Exporter.Interval = d
	}

	if meta.IsDefined("exporter", "cors_origins") {
		origins, err := normalizeOrigins(raw.Exporter.CORSOrigins)
		if err != nil {
			return Config{}, err
		}
		cfg.Exporter.CORSOrigins = origins
	}

	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields Default.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse %s: must not be negative, got %s", key, d)
	}
	return d, nil
}

// normalizeOrigins trims each origin and requires an http(s) scheme, or the
// "*" wildcard.
func normalizeOrigins(origins []string) ([]string, error) {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("parse exporter.cors_origins: origin %q must start with http:// or https://", o)
		}
		out = append(out, o)
	}
	return out, nil
}
