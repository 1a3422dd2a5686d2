// Package logging builds the zerolog logger used by the command line tool,
// with optional file rotation.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "FORTELION_LOG_LEVEL"

// Config holds logger configuration.
type Config struct {
	Level string // trace, debug, info, warn, error
	File  string // Log file path; empty disables file output

	MaxSizeMB  int  // Max size in MB before rotation
	MaxBackups int  // Number of old files to keep
	MaxAgeDays int  // Max age in days
	Compress   bool // Compress old files

	Console io.Writer // Console output, stderr when nil
	NoColor bool
}

// DefaultConfig returns sensible defaults for console logging and rotation.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

// NewRotatingWriter creates a log writer with rotation support.
func NewRotatingWriter(cfg Config) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// ParseLevel accepts zerolog level names, case-insensitively. An empty
// string selects info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// New creates a logger writing human-readable lines to the console and,
// when cfg.File is set, JSON lines to a rotating file. The returned closer
// releases the file and must be called on exit.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	if env := os.Getenv(EnvLogLevel); env != "" {
		cfg.Level = env
	}
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := cfg.Console
	if out == nil {
		out = os.Stderr
	}
	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}

	var w io.Writer = console
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		file := NewRotatingWriter(cfg)
		w = zerolog.MultiLevelWriter(console, file)
		closer = file
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Str("app", "fortelion").Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
