// Package logging builds zerolog loggers and carries them through contexts.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger construction.
type Config struct {
	Level  string
	Format string // "console" or "json"
	File   FileConfig
}

// FileConfig enables an additional rotating log file.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Logger wraps zerolog.Logger with error helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a logger writing to stderr.
func New(cfg Config) Logger {
	return newLogger(cfg, consoleOrJSON(cfg.Format, os.Stderr))
}

// NewWithWriter creates a logger writing to w. Used by tests and the CLI.
func NewWithWriter(cfg Config, w io.Writer) Logger {
	return newLogger(cfg, consoleOrJSON(cfg.Format, w))
}

// NewWithFile creates a logger writing to stderr and to a rotating file.
// The returned cleanup closes the file writer.
func NewWithFile(cfg Config) (Logger, func(), error) {
	if !cfg.File.Enabled {
		return New(cfg), func() {}, nil
	}
	if cfg.File.Path == "" {
		return Logger{}, nil, fmt.Errorf("log file path is required when file logging is enabled")
	}

	// Create logs directory with secure permissions (0700 - owner only)
	if err := os.MkdirAll(filepath.Dir(cfg.File.Path), 0o700); err != nil {
		return Logger{}, nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File.Path,
		MaxSize:    cfg.File.MaxSize,
		MaxBackups: cfg.File.MaxBackups,
		MaxAge:     cfg.File.MaxAge,
		Compress:   cfg.File.Compress,
	}

	// The file always gets JSON lines; the console follows the configured format.
	w := zerolog.MultiLevelWriter(consoleOrJSON(cfg.Format, os.Stderr), fileWriter)
	cleanup := func() { _ = fileWriter.Close() }

	return newLogger(cfg, w), cleanup, nil
}

// Default returns an info-level console logger.
func Default() Logger {
	return New(Config{Level: "info", Format: "console"})
}

// Nop returns a disabled logger.
func Nop() Logger {
	return Logger{Logger: zerolog.Nop()}
}

// WrapErr logs err at error level and returns it wrapped with msg.
func (l Logger) WrapErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	l.Error().Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func newLogger(cfg Config, w io.Writer) Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	return Logger{Logger: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

func consoleOrJSON(format string, w io.Writer) io.Writer {
	if format == "json" {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
}
