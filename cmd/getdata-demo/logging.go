// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig holds logging settings read from flags and config.
type LogConfig struct {
	Level    string // debug, info, warn, error (default: warn)
	File     string // rotating JSON log file; empty logs text to stderr
	MaxSize  int    // megabytes before rotation (default: 10)
	MaxFiles int    // rotated files to keep (default: 5)
}

// parseLevel maps a level name to a slog.Level, defaulting to warn.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// newLogger builds the CLI logger. Diagnostics go to stderr so they never
// mix with results on stdout.
func newLogger(cfg LogConfig, stderr io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nil
	}

	path := cfg.File
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving log file: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = 10
	}
	maxFiles := cfg.MaxFiles
	if maxFiles == 0 {
		maxFiles = 5
	}

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
		MaxAge:     30,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(rotating, opts)), nil
}
