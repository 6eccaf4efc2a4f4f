// Package config resolves the component-index configuration.
//
// Values come from (highest priority first):
//  1. Command-line flags, applied by the caller after Load
//  2. Environment variables
//  3. A .env file in the working directory
//  4. Defaults relative to the executable
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvRoot     = "COMPONENTS_DIR"
	EnvLogLevel = "COMPONENT_INDEX_LOG_LEVEL"
)

// DefaultRootDir is the directory next to the executable used when
// COMPONENTS_DIR is unset.
const DefaultRootDir = "components"

// Config holds the resolved settings.
type Config struct {
	Root     string `yaml:"root"`
	LogLevel string `yaml:"log_level"`
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg := &Config{
		Root:     os.Getenv(EnvRoot),
		LogLevel: strings.ToLower(os.Getenv(EnvLogLevel)),
	}
	if cfg.Root == "" {
		cfg.Root = defaultRoot()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", cfg.Root, err)
	}
	cfg.Root = abs
	return cfg, nil
}

// Validate checks that the root is an existing directory.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("component directory %s: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("component directory %s is not a directory", c.Root)
	}
	return nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
}

func defaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultRootDir
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultRootDir)
}
