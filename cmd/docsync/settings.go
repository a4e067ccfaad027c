// FILE: docsync/cmd/docsync/settings.go
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/config"
)

const appName = "docsync"

// settings are the CLI defaults; environment variables (DOCSYNC_LOG_LEVEL,
// DOCSYNC_JSON_LOG, ...) and a settings file override them.
type settings struct {
	LogLevel string `toml:"log_level"`
	JSONLog  bool   `toml:"json_log"`
	Format   string `toml:"format"`
}

// loadSettings resolves the CLI settings.
func loadSettings(explicit string) (settings, error) {
	defaults := settings{LogLevel: "warn"}

	cfg, err := config.NewBuilder().
		WithDefaults(&defaults).
		WithEnvPrefix(strings.ToUpper(appName) + "_").
		WithArgs([]string{}).
		WithFile(discoverSettingsFile(explicit)).
		Build()
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	s := defaults
	if level, err := cfg.String("log_level"); err == nil && level != "" {
		s.LogLevel = level
	}
	if jsonLog, err := cfg.Bool("json_log"); err == nil {
		s.JSONLog = jsonLog
	}
	if format, err := cfg.String("format"); err == nil {
		s.Format = format
	}
	return s, nil
}

// discoverSettingsFile returns the settings file to load: the explicit
// path, then $DOCSYNC_CONFIG, then docsync.toml in the current directory
// and the XDG config directories. An empty result means defaults only.
func discoverSettingsFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if path := os.Getenv(strings.ToUpper(appName) + "_CONFIG"); path != "" {
		return path
	}

	var searchPaths []string
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	searchPaths = append(searchPaths, xdgConfigPaths(appName)...)

	for _, dir := range searchPaths {
		path := filepath.Join(dir, appName+".toml")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// xdgConfigPaths returns XDG-compliant config search paths
func xdgConfigPaths(name string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, name))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", name))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, name))
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", name))
	}

	return paths
}

// newLogger builds the stderr logger of the CLI.
func newLogger(w io.Writer, s settings, debug bool) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if s.JSONLog {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
