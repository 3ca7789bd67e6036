// Package config loads and validates the JarLens configuration via viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete JarLens configuration
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Export  ExportConfig  `mapstructure:"export"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig describes how to invoke the external decompiler
type EngineConfig struct {
	// Command is the decompiler executable. It is invoked as
	// `command [args...] [-key=value...] <archive> <outdir>`.
	Command string `mapstructure:"command"`
	// Args are extra arguments placed before the option flags,
	// e.g. ["-jar", "/opt/fernflower.jar"] when Command is "java".
	Args []string `mapstructure:"args"`
	// Options are opaque engine toggles passed through as -key=value
	// flags. JarLens does not interpret them.
	Options map[string]string `mapstructure:"options"`
}

// ExportConfig controls export behavior
type ExportConfig struct {
	// Extension is appended to the final segment of every exported entry
	// name. Engines that emit a language other than Java can override the
	// ".java" default.
	Extension string `mapstructure:"extension"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// SidebarWidth is the width of the package tree panel in columns
	SidebarWidth int `mapstructure:"sidebar_width"`
	// HighlightCacheSize bounds how many highlighted classes are kept
	HighlightCacheSize int `mapstructure:"highlight_cache_size"`
}

// WatchConfig controls re-decompilation when the archive changes on disk
type WatchConfig struct {
	// Enabled turns the archive watcher on (default: false)
	Enabled bool `mapstructure:"enabled"`
	// DebounceMs coalesces change bursts before notifying the viewer
	DebounceMs int `mapstructure:"debounce_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Dir is where the log file is written; empty means stderr
	Dir string `mapstructure:"dir"`
}

// Debounce returns the watcher debounce as a time.Duration
func (w *WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Command: "fernflower",
			Args:    []string{},
			Options: map[string]string{
				"ind": "   ",
				"din": "1",
				"dgs": "1",
				"hes": "1",
				"hdc": "1",
			},
		},
		Export: ExportConfig{
			Extension: ".java",
		},
		TUI: TUIConfig{
			SidebarWidth:       36,
			HighlightCacheSize: 256,
		},
		Watch: WatchConfig{
			Enabled:    false,
			DebounceMs: 500,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Engine defaults
	viper.SetDefault("engine.command", defaults.Engine.Command)
	viper.SetDefault("engine.args", defaults.Engine.Args)
	viper.SetDefault("engine.options", defaults.Engine.Options)

	// Export defaults
	viper.SetDefault("export.extension", defaults.Export.Extension)

	// TUI defaults
	viper.SetDefault("tui.sidebar_width", defaults.TUI.SidebarWidth)
	viper.SetDefault("tui.highlight_cache_size", defaults.TUI.HighlightCacheSize)

	// Watch defaults
	viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jarlens")
	}
	// Fall back to ~/.config/jarlens
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jarlens"
	}
	return filepath.Join(home, ".config", "jarlens")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
