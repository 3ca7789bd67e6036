package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jarlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify JarLens configuration",
	Long: `View or modify JarLens configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  jarlens config set engine.command fernflower
  jarlens config set tui.sidebar_width 40
  jarlens config set watch.enabled false

Valid keys:
  engine.command       - Decompiler executable
  export.extension     - File extension for exported sources
  tui.sidebar_width    - Width of the package tree pane (20-80)
  tui.highlight_cache_size - Highlighted-span cache entries
  watch.enabled        - Reload when the archive changes (true/false)
  watch.debounce_ms    - Quiet period before a reload in milliseconds
  logging.enabled      - Write a JSON log file (true/false)
  logging.level        - Log level: debug, info, warn, error`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/jarlens/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("engine:")
	fmt.Printf("  command: %s\n", cfg.Engine.Command)
	if len(cfg.Engine.Args) > 0 {
		fmt.Printf("  args: %s\n", strings.Join(cfg.Engine.Args, " "))
	}
	for _, key := range sortedOptionKeys(cfg.Engine.Options) {
		fmt.Printf("  option %s: %s\n", key, cfg.Engine.Options[key])
	}

	fmt.Println("export:")
	fmt.Printf("  extension: %s\n", cfg.Export.Extension)

	fmt.Println("tui:")
	fmt.Printf("  sidebar_width: %d\n", cfg.TUI.SidebarWidth)
	fmt.Printf("  highlight_cache_size: %d\n", cfg.TUI.HighlightCacheSize)

	fmt.Println("watch:")
	fmt.Printf("  enabled: %v\n", cfg.Watch.Enabled)
	fmt.Printf("  debounce_ms: %d\n", cfg.Watch.DebounceMs)

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	if cfg.Logging.Dir != "" {
		fmt.Printf("  dir: %s\n", cfg.Logging.Dir)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"engine.command":           "string",
		"export.extension":         "string",
		"tui.sidebar_width":        "int",
		"tui.highlight_cache_size": "int",
		"watch.enabled":            "bool",
		"watch.debounce_ms":        "int",
		"logging.enabled":          "bool",
		"logging.level":            "string",
		"logging.dir":              "string",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'jarlens config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set the value in viper
	viper.Set(key, typedValue)

	// Reject values the viewer would refuse to start with
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'jarlens config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# JarLens Configuration

# Decompiler engine settings
engine:
  # Executable invoked as: command [args...] [-key=value...] <archive> <outdir>
  command: fernflower
  # Extra arguments placed before the option flags, e.g. for running a
  # decompiler jar through the JVM:
  #   command: java
  #   args: ["-jar", "/opt/fernflower.jar"]
  args: []
  # Engine toggles passed through verbatim as -key=value flags
  options:
    ind: "   "
    din: "1"
    dgs: "1"
    hes: "1"
    hdc: "1"

# Export settings
export:
  # Extension appended to every exported source file
  extension: .java

# TUI (terminal user interface) settings
tui:
  # Width of the package tree pane in columns
  sidebar_width: 36
  # Number of highlighted files kept in the span cache
  highlight_cache_size: 256

# Archive watching
watch:
  # Reload automatically when the archive changes on disk
  enabled: false
  # Quiet period before reloading, in milliseconds
  debounce_ms: 500

# Logging
logging:
  enabled: true
  # debug, info, warn or error
  level: info
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.ConfigFile())
	return nil
}

func sortedOptionKeys(options map[string]string) []string {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
