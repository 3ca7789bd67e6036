package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jarlens/internal/config"
	"jarlens/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "jarlens",
	Short: "Interactive decompiled-source viewer for class archives",
	Long: `JarLens decompiles a jar or zip of compiled classes through an external
decompiler engine and presents the result as a browsable package tree
with syntax-highlighted source, plus batch export to a directory or a
source archive.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/jarlens/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/jarlens")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("JARLENS")
	// Replace dots with underscores for nested keys in env vars
	// e.g., JARLENS_ENGINE_COMMAND for engine.command
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// buildLogger creates the configured logger. Logging is best effort: a
// disabled config or a setup error yields a no-op logger.
func buildLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.Discard()
	}
	l, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return logging.Discard()
	}
	return l
}
