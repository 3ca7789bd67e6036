package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jarlens/internal/config"
	"jarlens/internal/engine"
	"jarlens/internal/errors"
	"jarlens/internal/tui"
	"jarlens/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view <archive>",
	Short: "Browse a decompiled archive in the terminal",
	Long: `View decompiles the archive and opens the interactive browser: a package
tree on the left, highlighted source on the right. Exports can be started
from inside the browser with e (directory) and z (source archive).`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("view needs a terminal; use 'jarlens export' for scripted runs")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	archive, err := resolveArchive(args[0])
	if err != nil {
		return err
	}

	log := buildLogger(cfg)
	defer log.Close()
	log.Info("opening archive", "archive", archive)

	eng := engine.NewExecEngine(cfg.Engine.Command, cfg.Engine.Args, cfg.Engine.Options)
	defer eng.Close()

	v := viewer.New(eng, cfg.TUI.HighlightCacheSize, log.WithArchive(archive))
	v.SetExportExtension(cfg.Export.Extension)

	app, err := tui.NewApp(v, cfg, archive, log)
	if err != nil {
		return fmt.Errorf("failed to start viewer: %w", err)
	}
	return app.Run()
}

// loadConfig loads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveArchive checks that the archive argument names a readable file
// and returns it as an absolute path.
func resolveArchive(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errors.ErrArchiveNotFound, path)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errors.ErrArchiveNotFound, path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", errors.ErrNotAnArchive, path)
	}
	return abs, nil
}
