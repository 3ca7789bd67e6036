package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jarlens/internal/engine"
	"jarlens/internal/task"
	"jarlens/internal/viewer"
)

var (
	exportDir string
	exportZip string
)

var exportCmd = &cobra.Command{
	Use:   "export <archive>",
	Short: "Decompile an archive and export every source without the TUI",
	Long: `Export decompiles the archive and writes every decompiled class to the
destination given by --dir or --zip. Progress is reported on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "export sources into this directory")
	exportCmd.Flags().StringVar(&exportZip, "zip", "", "export sources into this zip archive")
	exportCmd.MarkFlagsOneRequired("dir", "zip")
	exportCmd.MarkFlagsMutuallyExclusive("dir", "zip")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	eng := engine.NewExecEngine(cfg.Engine.Command, cfg.Engine.Args, cfg.Engine.Options)
	defer eng.Close()

	v := viewer.New(eng, cfg.TUI.HighlightCacheSize, log.WithArchive(archive))
	v.SetExportExtension(cfg.Export.Extension)

	ctx := cmd.Context()
	report := func(p task.Progress) {
		if p.Message == "" {
			return
		}
		fmt.Fprintln(cmd.ErrOrStderr(), p.Message)
	}

	if out := v.OpenArchive(ctx, archive).Wait(report); !out.Success() {
		return fmt.Errorf("decompile failed: %w", out.Err)
	}

	var t *task.Task
	if exportZip != "" {
		t = v.ExportArchive(ctx, exportZip)
	} else {
		t = v.ExportDir(ctx, exportDir)
	}
	if out := t.Wait(report); !out.Success() {
		return fmt.Errorf("export failed: %w", out.Err)
	}

	if exportZip != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportZip)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportDir)
	}
	return nil
}
