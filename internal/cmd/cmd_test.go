package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"jarlens/internal/errors"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}

	if rootCmd.Use != "jarlens" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "jarlens")
	}

	// Check for expected subcommands (compare by Name(), not Use which includes args)
	expectedCmds := []string{"view", "export", "config"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestResolveArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "app.jar")
	if err := os.WriteFile(archive, []byte("PK"), 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}

	t.Run("existing file", func(t *testing.T) {
		got, err := resolveArchive(archive)
		if err != nil {
			t.Fatalf("resolveArchive() error = %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("resolveArchive() = %q, want absolute path", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := resolveArchive(filepath.Join(dir, "missing.jar"))
		if !errors.Is(err, errors.ErrArchiveNotFound) {
			t.Errorf("resolveArchive() error = %v, want ErrArchiveNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		_, err := resolveArchive(dir)
		if !errors.Is(err, errors.ErrNotAnArchive) {
			t.Errorf("resolveArchive() error = %v, want ErrNotAnArchive", err)
		}
	})
}

func TestExportRequiresDestination(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "app.jar")
	if err := os.WriteFile(archive, []byte("PK"), 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}

	if _, err := executeCommand(rootCmd, "export", archive); err == nil {
		t.Error("export without --dir or --zip should fail")
	}

	_, err := executeCommand(rootCmd, "export", archive,
		"--dir", filepath.Join(dir, "out"), "--zip", filepath.Join(dir, "out.zip"))
	if err == nil {
		t.Error("export with both --dir and --zip should fail")
	}
}
