package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLogLines(t *testing.T, dir string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "jarlens.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", line, err)
		}
		lines = append(lines, entry)
	}
	return lines
}

func TestNewLogger_WritesJSON(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("archive opened", "classes", 17)
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	lines := readLogLines(t, dir)
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(lines))
	}
	if lines[0]["msg"] != "archive opened" {
		t.Errorf("msg = %v", lines[0]["msg"])
	}
	if lines[0]["classes"] != float64(17) {
		t.Errorf("classes = %v", lines[0]["classes"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("dropped")
	log.Info("dropped too")
	log.Warn("kept")
	log.Close()

	lines := readLogLines(t, dir)
	if len(lines) != 1 {
		t.Fatalf("expected only the warning, got %d lines", len(lines))
	}
	if lines[0]["msg"] != "kept" {
		t.Errorf("msg = %v", lines[0]["msg"])
	}
}

func TestLogger_PersistentAttrs(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatal(err)
	}
	child := log.WithArchive("app.jar").WithTask("export-dir")
	child.Info("entry written")
	log.Close()

	lines := readLogLines(t, dir)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["archive"] != "app.jar" {
		t.Errorf("archive = %v", lines[0]["archive"])
	}
	if lines[0]["task"] != "export-dir" {
		t.Errorf("task = %v", lines[0]["task"])
	}
}

func TestLogger_ChildDoesNotMutateParent(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatal(err)
	}
	_ = log.WithArchive("app.jar")
	log.Info("no archive attr")
	log.Close()

	lines := readLogLines(t, dir)
	if _, ok := lines[0]["archive"]; ok {
		t.Error("parent logger picked up the child's attribute")
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Info("goes nowhere")
	if err := log.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
