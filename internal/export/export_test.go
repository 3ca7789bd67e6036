package export

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestEntryPath(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"com/acme/Server", "com/acme/Server.java"},
		{"Main", "Main.java"},
		{"/leading/Slash", "leading/Slash.java"},
		{"a/../b/C", "b/C.java"},
		{"", "entry.java"},
	}
	for _, tc := range cases {
		if got := EntryPath(tc.name, ""); got != tc.want {
			t.Errorf("EntryPath(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCustomExtension(t *testing.T) {
	if got := EntryPath("com/acme/Server", ".kt"); got != "com/acme/Server.kt" {
		t.Errorf("EntryPath with override = %q", got)
	}

	dir := t.TempDir()
	w := NewDirWriter(dir, ".kt")
	if err := w.Write("a/B", "class B {}"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a", "B.kt")); err != nil {
		t.Errorf("configured extension not applied: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.zip")
	zw, err := NewZipWriter(path, ".kt")
	if err != nil {
		t.Fatal(err)
	}
	if err := zw.Write("a/B", "class B {}"); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if len(r.File) != 1 || r.File[0].Name != "a/B.kt" {
		t.Errorf("archive entries = %v", r.File)
	}
}

func TestDirWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewDirWriter(dir, "")

	entries := map[string]string{
		"com/acme/Server":       "class Server {}",
		"com/acme/util/Strings": "class Strings {}",
		"Main":                  "class Main {}",
	}
	for name, text := range entries {
		if err := w.Write(name, text); err != nil {
			t.Fatalf("Write(%q): %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for name, want := range entries {
		path := filepath.Join(dir, filepath.FromSlash(name)+Extension)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back %s: %v", path, err)
		}
		if string(data) != want {
			t.Errorf("%s: got %q, want %q", name, data, want)
		}
	}
}

func TestDirWriter_Overwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewDirWriter(dir, "")

	if err := w.Write("a/B", "old"); err != nil {
		t.Fatal(err)
	}
	if err := w.Write("a/B", "new"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a", "B.java"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("expected overwrite, got %q", data)
	}
}

func TestZipWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")

	w, err := NewZipWriter(path, "")
	if err != nil {
		t.Fatal(err)
	}
	entries := []struct{ name, text string }{
		{"com/acme/Server", "class Server {}"},
		{"Main", "class Main {}"},
	}
	for _, e := range entries {
		if err := w.Write(e.name, e.text); err != nil {
			t.Fatalf("Write(%q): %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if len(r.File) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(r.File))
	}
	for i, e := range entries {
		f := r.File[i]
		if f.Name != EntryPath(e.name, "") {
			t.Errorf("entry %d name = %q, want %q", i, f.Name, EntryPath(e.name, ""))
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		buf := make([]byte, len(e.text)+8)
		n, _ := rc.Read(buf)
		rc.Close()
		if string(buf[:n]) != e.text {
			t.Errorf("entry %d content = %q, want %q", i, buf[:n], e.text)
		}
	}
}

func TestZipWriter_Deterministic(t *testing.T) {
	build := func(path string) []byte {
		w, err := NewZipWriter(path, "")
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Write("a/B", "class B {}"); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	dir := t.TempDir()
	first := build(filepath.Join(dir, "one.zip"))
	second := build(filepath.Join(dir, "two.zip"))

	if string(first) != string(second) {
		t.Error("expected identical archives for identical input")
	}
}
