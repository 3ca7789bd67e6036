package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_NotifiesOnRewrite(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "app.jar")
	if err := os.WriteFile(archive, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(archive, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(archive, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification after rewrite")
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "app.jar")
	if err := os.WriteFile(archive, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(archive, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(archive, []byte("burst"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification after burst")
	}

	// The burst settled; no second notification should follow.
	select {
	case <-w.Changes():
		t.Error("burst produced more than one notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "app.jar")
	if err := os.WriteFile(archive, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(archive, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.jar"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
		t.Error("unrelated file should not notify")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "app.jar"), 0)
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
