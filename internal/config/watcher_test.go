package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "linemark.toml")
	if err := os.WriteFile(path, []byte("tab_size = 4\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	notifier := NewNotifier()
	updates := make(chan Config, 4)
	notifier.Subscribe(func(cfg Config) { updates <- cfg })

	w, err := NewWatcher(path, notifier)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Let the watcher settle before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte("tab_size = 8\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case cfg := <-updates:
		if cfg.TabSize != 8 {
			t.Errorf("reloaded tab size = %d, want 8", cfg.TabSize)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed after write")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "linemark.toml")
	if err := os.WriteFile(path, []byte("tab_size = 4\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	notifier := NewNotifier()
	updates := make(chan Config, 4)
	notifier.Subscribe(func(cfg Config) { updates <- cfg })

	w, err := NewWatcher(path, notifier)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("tab_size = 9\n"), 0o644); err != nil {
		t.Fatalf("writing sibling: %v", err)
	}

	select {
	case cfg := <-updates:
		t.Errorf("unexpected reload from sibling write: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "linemark.toml")

	w, err := NewWatcher(path, NewNotifier())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
