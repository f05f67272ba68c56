package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/oscalgen/document/parser"
)

func newTestWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	w, err := NewWatcher(dir, 50*time.Millisecond, logger)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	return w
}

func TestWatcherFileCreation(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	testFile := filepath.Join(tmpDir, "sample-ssp.md")
	if err := os.WriteFile(testFile, []byte("# Sample SSP\n\nAC-2 narrative."), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	select {
	case event := <-w.Events():
		if event.Operation != OpCreate {
			t.Errorf("expected create operation, got %s", event.Operation)
		}
		if event.Path != "sample-ssp.md" {
			t.Errorf("expected path sample-ssp.md, got %s", event.Path)
		}
	case <-time.After(3 * time.Second):
		t.Error("timeout waiting for create event")
	}
}

func TestWatcherIgnoresUnwatchedExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	select {
	case event := <-w.Events():
		t.Errorf("unexpected event for unwatched extension: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherSuppressesUnchangedContent(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "doc.md")
	content := []byte("# Stable Content")
	if err := os.WriteFile(testFile, content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	w := newTestWatcher(t, tmpDir)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	// Seed the hash cache, then rewrite identical content
	w.SetHash("doc.md", parser.ContentHash(content))

	if err := os.WriteFile(testFile, content, 0o644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}

	select {
	case event := <-w.Events():
		t.Errorf("unexpected event for unchanged content: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherFileDeletion(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "doomed.md")
	if err := os.WriteFile(testFile, []byte("# Doomed"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	w := newTestWatcher(t, tmpDir)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	if err := os.Remove(testFile); err != nil {
		t.Fatalf("failed to remove test file: %v", err)
	}

	select {
	case event := <-w.Events():
		if event.Operation != OpDelete {
			t.Errorf("expected delete operation, got %s", event.Operation)
		}
	case <-time.After(3 * time.Second):
		t.Error("timeout waiting for delete event")
	}
}

func TestWatcherDebounceDefault(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 0, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	if w.debounce != 2*time.Second {
		t.Errorf("expected 2s default debounce, got %v", w.debounce)
	}
}

func TestHashCache(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), time.Second, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	if _, ok := w.GetHash("a.md"); ok {
		t.Error("expected no hash for unseen path")
	}

	w.SetHash("a.md", "h1")
	hash, ok := w.GetHash("a.md")
	if !ok || hash != "h1" {
		t.Errorf("GetHash() = %q, %v, want h1, true", hash, ok)
	}
}
