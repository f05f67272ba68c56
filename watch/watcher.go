// Package watch runs the continuous conversion inbox: a directory is
// watched for new compliance documents, and each settled file triggers a
// conversion run. Events are debounced and deduplicated by content hash
// so editors that write in bursts produce one conversion, not several.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/oscalgen/document/parser"
)

// eventChannelBuffer is the size of the watch event channel.
const eventChannelBuffer = 500

// watchedExtensions are the document types the inbox accepts.
var watchedExtensions = map[string]bool{
	".md":   true,
	".json": true,
	".html": true,
}

// Operation indicates the type of file operation.
type Operation string

// Create, modify, and delete operation types.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event represents a settled change to an inbox document.
type Event struct {
	// Path is the file path relative to the inbox directory.
	Path string

	// AbsPath is the absolute file path.
	AbsPath string

	// Operation is the type of change.
	Operation Operation
}

// Watcher watches the inbox directory and emits debounced events.
type Watcher struct {
	inboxDir string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection
	hashMu sync.RWMutex
	hashes map[string]string

	events chan Event

	droppedEvents atomic.Int64
}

// NewWatcher creates an inbox watcher.
func NewWatcher(inboxDir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	return &Watcher{
		inboxDir: inboxDir,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of settled inbox events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching the inbox directory.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.inboxDir, 0o755); err != nil {
		return err
	}

	if err := w.addWatchesRecursive(w.inboxDir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("inbox watcher started",
		"inbox", w.inboxDir,
		"debounce", w.debounce)

	return nil
}

// Stop stops the watcher. The events channel is closed by processEvents
// when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// SetHash records the content hash for a file.
func (w *Watcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// GetHash returns the recorded content hash for a file.
func (w *Watcher) GetHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// addWatchesRecursive adds watches to the inbox and its subdirectories.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && base != "." {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory",
				"path", path,
				"error", err)
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent accumulates a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	ext := strings.ToLower(filepath.Ext(path))
	if !watchedExtensions[ext] {
		// Handle directory creation so new subdirectories get watched
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()
}

// handleNewDirectory adds a watch to a newly created directory.
func (w *Watcher) handleNewDirectory(path string) {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("failed to watch new directory",
			"path", path,
			"error", err)
	}
}

// flushPending settles accumulated changes into events.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	toProcess := make(map[string]fsnotify.Op, len(w.pending))
	for k, v := range w.pending {
		toProcess[k] = v
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		relPath, _ := filepath.Rel(w.inboxDir, path)
		event := Event{
			Path:    relPath,
			AbsPath: path,
		}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			event.Operation = OpDelete

			w.hashMu.Lock()
			delete(w.hashes, relPath)
			w.hashMu.Unlock()

			w.sendEvent(event)
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			event.Operation = OpDelete
			w.sendEvent(event)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("failed to read file for hash check",
				"path", relPath,
				"error", err)
			continue
		}

		newHash := parser.ContentHash(content)

		// Same content means same artifact; skip the conversion
		oldHash, hadHash := w.GetHash(relPath)
		if hadHash && oldHash == newHash {
			continue
		}
		w.SetHash(relPath, newHash)

		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = OpCreate
		} else {
			event.Operation = OpModify
		}

		w.sendEvent(event)
	}
}

// sendEvent sends an event without blocking the debounce loop.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}
