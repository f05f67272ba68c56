package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/oscalgen/config"
	"github.com/c360studio/oscalgen/convert"
	"github.com/c360studio/oscalgen/metrics"
	"github.com/c360studio/oscalgen/webdoc"
)

// Converter is the conversion surface the inbox needs.
type Converter interface {
	SSP(ctx context.Context, inputPath string) (*convert.Result, error)
	Mapping(ctx context.Context, inputPath string) (*convert.Result, error)
}

// Inbox consumes watcher events and runs conversions.
type Inbox struct {
	cfg       config.WatchConfig
	converter Converter
	watcher   *Watcher
	logger    *slog.Logger
	htmlConv  *webdoc.Converter
}

// NewInbox creates the inbox runner.
func NewInbox(cfg config.WatchConfig, converter Converter, logger *slog.Logger) (*Inbox, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := NewWatcher(cfg.Inbox, cfg.Debounce, logger)
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Inbox{
		cfg:       cfg,
		converter: converter,
		watcher:   watcher,
		logger:    logger,
		htmlConv:  webdoc.NewConverter(),
	}, nil
}

// Run watches the inbox until the context is cancelled. When a metrics
// address is configured, the Prometheus endpoint is served for the run's
// duration.
func (in *Inbox) Run(ctx context.Context) error {
	if err := in.watcher.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer in.watcher.Stop()

	if in.cfg.MetricsAddr != "" {
		go in.serveMetrics(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-in.watcher.Events():
			if !ok {
				return nil
			}
			in.handleEvent(ctx, event)
		}
	}
}

// handleEvent runs one conversion for a settled inbox event.
func (in *Inbox) handleEvent(ctx context.Context, event Event) {
	if event.Operation == OpDelete {
		metrics.InboxEvents.WithLabelValues("deleted").Inc()
		return
	}

	inputPath, cleanup, err := in.prepareInput(event.AbsPath)
	if err != nil {
		metrics.InboxEvents.WithLabelValues("ignored").Inc()
		in.logger.Warn("skipping inbox file", "path", event.Path, "error", err)
		return
	}
	if cleanup != nil {
		defer cleanup()
	}

	var result *convert.Result
	if isMappingsFile(inputPath) {
		result, err = in.converter.Mapping(ctx, inputPath)
	} else {
		result, err = in.converter.SSP(ctx, inputPath)
	}
	if err != nil {
		metrics.InboxEvents.WithLabelValues("error").Inc()
		in.logger.Error("inbox conversion failed", "path", event.Path, "error", err)
		return
	}

	outputPath := in.outputPath(event.AbsPath)
	if err := convert.WriteArtifact(result.Artifact, outputPath); err != nil {
		metrics.InboxEvents.WithLabelValues("error").Inc()
		in.logger.Error("failed to write artifact", "path", event.Path, "error", err)
		return
	}

	metrics.InboxEvents.WithLabelValues("converted").Inc()
	in.logger.Info("inbox conversion complete",
		"input", event.Path,
		"output", outputPath,
		"controls", result.Controls,
		"warnings", len(result.Warnings))
}

// prepareInput maps an inbox file to a converter input. HTML pages are
// rendered to a temporary markdown file first; the cleanup func removes it.
func (in *Inbox) prepareInput(absPath string) (string, func(), error) {
	if strings.ToLower(filepath.Ext(absPath)) != ".html" {
		return absPath, nil, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", nil, fmt.Errorf("read html: %w", err)
	}

	converted, err := in.htmlConv.Convert(content, "")
	if err != nil {
		return "", nil, fmt.Errorf("convert html: %w", err)
	}

	tmp, err := os.CreateTemp("", "oscalgen-inbox-*.md")
	if err != nil {
		return "", nil, err
	}
	if _, err := tmp.WriteString(converted.Markdown); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}

	name := tmp.Name()
	return name, func() { os.Remove(name) }, nil
}

// outputPath places the artifact in the configured output directory,
// falling back to alongside the input.
func (in *Inbox) outputPath(absPath string) string {
	defaultPath := convert.DefaultOutputPath(absPath)
	if in.cfg.OutputDir == "" {
		return defaultPath
	}
	return filepath.Join(in.cfg.OutputDir, filepath.Base(defaultPath))
}

// serveMetrics exposes the Prometheus endpoint until the context ends.
func (in *Inbox) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              in.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	in.logger.Info("metrics endpoint listening", "addr", in.cfg.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		in.logger.Error("metrics endpoint failed", "error", err)
	}
}

// isMappingsFile reports whether a JSON file is a framework-mappings
// input rather than a layout-table export. The shapes share no keys, so
// a top-level "mappings" array is decisive.
func isMappingsFile(path string) bool {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var probe struct {
		Mappings []json.RawMessage `json:"mappings"`
		Tables   []json.RawMessage `json:"tables"`
	}
	if err := json.Unmarshal(content, &probe); err != nil {
		return false
	}
	return len(probe.Mappings) > 0 && len(probe.Tables) == 0
}
