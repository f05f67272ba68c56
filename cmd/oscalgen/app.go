package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/c360studio/oscalgen/assessment"
	"github.com/c360studio/oscalgen/budget"
	"github.com/c360studio/oscalgen/config"
	"github.com/c360studio/oscalgen/convert"
	"github.com/c360studio/oscalgen/frameworks"
	"github.com/c360studio/oscalgen/llm"
	"github.com/c360studio/oscalgen/model"
	"github.com/c360studio/oscalgen/watch"
	"github.com/c360studio/oscalgen/webdoc"
)

// App wires configuration, the model registry, and the LLM client into
// the conversion and assessment workflows behind each subcommand.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	client    *llm.Client
	converter *convert.Converter
	runner    *assessment.Runner
}

func newApp(configPath, logLevel string) (*App, error) {
	logger := buildLogger(logLevel)
	slog.SetDefault(logger)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	registry, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	model.InitGlobal(registry)

	client := llm.NewClient(registry, llm.WithLogger(logger))

	budgeter, err := budget.New(budget.Config{MaxChars: cfg.Budget.MaxChars})
	if err != nil {
		return nil, fmt.Errorf("configure budgeter: %w", err)
	}

	converter := convert.New(client,
		convert.WithLogger(logger),
		convert.WithBudgeter(budgeter),
		convert.WithTemperature(cfg.Model.Temperature),
	)

	runner := assessment.NewRunner(client, assessment.WithLogger(logger))

	return &App{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		converter: converter,
		runner:    runner,
	}, nil
}

func buildLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func loadRegistry(cfg *config.Config) (*model.Registry, error) {
	if cfg.Model.RegistryPath == "" {
		return model.NewDefaultRegistry(), nil
	}
	registry, err := model.LoadFromFile(cfg.Model.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("load model registry: %w", err)
	}
	return registry, nil
}

func (a *App) runConvert(ctx context.Context, input, artifact, outputPath string) error {
	inputPath, cleanup, err := a.resolveInput(ctx, input)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Model.Timeout)
	defer cancel()

	var result *convert.Result
	switch artifact {
	case convert.ArtifactSSP:
		result, err = a.converter.SSP(ctx, inputPath)
	case convert.ArtifactMapping:
		result, err = a.converter.Mapping(ctx, inputPath)
	default:
		return fmt.Errorf("unknown artifact type %q (want %s or %s)",
			artifact, convert.ArtifactSSP, convert.ArtifactMapping)
	}
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	if outputPath == "" {
		outputPath = convert.DefaultOutputPath(inputPath)
	}
	if err := convert.WriteArtifact(result.Artifact, outputPath); err != nil {
		return err
	}

	a.logger.Info("artifact written",
		"artifact", artifact,
		"output", outputPath,
		"controls", result.Controls)
	return nil
}

// resolveInput turns a URL or local HTML file into a temporary markdown
// file the converter can parse. Plain local paths pass through untouched.
func (a *App) resolveInput(ctx context.Context, input string) (string, func(), error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return a.fetchToMarkdown(ctx, input)
	}

	if _, err := os.Stat(input); err != nil {
		return "", nil, fmt.Errorf("stat input: %w", err)
	}

	if strings.ToLower(filepath.Ext(input)) != ".html" {
		return input, nil, nil
	}

	content, err := os.ReadFile(input)
	if err != nil {
		return "", nil, fmt.Errorf("read input: %w", err)
	}
	converted, err := webdoc.NewConverter().Convert(content, "")
	if err != nil {
		return "", nil, fmt.Errorf("convert html input: %w", err)
	}
	return writeTempMarkdown(converted.Markdown)
}

func (a *App) fetchToMarkdown(ctx context.Context, rawURL string) (string, func(), error) {
	markdown, _, err := a.fetchMarkdown(ctx, rawURL)
	if err != nil {
		return "", nil, err
	}
	return writeTempMarkdown(markdown)
}

// fetchMarkdown fetches a URL and converts the HTML body to markdown.
func (a *App) fetchMarkdown(ctx context.Context, rawURL string) (markdown, title string, err error) {
	validator := webdoc.Validator{AllowPrivateHosts: a.cfg.Fetch.AllowPrivateHosts}
	if err := validator.ValidateURL(rawURL); err != nil {
		return "", "", fmt.Errorf("validate url: %w", err)
	}

	fetcher := webdoc.NewFetcher(a.cfg.Fetch)
	fetched, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	converted, err := webdoc.NewConverter().Convert(fetched.Body, rawURL)
	if err != nil {
		return "", "", fmt.Errorf("convert %s: %w", rawURL, err)
	}
	return converted.Markdown, converted.Title, nil
}

func writeTempMarkdown(markdown string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "oscalgen-input-*.md")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.WriteString(markdown); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	name := tmp.Name()
	return name, func() { os.Remove(name) }, nil
}

func (a *App) runAssess(ctx context.Context, framework, baseline, scope string, inputPaths []string, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Model.Timeout)
	defer cancel()

	// URL evidence is fetched up front so the runner only sees files.
	resolved := make([]string, 0, len(inputPaths))
	for _, input := range inputPaths {
		if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
			resolved = append(resolved, input)
			continue
		}
		path, cleanup, err := a.fetchToMarkdown(ctx, input)
		if err != nil {
			return err
		}
		defer cleanup()
		resolved = append(resolved, path)
	}
	inputPaths = resolved

	report, err := a.runner.Run(ctx, assessment.Input{
		Framework:  framework,
		Baseline:   baseline,
		Scope:      scope,
		InputPaths: inputPaths,
	})
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	encoded = append(encoded, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	a.logger.Info("assessment report written",
		"framework", framework,
		"output", outputPath,
		"findings", len(report.Findings))
	return nil
}

func (a *App) runWatch(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	inbox, err := watch.NewInbox(a.cfg.Watch, a.converter, a.logger)
	if err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	a.logger.Info("watching inbox",
		"inbox", a.cfg.Watch.Inbox,
		"output_dir", a.cfg.Watch.OutputDir)
	return inbox.Run(ctx)
}

func (a *App) runFetch(ctx context.Context, rawURL, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Fetch.Timeout)
	defer cancel()

	markdown, title, err := a.fetchMarkdown(ctx, rawURL)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = os.Stdout.WriteString(markdown)
		return err
	}
	if err := os.WriteFile(outputPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	a.logger.Info("page fetched",
		"url", rawURL,
		"title", title,
		"output", outputPath)
	return nil
}

func runLookup(framework, controlID string) error {
	result, err := frameworks.LookupControl(framework, controlID)
	if err != nil {
		return fmt.Errorf("lookup %s in %s: %w", controlID, framework, err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lookup result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

func runGaps(framework, controlID, description string) error {
	// A description that names an existing file is read from disk; long
	// implementation narratives rarely fit on a command line.
	if description != "" {
		if info, err := os.Stat(description); err == nil && !info.IsDir() {
			content, err := os.ReadFile(description)
			if err != nil {
				return fmt.Errorf("read description file: %w", err)
			}
			description = string(content)
		}
	}

	report, err := frameworks.AnalyzeGaps(framework, controlID, description)
	if err != nil {
		return fmt.Errorf("analyze gaps for %s in %s: %w", controlID, framework, err)
	}

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode gap report: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

func runMap(framework string, controlIDs []string) error {
	mappings, err := frameworks.MapControls(framework, controlIDs)
	if err != nil {
		return fmt.Errorf("map controls from %s: %w", framework, err)
	}

	encoded, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mappings: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
