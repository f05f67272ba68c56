// Package main provides the oscalgen binary entry point.
// Oscalgen converts compliance documents (SSP exports, framework
// mapping files) into validated OSCAL artifacts and runs
// multi-framework compliance assessments.
package main

import (
	"fmt"
	"os"
	"runtime"

	// Register LLM providers via init()
	_ "github.com/c360studio/oscalgen/llm/providers"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "oscalgen"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "oscalgen",
		Short: "Compliance document to OSCAL artifact converter",
		Long: `Oscalgen converts compliance documents into OSCAL artifacts.

It provides:
- SSP conversion from markdown or layout-export JSON to OSCAL SSP
- Framework mapping conversion to OSCAL mapping collections
- Multi-framework compliance assessment over evidence files
- A watched inbox for continuous conversion`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(convertCmd(&configPath, &logLevel))
	cmd.AddCommand(assessCmd(&configPath, &logLevel))
	cmd.AddCommand(watchCmd(&configPath, &logLevel))
	cmd.AddCommand(fetchCmd(&configPath, &logLevel))
	cmd.AddCommand(lookupCmd())
	cmd.AddCommand(mapCmd())
	cmd.AddCommand(gapsCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func convertCmd(configPath, logLevel *string) *cobra.Command {
	var (
		artifact   string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a compliance document to an OSCAL artifact",
		Long: `Convert a compliance document to an OSCAL artifact.

The input may be a markdown file, a layout-export JSON file with
document tables, an HTML file, or an http(s) URL. Framework mapping
files (--to oscal-mapping) produce an OSCAL mapping collection;
everything else produces an OSCAL SSP.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath, *logLevel)
			if err != nil {
				return err
			}
			return app.runConvert(cmd.Context(), args[0], artifact, outputPath)
		},
	}

	cmd.Flags().StringVar(&artifact, "to", "oscal-ssp", "Target artifact (oscal-ssp or oscal-mapping)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: <stem>-oscal.json)")

	return cmd
}

func assessCmd(configPath, logLevel *string) *cobra.Command {
	var (
		framework  string
		baseline   string
		scope      string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "assess [evidence files...]",
		Short: "Run a compliance assessment over evidence files",
		Long: `Run a compliance assessment against a framework.

Evidence file arguments may include glob patterns (** supported).
The structured assessment report is written as JSON to stdout or to
the --output path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath, *logLevel)
			if err != nil {
				return err
			}
			return app.runAssess(cmd.Context(), framework, baseline, scope, args, outputPath)
		},
	}

	cmd.Flags().StringVar(&framework, "framework", "", "Framework to assess against, e.g. \"NIST 800-53\" (required)")
	cmd.Flags().StringVar(&baseline, "baseline", "", "Baseline or level within the framework, e.g. \"Moderate\"")
	cmd.Flags().StringVar(&scope, "scope", "", "System or boundary under assessment")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report output path (default: stdout)")
	_ = cmd.MarkFlagRequired("framework")

	return cmd
}

func watchCmd(configPath, logLevel *string) *cobra.Command {
	var (
		inbox       string
		outputDir   string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch an inbox directory and convert new documents",
		Long: `Watch an inbox directory for compliance documents and convert
each new or changed file to an OSCAL artifact. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath, *logLevel)
			if err != nil {
				return err
			}
			if inbox != "" {
				app.cfg.Watch.Inbox = inbox
			}
			if outputDir != "" {
				app.cfg.Watch.OutputDir = outputDir
			}
			if metricsAddr != "" {
				app.cfg.Watch.MetricsAddr = metricsAddr
			}
			return app.runWatch(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&inbox, "inbox", "", "Inbox directory to watch (default from config)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for converted artifacts (default from config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus listen address, e.g. :9090 (default disabled)")

	return cmd
}

func fetchCmd(configPath, logLevel *string) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a web page and convert it to markdown",
		Long: `Fetch a compliance document from a URL and convert the HTML to
markdown suitable for conversion or as assessment evidence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath, *logLevel)
			if err != nil {
				return err
			}
			return app.runFetch(cmd.Context(), args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Markdown output path (default: stdout)")

	return cmd
}

func lookupCmd() *cobra.Command {
	var framework string

	cmd := &cobra.Command{
		Use:   "lookup <control-id>",
		Short: "Look up a control in the embedded framework data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(framework, args[0])
		},
	}

	cmd.Flags().StringVar(&framework, "framework", "NIST 800-53", "Framework data set to search")

	return cmd
}

func mapCmd() *cobra.Command {
	var framework string

	cmd := &cobra.Command{
		Use:   "map <control-id>...",
		Short: "Map controls to their cross-framework relatives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(framework, args)
		},
	}

	cmd.Flags().StringVar(&framework, "framework", "NIST 800-53", "Source framework of the control IDs")

	return cmd
}

func gapsCmd() *cobra.Command {
	var (
		framework   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "gaps <control-id>",
		Short: "Flag control requirements an implementation description does not cover",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGaps(framework, args[0], description)
		},
	}

	cmd.Flags().StringVar(&framework, "framework", "NIST 800-53", "Framework data set to search")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Implementation description to check (or a path to a file holding it)")

	return cmd
}
