package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/wistia/config"
	"github.com/s0up4200/wistia/wistia"
)

// skipInit marks commands that run without configuration or API client
const skipInit = "skip-init"

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *wistia.Client
	registry *prometheus.Registry

	// Command flags
	outputFormat string
	debugMode    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wistia",
	Short: "Browse medias, projects and viewing stats of a Wistia account",
	Long: `wistia is a CLI for the Wistia Data and Stats APIs. It lists and shows
projects and medias, filters medias with expressions, and reports account,
media and visitor statistics.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: reportMetrics,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: text or json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&debugMode, "debug", "", "request diagnostics: off, summary or verbose (overrides config)")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(mediasCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	if _, ok := cmd.Annotations[skipInit]; ok {
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
		return nil
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override from command line if specified
	if cmd.Flags().Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if cmd.Flags().Changed("debug") {
		if _, err := wistia.ParseDebugMode(debugMode); err != nil {
			return err
		}
		cfg.API.Debug = debugMode
	}
	if cfg.Output.Format != "text" && cfg.Output.Format != "json" {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	client, err = newClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Wistia client: %w", err)
	}

	return nil
}

// newClient builds the API client from configuration
func newClient(cfg *config.Config) (*wistia.Client, error) {
	opts := []wistia.Option{
		wistia.WithBaseURL(cfg.API.BaseURL),
		wistia.WithLogger(logger.With().Str("component", "wistia").Logger()),
		wistia.WithTimeout(cfg.API.Timeout),
		wistia.WithDebugMode(cfg.DebugMode()),
		wistia.WithConcurrency(cfg.Concurrency),
	}

	if cfg.API.Breaker.Enabled {
		opts = append(opts, wistia.WithCircuitBreaker(wistia.BreakerSettings{
			ConsecutiveFailures: cfg.API.Breaker.ConsecutiveFailures,
			Timeout:             cfg.API.Breaker.Timeout,
		}))
	}

	if cfg.API.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		opts = append(opts, wistia.WithMetrics(registry))
	}

	return wistia.NewClient(cfg.API.Password, opts...)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// reportMetrics logs the request counters collected during the command
func reportMetrics(cmd *cobra.Command, args []string) error {
	if registry == nil {
		return nil
	}

	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, family := range families {
		if family.GetName() != "wistia_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			event := logger.Info()
			for _, label := range metric.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			event.Float64("count", metric.GetCounter().GetValue()).Msg("Wistia API requests")
		}
	}

	return nil
}
