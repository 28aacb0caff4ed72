package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagediff/internal/config"
	"pagediff/internal/fetcher"
	"pagediff/internal/logger"
	"pagediff/internal/models"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	configFlag    string
	timeoutFlag   int
	userAgentFlag string
	insecureFlag  bool
	noColorFlag   bool
	logLevelFlag  string
	logFormatFlag string

	formatFlag   string
	contextFlag  int
	exitCodeFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "pagediff",
	Short: "Compare two versions of a web page",
	Long: `pagediff fetches two web pages concurrently and reports meaningful
differences between them, in either their structured (JSON-LD) data or
their simplified HTML markup.

Presentation noise such as comments, inline styling, and tracking
attributes is stripped before HTML comparison, so cosmetic churn does
not drown out real content changes. A failure fetching either page
aborts the whole comparison.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to a YAML or JSON config file (default: search standard locations)")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", config.DefaultFetcherTimeoutSecs, "HTTP timeout in seconds for each fetch")
	rootCmd.PersistentFlags().StringVar(&userAgentFlag, "user-agent", "", "User-Agent header sent with each request")
	rootCmd.PersistentFlags().BoolVar(&insecureFlag, "insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colorized output")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", config.DefaultLogFormat, "Log format: console, text, json")
}

// bootstrapLogger covers the window before the configured logger exists.
func bootstrapLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// loadRunConfig loads the configuration file, layers explicitly-set CLI
// flags on top, validates the result, and builds the application logger.
func loadRunConfig(cmd *cobra.Command) (*config.GlobalConfig, zerolog.Logger) {
	boot := bootstrapLogger()

	cfg, err := config.LoadGlobalConfig(configFlag, boot)
	if err != nil {
		boot.Fatal().Err(err).Msg("Could not load configuration")
	}

	applyFlagOverrides(cmd, cfg)

	if err := config.ValidateConfig(cfg); err != nil {
		boot.Fatal().Err(err).Msg("Configuration validation failed")
	}

	appLogger, err := logger.NewLoggerBuilder().
		WithConfig(cfg.LogConfig).
		WithNoColor(cfg.ReporterConfig.NoColor).
		Build()
	if err != nil {
		boot.Fatal().Err(err).Msg("Could not initialize logger")
	}

	return cfg, *appLogger.GetZerolog()
}

// applyFlagOverrides copies every flag the user set explicitly into the
// loaded configuration. Flags that were left at their defaults do not
// override values coming from the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.GlobalConfig) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.FetcherConfig.TimeoutSecs = timeoutFlag
	}
	if flags.Changed("user-agent") {
		cfg.FetcherConfig.UserAgent = userAgentFlag
	}
	if flags.Changed("insecure") {
		cfg.FetcherConfig.InsecureSkipVerify = insecureFlag
	}
	if flags.Changed("no-color") {
		cfg.ReporterConfig.NoColor = noColorFlag
	}
	if flags.Changed("format") {
		cfg.ReporterConfig.Format = formatFlag
	}
	if flags.Changed("context") {
		cfg.ReporterConfig.ContextLines = contextFlag
	}
	if flags.Changed("log-level") {
		cfg.LogConfig.LogLevel = logLevelFlag
	}
	if flags.Changed("log-format") {
		cfg.LogConfig.LogFormat = logFormatFlag
	}
}

// mustNormalizeURL validates a target URL argument, defaulting the scheme
// for bare hostnames, and exits when the argument is not a usable URL.
func mustNormalizeURL(log zerolog.Logger, raw string) string {
	normalized, err := fetcher.NormalizeTargetURL(raw)
	if err != nil {
		log.Fatal().Err(err).Str("url", raw).Msg("Invalid target URL")
	}
	return normalized
}

// fetchPair retrieves both pages concurrently, aborting on the first
// failure or on SIGINT/SIGTERM.
func fetchPair(cfg *config.GlobalConfig, log zerolog.Logger, oldURL, newURL string) *models.DocumentPair {
	pageFetcher, err := fetcher.NewFetcherBuilder(log).WithConfig(cfg.FetcherConfig).Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not build fetcher")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pair, err := pageFetcher.FetchPair(ctx, oldURL, newURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not fetch pages")
	}

	return pair
}
