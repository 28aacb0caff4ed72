package main

import (
	"os"

	"pagediff/internal/config"
	"pagediff/internal/differ"
	"pagediff/internal/normalizer"
	"pagediff/internal/reporter"

	"github.com/spf13/cobra"
)

var htmlCmd = &cobra.Command{
	Use:   "html <old-url> <new-url>",
	Short: "Compare the simplified HTML markup of two pages",
	Long: `Fetches both pages, strips presentation-only noise (comments, styling
attributes, scripts, trackers), pretty-prints the remaining markup
deterministically, and reports a line-oriented diff.

Examples:
  # Line diff of the cleaned markup
  pagediff html https://example.com https://staging.example.com

  # Wider context around each change
  pagediff html --context 5 https://a.example.com https://b.example.com

  # Fail a CI build when the markup changed
  pagediff html --exit-code https://a.example.com https://b.example.com`,
	Args: cobra.ExactArgs(2),
	Run:  runHTML,
}

func init() {
	htmlCmd.Flags().StringVar(&formatFlag, "format", config.DefaultReporterFormat, "Output format: pretty or json")
	htmlCmd.Flags().IntVar(&contextFlag, "context", config.DefaultReporterContextLines, "Unchanged lines shown around each change")
	htmlCmd.Flags().BoolVar(&exitCodeFlag, "exit-code", false, "Exit with status 1 when differences are found")
	rootCmd.AddCommand(htmlCmd)
}

func runHTML(cmd *cobra.Command, args []string) {
	cfg, log := loadRunConfig(cmd)

	oldURL := mustNormalizeURL(log, args[0])
	newURL := mustNormalizeURL(log, args[1])

	pair := fetchPair(cfg, log, oldURL, newURL)

	htmlNormalizer := normalizer.NewHTMLNormalizer(log)

	oldCanonical, err := htmlNormalizer.Canonicalize(string(pair.Old.Body))
	if err != nil {
		log.Fatal().Err(err).Str("url", oldURL).Msg("Could not canonicalize HTML")
	}

	newCanonical, err := htmlNormalizer.Canonicalize(string(pair.New.Body))
	if err != nil {
		log.Fatal().Err(err).Str("url", newURL).Msg("Could not canonicalize HTML")
	}

	// Final formatting pass so line wrapping is normalized the same way
	// on both sides before the line diff runs.
	oldCanonical = normalizer.FormatMarkup(oldCanonical)
	newCanonical = normalizer.FormatMarkup(newCanonical)

	result := differ.NewLineDifferBuilder().
		WithConfig(differ.LineDiffConfig{IgnoreWhitespace: cfg.DiffConfig.IgnoreWhitespace}).
		Build().
		Compare(oldCanonical, newCanonical)
	result.OldURL = oldURL
	result.NewURL = newURL

	rep, err := reporter.NewReporterBuilder(log).WithConfig(cfg.ReporterConfig).Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not build reporter")
	}

	if err := rep.ReportHTML(result); err != nil {
		log.Fatal().Err(err).Msg("Could not render diff report")
	}

	if exitCodeFlag && !result.IsIdentical {
		os.Exit(1)
	}
}
