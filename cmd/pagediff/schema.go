package main

import (
	"os"

	"pagediff/internal/comparer"
	"pagediff/internal/config"
	"pagediff/internal/extractor"
	"pagediff/internal/reporter"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <old-url> <new-url>",
	Short: "Compare the structured (JSON-LD) data of two pages",
	Long: `Fetches both pages, extracts every script block of type
application/ld+json, canonicalizes the embedded instances, groups them
by @type, and reports structural differences per type.

Examples:
  # Compare structured data between production and staging
  pagediff schema https://example.com https://staging.example.com

  # Machine-readable report
  pagediff schema --format json https://a.example.com https://b.example.com

  # Fail a CI build when structured data drifted
  pagediff schema --exit-code https://a.example.com https://b.example.com`,
	Args: cobra.ExactArgs(2),
	Run:  runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&formatFlag, "format", config.DefaultReporterFormat, "Output format: pretty or json")
	schemaCmd.Flags().BoolVar(&exitCodeFlag, "exit-code", false, "Exit with status 1 when differences are found")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) {
	cfg, log := loadRunConfig(cmd)

	oldURL := mustNormalizeURL(log, args[0])
	newURL := mustNormalizeURL(log, args[1])

	pair := fetchPair(cfg, log, oldURL, newURL)

	schemaExtractor := extractor.NewSchemaExtractor(log)

	oldSet, err := schemaExtractor.ExtractFromHTML(pair.Old.Body, oldURL)
	if err != nil {
		log.Fatal().Err(err).Str("url", oldURL).Msg("Could not extract structured data")
	}

	newSet, err := schemaExtractor.ExtractFromHTML(pair.New.Body, newURL)
	if err != nil {
		log.Fatal().Err(err).Str("url", newURL).Msg("Could not extract structured data")
	}

	report := comparer.NewSchemaComparer(log).Compare(oldSet, newSet)

	rep, err := reporter.NewReporterBuilder(log).WithConfig(cfg.ReporterConfig).Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not build reporter")
	}

	if err := rep.ReportSchema(report); err != nil {
		log.Fatal().Err(err).Msg("Could not render comparison report")
	}

	if exitCodeFlag && !report.AllTypesIdentical {
		os.Exit(1)
	}
}
