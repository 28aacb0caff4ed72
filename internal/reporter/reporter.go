// Package reporter renders comparison results for the terminal, either as
// colorized human-readable output or as machine-readable JSON.
package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"pagediff/internal/config"
	"pagediff/internal/models"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Reporter writes comparison results in the configured output format.
type Reporter struct {
	writer io.Writer
	config config.ReporterConfig
	logger zerolog.Logger
}

// ReporterBuilder provides fluent interface for creating Reporter
type ReporterBuilder struct {
	writer io.Writer
	config config.ReporterConfig
	logger zerolog.Logger
}

// NewReporterBuilder creates a new reporter builder
func NewReporterBuilder(logger zerolog.Logger) *ReporterBuilder {
	return &ReporterBuilder{
		writer: os.Stdout,
		config: config.NewDefaultReporterConfig(),
		logger: logger,
	}
}

// WithConfig sets the reporter configuration
func (rb *ReporterBuilder) WithConfig(cfg config.ReporterConfig) *ReporterBuilder {
	rb.config = cfg
	return rb
}

// WithWriter sets the output destination
func (rb *ReporterBuilder) WithWriter(w io.Writer) *ReporterBuilder {
	rb.writer = w
	return rb
}

// Build creates the reporter instance
func (rb *ReporterBuilder) Build() (*Reporter, error) {
	return &Reporter{
		writer: rb.writer,
		config: rb.config,
		logger: rb.logger.With().Str("component", "Reporter").Logger(),
	}, nil
}

// ReportSchema renders a structured data comparison report.
func (r *Reporter) ReportSchema(report *models.ComparisonReport) error {
	if strings.ToLower(r.config.Format) == "json" {
		return r.renderJSON(report)
	}
	return r.renderSchemaPretty(report)
}

// ReportHTML renders a markup diff result.
func (r *Reporter) ReportHTML(result *models.HTMLDiffResult) error {
	if strings.ToLower(r.config.Format) == "json" {
		return r.renderJSON(result)
	}
	return r.renderHTMLPretty(result)
}

// paint returns a sprint function for the given color attribute,
// or a plain formatter when colors are disabled.
func (r *Reporter) paint(attr color.Attribute) func(a ...interface{}) string {
	if r.config.NoColor {
		return fmt.Sprint
	}
	return color.New(attr).SprintFunc()
}
