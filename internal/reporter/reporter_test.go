package reporter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"pagediff/internal/config"
	"pagediff/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReporter(t *testing.T, cfg config.ReporterConfig) (*Reporter, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cfg.NoColor = true
	r, err := NewReporterBuilder(zerolog.Nop()).WithConfig(cfg).WithWriter(buf).Build()
	require.NoError(t, err)
	return r, buf
}

func mustParse(t *testing.T, input string) models.Value {
	t.Helper()
	v, err := models.ParseValue([]byte(input))
	require.NoError(t, err)
	return v
}

func sampleSchemaReport(t *testing.T) *models.ComparisonReport {
	t.Helper()
	return &models.ComparisonReport{
		OldURL:   "https://old.example.com",
		NewURL:   "https://new.example.com",
		OldTotal: 2,
		NewTotal: 2,
		Comparisons: []models.TypeComparison{
			{
				TypeKey:   "Organization",
				OldCount:  1,
				NewCount:  1,
				Identical: true,
			},
			{
				TypeKey:  "Product",
				OldCount: 1,
				NewCount: 1,
				Entries: []models.DiffEntry{
					{
						Kind:     models.DiffEdited,
						Path:     models.Path{}.WithKey("offers").WithKey("price"),
						OldValue: mustParse(t, "19.99"),
						NewValue: mustParse(t, "24.99"),
					},
					{
						Kind:     models.DiffAdded,
						Path:     models.Path{}.WithKey("sku"),
						NewValue: mustParse(t, `"AB-123"`),
					},
				},
			},
		},
		AllTypesIdentical: false,
		GeneratedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestReporter_ReportSchema_JSON(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.Format = "json"
	r, buf := newTestReporter(t, cfg)

	require.NoError(t, r.ReportSchema(sampleSchemaReport(t)))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "https://old.example.com", decoded["old_url"])
	assert.Equal(t, false, decoded["all_types_identical"])

	comparisons, ok := decoded["comparisons"].([]interface{})
	require.True(t, ok)
	assert.Len(t, comparisons, 2)
}

func TestReporter_ReportSchema_PrettyWithDiffs(t *testing.T) {
	r, buf := newTestReporter(t, config.NewDefaultReporterConfig())

	require.NoError(t, r.ReportSchema(sampleSchemaReport(t)))
	output := buf.String()

	assert.Contains(t, output, "https://old.example.com")
	assert.Contains(t, output, "Organization")
	assert.Contains(t, output, "identical")
	assert.Contains(t, output, "2 changes")
	assert.Contains(t, output, "~ edited offers.price: 19.99 -> 24.99")
	assert.Contains(t, output, `+ added sku: "AB-123"`)
}

func TestReporter_ReportSchema_PrettyAllIdentical(t *testing.T) {
	r, buf := newTestReporter(t, config.NewDefaultReporterConfig())

	report := &models.ComparisonReport{
		OldURL:   "https://a.example.com",
		NewURL:   "https://b.example.com",
		OldTotal: 1,
		NewTotal: 1,
		Comparisons: []models.TypeComparison{
			{TypeKey: "Article", OldCount: 1, NewCount: 1, Identical: true},
		},
		AllTypesIdentical: true,
	}

	require.NoError(t, r.ReportSchema(report))
	assert.Contains(t, buf.String(), "All structured data types are identical.")
}

func TestReporter_ReportSchema_PrettyNoStructuredData(t *testing.T) {
	r, buf := newTestReporter(t, config.NewDefaultReporterConfig())

	report := &models.ComparisonReport{
		OldURL:            "https://a.example.com",
		NewURL:            "https://b.example.com",
		AllTypesIdentical: true,
	}

	require.NoError(t, r.ReportSchema(report))
	assert.Contains(t, buf.String(), "No structured data found on either page.")
}

func TestReporter_ReportSchema_UnknownKindDoesNotFail(t *testing.T) {
	r, buf := newTestReporter(t, config.NewDefaultReporterConfig())

	report := &models.ComparisonReport{
		OldURL: "https://a.example.com",
		NewURL: "https://b.example.com",
		Comparisons: []models.TypeComparison{
			{
				TypeKey:  "Product",
				OldCount: 1,
				NewCount: 1,
				Entries: []models.DiffEntry{
					{Kind: models.DiffKind(42), Path: models.Path{}.WithKey("name")},
				},
			},
		},
	}

	require.NoError(t, r.ReportSchema(report))
	assert.Contains(t, buf.String(), "? unknown change at name")
}

func TestReporter_ReportSchema_ArrayChangeEntry(t *testing.T) {
	r, buf := newTestReporter(t, config.NewDefaultReporterConfig())

	itemPath := models.Path{}.WithKey("tags").WithIndex(1)
	report := &models.ComparisonReport{
		OldURL: "https://a.example.com",
		NewURL: "https://b.example.com",
		Comparisons: []models.TypeComparison{
			{
				TypeKey:  "Product",
				OldCount: 1,
				NewCount: 1,
				Entries: []models.DiffEntry{
					{
						Kind:  models.DiffArrayChange,
						Path:  models.Path{}.WithKey("tags"),
						Index: 1,
						Item: &models.DiffEntry{
							Kind:     models.DiffAdded,
							Path:     itemPath,
							NewValue: mustParse(t, `"sale"`),
						},
					},
				},
			},
		},
	}

	require.NoError(t, r.ReportSchema(report))
	output := buf.String()
	assert.Contains(t, output, "* array tags[1]")
	assert.Contains(t, output, `+ added tags[1]: "sale"`)
}

func TestReporter_ReportHTML_JSON(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.Format = "json"
	r, buf := newTestReporter(t, cfg)

	result := &models.HTMLDiffResult{
		OldURL:       "https://a.example.com",
		NewURL:       "https://b.example.com",
		LinesAdded:   1,
		LinesDeleted: 2,
	}

	require.NoError(t, r.ReportHTML(result))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(1), decoded["lines_added"])
	assert.Equal(t, float64(2), decoded["lines_deleted"])
}

func TestReporter_ReportHTML_PrettyIdentical(t *testing.T) {
	r, buf := newTestReporter(t, config.NewDefaultReporterConfig())

	result := &models.HTMLDiffResult{
		OldURL:      "https://a.example.com",
		NewURL:      "https://b.example.com",
		IsIdentical: true,
	}

	require.NoError(t, r.ReportHTML(result))
	assert.Contains(t, buf.String(), "No differences found.")
}

func TestReporter_ReportHTML_PrettyUnifiedDiff(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.ContextLines = 1
	r, buf := newTestReporter(t, cfg)

	result := &models.HTMLDiffResult{
		OldURL: "https://a.example.com",
		NewURL: "https://b.example.com",
		Chunks: []models.LineChunk{
			{Operation: models.DiffEqual, Text: "one\ntwo\nthree\n"},
			{Operation: models.DiffDelete, Text: "old line\n"},
			{Operation: models.DiffInsert, Text: "new line\n"},
			{Operation: models.DiffEqual, Text: "four\nfive\nsix\n"},
		},
		LinesAdded:   1,
		LinesDeleted: 1,
	}

	require.NoError(t, r.ReportHTML(result))
	output := buf.String()

	assert.Contains(t, output, "- old line")
	assert.Contains(t, output, "+ new line")
	// One line of context on each side of the change.
	assert.Contains(t, output, "  three")
	assert.Contains(t, output, "  four")
	// Lines outside the context window are elided.
	assert.NotContains(t, output, "  one")
	assert.NotContains(t, output, "  six")
	assert.Contains(t, output, "...")
	assert.Contains(t, output, "1 lines added, 1 lines removed")
}

func TestReporter_ReportHTML_ZeroContext(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.ContextLines = 0
	r, buf := newTestReporter(t, cfg)

	result := &models.HTMLDiffResult{
		OldURL: "https://a.example.com",
		NewURL: "https://b.example.com",
		Chunks: []models.LineChunk{
			{Operation: models.DiffEqual, Text: "keep\n"},
			{Operation: models.DiffInsert, Text: "added\n"},
		},
		LinesAdded: 1,
	}

	require.NoError(t, r.ReportHTML(result))
	output := buf.String()

	assert.Contains(t, output, "+ added")
	assert.NotContains(t, output, "  keep")
}
