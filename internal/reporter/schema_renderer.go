package reporter

import (
	"fmt"
	"strconv"

	"pagediff/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// maxValueLength caps how much of a JSON value is shown per diff line.
const maxValueLength = 120

// renderSchemaPretty writes a colorized, table-based schema report.
func (r *Reporter) renderSchemaPretty(report *models.ComparisonReport) error {
	fmt.Fprintf(r.writer, "Structured data comparison\n")
	fmt.Fprintf(r.writer, "  old: %s (%d instances)\n", report.OldURL, report.OldTotal)
	fmt.Fprintf(r.writer, "  new: %s (%d instances)\n\n", report.NewURL, report.NewTotal)

	if len(report.Comparisons) == 0 {
		fmt.Fprintln(r.writer, "No structured data found on either page.")
		return nil
	}

	r.writeSchemaSummaryTable(report)

	if report.AllTypesIdentical {
		fmt.Fprintln(r.writer)
		fmt.Fprintln(r.writer, r.paint(color.FgHiGreen)("All structured data types are identical."))
		return nil
	}

	for _, comparison := range report.Comparisons {
		if comparison.Identical {
			continue
		}
		fmt.Fprintln(r.writer)
		r.writeTypeDiffTable(comparison)
	}

	return nil
}

// writeSchemaSummaryTable renders the per-type instance counts and status.
func (r *Reporter) writeSchemaSummaryTable(report *models.ComparisonReport) {
	table := tablewriter.NewWriter(r.writer)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Type", "Old", "New", "Status"})
	if !r.config.NoColor {
		table.SetHeaderColor(
			tablewriter.Colors{tablewriter.FgHiCyanColor},
			tablewriter.Colors{tablewriter.FgHiCyanColor},
			tablewriter.Colors{tablewriter.FgHiCyanColor},
			tablewriter.Colors{tablewriter.FgHiCyanColor},
		)
	}
	table.SetAlignment(tablewriter.ALIGN_CENTER)

	for _, comparison := range report.Comparisons {
		status := r.paint(color.FgHiGreen)("identical")
		if !comparison.Identical {
			status = r.paint(color.FgHiRed)(fmt.Sprintf("%d changes", len(comparison.Entries)))
		}
		table.Append([]string{
			comparison.TypeKey,
			strconv.Itoa(comparison.OldCount),
			strconv.Itoa(comparison.NewCount),
			status,
		})
	}

	table.Render()
}

// writeTypeDiffTable renders the diff entries for a single type key.
func (r *Reporter) writeTypeDiffTable(comparison models.TypeComparison) {
	table := tablewriter.NewWriter(r.writer)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{fmt.Sprintf("Diffs %s", comparison.TypeKey)})
	if !r.config.NoColor {
		table.SetHeaderColor(tablewriter.Colors{tablewriter.FgHiRedColor})
	}
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, entry := range comparison.Entries {
		table.Append([]string{r.formatEntry(entry)})
	}

	table.Render()
}

// formatEntry renders a single diff entry as a colorized line.
// Unrecognized kinds degrade to a generic line instead of failing.
func (r *Reporter) formatEntry(entry models.DiffEntry) string {
	switch entry.Kind {
	case models.DiffAdded:
		return r.paint(color.FgHiGreen)(fmt.Sprintf("+ added %s: %s",
			entryLocation(entry), valueString(entry.NewValue)))
	case models.DiffRemoved:
		return r.paint(color.FgHiRed)(fmt.Sprintf("- removed %s: %s",
			entryLocation(entry), valueString(entry.OldValue)))
	case models.DiffEdited:
		return r.paint(color.FgHiYellow)(fmt.Sprintf("~ edited %s: %s -> %s",
			entryLocation(entry), valueString(entry.OldValue), valueString(entry.NewValue)))
	case models.DiffArrayChange:
		line := fmt.Sprintf("* array %s[%d]", entry.Path.String(), entry.Index)
		if entry.Item != nil {
			line += "\n  " + r.formatEntry(*entry.Item)
		}
		return line
	default:
		return fmt.Sprintf("? unknown change at %s", entryLocation(entry))
	}
}

// entryLocation names where a diff entry applies. Entries with an empty
// path describe a whole instance at the given bucket position.
func entryLocation(entry models.DiffEntry) string {
	path := entry.Path.String()
	if path == "" {
		return fmt.Sprintf("instance[%d]", entry.Index)
	}
	return path
}

// valueString renders a value as compact JSON, truncated for display.
func valueString(v models.Value) string {
	if v == nil {
		return "null"
	}
	encoded := models.EncodeValue(v)
	if len(encoded) > maxValueLength {
		return encoded[:maxValueLength] + "..."
	}
	return encoded
}
