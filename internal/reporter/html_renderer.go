package reporter

import (
	"fmt"

	"pagediff/internal/models"

	"github.com/fatih/color"
)

// diffLine is one rendered line of the unified markup diff.
type diffLine struct {
	op   models.DiffOperation
	text string
}

// renderHTMLPretty writes a unified, colorized line diff.
func (r *Reporter) renderHTMLPretty(result *models.HTMLDiffResult) error {
	fmt.Fprintf(r.writer, "Markup comparison\n")
	fmt.Fprintf(r.writer, "  old: %s\n", result.OldURL)
	fmt.Fprintf(r.writer, "  new: %s\n\n", result.NewURL)

	if result.IsIdentical {
		fmt.Fprintln(r.writer, r.paint(color.FgHiGreen)("No differences found."))
		return nil
	}

	r.writeUnifiedDiff(result)

	fmt.Fprintln(r.writer)
	summary := fmt.Sprintf("%d lines added, %d lines removed", result.LinesAdded, result.LinesDeleted)
	fmt.Fprintln(r.writer, r.paint(color.FgHiYellow)(summary))

	return nil
}

// writeUnifiedDiff prints changed lines with surrounding context,
// eliding unchanged regions.
func (r *Reporter) writeUnifiedDiff(result *models.HTMLDiffResult) {
	lines := flattenChunks(result.Chunks)
	visible := markVisibleLines(lines, r.config.ContextLines)

	green := r.paint(color.FgHiGreen)
	red := r.paint(color.FgHiRed)

	elided := false
	for i, line := range lines {
		if !visible[i] {
			elided = true
			continue
		}
		if elided {
			fmt.Fprintln(r.writer, "...")
			elided = false
		}
		switch line.op {
		case models.DiffInsert:
			fmt.Fprintln(r.writer, green("+ "+line.text))
		case models.DiffDelete:
			fmt.Fprintln(r.writer, red("- "+line.text))
		default:
			fmt.Fprintln(r.writer, "  "+line.text)
		}
	}
	if elided {
		fmt.Fprintln(r.writer, "...")
	}
}

// flattenChunks expands diff chunks into individual lines.
func flattenChunks(chunks []models.LineChunk) []diffLine {
	var lines []diffLine
	for _, chunk := range chunks {
		for _, text := range chunk.Lines() {
			lines = append(lines, diffLine{op: chunk.Operation, text: text})
		}
	}
	return lines
}

// markVisibleLines flags every changed line plus its surrounding context.
func markVisibleLines(lines []diffLine, context int) []bool {
	visible := make([]bool, len(lines))
	for i, line := range lines {
		if line.op == models.DiffEqual {
			continue
		}
		start := i - context
		if start < 0 {
			start = 0
		}
		end := i + context
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
		for j := start; j <= end; j++ {
			visible[j] = true
		}
	}
	return visible
}
