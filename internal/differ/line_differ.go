package differ

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"pagediff/internal/models"
)

// LineDiffer computes line-based differences between two canonicalized
// documents. Lines are encoded as placeholder runes so the character diff
// engine operates on whole lines, then mapped back to the original text
// of each side.
type LineDiffer struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	config LineDiffConfig
}

// LineDifferBuilder provides a fluent interface for creating LineDiffer
type LineDifferBuilder struct {
	config LineDiffConfig
}

// NewLineDifferBuilder creates a new builder
func NewLineDifferBuilder() *LineDifferBuilder {
	return &LineDifferBuilder{config: DefaultLineDiffConfig()}
}

// WithConfig sets the line diff configuration
func (b *LineDifferBuilder) WithConfig(cfg LineDiffConfig) *LineDifferBuilder {
	b.config = cfg
	return b
}

// Build creates a new LineDiffer instance
func (b *LineDifferBuilder) Build() *LineDiffer {
	return &LineDiffer{
		dmp:    diffmatchpatch.New(),
		config: b.config,
	}
}

// Compare diffs oldText against newText line by line and aggregates the
// outcome into contiguous chunks. Equal and inserted chunks carry the new
// document's text, deleted chunks the old document's, so whitespace-only
// variations surface with the text actually present on each side.
func (ld *LineDiffer) Compare(oldText, newText string) *models.HTMLDiffResult {
	startTime := time.Now()

	oldLines := toLines(oldText)
	newLines := toLines(newText)

	encoder := newLineEncoder(ld.lineKey)
	encodedOld := encoder.encode(oldLines)
	encodedNew := encoder.encode(newLines)

	diffs := ld.dmp.DiffMain(encodedOld, encodedNew, false)

	result := &models.HTMLDiffResult{}
	oldPos, newPos := 0, 0

	for _, diff := range diffs {
		count := utf8.RuneCountInString(diff.Text)
		if count == 0 {
			continue
		}

		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			result.Chunks = append(result.Chunks, models.LineChunk{
				Operation: models.DiffEqual,
				Text:      strings.Join(newLines[newPos:newPos+count], "\n"),
			})
			oldPos += count
			newPos += count
		case diffmatchpatch.DiffInsert:
			result.Chunks = append(result.Chunks, models.LineChunk{
				Operation: models.DiffInsert,
				Text:      strings.Join(newLines[newPos:newPos+count], "\n"),
			})
			result.LinesAdded += count
			newPos += count
		case diffmatchpatch.DiffDelete:
			result.Chunks = append(result.Chunks, models.LineChunk{
				Operation: models.DiffDelete,
				Text:      strings.Join(oldLines[oldPos:oldPos+count], "\n"),
			})
			result.LinesDeleted += count
			oldPos += count
		}
	}

	result.IsIdentical = result.LinesAdded == 0 && result.LinesDeleted == 0
	result.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	return result
}

// lineKey returns the identity under which a line is matched. With
// whitespace-insensitive matching, lines differing only in leading or
// trailing whitespace share a key.
func (ld *LineDiffer) lineKey(line string) string {
	if ld.config.IgnoreWhitespace {
		return strings.TrimSpace(line)
	}
	return line
}

// toLines splits a document into lines without their terminators. A
// trailing newline does not produce a final empty line.
func toLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type lineEncoder struct {
	key   func(string) string
	index map[string]rune
	next  rune
}

func newLineEncoder(key func(string) string) *lineEncoder {
	return &lineEncoder{
		key:   key,
		index: make(map[string]rune),
		next:  1,
	}
}

// encode maps each line to a placeholder rune. The surrogate range
// U+D800 to U+DFFF is skipped; WriteRune would replace those code points
// with U+FFFD and corrupt the mapping.
func (e *lineEncoder) encode(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		k := e.key(line)
		r, ok := e.index[k]
		if !ok {
			r = e.next
			e.index[k] = r
			e.next++
			if e.next == 0xD800 {
				e.next = 0xE000
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
