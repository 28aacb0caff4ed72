package models

// DiffOperation defines the type of change in a line-based diff.
type DiffOperation int

const (
	// DiffEqual indicates an unchanged run of lines.
	DiffEqual DiffOperation = 0
	// DiffInsert indicates a run of lines present only in the new document.
	DiffInsert DiffOperation = 1
	// DiffDelete indicates a run of lines present only in the old document.
	DiffDelete DiffOperation = -1
)

// LineChunk represents a contiguous run of lines sharing one diff operation.
type LineChunk struct {
	Operation DiffOperation `json:"operation"`
	Text      string        `json:"text"`
}

// Lines splits the chunk text into its individual lines. A trailing
// newline does not produce an extra empty line.
func (c LineChunk) Lines() []string {
	if c.Text == "" {
		return nil
	}
	text := c.Text
	if text[len(text)-1] == '\n' {
		text = text[:len(text)-1]
	}
	return splitLines(text)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

// HTMLDiffResult holds the outcome of comparing two canonicalized HTML
// documents line by line.
type HTMLDiffResult struct {
	OldURL           string      `json:"old_url"`
	NewURL           string      `json:"new_url"`
	Chunks           []LineChunk `json:"chunks"`
	LinesAdded       int         `json:"lines_added"`
	LinesDeleted     int         `json:"lines_deleted"`
	IsIdentical      bool        `json:"is_identical"`
	ProcessingTimeMs int64       `json:"processing_time_ms"`
}
