package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagediff/internal/models"
)

func TestLineDiffer_IdenticalContent(t *testing.T) {
	differ := NewLineDifferBuilder().Build()

	text := "<html>\n<body>\n<p>hello</p>\n</body>\n</html>"
	result := differ.Compare(text, text)

	assert.True(t, result.IsIdentical)
	assert.Equal(t, 0, result.LinesAdded)
	assert.Equal(t, 0, result.LinesDeleted)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, models.DiffEqual, result.Chunks[0].Operation)
	assert.Equal(t, text, result.Chunks[0].Text)
}

func TestLineDiffer_BothEmpty(t *testing.T) {
	differ := NewLineDifferBuilder().Build()

	result := differ.Compare("", "")

	assert.True(t, result.IsIdentical)
	assert.Empty(t, result.Chunks)
}

func TestLineDiffer_LineAdded(t *testing.T) {
	differ := NewLineDifferBuilder().Build()

	result := differ.Compare("a\nb", "a\nb\nc")

	assert.False(t, result.IsIdentical)
	assert.Equal(t, 1, result.LinesAdded)
	assert.Equal(t, 0, result.LinesDeleted)
	require.Len(t, result.Chunks, 2)
	assert.Equal(t, models.DiffEqual, result.Chunks[0].Operation)
	assert.Equal(t, "a\nb", result.Chunks[0].Text)
	assert.Equal(t, models.DiffInsert, result.Chunks[1].Operation)
	assert.Equal(t, "c", result.Chunks[1].Text)
}

func TestLineDiffer_LineRemoved(t *testing.T) {
	differ := NewLineDifferBuilder().Build()

	result := differ.Compare("a\nb\nc", "a\nc")

	assert.False(t, result.IsIdentical)
	assert.Equal(t, 0, result.LinesAdded)
	assert.Equal(t, 1, result.LinesDeleted)

	var deleted []string
	for _, chunk := range result.Chunks {
		if chunk.Operation == models.DiffDelete {
			deleted = append(deleted, chunk.Text)
		}
	}
	assert.Equal(t, []string{"b"}, deleted)
}

func TestLineDiffer_LineChanged(t *testing.T) {
	differ := NewLineDifferBuilder().Build()

	result := differ.Compare("a\nb\nc", "a\nx\nc")

	assert.Equal(t, 1, result.LinesAdded)
	assert.Equal(t, 1, result.LinesDeleted)
	require.Len(t, result.Chunks, 4)
	assert.Equal(t, models.DiffEqual, result.Chunks[0].Operation)
	assert.Equal(t, models.DiffDelete, result.Chunks[1].Operation)
	assert.Equal(t, "b", result.Chunks[1].Text)
	assert.Equal(t, models.DiffInsert, result.Chunks[2].Operation)
	assert.Equal(t, "x", result.Chunks[2].Text)
	assert.Equal(t, models.DiffEqual, result.Chunks[3].Operation)
}

func TestLineDiffer_IgnoresWhitespaceByDefault(t *testing.T) {
	differ := NewLineDifferBuilder().Build()

	oldText := "  <div>\n    <p>text</p>\n  </div>"
	newText := "<div>\n<p>text</p>\n</div>"

	result := differ.Compare(oldText, newText)

	assert.True(t, result.IsIdentical)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, models.DiffEqual, result.Chunks[0].Operation)

	// Equal chunks carry the new document's text.
	assert.Equal(t, newText, result.Chunks[0].Text)
}

func TestLineDiffer_WhitespaceSensitiveMode(t *testing.T) {
	differ := NewLineDifferBuilder().
		WithConfig(LineDiffConfig{IgnoreWhitespace: false}).
		Build()

	result := differ.Compare("  <div>", "<div>")

	assert.False(t, result.IsIdentical)
	assert.Equal(t, 1, result.LinesAdded)
	assert.Equal(t, 1, result.LinesDeleted)
}

func TestLineDiffer_TrailingNewlineDoesNotCount(t *testing.T) {
	differ := NewLineDifferBuilder().Build()

	result := differ.Compare("a\nb\n", "a\nb")

	assert.True(t, result.IsIdentical)
}

func TestLineDiffer_MultiLineBlocks(t *testing.T) {
	differ := NewLineDifferBuilder().Build()

	oldText := "h1\nold1\nold2\ntail"
	newText := "h1\nnew1\nnew2\nnew3\ntail"

	result := differ.Compare(oldText, newText)

	assert.Equal(t, 3, result.LinesAdded)
	assert.Equal(t, 2, result.LinesDeleted)

	var reconstructed []string
	for _, chunk := range result.Chunks {
		if chunk.Operation != models.DiffDelete {
			reconstructed = append(reconstructed, chunk.Text)
		}
	}
	assert.Equal(t, "h1\nnew1\nnew2\nnew3\ntail", joinChunks(reconstructed))
}

func joinChunks(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}
