package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// WriterStrategy builds a log writer for one output format
type WriterStrategy interface {
	CreateWriter(out io.Writer) io.Writer
}

// JSONWriterStrategy passes zerolog's native JSON lines through unchanged
type JSONWriterStrategy struct{}

// CreateWriter returns the output writer as-is
func (s *JSONWriterStrategy) CreateWriter(out io.Writer) io.Writer {
	return out
}

// ConsoleWriterStrategy renders human-readable log lines
type ConsoleWriterStrategy struct {
	NoColor bool
}

// CreateWriter wraps the output in zerolog's console writer
func (s *ConsoleWriterStrategy) CreateWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    s.NoColor,
		TimeFormat: time.RFC3339,
	}
}

// TextWriterStrategy renders console-style lines without colors
type TextWriterStrategy struct{}

// CreateWriter wraps the output in a colorless console writer
func (s *TextWriterStrategy) CreateWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
}
