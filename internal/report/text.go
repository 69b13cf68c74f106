package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/wordcrawl/internal/model"
)

// TextWriter outputs a human-readable result summary. This is the
// default format for terminal use.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result as an aligned word table with a summary line.
func (w *TextWriter) Write(result *model.CrawlResult) (int, error) {
	var sb strings.Builder

	sb.WriteString("Crawl result\n")
	sb.WriteString("============\n")
	fmt.Fprintf(&sb, "URLs visited:   %d\n", result.URLsVisited)
	if result.Elapsed > 0 {
		fmt.Fprintf(&sb, "Elapsed:        %s\n", result.Elapsed.Round(time.Millisecond))
	}

	if len(result.WordCounts) == 0 {
		sb.WriteString("\nNo words were collected.\n")
		return io.WriteString(w.output, sb.String())
	}

	fmt.Fprintf(&sb, "\nTop %d words:\n", len(result.WordCounts))
	width := 0
	for _, wc := range result.WordCounts {
		if len(wc.Word) > width {
			width = len(wc.Word)
		}
	}
	for i, wc := range result.WordCounts {
		fmt.Fprintf(&sb, "%3d. %-*s %d\n", i+1, width+2, wc.Word, wc.Count)
	}

	return io.WriteString(w.output, sb.String())
}
