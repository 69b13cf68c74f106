package report

import (
	"io"

	"github.com/nao1215/wordcrawl/internal/model"
)

// Writer renders a crawl result to a destination.
//
// Design decision: We use an interface so the same result can go to a
// terminal, a file, or several destinations at once with one API.
type Writer interface {
	// Write outputs the result. Returns the number of bytes written and
	// any error encountered.
	Write(result *model.CrawlResult) (int, error)
}

// MultiWriter writes a result to several Writers in order.
// Useful for writing to both terminal and file.
//
// This is a separate type rather than io.MultiWriter because our Writer
// consumes results, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer fanning out to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to every writer, stopping at the first error.
// Returns the total bytes written across all writers.
func (m *MultiWriter) Write(result *model.CrawlResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
