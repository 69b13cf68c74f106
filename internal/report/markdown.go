package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/nao1215/wordcrawl/internal/model"
)

// MarkdownWriter outputs results as GitHub Flavored Markdown, designed
// for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent,
// type-safe markdown generation instead of hand-built strings.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result as a Markdown document with a summary table
// and the ranked word table.
func (w *MarkdownWriter) Write(result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")

	summaryRows := [][]string{
		{"URLs Visited", strconv.Itoa(result.URLsVisited)},
		{"Distinct Ranked Words", strconv.Itoa(len(result.WordCounts))},
	}
	if !result.StartedAt.IsZero() {
		summaryRows = append(summaryRows,
			[]string{"Started", result.StartedAt.Format("2006-01-02 15:04:05 MST")})
	}
	if result.Elapsed > 0 {
		summaryRows = append(summaryRows,
			[]string{"Elapsed", result.Elapsed.Round(time.Millisecond).String()})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   summaryRows,
	})
	md.PlainText("")

	md.H2("Top Words")
	md.PlainText("")
	if len(result.WordCounts) == 0 {
		md.PlainText("No words were collected.")
	} else {
		rows := make([][]string, 0, len(result.WordCounts))
		for i, wc := range result.WordCounts {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				"`" + wc.Word + "`",
				strconv.Itoa(wc.Count),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Rank", "Word", "Count"},
			Rows:   rows,
		})
	}

	return len(md.String()), md.Build()
}
