// Package report renders crawl results in multiple output formats:
// human-readable text (default), JSON for tool integration, and
// GitHub Flavored Markdown for documentation.
package report
