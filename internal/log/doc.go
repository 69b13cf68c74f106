// Package log provides slog-based structured logging for wordcrawl.
//
// Crawl logging has a size problem rather than a secrecy problem: link
// lists and page text attached to debug records can run to megabytes.
// TruncateHandler caps attribute values before they reach the underlying
// handler so verbose runs stay readable and log storage stays bounded.
package log
