// Package main provides the entry point for the wordcrawl CLI.
//
// wordcrawl is a concurrent web crawler that counts word occurrences
// across the pages it visits and reports the most popular words.
//
// Usage:
//
//	wordcrawl crawl <url> [url...]
//	wordcrawl crawl -c job.yaml
//	wordcrawl history
//
// See --help for all available options.
package main

// main is the entry point for wordcrawl.
func main() {
	Execute()
}
