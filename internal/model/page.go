package model

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Page is the parsed outcome of fetching a single URL.
// It is what the crawler core consumes from a page source: the outgoing
// links to follow and the per-page word counts to merge.
type Page struct {
	// URL is the full URL the page was fetched from.
	URL string `json:"url"`

	// Title is the page title from the <title> tag, if any.
	Title string `json:"title,omitempty"`

	// Links are the resolved absolute URLs discovered on the page,
	// in document order.
	Links []string `json:"links,omitempty"`

	// WordCounts maps each normalized word on the page to its number of
	// occurrences on that page alone.
	WordCounts map[string]int `json:"wordCounts,omitempty"`

	// Hash is the BLAKE2b-256 hash of the raw response body, hex encoded.
	// Used for change detection when runs are persisted.
	Hash string `json:"hash,omitempty"`
}

// ComputeHash calculates and sets the content hash from the raw body.
// An empty body leaves the hash empty.
func (p *Page) ComputeHash(raw []byte) {
	if len(raw) == 0 {
		p.Hash = ""
		return
	}
	sum := blake2b.Sum256(raw)
	p.Hash = hex.EncodeToString(sum[:])
}
