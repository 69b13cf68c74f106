package crawler

import (
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parser extracts links and word counts from HTML content.
//
// Design decision: We use golang.org/x/net/html rather than regex
// because it correctly handles the malformed HTML common on the web and
// gives us a proper node tree to separate visible text from markup.
type Parser struct {
	// baseURL resolves relative hrefs on the page being parsed.
	baseURL *url.URL

	// ignoredWords are skipped during word counting. Patterns must match
	// the whole normalized word to exclude it.
	ignoredWords []*regexp.Regexp

	// lower folds words to lower case with Unicode-correct rules.
	// A cases.Caser is not safe for concurrent use, which is fine here:
	// a Parser lives for a single page.
	lower cases.Caser
}

// ParseResult holds everything extracted from one page.
type ParseResult struct {
	// Title is the text of the <title> tag, if present.
	Title string

	// Links are the resolved absolute URLs of all anchors, in document
	// order. Duplicate hrefs are kept; deduplication is the visit
	// ledger's job.
	Links []string

	// WordCounts maps each normalized word in the visible text to its
	// number of occurrences on this page.
	WordCounts map[string]int
}

// NewParser creates a parser for a page fetched from baseURL.
func NewParser(baseURL string, ignoredWords []*regexp.Regexp) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{
		baseURL:      u,
		ignoredWords: ignoredWords,
		lower:        cases.Lower(language.Und),
	}, nil
}

// Parse walks the HTML tree once, collecting links and counting words
// in the visible text. Script and style subtrees are excluded from word
// counting because their text is code, not prose.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Links:      make([]string, 0),
		WordCounts: make(map[string]int),
	}

	var text strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case "a":
				if href := getAttr(n, "href"); href != "" {
					if resolved := p.resolveURL(href); resolved != "" {
						result.Links = append(result.Links, resolved)
					}
				}
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	p.countWords(text.String(), result.WordCounts)
	return result, nil
}

// countWords tokenizes the visible text and accumulates per-word counts.
// Tokens are runs of letters and digits; a token with no letter at all
// (page numbers, timestamps) is not a word.
func (p *Parser) countWords(text string, counts map[string]int) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, token := range tokens {
		if !containsLetter(token) {
			continue
		}
		word := p.lower.String(token)
		if p.isIgnoredWord(word) {
			continue
		}
		counts[word]++
	}
}

// isIgnoredWord reports whether the word matches any ignored pattern.
func (p *Parser) isIgnoredWord(word string) bool {
	for _, pattern := range p.ignoredWords {
		if pattern.MatchString(word) {
			return true
		}
	}
	return false
}

// containsLetter reports whether the token has at least one letter.
func containsLetter(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// resolveURL resolves a relative href against the page URL, dropping
// non-navigable schemes and bare fragments.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := p.baseURL.ResolveReference(u)
	// The fragment addresses a position within the page, not a different
	// page; stripping it keeps the visit ledger from seeing duplicates.
	resolved.Fragment = ""
	return resolved.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
