package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestParser tests link and word extraction.
func TestParser(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and resolves links", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>Word Page</title></head><body>
			<a href="/next">next</a>
			<a href="http://other.test/page">elsewhere</a>
			<a href="#">top</a>
			<a href="mailto:someone@example.com">mail</a>
		</body></html>`

		parser, err := NewParser("http://site.test/start", nil)
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		result, err := parser.Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if result.Title != "Word Page" {
			t.Errorf("expected title 'Word Page', got %q", result.Title)
		}
		want := []string{"http://site.test/next", "http://other.test/page"}
		if len(result.Links) != len(want) {
			t.Fatalf("expected %d links, got %d: %v", len(want), len(result.Links), result.Links)
		}
		for i, link := range want {
			if result.Links[i] != link {
				t.Errorf("link %d: expected %q, got %q", i, link, result.Links[i])
			}
		}
	})

	t.Run("counts normalized words", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><p>The quick Fox jumps. The fox sleeps, 42 times.</p></body></html>`

		parser, err := NewParser("http://site.test/", nil)
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		result, err := parser.Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if result.WordCounts["the"] != 2 {
			t.Errorf("expected 'the' counted 2 times, got %d", result.WordCounts["the"])
		}
		if result.WordCounts["fox"] != 2 {
			t.Errorf("expected case-folded 'fox' counted 2 times, got %d", result.WordCounts["fox"])
		}
		// Pure digit runs are not words.
		if _, ok := result.WordCounts["42"]; ok {
			t.Error("expected digit-only token to be skipped")
		}
	})

	t.Run("skips script and style text", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><style>body { color: crimson }</style></head>
			<body><script>var hidden = "sneaky";</script><p>visible</p></body></html>`

		parser, err := NewParser("http://site.test/", nil)
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		result, err := parser.Parse(strings.NewReader(page))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if result.WordCounts["visible"] != 1 {
			t.Errorf("expected 'visible' counted, got %v", result.WordCounts)
		}
		for _, word := range []string{"sneaky", "crimson", "var", "color"} {
			if _, ok := result.WordCounts[word]; ok {
				t.Errorf("expected %q from script/style to be skipped", word)
			}
		}
	})

	t.Run("honors ignored word patterns", func(t *testing.T) {
		t.Parallel()

		ignored, err := CompileIgnoredPatterns([]string{"the", "a(n)?"})
		if err != nil {
			t.Fatalf("failed to compile patterns: %v", err)
		}

		parser, err := NewParser("http://site.test/", ignored)
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		result, err := parser.Parse(strings.NewReader(`<p>the cat and an apple</p>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		for _, word := range []string{"the", "a", "an"} {
			if _, ok := result.WordCounts[word]; ok {
				t.Errorf("expected ignored word %q to be skipped", word)
			}
		}
		// "apple" starts with the ignored "a" but is not a full match.
		if result.WordCounts["apple"] != 1 {
			t.Errorf("expected 'apple' counted despite prefix overlap, got %v", result.WordCounts)
		}
	})
}

// TestHTTPSource tests the production page source against a local server.
func TestHTTPSource(t *testing.T) {
	t.Parallel()

	t.Run("fetches and parses an HTML page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><head><title>Home</title></head>
				<body><a href="/about">about</a><p>hello hello world</p></body></html>`))
		}))
		defer server.Close()

		source := NewHTTPSource(server.Client())
		page, err := source.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("failed to fetch: %v", err)
		}

		if page.Title != "Home" {
			t.Errorf("expected title 'Home', got %q", page.Title)
		}
		if len(page.Links) != 1 || !strings.HasSuffix(page.Links[0], "/about") {
			t.Errorf("expected one /about link, got %v", page.Links)
		}
		if page.WordCounts["hello"] != 2 {
			t.Errorf("expected 'hello' counted twice, got %d", page.WordCounts["hello"])
		}
		if page.Hash == "" {
			t.Error("expected content hash to be set")
		}
	})

	t.Run("error status is unfetchable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.NotFound(w, nil)
		}))
		defer server.Close()

		source := NewHTTPSource(server.Client())
		if _, err := source.Fetch(context.Background(), server.URL); err == nil {
			t.Error("expected error for 404 response")
		}
	})

	t.Run("non-HTML content yields no links or words", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"words": "not counted"}`))
		}))
		defer server.Close()

		source := NewHTTPSource(server.Client())
		page, err := source.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("failed to fetch: %v", err)
		}

		if len(page.Links) != 0 || len(page.WordCounts) != 0 {
			t.Errorf("expected empty page for non-HTML, got links=%v words=%v", page.Links, page.WordCounts)
		}
		if page.Hash == "" {
			t.Error("expected content hash even for non-HTML")
		}
	})

	t.Run("respects the body size limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>" + strings.Repeat("word ", 10000) + "</body></html>"))
		}))
		defer server.Close()

		source := NewHTTPSource(server.Client(), WithMaxBodySize(64))
		page, err := source.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("failed to fetch: %v", err)
		}

		// The truncated body parses as best-effort HTML; the point is that
		// the fetch completes and does not buffer the full response.
		if page.WordCounts["word"] >= 10000 {
			t.Errorf("expected truncated body, counted %d words", page.WordCounts["word"])
		}
	})

	t.Run("uses the crawl source against a small site end to end", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><a href="/leaf">leaf</a><p>root root</p></body></html>`))
		})
		mux.HandleFunc("/leaf", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><p>leaf root</p></body></html>`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		source := NewHTTPSource(server.Client())
		c := New(source, WithMaxDepth(2), WithTimeout(10*time.Second), WithPopularWordCount(5))
		result := c.Crawl(context.Background(), []string{server.URL + "/"})

		if result.URLsVisited != 2 {
			t.Errorf("expected 2 URLs visited, got %d", result.URLsVisited)
		}
		if len(result.WordCounts) == 0 || result.WordCounts[0].Word != "root" || result.WordCounts[0].Count != 3 {
			t.Errorf("expected 'root' ranked first with count 3, got %v", result.WordCounts)
		}
	})
}
