package scraper

import (
	"errors"
	"strings"
	"testing"
	"time"

	"newsflow/types"
)

// stubStrategy returns canned content or an error
type stubStrategy struct {
	name    string
	content string
	err     error
	calls   int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(pageURL string, _ []byte) (*types.ScrapedContent, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.content == "" {
		return nil, nil
	}
	return &types.ScrapedContent{URL: pageURL, Content: s.content, ScrapedAt: time.Now()}, nil
}

func TestExtractContentFallsBackInOrder(t *testing.T) {
	first := &stubStrategy{name: "first"}
	second := &stubStrategy{name: "second", content: "body text"}
	third := &stubStrategy{name: "third", content: "never used"}

	result := ExtractContent("https://example.com/a", nil, []Strategy{first, second, third})
	if result == nil {
		t.Fatal("expected a result from the second strategy")
	}
	if result.Scraper != "second" {
		t.Fatalf("expected strategyUsed=second, got %s", result.Scraper)
	}
	if third.calls != 0 {
		t.Fatal("chain must short-circuit before the third strategy")
	}
}

func TestExtractContentTreatsErrorsAsNoResult(t *testing.T) {
	failing := &stubStrategy{name: "failing", err: errors.New("parse explosion")}
	fallback := &stubStrategy{name: "fallback", content: "recovered"}

	result := ExtractContent("https://example.com/a", nil, []Strategy{failing, fallback})
	if result == nil || result.Scraper != "fallback" {
		t.Fatalf("expected fallback result after strategy error, got %+v", result)
	}
}

func TestExtractContentAllEmptyYieldsNil(t *testing.T) {
	result := ExtractContent("https://example.com/a", nil, []Strategy{
		&stubStrategy{name: "a"},
		&stubStrategy{name: "b", err: errors.New("nope")},
	})
	if result != nil {
		t.Fatalf("expected nil on total chain miss, got %+v", result)
	}
}

func TestCleanTextCollapsesAndStripsBoilerplate(t *testing.T) {
	in := "  Breaking   news:\n\tmarkets   rally. Advertisement Subscribe now "
	got := cleanText(in)
	want := "Breaking news: markets rally. now"
	if got != want {
		t.Fatalf("cleanText = %q, want %q", got, want)
	}
}

const markupPage = `<html>
<head><title>Page Title</title></head>
<body>
<nav>Home | World | Sport</nav>
<script>trackEverything();</script>
<div class="post-content">The central bank held rates steady on Thursday.</div>
<footer>Copyright</footer>
</body>
</html>`

func TestMarkupStrategyProbesSelectors(t *testing.T) {
	strategy := &MarkupStrategy{}
	result, err := strategy.Extract("https://example.com/rates", []byte(markupPage))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}
	if !strings.Contains(result.Content, "held rates steady") {
		t.Fatalf("unexpected content: %q", result.Content)
	}
	if strings.Contains(result.Content, "trackEverything") || strings.Contains(result.Content, "Home | World") {
		t.Fatalf("page chrome leaked into content: %q", result.Content)
	}
	if result.Title != "Page Title" {
		t.Fatalf("unexpected title: %q", result.Title)
	}
}

func TestMarkupStrategyWholePageFallback(t *testing.T) {
	page := `<html><body><div id="misc">Plain text with no known containers around it at all.</div></body></html>`
	strategy := &MarkupStrategy{}
	result, err := strategy.Extract("https://example.com/misc", []byte(page))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if result == nil || !strings.Contains(result.Content, "no known containers") {
		t.Fatalf("expected whole-page fallback content, got %+v", result)
	}
}

const heuristicPage = `<html>
<head>
<meta property="og:title" content="Rates Held Steady">
<meta name="author" content="Jane Reporter">
<meta property="article:published_time" content="2024-03-01T10:30:00Z">
<meta name="keywords" content="economy, rates, banking">
</head>
<body>
<p>Too short.</p>
<p>The central bank held interest rates steady on Thursday, citing persistent inflation pressure across the economy.</p>
<p>Economists broadly expected the decision after last month's surprisingly strong employment report kept projections up.</p>
</body>
</html>`

func TestHeuristicStrategyExtractsMetadata(t *testing.T) {
	strategy := &HeuristicStrategy{}
	result, err := strategy.Extract("https://example.com/rates", []byte(heuristicPage))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Title != "Rates Held Steady" {
		t.Fatalf("unexpected title: %q", result.Title)
	}
	if result.Author != "Jane Reporter" {
		t.Fatalf("unexpected author: %q", result.Author)
	}
	if result.PublishedDate == nil || result.PublishedDate.UTC().Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("unexpected publish date: %v", result.PublishedDate)
	}
	if len(result.Keywords) != 3 || result.Keywords[1] != "rates" {
		t.Fatalf("unexpected keywords: %v", result.Keywords)
	}
	if strings.Contains(result.Content, "Too short") {
		t.Fatalf("short paragraph leaked into content: %q", result.Content)
	}
	if result.Summary == "" || !strings.HasPrefix(result.Content, result.Summary) {
		t.Fatalf("summary should be the leading paragraph, got %q", result.Summary)
	}
}

func TestHeuristicStrategyEmptyPageYieldsNil(t *testing.T) {
	strategy := &HeuristicStrategy{}
	result, err := strategy.Extract("https://example.com/empty", []byte("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil for page without paragraphs, got %+v", result)
	}
}
