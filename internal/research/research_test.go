// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/deepresearch/internal/backend"
)

// --- stub provider ---

type stubProvider struct {
	items []Item
	err   error
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, _ string, _ int) ([]Item, error) {
	s.calls++
	return s.items, s.err
}

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Name() string { return "stub_backend" }

func (s *stubGenerator) Generate(_ context.Context, _ []backend.Message) (string, error) {
	return s.text, s.err
}

func selectorWith(g backend.Generator) *backend.Selector {
	return backend.NewSelector(false, g)
}

// --- WebSearch ---

func TestWebSearchCollectsContentAndSources(t *testing.T) {
	c := &Client{Provider: &stubProvider{items: []Item{
		{Content: "first paragraph", URL: "https://a.example/1", ImageURL: "https://img.example/a.png"},
		{Content: "second paragraph", URL: "https://a.example/2"},
		{Content: "", URL: "https://a.example/1"}, // duplicate URL, empty content
	}}}

	got := c.WebSearch(context.Background(), "anything")

	if got.Content != "first paragraph\n\nsecond paragraph" {
		t.Errorf("Content = %q", got.Content)
	}
	if len(got.Sources) != 2 {
		t.Errorf("Sources = %v, want 2 unique entries", got.Sources)
	}
	if len(got.Images) != 1 {
		t.Errorf("Images = %v, want 1 entry", got.Images)
	}
}

func TestWebSearchUnconfiguredProvider(t *testing.T) {
	c := &Client{}
	got := c.WebSearch(context.Background(), "quantum computing")

	if !strings.Contains(got.Content, "quantum computing") {
		t.Errorf("fallback content %q should mention the query", got.Content)
	}
	if got.Sources == nil || got.Images == nil {
		t.Error("fallback answer must carry non-nil source and image lists")
	}
	if len(got.Sources) != 0 || len(got.Images) != 0 {
		t.Errorf("fallback answer should have empty lists, got %v / %v", got.Sources, got.Images)
	}
}

func TestWebSearchProviderError(t *testing.T) {
	c := &Client{Provider: &stubProvider{err: errors.New("connection refused")}}
	got := c.WebSearch(context.Background(), "topic")

	if !strings.HasPrefix(got.Content, "Auto-generated explanation for:") {
		t.Errorf("provider error should degrade to fallback, got %q", got.Content)
	}
}

func TestWebSearchAnswerShapeAlwaysComplete(t *testing.T) {
	cases := []*Client{
		{},
		{Provider: &stubProvider{err: errors.New("boom")}},
		{Provider: &stubProvider{}},
		{Provider: &stubProvider{items: []Item{{Content: "x"}}}},
	}
	for i, c := range cases {
		got := c.WebSearch(context.Background(), "q")
		if got.Sources == nil || got.Images == nil {
			t.Errorf("case %d: nil slice in answer %+v", i, got)
		}
	}
}

// --- ModelAnswer ---

func TestModelAnswer(t *testing.T) {
	c := &Client{Selector: selectorWith(&stubGenerator{text: "model says hi"})}
	got := c.ModelAnswer(context.Background(), "q")

	if got.Content != "model says hi" {
		t.Errorf("Content = %q", got.Content)
	}
	if len(got.Sources) != 0 || len(got.Images) != 0 {
		t.Errorf("model answer should have empty lists, got %+v", got)
	}
}

func TestModelAnswerBackendFailure(t *testing.T) {
	c := &Client{Selector: selectorWith(&stubGenerator{err: errors.New("down")})}
	got := c.ModelAnswer(context.Background(), "q")

	if got.Content == "" || !backend.IsFailureText(got.Content) {
		t.Errorf("backend failure should yield marked content, got %q", got.Content)
	}
}

// --- academic strategies ---

func academicProvider() *stubProvider {
	return &stubProvider{items: []Item{
		{
			Content: "See https://arxiv.org/abs/2301.07041 and 10.1145/1234567.1234568 " +
				"plus https://example.com/summary.pdf for details.",
			URL: "https://blog.example.com/post",
		},
		{Content: "more prose", URL: "https://pubmed.ncbi.nlm.nih.gov/123/"},
	}}
}

func TestAcademic(t *testing.T) {
	c := &Client{Provider: academicProvider()}
	got := c.Academic(context.Background(), "transformers")

	if got.Topic != "transformers" {
		t.Errorf("Topic = %q", got.Topic)
	}
	if got.Summary == "" {
		t.Error("Summary should carry the raw content")
	}
	if len(got.Papers) == 0 || len(got.Papers) > 10 {
		t.Fatalf("Papers = %v, want 1..10 entries", got.Papers)
	}
	for _, p := range got.Papers {
		if strings.Contains(p, "blog.example.com") {
			t.Errorf("non-academic source leaked into papers: %q", p)
		}
	}
	if len(got.References) != len(got.Papers) {
		t.Errorf("References should alias Papers: %v vs %v", got.References, got.Papers)
	}
}

func TestTopPapersTruncatesToFive(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "https://arxiv.org/abs/230%d.0000%d ", i, i)
	}
	c := &Client{Provider: &stubProvider{items: []Item{{Content: b.String()}}}}

	got := c.TopPapers(context.Background(), "topic")
	if len(got.Top) != 5 {
		t.Errorf("Top = %d entries, want 5", len(got.Top))
	}
	if got.RawText == "" {
		t.Error("RawText should expose the untouched response")
	}
}

func TestMergedViews(t *testing.T) {
	c := &Client{Provider: academicProvider()}
	got := c.Merged(context.Background(), "topic")

	if len(got.AcademicPapers) > 10 || len(got.WebLinks) > 10 || len(got.CombinedSources) > 15 {
		t.Errorf("caps exceeded: %d/%d/%d",
			len(got.AcademicPapers), len(got.WebLinks), len(got.CombinedSources))
	}

	// Combined must contain every web link and be duplicate-free.
	seen := map[string]bool{}
	for _, u := range got.CombinedSources {
		if seen[u] {
			t.Errorf("duplicate in combined sources: %q", u)
		}
		seen[u] = true
	}
	for _, w := range got.WebLinks {
		if !seen[w] {
			t.Errorf("web link %q missing from combined sources", w)
		}
	}
}

func TestMergedFallbackStillShaped(t *testing.T) {
	c := &Client{}
	got := c.Merged(context.Background(), "topic")
	if !strings.Contains(got.Summary, "Auto-generated") {
		t.Errorf("Summary = %q, want fallback text", got.Summary)
	}
	if got.AcademicPapers != nil && len(got.AcademicPapers) != 0 {
		t.Errorf("AcademicPapers = %v, want empty", got.AcademicPapers)
	}
}

// --- Run dispatch ---

func TestRunStrategies(t *testing.T) {
	c := &Client{
		Provider: academicProvider(),
		Selector: selectorWith(&stubGenerator{text: "model text"}),
	}

	for _, s := range []Strategy{StrategyWeb, StrategyModel, StrategyAcademic, StrategyPapers, StrategyHybrid} {
		got := c.Run(context.Background(), s, "topic")
		if got.Sources == nil || got.Images == nil {
			t.Errorf("strategy %s: nil slice in %+v", s, got)
		}
		if got.Content == "" {
			t.Errorf("strategy %s: empty content", s)
		}
	}
}

func TestRunUnknownStrategy(t *testing.T) {
	c := &Client{}
	got := c.Run(context.Background(), Strategy("nope"), "q")
	if !strings.Contains(got.Content, "strategy not supported") {
		t.Errorf("Content = %q", got.Content)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"web", "model", "academic", "papers", "hybrid"} {
		if _, ok := ParseStrategy(name); !ok {
			t.Errorf("ParseStrategy(%q) not recognized", name)
		}
	}
	if _, ok := ParseStrategy("bogus"); ok {
		t.Error("ParseStrategy should reject unknown names")
	}
}
