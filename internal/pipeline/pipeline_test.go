// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/deepresearch/internal/backend"
	"github.com/pdiddy/deepresearch/internal/research"
	"github.com/pdiddy/deepresearch/internal/write"
)

type stubProvider struct {
	items  []research.Item
	errOn  string
	called []string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, query string, _ int) ([]research.Item, error) {
	s.called = append(s.called, query)
	if s.errOn != "" && strings.Contains(query, s.errOn) {
		return nil, errors.New("search unavailable")
	}
	return s.items, nil
}

type stubGenerator struct {
	name string
	text string
	err  error
}

func (s stubGenerator) Name() string { return s.name }

func (s stubGenerator) Generate(_ context.Context, _ []backend.Message) (string, error) {
	return s.text, s.err
}

func testPipeline(provider research.Provider, gen backend.Generator) *Pipeline {
	return &Pipeline{
		Client: &research.Client{
			Provider: provider,
			Selector: backend.NewSelector(false, gen),
		},
		Writer: &write.Writer{
			Selector: backend.NewSelector(false, gen),
		},
	}
}

func TestRunNormalModePlansFiveQuestions(t *testing.T) {
	provider := &stubProvider{items: []research.Item{
		{Title: "QC", Content: "Qubits in superposition.", URL: "https://example.com/qc"},
	}}
	p := testPipeline(provider, stubGenerator{name: "stub", text: "A document about quantum computing."})

	res := p.Run(context.Background(), "quantum computing", ModeNormal, Options{})

	if res.Mode != string(ModeNormal) {
		t.Fatalf("mode = %q", res.Mode)
	}
	if res.Topic != "quantum computing" {
		t.Fatalf("topic = %q", res.Topic)
	}
	if len(res.Answers) != 5 {
		t.Fatalf("expected 5 answers, got %d", len(res.Answers))
	}

	wantFirst := "What is quantum computing?"
	if res.Answers[0].Question != wantFirst {
		t.Errorf("first question = %q, want %q", res.Answers[0].Question, wantFirst)
	}
	for i, qa := range res.Answers {
		if !strings.Contains(qa.Question, "quantum computing") {
			t.Errorf("question %d does not mention the topic: %q", i, qa.Question)
		}
		if qa.Answer.Content == "" {
			t.Errorf("question %d has empty answer content", i)
		}
	}
	if res.FinalText != "A document about quantum computing." {
		t.Errorf("final text = %q", res.FinalText)
	}
}

func TestRunPartialSearchFailureKeepsSiblings(t *testing.T) {
	provider := &stubProvider{
		items: []research.Item{{Content: "Real content.", URL: "https://example.com/a"}},
		errOn: "advantages",
	}
	p := testPipeline(provider, stubGenerator{name: "stub", text: "doc"})

	res := p.Run(context.Background(), "graph databases", ModeNormal, Options{})

	if len(res.Answers) != 5 {
		t.Fatalf("expected 5 answers, got %d", len(res.Answers))
	}
	failed := 0
	for _, qa := range res.Answers {
		if strings.HasPrefix(qa.Answer.Content, "Auto-generated explanation for:") {
			failed++
		} else if qa.Answer.Content != "Real content." {
			t.Errorf("unexpected content for %q: %q", qa.Question, qa.Answer.Content)
		}
	}
	if failed != 1 {
		t.Errorf("expected exactly 1 fallback answer, got %d", failed)
	}
}

func TestRunUnsupportedMode(t *testing.T) {
	p := testPipeline(nil, stubGenerator{name: "stub", text: "doc"})

	res := p.Run(context.Background(), "anything", Mode("turbo"), Options{})

	if res.FinalText != "mode not supported: turbo" {
		t.Errorf("final text = %q", res.FinalText)
	}
	if len(res.Answers) != 0 {
		t.Errorf("expected no answers, got %d", len(res.Answers))
	}
}

func TestRunFastSummaryTruncates(t *testing.T) {
	long := strings.Repeat("Результат поиска. ", 200)
	provider := &stubProvider{items: []research.Item{{Content: long, URL: "https://example.com/r"}}}
	p := testPipeline(provider, stubGenerator{name: "stub", text: "unused"})

	res := p.Run(context.Background(), "big topic", ModeFastSummary, Options{})

	if !strings.HasSuffix(res.FinalText, "...") {
		t.Fatalf("expected ellipsis suffix, got tail %q", res.FinalText[len(res.FinalText)-10:])
	}
	if n := utf8.RuneCountInString(res.FinalText); n > 1203 {
		t.Errorf("final text is %d runes, want <= 1203", n)
	}
	if !utf8.ValidString(res.FinalText) {
		t.Error("truncation produced invalid UTF-8")
	}
}

func TestRunDirectModeRendersSources(t *testing.T) {
	provider := &stubProvider{items: []research.Item{
		{Content: "Some finding.", URL: "https://example.com/one"},
		{Content: "Another finding.", URL: "https://example.com/two"},
	}}
	p := testPipeline(provider, stubGenerator{name: "stub", text: "unused"})

	res := p.Run(context.Background(), "a topic", ModeWebSearch, Options{})

	if len(res.Answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(res.Answers))
	}
	if res.Answers[0].Question != "a topic" {
		t.Errorf("direct-mode question = %q", res.Answers[0].Question)
	}
	if !strings.Contains(res.FinalText, "Sources:") {
		t.Errorf("final text missing sources section:\n%s", res.FinalText)
	}
	if !strings.Contains(res.FinalText, "- https://example.com/two") {
		t.Errorf("final text missing source URL:\n%s", res.FinalText)
	}
}

func TestRunCodeModeUsesBackend(t *testing.T) {
	p := testPipeline(nil, stubGenerator{name: "stub", text: "func main() {}"})

	res := p.Run(context.Background(), "hello world in go", ModeCode, Options{})

	if res.FinalText != "func main() {}" {
		t.Errorf("final text = %q", res.FinalText)
	}
}

func TestRunTrimsQuery(t *testing.T) {
	provider := &stubProvider{items: []research.Item{{Content: "c"}}}
	p := testPipeline(provider, stubGenerator{name: "stub", text: "doc"})

	res := p.Run(context.Background(), "  padded topic  ", ModeNormal, Options{})

	if res.Topic != "padded topic" {
		t.Errorf("topic = %q", res.Topic)
	}
}

func TestRunStrategy(t *testing.T) {
	p := testPipeline(nil, stubGenerator{name: "stub", text: "from the model"})

	a := p.RunStrategy(context.Background(), "  a question  ", research.StrategyModel)

	if a.Content != "from the model" {
		t.Errorf("content = %q", a.Content)
	}
	if a.Sources == nil || a.Images == nil {
		t.Error("answer slices must be non-nil")
	}
}

func TestModeTable(t *testing.T) {
	for _, m := range Modes() {
		_, spec, ok := ParseMode(string(m))
		if !ok {
			t.Fatalf("mode %q missing from the mode table", m)
		}
		if spec.Strategy == "" {
			t.Errorf("mode %q has no strategy", m)
		}
	}

	if _, _, ok := ParseMode("turbo"); ok {
		t.Error("unknown mode parsed as known")
	}

	planned := map[Mode]bool{ModeNormal: true, ModeDeepResearch: true}
	for _, m := range Modes() {
		_, spec, _ := ParseMode(string(m))
		if spec.UsesPlanner != planned[m] {
			t.Errorf("mode %q: UsesPlanner = %v", m, spec.UsesPlanner)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("rune truncate = %q", got)
	}
}
