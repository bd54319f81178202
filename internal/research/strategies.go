// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"

	"github.com/pdiddy/deepresearch/internal/links"
	"github.com/pdiddy/deepresearch/pkg/types"
)

// Result caps shared by the academic strategies.
const (
	maxAcademicLinks = 10
	maxTopPapers     = 5
	maxWebLinks      = 10
	maxCombined      = 15
)

// Strategy names a retrieval strategy. Every strategy maps a query to the
// common Answer shape; callers depend only on that shape, not on which
// strategy produced it.
type Strategy string

const (
	StrategyWeb      Strategy = "web"
	StrategyModel    Strategy = "model"
	StrategyAcademic Strategy = "academic"
	StrategyPapers   Strategy = "papers"
	StrategyHybrid   Strategy = "hybrid"
)

// ParseStrategy maps a name to a Strategy, reporting whether it is known.
func ParseStrategy(name string) (Strategy, bool) {
	switch Strategy(name) {
	case StrategyWeb, StrategyModel, StrategyAcademic, StrategyPapers, StrategyHybrid:
		return Strategy(name), true
	}
	return "", false
}

// AcademicResult holds academic-only retrieval output. References aliases
// Papers for callers that render a references section.
type AcademicResult struct {
	Topic      string   `json:"topic" yaml:"topic"`
	Summary    string   `json:"summary" yaml:"summary"`
	Papers     []string `json:"papers" yaml:"papers"`
	References []string `json:"references" yaml:"references"`
	Images     []string `json:"images" yaml:"images"`
}

// PapersResult holds ranked top-paper retrieval output. RawText preserves
// the unprocessed provider content for auditing.
type PapersResult struct {
	Topic   string   `json:"topic" yaml:"topic"`
	Top     []string `json:"top_papers" yaml:"top_papers"`
	RawText string   `json:"raw_text" yaml:"raw_text"`
}

// MergedResult holds combined web+academic retrieval output with three
// overlapping views over the same link pool.
type MergedResult struct {
	Topic           string   `json:"topic" yaml:"topic"`
	Summary         string   `json:"summary" yaml:"summary"`
	AcademicPapers  []string `json:"academic_papers" yaml:"academic_papers"`
	WebLinks        []string `json:"web_links" yaml:"web_links"`
	CombinedSources []string `json:"combined_sources" yaml:"combined_sources"`
	Images          []string `json:"images" yaml:"images"`
}

// Academic searches with an academic-biased prompt and keeps only
// scholarly links: those extracted from the result text plus any source
// URLs that pass the allow-list, at most 10.
func (c *Client) Academic(ctx context.Context, topic string) AcademicResult {
	prompt := fmt.Sprintf(
		"Return peer-reviewed academic research papers only about: '%s'. "+
			"Focus on IEEE, Springer, Elsevier, PubMed, arXiv, ACM and include DOI/arXiv/PDF links.",
		topic)

	raw := c.webSearch(ctx, prompt, maxAcademicLinks)

	found := links.Extract(raw.Content)
	found = append(found, links.FilterAcademic(raw.Sources)...)
	papers := capAt(links.Dedupe(found), maxAcademicLinks)

	return AcademicResult{
		Topic:      topic,
		Summary:    raw.Content,
		Papers:     papers,
		References: papers,
		Images:     raw.Images,
	}
}

// TopPapers asks for ranked papers and truncates to the top 5 links.
func (c *Client) TopPapers(ctx context.Context, topic string) PapersResult {
	prompt := fmt.Sprintf(
		"Find TOP research papers on '%s'. "+
			"Return only DOI, PDF, arXiv, PubMed, IEEE, Springer, ACM links and rank by relevance.",
		topic)

	raw := c.webSearch(ctx, prompt, maxAcademicLinks)

	found := links.Extract(raw.Content)
	found = append(found, links.FilterAcademic(raw.Sources)...)

	return PapersResult{
		Topic:   topic,
		Top:     capAt(links.Dedupe(found), maxTopPapers),
		RawText: raw.Content,
	}
}

// Merged runs one combined-intent search and splits the links into an
// academic subset, the general web sources, and their deduplicated union.
func (c *Client) Merged(ctx context.Context, topic string) MergedResult {
	prompt := fmt.Sprintf(
		"Provide complete research on '%s'. "+
			"Include both web results (articles/blogs) AND academic research papers (DOI/arXiv/PDF).",
		topic)

	raw := c.webSearch(ctx, prompt, 12)

	academic := links.Extract(raw.Content)
	academic = append(academic, links.FilterAcademic(raw.Sources)...)
	academic = links.Dedupe(academic)

	combined := links.Dedupe(append(append([]string{}, academic...), raw.Sources...))

	return MergedResult{
		Topic:           topic,
		Summary:         raw.Content,
		AcademicPapers:  capAt(academic, maxAcademicLinks),
		WebLinks:        capAt(raw.Sources, maxWebLinks),
		CombinedSources: capAt(combined, maxCombined),
		Images:          raw.Images,
	}
}

// Run executes the named strategy and renders its output as the common
// Answer shape. Unknown strategies yield an explicit unsupported answer.
func (c *Client) Run(ctx context.Context, strategy Strategy, query string) types.Answer {
	switch strategy {
	case StrategyWeb:
		return c.WebSearch(ctx, query)
	case StrategyModel:
		return c.ModelAnswer(ctx, query)
	case StrategyAcademic:
		r := c.Academic(ctx, query)
		a := types.NewAnswer(r.Summary)
		a.Sources = append(a.Sources, r.Papers...)
		a.Images = append(a.Images, r.Images...)
		return a
	case StrategyPapers:
		r := c.TopPapers(ctx, query)
		a := types.NewAnswer(r.RawText)
		a.Sources = append(a.Sources, r.Top...)
		return a
	case StrategyHybrid:
		r := c.Merged(ctx, query)
		a := types.NewAnswer(r.Summary)
		a.Sources = append(a.Sources, r.CombinedSources...)
		a.Images = append(a.Images, r.Images...)
		return a
	default:
		return types.NewAnswer(fmt.Sprintf("strategy not supported: %s", strategy))
	}
}

func capAt(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
