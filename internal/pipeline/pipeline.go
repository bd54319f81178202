// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences planning, retrieval, and synthesis into one
// research pass and maps mode names onto fixed stage configurations.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/deepresearch/internal/plan"
	"github.com/pdiddy/deepresearch/internal/research"
	"github.com/pdiddy/deepresearch/internal/write"
	"github.com/pdiddy/deepresearch/pkg/types"
)

// Pipeline composes the research stages. Every dependency is injected so
// tests can substitute stub providers and generators.
type Pipeline struct {
	Client *research.Client
	Writer *write.Writer

	// Workers bounds per-question retrieval concurrency (default 1).
	Workers int
}

// Options carry per-run caller choices.
type Options struct {
	// Polish requests the secondary-backend clarity pass; it only applies
	// in modes that allow it and never on the simple-answer path.
	Polish bool

	// ForceFactual forces short-answer synthesis.
	ForceFactual bool
}

// Run executes one full pipeline pass. It never returns an error for
// downstream faults: retrieval and generation failures surface as marked
// text inside the result, and an unrecognized mode yields an explicit
// unsupported result.
func (p *Pipeline) Run(ctx context.Context, query string, mode Mode, opts Options) types.PipelineResult {
	topic := strings.TrimSpace(query)

	spec, ok := modeSpecs[mode]
	if !ok {
		return types.PipelineResult{
			Topic:     topic,
			FinalText: fmt.Sprintf("mode not supported: %s", mode),
			Mode:      string(mode),
		}
	}

	if spec.UsesPlanner {
		return p.runPlanned(ctx, topic, mode, spec, opts)
	}
	return p.runDirect(ctx, topic, mode, spec)
}

// runPlanned is the plan → search → write sequence.
func (p *Pipeline) runPlanned(ctx context.Context, topic string, mode Mode, spec ModeSpec, opts Options) types.PipelineResult {
	pl := plan.Expand(topic)

	answers := research.CollectAnswers(ctx, pl.Questions, p.answerFunc(spec.Strategy), p.Workers)

	final := p.Writer.Compose(ctx, pl.Topic, answers, write.Options{
		ForceFactual:  opts.ForceFactual,
		ForceDocument: spec.ForceFullDoc,
		Polish:        opts.Polish && spec.AllowPolish,
	})

	return types.PipelineResult{
		Topic:     pl.Topic,
		Answers:   answers,
		FinalText: final,
		Mode:      string(mode),
	}
}

// runDirect bypasses planning: one strategy call, rendered as text.
func (p *Pipeline) runDirect(ctx context.Context, topic string, mode Mode, spec ModeSpec) types.PipelineResult {
	answer := p.Client.Run(ctx, spec.Strategy, topic)

	text := renderAnswer(answer)
	if spec.TruncateAt > 0 {
		text = truncate(text, spec.TruncateAt)
	}

	return types.PipelineResult{
		Topic:     topic,
		Answers:   []types.QA{{Question: topic, Answer: answer}},
		FinalText: write.Normalize(text),
		Mode:      string(mode),
	}
}

// RunStrategy answers one query with a single retrieval strategy, without
// planning or synthesis.
func (p *Pipeline) RunStrategy(ctx context.Context, query string, strategy research.Strategy) types.Answer {
	return p.Client.Run(ctx, strategy, strings.TrimSpace(query))
}

// answerFunc adapts a strategy into the searcher's per-question callback.
func (p *Pipeline) answerFunc(strategy research.Strategy) research.AnswerFunc {
	return func(ctx context.Context, question string) types.Answer {
		return p.Client.Run(ctx, strategy, question)
	}
}

// renderAnswer formats a strategy answer for direct display: the content
// followed by its source list.
func renderAnswer(a types.Answer) string {
	var b strings.Builder
	b.WriteString(a.Content)
	if len(a.Sources) > 0 {
		b.WriteString("\n\nSources:\n")
		for _, s := range a.Sources {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	return b.String()
}

// truncate caps text at n runes, appending an ellipsis when it was cut.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
