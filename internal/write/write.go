// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package write synthesizes final text from a topic and its retrieved
// answers. Short factual queries get a direct one-off answer; everything
// else gets the structured research document, optionally polished by the
// hosted backend.
package write

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/pdiddy/deepresearch/internal/backend"
	"github.com/pdiddy/deepresearch/pkg/types"
)

// simpleKeywords marks interrogative or quantitative queries that deserve
// a direct answer instead of a full document.
var simpleKeywords = []string{"who", "what", "when", "where", "how many", "how much", "current"}

const simpleWordLimit = 12

// IsSimpleQuestion reports whether the query is a short factual question:
// at most 12 words and containing at least one simple keyword.
func IsSimpleQuestion(query string) bool {
	if len(strings.Fields(query)) > simpleWordLimit {
		return false
	}
	low := strings.ToLower(query)
	for _, kw := range simpleKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// Options control one synthesis call.
type Options struct {
	// ForceFactual forces the short-answer path regardless of the
	// classification heuristic.
	ForceFactual bool

	// ForceDocument forces the full-document path regardless of the
	// classification heuristic. ForceFactual wins if both are set.
	ForceDocument bool

	// Polish sends the generated document to the secondary backend for a
	// clarity pass. Ignored on the short-answer path.
	Polish bool
}

// Warning suffixes appended when the polish stage fails. The draft itself
// is always kept.
const (
	quotaWarning  = "\n\nwarning: hosted API quota exhausted; keeping the unpolished draft."
	polishWarning = "\n\nwarning: polishing failed; keeping the unpolished draft."
)

// Writer synthesizes final text through the backend fallback chain.
type Writer struct {
	// Selector is the generation chain used for the base text.
	Selector *backend.Selector

	// Polisher is the secondary backend for the optional clarity pass.
	// Nil disables polishing.
	Polisher backend.Generator
}

// Compose classifies the topic, generates text through the selector, and
// applies the optional polish stage. Backend exhaustion yields marked text
// instead of an error, so the pipeline always has something to return.
func (w *Writer) Compose(ctx context.Context, topic string, answers []types.QA, opts Options) string {
	simple := opts.ForceFactual || (!opts.ForceDocument && IsSimpleQuestion(topic))

	var prompt string
	if simple {
		prompt = factualPrompt(topic)
	} else {
		p, err := documentPrompt(topic, answers)
		if err != nil {
			return Normalize(backend.FailureText(err))
		}
		prompt = p
	}

	var text string
	reply, err := w.Selector.GenerateText(ctx, prompt)
	if err != nil {
		text = backend.FailureText(err)
	} else {
		text = reply.Text
	}

	if opts.Polish && !simple && w.Polisher != nil && !backend.IsFailureText(text) {
		text = w.polish(ctx, text)
	}

	return Normalize(text)
}

// polish runs the clarity pass. On rate-limit failure the draft gains a
// quota warning; on any other failure a generic polish warning. The
// original text is never discarded.
func (w *Writer) polish(ctx context.Context, text string) string {
	polished, err := w.Polisher.Generate(ctx, backend.UserMessage(polishPrompt(text)))
	if err != nil {
		if errors.Is(err, backend.ErrRateLimited) {
			return text + quotaWarning
		}
		return text + polishWarning
	}
	return polished
}

// multiNewline matches runs of three or more consecutive newlines.
var multiNewline = regexp.MustCompile(`\n{3,}`)

// Normalize collapses 3+ consecutive newlines to exactly two and trims
// surrounding whitespace. This is the only deterministic transform applied
// to generated prose.
func Normalize(text string) string {
	return strings.TrimSpace(multiNewline.ReplaceAllString(text, "\n\n"))
}
