// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend calls text-generation services and selects among them
// with ordered fallback. The local LM Studio endpoint is tried first; the
// hosted OpenAI endpoint is used when the local one is unavailable and a
// credential is configured. Each backend is tried at most once per call.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrRateLimited marks a backend failure caused by quota or rate limiting
// (HTTP 429). The writer's polish stage distinguishes it from other
// failures when choosing a warning suffix.
var ErrRateLimited = errors.New("backend rate limited")

// Message is a single chat message in an OpenAI-compatible conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage wraps a prompt as a single-message conversation.
func UserMessage(prompt string) []Message {
	return []Message{{Role: "user", Content: prompt}}
}

// Generator produces text from a message history. Implementations: the
// LM Studio and OpenAI clients in this package, plus test stubs.
type Generator interface {
	Name() string
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Prober is implemented by generators that support a cheap availability
// check ahead of a full generation request.
type Prober interface {
	Probe(ctx context.Context) bool
}

// Reply is generated text together with the backend that produced it.
type Reply struct {
	Text    string
	Backend string
}

// Selector tries generators in order and returns the first success.
// Failures never propagate individually; the returned error is non-nil
// only when every generator has failed.
type Selector struct {
	// Generators in priority order.
	Generators []Generator

	// UseProbe short-circuits a generator that implements Prober and
	// reports unavailable, instead of spending the full request timeout.
	UseProbe bool
}

// NewSelector builds a selector over the given generators.
func NewSelector(useProbe bool, gens ...Generator) *Selector {
	return &Selector{UseProbe: useProbe, Generators: gens}
}

// Generate tries each generator once, in order. A failure falls through to
// the next generator; when all fail the combined error lists every attempt.
func (s *Selector) Generate(ctx context.Context, messages []Message) (Reply, error) {
	if len(s.Generators) == 0 {
		return Reply{}, errors.New("no backends configured")
	}

	var attempts []string
	for _, g := range s.Generators {
		if s.UseProbe {
			if p, ok := g.(Prober); ok && !p.Probe(ctx) {
				attempts = append(attempts, fmt.Sprintf("%s: unreachable", g.Name()))
				continue
			}
		}

		text, err := g.Generate(ctx, messages)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", g.Name(), err))
			continue
		}
		return Reply{Text: text, Backend: g.Name()}, nil
	}

	return Reply{}, fmt.Errorf("all backends failed: %s", strings.Join(attempts, "; "))
}

// GenerateText is Generate with a single user prompt.
func (s *Selector) GenerateText(ctx context.Context, prompt string) (Reply, error) {
	return s.Generate(ctx, UserMessage(prompt))
}

// failurePrefix visually marks generation failures that are returned as
// content instead of being raised.
const failurePrefix = "[generation failed]"

// FailureText renders a backend error as marked text so pipelines can keep
// going on total backend exhaustion.
func FailureText(err error) string {
	return failurePrefix + " " + err.Error()
}

// IsFailureText reports whether text was produced by FailureText.
func IsFailureText(text string) bool {
	return strings.HasPrefix(text, failurePrefix)
}
