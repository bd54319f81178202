// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdiddy/deepresearch/pkg/types"
)

// AnswerFunc maps one question to an Answer. Strategies satisfy it via
// method values (e.g. client.WebSearch).
type AnswerFunc func(ctx context.Context, question string) types.Answer

// CollectAnswers runs fn once per question and returns question/answer
// pairs in the original question order. Questions share no state, so with
// workers > 1 retrieval fans out across goroutines; each goroutine writes
// only its own slot, and output order is identical regardless of the
// execution strategy. A panic inside fn is confined to its question and
// replaced with an error-content answer.
func CollectAnswers(ctx context.Context, questions []string, fn AnswerFunc, workers int) []types.QA {
	if len(questions) == 0 {
		return nil
	}

	answers := make([]types.QA, len(questions))

	if workers <= 1 {
		for i, q := range questions {
			answers[i] = types.QA{Question: q, Answer: collectOne(ctx, q, fn)}
		}
		return answers
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, q := range questions {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, q string) {
			defer wg.Done()
			defer func() { <-sem }()
			answers[i] = types.QA{Question: q, Answer: collectOne(ctx, q, fn)}
		}(i, q)
	}
	wg.Wait()

	return answers
}

// collectOne invokes fn, converting a panic into an error-marked answer so
// one bad question never aborts its siblings.
func collectOne(ctx context.Context, question string, fn AnswerFunc) (answer types.Answer) {
	defer func() {
		if r := recover(); r != nil {
			answer = types.NewAnswer(fmt.Sprintf("Error answering question: %v", r))
		}
	}()
	return fn(ctx, question)
}
