// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the deepresearch pipeline.
package types

// Answer is the unified shape every retrieval strategy produces for one
// query: a block of text plus deduplicated source and image URLs in
// first-seen order. Content may be empty; Sources and Images are never nil.
type Answer struct {
	Content string   `json:"content" yaml:"content"`
	Sources []string `json:"sources" yaml:"sources"`
	Images  []string `json:"images" yaml:"images"`
}

// NewAnswer returns an Answer with non-nil source and image slices.
func NewAnswer(content string) Answer {
	return Answer{Content: content, Sources: []string{}, Images: []string{}}
}

// QA pairs a planned question with its retrieval answer. Pipeline results
// carry an ordered slice of QA so that document section order follows
// question order explicitly, not map iteration order.
type QA struct {
	Question string `json:"question" yaml:"question"`
	Answer   Answer `json:"answer" yaml:"answer"`
}

// PipelineResult is the aggregate output of one pipeline run. It is
// constructed once per request and not mutated afterwards.
type PipelineResult struct {
	Topic     string `json:"topic" yaml:"topic"`
	Answers   []QA   `json:"answers" yaml:"answers"`
	FinalText string `json:"final_text" yaml:"final_text"`
	Mode      string `json:"mode" yaml:"mode"`
}
