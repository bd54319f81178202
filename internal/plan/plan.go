// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan expands a research topic into the fixed set of
// sub-questions that drive retrieval. Question order is significant: it
// becomes the document section order downstream.
package plan

import (
	"fmt"
	"strings"
)

// questionTemplates is the fixed template set, in rendering order:
// definition, mechanism, trade-offs, applications, glossary.
var questionTemplates = []string{
	"What is %s?",
	"How does %s work internally?",
	"What are the advantages and disadvantages of %s?",
	"Where is %s commonly applied in industry?",
	"What are important terms/glossary related to %s?",
}

// Plan holds the normalized topic and its ordered sub-questions.
type Plan struct {
	Topic     string   `json:"topic" yaml:"topic"`
	Questions []string `json:"questions" yaml:"questions"`
}

// Expand trims the topic and applies the question templates. An
// empty-after-trim topic yields an empty plan; otherwise the plan holds
// exactly five questions containing the topic verbatim.
func Expand(topic string) Plan {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Plan{}
	}

	questions := make([]string, len(questionTemplates))
	for i, tmpl := range questionTemplates {
		questions[i] = fmt.Sprintf(tmpl, topic)
	}
	return Plan{Topic: topic, Questions: questions}
}
