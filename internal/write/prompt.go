// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package write

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/deepresearch/pkg/types"
)

// documentPromptTmpl instructs the backend to produce the fixed
// twelve-section research document, grounded in the retrieved answers.
var documentPromptTmpl = template.Must(template.New("document").Parse(`You are an expert AI research writer.

Write a complete research document on:
**{{.Topic}}**

Use the following retrieved information:
{{range .Answers}}
### {{.Question}}
{{if .Answer.Content}}{{.Answer.Content}}{{else}}(no content retrieved){{end}}
{{if .Answer.Sources}}Sources: {{range .Answer.Sources}}{{.}} {{end}}{{end}}
{{end}}
Follow this structure exactly:

1. Definition
2. Explanation (Detailed)
3. Types (Detailed)
4. Key Features
5. Pros
6. Cons
7. Applications / Use Cases
8. Architecture / Flow Diagram (ASCII)
9. Examples
10. Glossary
11. References
12. Final Summary
`))

// documentPrompt renders the full-document prompt with the topic and
// retrieved answers as grounding context.
func documentPrompt(topic string, answers []types.QA) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Topic   string
		Answers []types.QA
	}{Topic: topic, Answers: answers}
	if err := documentPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// factualPrompt asks for a short direct answer with no document structure.
func factualPrompt(topic string) string {
	return fmt.Sprintf("Answer concisely in 1-2 sentences:\n\nQuestion: %s", topic)
}

// polishPrompt asks the secondary backend to improve an existing draft.
func polishPrompt(text string) string {
	return "Improve clarity, structure, and readability of this research document:\n\n" + text
}
