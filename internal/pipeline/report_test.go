// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/deepresearch/pkg/types"
)

func TestReportRoundTrip(t *testing.T) {
	res := types.PipelineResult{
		Topic: "quantum computing",
		Mode:  string(ModeNormal),
		Answers: []types.QA{
			{
				Question: "What is quantum computing?",
				Answer: types.Answer{
					Content: "Computation with qubits.",
					Sources: []string{"https://example.com/a", "https://example.com/b"},
					Images:  []string{},
				},
			},
			{
				Question: "How does quantum computing work internally?",
				Answer: types.Answer{
					Content: "Superposition and entanglement.",
					Sources: []string{"https://example.com/c"},
					Images:  []string{},
				},
			},
		},
		FinalText: "A research document.",
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := WriteReport(path, res); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	rep, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}

	if rep.Topic != res.Topic {
		t.Errorf("topic = %q", rep.Topic)
	}
	if rep.Mode != res.Mode {
		t.Errorf("mode = %q", rep.Mode)
	}
	if rep.FinalText != res.FinalText {
		t.Errorf("final text = %q", rep.FinalText)
	}
	if len(rep.Answers) != 2 {
		t.Fatalf("answers = %d", len(rep.Answers))
	}
	if rep.Answers[1].Answer.Content != "Superposition and entanglement." {
		t.Errorf("answer content = %q", rep.Answers[1].Answer.Content)
	}
	if rep.Summary.Questions != 2 {
		t.Errorf("summary questions = %d", rep.Summary.Questions)
	}
	if rep.Summary.Sources != 3 {
		t.Errorf("summary sources = %d", rep.Summary.Sources)
	}
	if rep.Summary.Timestamp.IsZero() {
		t.Error("summary timestamp is zero")
	}
}

func TestReadReportMissingFile(t *testing.T) {
	if _, err := ReadReport(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
