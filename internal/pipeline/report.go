// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deepresearch/pkg/types"
)

// Report is the on-disk representation of one completed research run. A
// saved report can be reloaded later without re-running retrieval or
// generation.
type Report struct {
	Topic     string        `yaml:"topic"`
	Mode      string        `yaml:"mode"`
	Answers   []types.QA    `yaml:"answers,omitempty"`
	FinalText string        `yaml:"final_text"`
	Summary   ReportSummary `yaml:"summary"`
}

// ReportSummary stores run statistics and a timestamp.
type ReportSummary struct {
	Questions int       `yaml:"questions"`
	Sources   int       `yaml:"sources"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteReport saves a pipeline result to a YAML file.
func WriteReport(path string, res types.PipelineResult) error {
	sources := 0
	for _, qa := range res.Answers {
		sources += len(qa.Answer.Sources)
	}

	rep := Report{
		Topic:     res.Topic,
		Mode:      res.Mode,
		Answers:   res.Answers,
		FinalText: res.FinalText,
		Summary: ReportSummary{
			Questions: len(res.Answers),
			Sources:   sources,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a previously saved report from disk.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &rep, nil
}
