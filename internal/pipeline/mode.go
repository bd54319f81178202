// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "github.com/pdiddy/deepresearch/internal/research"

// Mode names a pipeline configuration. The set is fixed; unrecognized
// modes produce an explicit unsupported result rather than an error.
type Mode string

const (
	ModeNormal       Mode = "normal"
	ModeDeepResearch Mode = "deep research"
	ModeFastSummary  Mode = "fast summary"
	ModeAcademic     Mode = "academic"
	ModeCode         Mode = "code"
	ModeWebSearch    Mode = "web search"
	ModePapers       Mode = "research papers"
	ModeHybrid       Mode = "hybrid search"
)

// ModeSpec is the complete configuration a mode selects: whether the
// planner runs, which retrieval strategy answers questions, how the
// writer shapes the result, and the output budget.
type ModeSpec struct {
	// UsesPlanner runs the full plan → search → write sequence. Modes
	// without it call one strategy directly and render its answer.
	UsesPlanner bool

	// Strategy answers each planned question (planner modes) or the query
	// itself (direct modes).
	Strategy research.Strategy

	// ForceFullDoc always applies the twelve-section document template,
	// bypassing the simple-question heuristic.
	ForceFullDoc bool

	// AllowPolish permits the secondary-backend clarity pass when the
	// caller requests it.
	AllowPolish bool

	// TruncateAt caps the final text length in runes; 0 means unlimited.
	TruncateAt int
}

// modeSpecs is the exhaustive mode table.
var modeSpecs = map[Mode]ModeSpec{
	ModeNormal:       {UsesPlanner: true, Strategy: research.StrategyWeb, AllowPolish: true},
	ModeDeepResearch: {UsesPlanner: true, Strategy: research.StrategyHybrid, ForceFullDoc: true, AllowPolish: true},
	ModeFastSummary:  {Strategy: research.StrategyWeb, TruncateAt: 1200},
	ModeAcademic:     {Strategy: research.StrategyAcademic},
	ModeCode:         {Strategy: research.StrategyModel},
	ModeWebSearch:    {Strategy: research.StrategyWeb},
	ModePapers:       {Strategy: research.StrategyPapers},
	ModeHybrid:       {Strategy: research.StrategyHybrid},
}

// allModes lists every mode in help-text order.
var allModes = []Mode{
	ModeNormal, ModeDeepResearch, ModeFastSummary, ModeAcademic,
	ModeCode, ModeWebSearch, ModePapers, ModeHybrid,
}

// ParseMode resolves a mode name to its spec, reporting whether it is known.
func ParseMode(name string) (Mode, ModeSpec, bool) {
	m := Mode(name)
	spec, ok := modeSpecs[m]
	return m, spec, ok
}

// Modes returns the fixed mode set in display order.
func Modes() []Mode {
	out := make([]Mode, len(allModes))
	copy(out, allModes)
	return out
}
