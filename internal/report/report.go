// Package report aggregates per-agent validation results and renders them
// as colorized text or as a JSON document for CI consumption.
package report

import "github.com/agentary-labs/agentlint/internal/agent"

// Summary aggregates pass/fail counts across one validation run.
// Total is always Passed + Failed; a zero-agent run is a passing run.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Warned int `json:"warned"`
}

// OK reports whether the run as a whole succeeded.
func (s Summary) OK() bool { return s.Failed == 0 }

// Summarize computes the aggregate over per-agent results. Pure function,
// no I/O.
func Summarize(results []agent.Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
		if len(r.Warnings) > 0 {
			s.Warned++
		}
	}
	return s
}
