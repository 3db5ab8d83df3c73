package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/agentary-labs/agentlint/internal/agent"
	"github.com/google/uuid"
)

// JSONReport is the machine-readable form of a validation run. The run id
// lets CI pipelines correlate the report with other artifacts of the same
// job.
type JSONReport struct {
	RunID       string      `json:"run_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Root        string      `json:"root"`
	Agents      []JSONAgent `json:"agents"`
	Summary     Summary     `json:"summary"`
}

// JSONAgent is one agent's outcome in the JSON report.
type JSONAgent struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Passed   bool     `json:"passed"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewJSONReport builds the report document from the ordered results.
func NewJSONReport(root string, results []agent.Result, sum Summary) JSONReport {
	rep := JSONReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Root:        root,
		Agents:      make([]JSONAgent, 0, len(results)),
		Summary:     sum,
	}
	for _, r := range results {
		rep.Agents = append(rep.Agents, JSONAgent{
			Name:     r.Name,
			Path:     r.Path,
			Passed:   r.Passed(),
			Errors:   emptyIfNil(r.Errors),
			Warnings: emptyIfNil(r.Warnings),
		})
	}
	return rep
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, rep JSONReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

// emptyIfNil keeps message lists as [] rather than null in the output.
func emptyIfNil(msgs []string) []string {
	if msgs == nil {
		return []string{}
	}
	return msgs
}
