package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentary-labs/agentlint/internal/agent"
	"github.com/fatih/color"
)

const rulerWidth = 80

var (
	boldText  = color.New(color.Bold)
	passText  = color.New(color.FgGreen, color.Bold)
	failText  = color.New(color.FgRed, color.Bold)
	errText   = color.New(color.FgRed)
	warnText  = color.New(color.FgYellow)
	greenText = color.New(color.FgGreen)
	redText   = color.New(color.FgRed)
)

// RenderText writes the human-readable report: one block per agent in scan
// order, then the summary. Color is cosmetic; disabling it (color.NoColor)
// changes nothing but the escape codes.
func RenderText(w io.Writer, results []agent.Result, sum Summary) {
	fmt.Fprintf(w, "\n%s\n", boldText.Sprint("Validation Results"))
	fmt.Fprintln(w, strings.Repeat("=", rulerWidth))

	for _, r := range results {
		status := passText.Sprint("[PASS]")
		if !r.Passed() {
			status = failText.Sprint("[FAIL]")
		}
		fmt.Fprintf(w, "\n%s %s\n", status, r.Name)
		fmt.Fprintf(w, "  Path: %s\n", r.Path)

		if len(r.Errors) > 0 {
			fmt.Fprintf(w, "\n  %s\n", errText.Sprint("Errors:"))
			for _, msg := range r.Errors {
				fmt.Fprintf(w, "    ✗ %s\n", msg)
			}
		}

		if len(r.Warnings) > 0 {
			fmt.Fprintf(w, "\n  %s\n", warnText.Sprint("Warnings:"))
			for _, msg := range r.Warnings {
				fmt.Fprintf(w, "    ⚠ %s\n", msg)
			}
		}
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", rulerWidth))
	fmt.Fprintf(w, "%s\n", boldText.Sprint("Summary:"))
	fmt.Fprintf(w, "  Total agents: %d\n", sum.Total)
	fmt.Fprintf(w, "  %s\n", greenText.Sprintf("Passed: %d", sum.Passed))
	if sum.Failed > 0 {
		fmt.Fprintf(w, "  %s\n", redText.Sprintf("Failed: %d", sum.Failed))
	}
}
