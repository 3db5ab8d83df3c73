package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/agentary-labs/agentlint/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [agents-dir]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` checks each subdirectory of an agents directory against the
required package layout (agent.py, __init__.py, metadata.json) and reports
pass/fail status per agent, exiting non-zero when any agent fails a required
rule. Intended as a pull-request gate in CI.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	// Bare invocation validates; `agentlint validate` is the explicit form.
	RunE: runValidate,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
