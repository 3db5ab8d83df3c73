package cli

import (
	"errors"
	"fmt"

	"github.com/agentary-labs/agentlint/internal/agent"
	"github.com/agentary-labs/agentlint/internal/config"
	"github.com/agentary-labs/agentlint/internal/report"
	"github.com/agentary-labs/agentlint/internal/scanner"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// errValidationFailed signals a non-zero exit after the report has already
// been printed. It carries no message of its own.
var errValidationFailed = errors.New("validation failed")

var (
	validateFormat  string
	validateNoColor bool
	validateStrict  bool
)

var noteText = color.New(color.FgBlue)

func init() {
	// The root command doubles as validate, so both carry the same flags.
	for _, cmd := range []*cobra.Command{rootCmd, validateCmd} {
		cmd.Flags().StringVar(&validateFormat, "format", "", "Report format: text or json (default from config)")
		cmd.Flags().BoolVar(&validateNoColor, "no-color", false, "Disable colorized output")
		cmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit non-zero when any warning is emitted")
	}
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [agents-dir]",
	Short: "Validate agent package directories",
	Long: `Scan the agents directory and check every agent package against the
required structure:

  <agent_dir>/
    agent.py           required: implementation, non-empty, syntactically sane
    __init__.py        required: package marker
    metadata.json      required: JSON object with name/description/tools
    README.md          recommended
    config/llm.py      recommended
    prompt/prompt.py   recommended

Exits 0 when every agent passes all required rules, 1 otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	config.Load()

	root := config.Get(config.KeyAgentsDir)
	if len(args) == 1 {
		root = args[0]
	}

	format, err := resolveFormat(validateFormat, config.Get(config.KeyFormat))
	if err != nil {
		return err
	}

	if validateNoColor || !config.GetBool(config.KeyColor) {
		color.NoColor = true
	}

	fsys := afero.NewOsFs()
	out := cmd.OutOrStdout()

	candidates, err := scanner.Scan(fsys, root)
	if err != nil {
		return err
	}

	results := make([]agent.Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, agent.Inspect(fsys, c.Path))
	}
	sum := report.Summarize(results)

	switch format {
	case formatJSON:
		if err := report.RenderJSON(out, report.NewJSONReport(root, results, sum)); err != nil {
			return err
		}
	default:
		if len(candidates) == 0 {
			// Nothing to fail: an empty scan trivially passes.
			fmt.Fprintln(out, warnNotice(fmt.Sprintf("No agent directories found in %s", root)))
			return nil
		}
		fmt.Fprintln(out, noteText.Sprintf("Validating %d agent(s) in %s", len(results), root))
		report.RenderText(out, results, sum)
	}

	if !sum.OK() {
		return errValidationFailed
	}
	if validateStrict && sum.Warned > 0 {
		return errValidationFailed
	}
	return nil
}

// resolveFormat picks the report format: flag beats config.
func resolveFormat(flagValue, configValue string) (string, error) {
	format := configValue
	if flagValue != "" {
		format = flagValue
	}
	if format == "" {
		format = formatText
	}
	if format != formatText && format != formatJSON {
		return "", fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
	}
	return format, nil
}

func warnNotice(msg string) string {
	return color.New(color.FgYellow).Sprint(msg)
}
