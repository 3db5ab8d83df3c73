package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/agentary-labs/agentlint/internal/agent"
	"github.com/agentary-labs/agentlint/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var newOutputDir string

func init() {
	newCmd.Flags().StringVar(&newOutputDir, "output-dir", "", "Parent directory for the new agent (default: the configured agents dir)")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new agent package",
	Long: `Create a new agent directory with the required files (agent.py,
__init__.py, metadata.json) plus the recommended README, config, and prompt
files. The generated skeleton passes validation as-is.

Examples:
  agentlint new good_agent
  agentlint new good_agent --output-dir ./agents`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !agent.ValidIdentifier(name) {
		return fmt.Errorf("invalid agent name %q: use only alphanumeric characters and underscores, not starting with a digit", name)
	}

	config.Load()
	parent := config.Get(config.KeyAgentsDir)
	if newOutputDir != "" {
		parent = newOutputDir
	}
	dir := filepath.Join(parent, name)

	fsys := afero.NewOsFs()
	files, err := scaffoldAgent(fsys, dir, name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created agent %s at %s\n", name, dir)
	for _, f := range files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Edit agent.py to add your agent logic")
	fmt.Fprintln(out, "  2. Fill in metadata.json (description, tools, tags)")
	fmt.Fprintf(out, "  3. Check it with 'agentlint validate %s'\n", parent)
	return nil
}

// scaffoldMetadata is the metadata.json skeleton written for new agents.
type scaffoldMetadata struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	Tools       []string `json:"tools"`
}

// scaffoldAgent writes the agent skeleton under dir and returns the created
// file paths, relative to dir. It refuses to touch a non-empty directory.
func scaffoldAgent(fsys afero.Fs, dir, name string) ([]string, error) {
	if exists, _ := afero.DirExists(fsys, dir); exists {
		entries, err := afero.ReadDir(fsys, dir)
		if err == nil && len(entries) > 0 {
			return nil, fmt.Errorf("directory %s is not empty; remove existing files first", dir)
		}
	}

	meta := scaffoldMetadata{
		Name:        name,
		DisplayName: name,
		Description: fmt.Sprintf("The %s agent.", name),
		Version:     "0.1.0",
		Author:      "",
		Tags:        []string{},
		Tools:       []string{},
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling metadata: %w", err)
	}

	files := []struct {
		path    string
		content string
	}{
		{agent.ImplFile, fmt.Sprintf("\"\"\"%s agent implementation.\"\"\"\n\n\ndef run(task):\n    raise NotImplementedError(\"implement %s\")\n", name, name)},
		{agent.MarkerFile, "from . import agent\n"},
		{agent.MetadataFile, string(metaJSON) + "\n"},
		{agent.ReadmeFile, fmt.Sprintf("# %s\n\n%s\n", name, meta.Description)},
		{agent.LLMConfigFile, fmt.Sprintf("\"\"\"LLM configuration for %s.\"\"\"\n\nMODEL = \"gpt-4o\"\nTEMPERATURE = 0.2\n", name)},
		{agent.PromptFile, fmt.Sprintf("\"\"\"Prompt templates for %s.\"\"\"\n\nSYSTEM_PROMPT = \"You are the %s agent.\"\n", name, name)},
	}

	var created []string
	for _, f := range files {
		full := filepath.Join(dir, f.path)
		if err := fsys.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", f.path, err)
		}
		if err := afero.WriteFile(fsys, full, []byte(f.content), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.path, err)
		}
		created = append(created, f.path)
	}
	return created, nil
}
