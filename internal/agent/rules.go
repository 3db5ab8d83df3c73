package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
)

// Files every agent directory is expected to contain.
const (
	ImplFile     = "agent.py"
	MarkerFile   = "__init__.py"
	MetadataFile = "metadata.json"
	ReadmeFile   = "README.md"
)

// Recommended sub-files at fixed relative paths.
var (
	LLMConfigFile = filepath.Join("config", "llm.py")
	PromptFile    = filepath.Join("prompt", "prompt.py")
)

// Severity classifies a rule as fatal or advisory.
type Severity int

const (
	// SeverityError fails the agent when the rule fails.
	SeverityError Severity = iota
	// SeverityWarning records the failure without affecting pass/fail.
	SeverityWarning
)

// CheckFunc evaluates one rule against an inspection context. An empty
// return means the rule passed.
type CheckFunc func(c *Context) []string

// Rule is one structural check against an agent directory.
type Rule struct {
	ID       string
	Severity Severity
	Check    CheckFunc
}

// Context carries everything a rule may inspect. Rules only read through
// Fs; they never write.
type Context struct {
	Fs   afero.Fs
	Name string // directory name, the agent's declared identity
	Dir  string // path to the agent directory

	// Meta is the parsed metadata document, nil when metadata.json is
	// missing, oversized, or unparsable. MetaErr holds the failure message
	// in that case. Rules that depend on metadata fields must treat a nil
	// Meta as "skip" so a single parse failure doesn't cascade.
	Meta    *Metadata
	MetaErr string
}

func (c *Context) join(elem ...string) string {
	return filepath.Join(append([]string{c.Dir}, elem...)...)
}

// RequiredRules is the ordered table of checks whose failure fails the
// agent. Evaluation and output follow table order.
var RequiredRules = []Rule{
	{ID: "impl-exists", Severity: SeverityError, Check: checkImplExists},
	{ID: "impl-syntax", Severity: SeverityError, Check: checkImplSyntax},
	{ID: "pkg-marker", Severity: SeverityError, Check: checkMarkerExists},
	{ID: "metadata-valid", Severity: SeverityError, Check: checkMetadataValid},
	{ID: "metadata-shape", Severity: SeverityError, Check: checkMetadataShape},
	{ID: "name-match", Severity: SeverityError, Check: checkNameMatch},
	{ID: "dir-identifier", Severity: SeverityError, Check: checkDirIdentifier},
}

// RecommendedRules is the ordered table of advisory checks. Failures are
// surfaced as warnings and never affect pass/fail.
var RecommendedRules = []Rule{
	{ID: "readme", Severity: SeverityWarning, Check: checkReadme},
	{ID: "llm-config", Severity: SeverityWarning, Check: checkLLMConfig},
	{ID: "prompt-module", Severity: SeverityWarning, Check: checkPromptModule},
	{ID: "metadata-recommended", Severity: SeverityWarning, Check: checkMetadataRecommended},
	{ID: "marker-imports-impl", Severity: SeverityWarning, Check: checkMarkerImportsImpl},
	{ID: "version-semver", Severity: SeverityWarning, Check: checkVersionSemver},
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s is a valid agent identifier: only
// alphanumeric characters and underscores, not starting with a digit.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

func checkImplExists(c *Context) []string {
	info, err := c.Fs.Stat(c.join(ImplFile))
	if os.IsNotExist(err) {
		return []string{ImplFile + " is missing"}
	}
	if err != nil {
		return []string{fmt.Sprintf("%s is unreadable: %v", ImplFile, err)}
	}
	if info.Size() == 0 {
		return []string{ImplFile + " is empty"}
	}
	return nil
}

func checkImplSyntax(c *Context) []string {
	data, err := afero.ReadFile(c.Fs, c.join(ImplFile))
	if err != nil || len(data) == 0 {
		// Missing, unreadable, or empty is impl-exists territory.
		return nil
	}
	if err := CheckPythonSource(data); err != nil {
		return []string{fmt.Sprintf("%s has syntax errors: %v", ImplFile, err)}
	}
	return nil
}

func checkMarkerExists(c *Context) []string {
	_, err := c.Fs.Stat(c.join(MarkerFile))
	if os.IsNotExist(err) {
		return []string{MarkerFile + " is missing"}
	}
	if err != nil {
		return []string{fmt.Sprintf("%s is unreadable: %v", MarkerFile, err)}
	}
	return nil
}

func checkMetadataValid(c *Context) []string {
	if c.MetaErr != "" {
		return []string{c.MetaErr}
	}
	return nil
}

func checkMetadataShape(c *Context) []string {
	if c.Meta == nil {
		return nil
	}
	issues, err := c.Meta.SchemaIssues()
	if err != nil {
		return []string{fmt.Sprintf("%s could not be validated: %v", MetadataFile, err)}
	}
	return issues
}

func checkNameMatch(c *Context) []string {
	if c.Meta == nil {
		return nil
	}
	name, ok := c.Meta.Name()
	if !ok {
		// Absent or mistyped name is reported by the shape rule.
		return nil
	}
	if name != c.Name {
		return []string{fmt.Sprintf("metadata.json 'name' field ('%s') does not match directory name ('%s')", name, c.Name)}
	}
	return nil
}

func checkDirIdentifier(c *Context) []string {
	if !ValidIdentifier(c.Name) {
		return []string{fmt.Sprintf("directory name '%s' is not a valid identifier (use only alphanumeric characters and underscores)", c.Name)}
	}
	return nil
}

func checkReadme(c *Context) []string {
	if exists, _ := afero.Exists(c.Fs, c.join(ReadmeFile)); !exists {
		return []string{ReadmeFile + " is missing (highly recommended)"}
	}
	return nil
}

func checkLLMConfig(c *Context) []string {
	if exists, _ := afero.Exists(c.Fs, c.join(LLMConfigFile)); !exists {
		return []string{"config/llm.py is missing (recommended)"}
	}
	return nil
}

func checkPromptModule(c *Context) []string {
	if exists, _ := afero.Exists(c.Fs, c.join(PromptFile)); !exists {
		return []string{"prompt/prompt.py is missing (recommended)"}
	}
	return nil
}

var recommendedFields = []string{"displayName", "author", "tags"}

func checkMetadataRecommended(c *Context) []string {
	if c.Meta == nil {
		return nil
	}
	var out []string
	for _, field := range recommendedFields {
		if !c.Meta.Has(field) {
			out = append(out, fmt.Sprintf("metadata.json missing recommended field: '%s'", field))
		}
	}
	return out
}

func checkMarkerImportsImpl(c *Context) []string {
	data, err := afero.ReadFile(c.Fs, c.join(MarkerFile))
	if err != nil {
		// Missing marker is already a required-rule error.
		return nil
	}
	content := string(data)
	if !strings.Contains(content, "from . import agent") && !strings.Contains(content, "from .agent import") {
		return []string{MarkerFile + " does not import the agent module (recommended)"}
	}
	return nil
}

func checkVersionSemver(c *Context) []string {
	if c.Meta == nil {
		return nil
	}
	version, ok := c.Meta.Version()
	if !ok {
		return nil
	}
	if _, err := semver.NewVersion(version); err != nil {
		return []string{fmt.Sprintf("metadata.json 'version' ('%s') is not valid semver", version)}
	}
	return nil
}
