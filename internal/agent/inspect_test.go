package agent

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const validImpl = "def run(task):\n    return task\n"

func validMetadata(name string) string {
	return `{"name":"` + name + `","description":"x","tools":[]}`
}

// writeAgent lays out an agent directory on the in-memory filesystem.
func writeAgent(t *testing.T, fsys afero.Fs, dir string, files map[string]string) {
	t.Helper()
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
}

func completeAgent(name string) map[string]string {
	return map[string]string{
		ImplFile:      validImpl,
		MarkerFile:    "from . import agent\n",
		MetadataFile:  validMetadata(name),
		ReadmeFile:    "# " + name + "\n",
		LLMConfigFile: "MODEL = \"gpt-4o\"\n",
		PromptFile:    "PROMPT = \"hi\"\n",
	}
}

func TestInspectMinimalValidAgent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "agents/good_agent"
	writeAgent(t, fsys, dir, map[string]string{
		ImplFile:     validImpl,
		MarkerFile:   "",
		MetadataFile: validMetadata("good_agent"),
	})

	result := Inspect(fsys, dir)

	if !result.Passed() {
		t.Fatalf("expected pass, got errors: %v", result.Errors)
	}
	if result.Name != "good_agent" || result.Path != dir {
		t.Errorf("Name/Path = %q/%q", result.Name, result.Path)
	}
	// Only recommended items are absent, so only warnings fire.
	if len(result.Warnings) == 0 {
		t.Error("expected warnings for missing recommended files/fields")
	}
}

func TestInspectFullyEquippedAgentHasNoWarnings(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "agents/good_agent"
	files := completeAgent("good_agent")
	files[MetadataFile] = `{"name":"good_agent","displayName":"Good Agent","description":"x","tools":[],"author":"me","tags":["demo"],"version":"1.0.0"}`
	writeAgent(t, fsys, dir, files)

	result := Inspect(fsys, dir)

	if !result.Passed() {
		t.Fatalf("expected pass, got errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestInspectMissingSingleRequiredFile(t *testing.T) {
	tests := []struct {
		name    string
		omit    string
		wantErr string
	}{
		{"missing implementation", ImplFile, "agent.py is missing"},
		{"missing marker", MarkerFile, "__init__.py is missing"},
		{"missing metadata", MetadataFile, "metadata.json is missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			dir := "agents/good_agent"
			files := completeAgent("good_agent")
			delete(files, tt.omit)
			writeAgent(t, fsys, dir, files)

			result := Inspect(fsys, dir)

			if len(result.Errors) != 1 {
				t.Fatalf("expected exactly 1 error, got %v", result.Errors)
			}
			if result.Errors[0] != tt.wantErr {
				t.Errorf("error = %q, want %q", result.Errors[0], tt.wantErr)
			}
			if result.Passed() {
				t.Error("Passed() = true with errors present")
			}
		})
	}
}

func TestInspectEmptyImplementationIsDistinctError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "agents/good_agent"
	files := completeAgent("good_agent")
	files[ImplFile] = ""
	writeAgent(t, fsys, dir, files)

	result := Inspect(fsys, dir)

	if len(result.Errors) != 1 || result.Errors[0] != "agent.py is empty" {
		t.Errorf("errors = %v, want exactly [agent.py is empty]", result.Errors)
	}
}

func TestInspectImplementationSyntax(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "agents/good_agent"
	files := completeAgent("good_agent")
	files[ImplFile] = "def run(task:\n    return task\n"
	writeAgent(t, fsys, dir, files)

	result := Inspect(fsys, dir)

	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "agent.py has syntax errors") {
		t.Errorf("error = %q, want syntax error", result.Errors[0])
	}
}

func TestInspectUnparsableMetadataSkipsFieldRules(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "agents/good_agent"
	files := completeAgent("good_agent")
	files[MetadataFile] = `{"name": "good_agent",`
	writeAgent(t, fsys, dir, files)

	result := Inspect(fsys, dir)

	// One parse error, no cascading field errors.
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "metadata.json is not valid JSON") {
		t.Errorf("error = %q, want JSON parse error", result.Errors[0])
	}
	// Metadata-dependent warnings are skipped too.
	for _, w := range result.Warnings {
		if strings.Contains(w, "recommended field") {
			t.Errorf("unexpected metadata-field warning %q after parse failure", w)
		}
	}
}

func TestInspectMetadataFailureKeepsIndependentChecks(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "agents/good_agent"
	writeAgent(t, fsys, dir, map[string]string{
		MetadataFile: "not json",
	})

	result := Inspect(fsys, dir)

	joined := strings.Join(result.Errors, "\n")
	// File-existence rules run even though metadata is unparsable.
	for _, want := range []string{"agent.py is missing", "__init__.py is missing", "metadata.json is not valid JSON"} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors %v missing %q", result.Errors, want)
		}
	}
}

func TestInspectNameMismatch(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "agents/good_agent"
	files := completeAgent("good_agent")
	files[MetadataFile] = validMetadata("other_agent")
	writeAgent(t, fsys, dir, files)

	result := Inspect(fsys, dir)

	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
	want := "metadata.json 'name' field ('other_agent') does not match directory name ('good_agent')"
	if result.Errors[0] != want {
		t.Errorf("error = %q, want %q", result.Errors[0], want)
	}
}

func TestInspectDirectoryWithSpaceFiresBothNameErrors(t *testing.T) {
	// A directory called "bad agent" whose metadata name matches it exactly:
	// the identifier error and the whitespace error fire independently, and
	// no mismatch error appears.
	fsys := afero.NewMemMapFs()
	dir := "agents/bad agent"
	files := completeAgent("bad agent")
	files[MetadataFile] = validMetadata("bad agent")
	writeAgent(t, fsys, dir, files)

	result := Inspect(fsys, dir)

	if len(result.Errors) != 2 {
		t.Fatalf("expected exactly 2 errors, got %v", result.Errors)
	}
	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "'name' field contains whitespace") {
		t.Errorf("errors %v missing whitespace error", result.Errors)
	}
	if !strings.Contains(joined, "not a valid identifier") {
		t.Errorf("errors %v missing identifier error", result.Errors)
	}
	if strings.Contains(joined, "does not match") {
		t.Errorf("unexpected mismatch error in %v", result.Errors)
	}
}

func TestInspectBrokenAgentScenario(t *testing.T) {
	// Missing agent.py and metadata.json without description: exactly two
	// errors, one per problem.
	fsys := afero.NewMemMapFs()
	dir := "agents/broken_agent"
	writeAgent(t, fsys, dir, map[string]string{
		MarkerFile:   "from . import agent\n",
		MetadataFile: `{"name":"broken_agent","tools":[]}`,
	})

	result := Inspect(fsys, dir)

	if len(result.Errors) != 2 {
		t.Fatalf("expected exactly 2 errors, got %v", result.Errors)
	}
	if result.Errors[0] != "agent.py is missing" {
		t.Errorf("first error = %q, want missing agent.py", result.Errors[0])
	}
	if result.Errors[1] != "metadata.json missing required field: 'description'" {
		t.Errorf("second error = %q, want missing description", result.Errors[1])
	}
}

func TestInspectIsIdempotent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "agents/some_agent"
	writeAgent(t, fsys, dir, map[string]string{
		ImplFile:     "def run(:\n",
		MetadataFile: `{"name":"wrong name","tools":"x"}`,
	})

	first := Inspect(fsys, dir)
	second := Inspect(fsys, dir)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between runs:\n%+v\n%+v", first, second)
	}
}
