package agent

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Result is the outcome of inspecting a single agent directory. Errors and
// warnings keep rule-table order; the value is not modified once Inspect
// returns.
type Result struct {
	Name     string
	Path     string
	Errors   []string
	Warnings []string
}

// Passed reports whether the agent satisfied every required rule.
func (r Result) Passed() bool { return len(r.Errors) == 0 }

// Inspect runs every rule against the agent directory at dir. It never
// returns an error: read and parse failures are converted into messages on
// the result so a single bad agent can't abort the run.
func Inspect(fsys afero.Fs, dir string) Result {
	ctx := &Context{
		Fs:   fsys,
		Name: filepath.Base(dir),
		Dir:  dir,
	}
	loadMetadata(ctx)

	result := Result{Name: ctx.Name, Path: dir}
	for _, rule := range RequiredRules {
		result.Errors = append(result.Errors, rule.Check(ctx)...)
	}
	for _, rule := range RecommendedRules {
		result.Warnings = append(result.Warnings, rule.Check(ctx)...)
	}
	return result
}

// loadMetadata reads and parses metadata.json once per inspection. On any
// failure it records a single message and leaves Meta nil, which makes the
// metadata-field rules skip instead of emitting cascading errors.
func loadMetadata(c *Context) {
	path := c.join(MetadataFile)

	info, err := c.Fs.Stat(path)
	if os.IsNotExist(err) {
		c.MetaErr = MetadataFile + " is missing"
		return
	}
	if err != nil {
		c.MetaErr = fmt.Sprintf("%s is unreadable: %v", MetadataFile, err)
		return
	}
	if info.Size() > MaxMetadataBytes {
		c.MetaErr = fmt.Sprintf("%s is too large (%d bytes, limit %d)", MetadataFile, info.Size(), MaxMetadataBytes)
		return
	}

	data, err := afero.ReadFile(c.Fs, path)
	if err != nil {
		c.MetaErr = fmt.Sprintf("%s is unreadable: %v", MetadataFile, err)
		return
	}

	meta, err := ParseMetadata(data)
	if err != nil {
		c.MetaErr = fmt.Sprintf("%s is not valid JSON: %v", MetadataFile, err)
		return
	}
	c.Meta = meta
}
