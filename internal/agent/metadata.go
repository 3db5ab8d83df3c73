package agent

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/metadata.schema.json
var schemaBytes []byte

// MaxMetadataBytes caps how much of a metadata.json file is read. Anything
// larger fails the metadata rule instead of being slurped into memory.
const MaxMetadataBytes = 1 << 20

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// metadataSchema compiles the embedded JSON schema once and returns it.
func metadataSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("metadata.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("metadata.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Metadata is the decoded content of an agent's metadata.json.
type Metadata struct {
	doc map[string]any
}

// ParseMetadata decodes raw JSON into a Metadata document. The top-level
// value must be a JSON object.
func ParseMetadata(data []byte) (*Metadata, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.New("top-level value must be an object")
	}
	return &Metadata{doc: obj}, nil
}

// Has reports whether the field is present, regardless of its type.
func (m *Metadata) Has(field string) bool {
	_, ok := m.doc[field]
	return ok
}

// Name returns the declared agent name. ok is false when the field is
// absent or not a string.
func (m *Metadata) Name() (string, bool) {
	v, ok := m.doc["name"].(string)
	return v, ok
}

// Version returns the declared version string, if any.
func (m *Metadata) Version() (string, bool) {
	v, ok := m.doc["version"].(string)
	return v, ok
}

// SchemaIssues validates the document against the embedded metadata schema
// and maps each violation to a report message. The error return is for
// schema compilation failures, not validation failures.
func (m *Metadata) SchemaIssues() ([]string, error) {
	schema, err := metadataSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	err = schema.Validate(m.doc)
	if err == nil {
		return nil, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []string
	collectIssues(validationErr, &issues)
	if len(issues) == 0 {
		issues = []string{fmt.Sprintf("metadata.json does not match the required shape: %v", validationErr)}
	}
	return dedupe(issues), nil
}

// collectIssues walks the error tree and appends a message per leaf issue.
// Missing required properties are split into one message each so that every
// absent field is reported individually.
func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return
		}

		if req, ok := ve.ErrorKind.(*kind.Required); ok {
			for _, field := range req.Missing {
				*issues = append(*issues, fmt.Sprintf("metadata.json missing required field: '%s'", field))
			}
			return
		}

		keyword := ""
		if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}

		// Skip generic container errors that aren't informative.
		switch keyword {
		case "oneOf", "allOf", "anyOf", "$ref", "":
			return
		}

		*issues = append(*issues, issueMessage(ve.InstanceLocation, keyword, ve.ErrorKind.LocalizedString(printer)))
		return
	}

	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

// issueMessage translates a schema violation into the wording the report
// uses, falling back to the schema library's localized message.
func issueMessage(loc []string, keyword, localized string) string {
	field := ""
	if len(loc) > 0 {
		field = loc[0]
	}

	switch {
	case field == "name" && keyword == "pattern":
		return "metadata.json 'name' field contains whitespace (should be snake_case)"
	case field == "name" && keyword == "minLength":
		return "metadata.json 'name' field must be a non-empty string"
	case field == "description" && keyword == "minLength":
		return "metadata.json 'description' field must be a non-empty string"
	case field == "tools" && keyword == "type":
		return "metadata.json 'tools' field must be an array"
	case field != "":
		return fmt.Sprintf("metadata.json '%s' field is invalid: %s", field, localized)
	default:
		return fmt.Sprintf("metadata.json is invalid: %s", localized)
	}
}

// dedupe removes duplicate messages while preserving order.
func dedupe(issues []string) []string {
	seen := make(map[string]bool, len(issues))
	var result []string
	for _, issue := range issues {
		if !seen[issue] {
			seen[issue] = true
			result = append(result, issue)
		}
	}
	return result
}
