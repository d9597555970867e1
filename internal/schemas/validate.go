// Package schemas validates JSON documents against the embedded schemas.
package schemas

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/portfolio-generator/schemas"
)

// Names of the embedded schemas.
const (
	Extraction      = schemafiles.Extraction
	WebsiteAnalysis = schemafiles.WebsiteAnalysis
	Portfolio       = schemafiles.Portfolio
)

// FieldError is one violation. Field is a dotted path, "(root)" for the
// document itself.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError lists every violation of a document, ordered by field.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d violation(s):", ve.Schema, len(ve.Errors))
	for _, fe := range ve.Errors {
		fmt.Fprintf(&sb, "\n  - %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

// Fields returns the distinct offending field paths.
func (ve *ValidationError) Fields() []string {
	var out []string
	for i, fe := range ve.Errors {
		if i == 0 || ve.Errors[i-1].Field != fe.Field {
			out = append(out, fe.Field)
		}
	}
	return out
}

// SchemaLoadError means a schema is missing or does not compile.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

type compiledSchema struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

var (
	registryMu sync.Mutex
	registry   = map[string]*compiledSchema{}
)

func schemaFor(name string) (*gojsonschema.Schema, error) {
	registryMu.Lock()
	c, ok := registry[name]
	if !ok {
		c = &compiledSchema{}
		registry[name] = c
	}
	registryMu.Unlock()

	c.once.Do(func() {
		data, err := fs.ReadFile(schemafiles.FS, name)
		if err != nil {
			c.err = &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
			return
		}
		c.schema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			c.err = &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
		}
	})
	return c.schema, c.err
}

// Validate checks a JSON document against the named embedded schema.
// A document that is not valid JSON is reported as an error, not a ValidationError.
func Validate(name string, document []byte) error {
	schema, err := schemaFor(name)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: name}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{
			Field:   field,
			Rule:    desc.Type(),
			Message: desc.Description(),
		})
	}
	sort.SliceStable(verr.Errors, func(i, j int) bool {
		return verr.Errors[i].Field < verr.Errors[j].Field
	})
	return verr
}

// ValidateFile validates a JSON file on disk against the named embedded schema.
func ValidateFile(name, jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("JSON file not found: %s", jsonPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return Validate(name, data)
}
