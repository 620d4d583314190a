package cue

import (
	"embed"
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/dotcommander/compfinder/internal/dataset"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Rule source constants
const (
	SourceSchema   = "schema"   // structural schema check
	SourceLoader   = "loader"   // rejected by the dataset loader
	SourceMetadata = "metadata" // tolerated comp metadata problems
)

// Severity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a validation error
type ValidationError struct {
	File     string `json:"file"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
	Source   string `json:"source"`   // schema or metadata
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas compiles the embedded CUE schemas
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return fmt.Errorf("could not read schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("could not compile schema %s: %w", entry.Name(), instErr)
		}

		// dataset.cue -> dataset
		schemaName := entry.Name()[:len(entry.Name())-4]
		v.schemas[schemaName] = inst
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}

	return nil
}

// ValidateDataset checks a JSON comp document against the #Dataset schema
// and confirms the loader accepts it. Structural problems are returned as
// error-severity ValidationErrors; the returned error is reserved for a
// validator that cannot run.
func (v *Validator) ValidateDataset(path string, content []byte) ([]ValidationError, error) {
	schema, ok := v.schemas["dataset"]
	if !ok {
		return nil, fmt.Errorf("dataset schema not loaded")
	}

	// JSON is valid CUE, so the document compiles directly.
	dataValue := v.ctx.CompileBytes(content, cue.Filename(path))
	if err := dataValue.Err(); err != nil {
		return []ValidationError{{
			File:     path,
			Message:  fmt.Sprintf("document is not valid JSON: %v", err),
			Severity: SeverityError,
			Source:   SourceSchema,
		}}, nil
	}

	def := schema.LookupPath(cue.ParsePath("#Dataset"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema has no #Dataset definition")
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return v.extractErrorsFromCUE(path, err), nil
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return v.extractErrorsFromCUE(path, err), nil
	}

	// Keys the pattern admits can still overflow an int, and CUE accepts a
	// few things JSON does not. The loader has the final word.
	if _, err := dataset.Parse(content, path); err != nil {
		return []ValidationError{{
			File:     path,
			Message:  err.Error(),
			Severity: SeverityError,
			Source:   SourceLoader,
		}}, nil
	}

	return nil, nil
}

// extractErrorsFromCUE splits a CUE error into one ValidationError per issue
func (v *Validator) extractErrorsFromCUE(path string, err error) []ValidationError {
	var errs []ValidationError
	for _, e := range cueerrors.Errors(err) {
		ve := ValidationError{
			File:     path,
			Message:  fmt.Sprintf("Schema validation failed: %v", e),
			Severity: SeverityError,
			Source:   SourceSchema,
		}
		if pos := e.Position(); pos.IsValid() {
			ve.Line = pos.Line()
			ve.Column = pos.Column()
		}
		errs = append(errs, ve)
	}
	if len(errs) == 0 {
		errs = append(errs, ValidationError{
			File:     path,
			Message:  fmt.Sprintf("Schema validation failed: %v", err),
			Severity: SeverityError,
			Source:   SourceSchema,
		})
	}
	return errs
}
