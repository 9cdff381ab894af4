package harness

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed scenario.cue
var schemaSource string

// SchemaError is a scenario file violating the CUE schema.
type SchemaError struct {
	Message string
	Pos     token.Pos // position in the scenario file, if known
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// ValidateFile checks a scenario file against the embedded schema.
// Returns nil if the file conforms.
func ValidateFile(path string) []error {
	data, err := os.ReadFile(path)
	if err != nil {
		return []error{&SchemaError{Message: fmt.Sprintf("failed to read scenario file: %v", err)}}
	}
	return Validate(path, data)
}

// Validate checks scenario YAML against the embedded schema. filename is
// used only for error positions.
//
// The schema is stricter than LoadScenario: it also requires snake_case names
// and known error codes.
func Validate(filename string, data []byte) []error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("scenario.cue"))
	if err := schema.Err(); err != nil {
		return convertCUEErrors(err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return convertCUEErrors(err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return convertCUEErrors(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return convertCUEErrors(err)
	}
	return nil
}

// convertCUEErrors flattens a CUE error list, keeping the first position of
// each entry.
func convertCUEErrors(err error) []error {
	list := errors.Errors(err)
	if len(list) == 0 {
		return []error{&SchemaError{Message: err.Error()}}
	}

	out := make([]error, 0, len(list))
	for _, e := range list {
		se := &SchemaError{Message: e.Error()}
		if positions := errors.Positions(e); len(positions) > 0 {
			se.Pos = positions[0]
		}
		out = append(out, se)
	}
	return out
}
