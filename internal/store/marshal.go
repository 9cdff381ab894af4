package store

import (
	"fmt"

	"github.com/roach88/numtower/internal/ir"
)

// Evaluation is one journal record.
type Evaluation struct {
	ID       string
	Session  string
	Seq      int64
	Op       string
	Operands []string

	// Rendered, Structure and Approx are empty when ErrorCode is set.
	Rendered  string
	Structure ir.Object
	Approx    string

	ErrorCode    string
	ErrorMessage string
}

// Failed reports whether the evaluation ended in an error.
func (e Evaluation) Failed() bool { return e.ErrorCode != "" }

// marshalOperands converts operands to canonical JSON TEXT.
func marshalOperands(operands []string) (string, error) {
	data, err := ir.MarshalCanonical(ir.Strings(operands...))
	if err != nil {
		return "", fmt.Errorf("marshal operands: %w", err)
	}
	return string(data), nil
}

// marshalStructure converts a structural tree to canonical JSON TEXT.
// A nil tree is stored as the empty string.
func marshalStructure(structure ir.Object) (string, error) {
	if structure == nil {
		return "", nil
	}
	data, err := ir.MarshalCanonical(structure)
	if err != nil {
		return "", fmt.Errorf("marshal structure: %w", err)
	}
	return string(data), nil
}

func unmarshalOperands(data string) ([]string, error) {
	operands, err := ir.UnmarshalStrings([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal operands: %w", err)
	}
	return operands, nil
}

func unmarshalStructure(data string) (ir.Object, error) {
	if data == "" {
		return nil, nil
	}
	v, err := ir.UnmarshalValue([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal structure: %w", err)
	}
	obj, ok := v.(ir.Object)
	if !ok {
		return nil, fmt.Errorf("unmarshal structure: expected object, got %T", v)
	}
	return obj, nil
}
