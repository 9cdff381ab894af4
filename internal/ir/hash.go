package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed IDs. The version suffix allows the
// hashed layout to change without colliding with older journals.
const (
	DomainEvaluation = "numtower/evaluation/v1"
	DomainScenario   = "numtower/scenario/v1"
)

// hashWithDomain returns hex(SHA256(domain || 0x00 || data)).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EvaluationID computes the journal key of one evaluation.
// The same session, op, operands and seq always give the same ID.
func EvaluationID(session, op string, operands []string, seq int64) (string, error) {
	obj := Object{
		"session":  String(session),
		"op":       String(op),
		"operands": Strings(operands...),
		"seq":      Int(seq),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("EvaluationID: %w", err)
	}
	return hashWithDomain(DomainEvaluation, canonical), nil
}

// MustEvaluationID is like EvaluationID but panics on error.
func MustEvaluationID(session, op string, operands []string, seq int64) string {
	id, err := EvaluationID(session, op, operands, seq)
	if err != nil {
		panic(err)
	}
	return id
}

// TraceHash fingerprints a scenario trace so two runs can be compared
// without diffing the whole document.
func TraceHash(trace Value) (string, error) {
	canonical, err := MarshalCanonical(trace)
	if err != nil {
		return "", fmt.Errorf("TraceHash: %w", err)
	}
	return hashWithDomain(DomainScenario, canonical), nil
}
