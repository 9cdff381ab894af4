// Package ir provides the serialized forms of tower values: a sealed JSON
// value tree, canonical JSON encoding, structural encoders for each number
// type, and content-addressed IDs for journal records.
//
// Key constraints:
//   - no float values anywhere; approximations are rendered as text by callers
//   - canonical JSON (RFC 8785) is the only encoding that is hashed
//   - ir imports the numeric packages and nothing else internal
package ir
