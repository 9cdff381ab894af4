// Package store provides the SQLite-backed evaluation journal.
//
// Every evaluation run through a session can be appended here: the operation,
// its operands, the rendered result and its structural tree, or the error code
// when the evaluation failed. The journal is append-only.
//
// # Ordering
//
// Records are ordered by the session's logical seq, never by timestamps.
// All queries use ORDER BY seq ASC, id ASC COLLATE BINARY so listings are
// identical across runs.
//
// # Identity
//
// Record IDs come from ir.EvaluationID: SHA-256 over canonical JSON with a
// domain prefix. Writing the same evaluation twice is a no-op.
package store
