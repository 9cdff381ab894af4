package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/numtower/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v => %s\n", event.Seq, event.Op, event.Operands, describe(event))
		}
	}
	return buf.String()
}

// assertTraceContains checks if the trace contains a step matching the
// assertion's op, and its operands and rendered value when those are set.
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if matchEvent(event, a) {
			return nil
		}
	}

	expected := "op " + a.Op
	if a.Operands != nil {
		expected += fmt.Sprintf(" with operands %v", a.Operands)
	}
	if a.Rendered != "" {
		expected += fmt.Sprintf(" rendering %q", a.Rendered)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

func matchEvent(event TraceEvent, a Assertion) bool {
	if event.Op != a.Op {
		return false
	}
	if a.Operands != nil && !slices.Equal(event.Operands, a.Operands) {
		return false
	}
	if a.Rendered != "" && event.Rendered != a.Rendered {
		return false
	}
	return true
}

// assertTraceOrder checks that the first occurrence of each op follows the
// first occurrence of the previous one. Intervening steps are allowed.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if _, seen := positions[event.Op]; !seen {
			positions[event.Op] = i + 1 // 1-indexed for readability
		}
	}

	for _, op := range a.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", a.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Ops); i++ {
		prev, curr := a.Ops[i-1], a.Ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", a.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks that op appears exactly Count times.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op == a.Op {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, a.Op),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertJournalFailures checks the number of failures recorded in the
// journal, optionally restricted to one error code.
func assertJournalFailures(ctx context.Context, st *store.Store, a Assertion) error {
	failures, err := st.ReadFailures(ctx, a.Code)
	if err != nil {
		return &AssertionError{
			Type:     AssertJournalFailures,
			Expected: "readable journal",
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}

	if len(failures) != a.Count {
		what := "failures"
		if a.Code != "" {
			what = a.Code + " failures"
		}
		return &AssertionError{
			Type:     AssertJournalFailures,
			Expected: fmt.Sprintf("%d %s in journal", a.Count, what),
			Actual:   fmt.Sprintf("%d recorded", len(failures)),
		}
	}
	return nil
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides journal access for journal_failures.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertJournalFailures:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: journal_failures requires database context", i)
			} else {
				err = assertJournalFailures(actx.Ctx, actx.Store, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
