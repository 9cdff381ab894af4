package harness

import "github.com/roach88/numtower/internal/session"

// TraceEvent is one evaluated step as it appears in the trace.
type TraceEvent struct {
	ID       string   `json:"id"`
	Seq      int64    `json:"seq"`
	Op       string   `json:"op"`
	Operands []string `json:"operands"`
	Rendered string   `json:"rendered,omitempty"`
	Approx   string   `json:"approx,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Session is the token the steps ran under.
	Session string `json:"session"`

	// Trace contains one event per step, in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends the event for a session entry and returns it.
func (r *Result) AddTrace(e session.Entry) TraceEvent {
	rec := session.Record(r.Session, e)
	operands := rec.Operands
	if operands == nil {
		operands = []string{}
	}
	event := TraceEvent{
		ID:       rec.ID,
		Seq:      rec.Seq,
		Op:       rec.Op,
		Operands: operands,
		Rendered: rec.Rendered,
		Approx:   rec.Approx,
		Error:    rec.ErrorCode,
	}
	r.Trace = append(r.Trace, event)
	return event
}
