package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/session"
	"github.com/roach88/numtower/internal/store"
	"github.com/roach88/numtower/internal/testutil"
)

// Harness executes one scenario against a fresh journal.
type Harness struct {
	store   *store.Store
	session *session.Session
	logger  *slog.Logger
}

// Run executes a scenario with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, testutil.DiscardLogger())
}

// RunContext executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation. The
// session token is fixed and seqs come from a deterministic clock, so two
// runs of the same scenario produce identical traces and evaluation IDs.
//
// The returned error is reserved for infrastructure failures (journal,
// hashing). Failed expectations and assertions are reported in Result.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	var opts []calc.Option
	if scenario.MaxMagnitude != 0 {
		opts = append(opts, calc.WithMaxMagnitude(scenario.MaxMagnitude))
	}
	if scenario.MaxCost != 0 {
		opts = append(opts, calc.WithMaxCost(scenario.MaxCost))
	}
	evaluator := calc.New(logger, opts...)

	sess := session.New(
		testutil.NewFixedTokenGenerator(scenario.Session),
		evaluator,
		session.WithJournal(st),
		session.WithClock(testutil.NewDeterministicClock()),
		session.WithLogger(logger),
	)

	h := &Harness{store: st, session: sess, logger: logger}
	if err := sess.Register(ctx, scenario.Name); err != nil {
		return nil, err
	}

	result := NewResult()
	result.Session = sess.Token()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass)
	return result, nil
}

// executeSteps evaluates every step and checks its expect clause.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		entry, err := h.session.Eval(ctx, calc.Request{
			Op:       calc.Op(step.Op),
			Operands: step.Operands,
		})
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		event := result.AddTrace(entry)
		if step.Expect != nil {
			for _, msg := range checkExpect(i, step, event) {
				result.AddError(msg)
			}
		}

		h.logger.Debug("step completed",
			"step", i,
			"op", step.Op,
			"id", event.ID,
			"error", event.Error)
	}
	return nil
}

// checkExpect compares one trace event against its expect clause.
func checkExpect(index int, step Step, event TraceEvent) []string {
	var msgs []string
	exp := step.Expect
	where := fmt.Sprintf("steps[%d] %s %v", index, step.Op, step.Operands)

	if exp.Error != "" {
		if event.Error != exp.Error {
			msgs = append(msgs, fmt.Sprintf("%s: expected error %s, got %s", where, exp.Error, describe(event)))
		}
		return msgs
	}
	if event.Error != "" {
		return append(msgs, fmt.Sprintf("%s: expected success, got error %s", where, event.Error))
	}
	if exp.Rendered != "" && event.Rendered != exp.Rendered {
		msgs = append(msgs, fmt.Sprintf("%s: expected %q, got %q", where, exp.Rendered, event.Rendered))
	}
	if exp.Approx != "" && event.Approx != exp.Approx {
		msgs = append(msgs, fmt.Sprintf("%s: expected approx %q, got %q", where, exp.Approx, event.Approx))
	}
	return msgs
}

func describe(event TraceEvent) string {
	if event.Error != "" {
		return "error " + event.Error
	}
	return fmt.Sprintf("value %q", event.Rendered)
}
