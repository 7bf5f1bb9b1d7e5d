package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/ttscore/internal/archive"
	"github.com/roach88/ttscore/internal/reject"
	"github.com/roach88/ttscore/internal/store"
	"github.com/roach88/ttscore/internal/testutil"
)

// SessionID is the draft session id every scenario runs with.
const SessionID = "scenario-session"

// session drives one engine for a scenario.
type session interface {
	// apply runs one step. A *reject.Error means the engine refused the
	// action; any other error aborts the scenario.
	apply(ctx context.Context, step Step) (interface{}, error)

	// view returns the state the scenario asserts on.
	view(ctx context.Context) (interface{}, error)
}

// Harness is the scenario execution engine.
// It runs scenarios with a deterministic clock and session ids.
type Harness struct {
	archive *archive.Archive
	clock   *testutil.StepClock
	logger  *slog.Logger
}

// Option configures Run.
type Option func(*Harness)

// WithLogger sets the logger for step diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory SQLite database, so archive
// and draft steps exercise the real persistence path in isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and archive
// 2. Build the engine from the scenario setup
// 3. Apply steps, recording the trace and checking expectations
// 4. Capture the final state view and evaluate assertions
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	st, err := store.OpenSQLite(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		clock:  testutil.NewStepClock(time.Time{}, time.Second),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.archive = archive.New(st,
		archive.WithClock(h.clock),
		archive.WithSessions(testutil.NewFixedSessionGenerator(SessionID)),
		archive.WithLogger(h.logger),
	)

	var sess session
	switch scenario.Kind {
	case KindMatch:
		sess, err = newMatchSession(scenario.Setup, h.archive)
	case KindTeam:
		sess, err = newTeamSession(scenario.Setup, h.archive)
	default:
		err = fmt.Errorf("unknown scenario kind %q", scenario.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set up scenario: %w", err)
	}

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Steps {
		ev, err := h.executeStep(ctx, sess, int64(i+1), step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
		result.AddTrace(ev)
		if msg := checkExpect(i, step, ev); msg != "" {
			result.AddError(msg)
		}
	}

	view, err := sess.view(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final state: %w", err)
	}
	state, err := toGeneric(view)
	if err != nil {
		return nil, fmt.Errorf("failed to encode final state: %w", err)
	}
	result.State = state

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) executeStep(ctx context.Context, sess session, seq int64, step Step) (TraceEvent, error) {
	ev := TraceEvent{Seq: seq, Action: step.Action, Outcome: OutcomeApplied}
	if len(step.Args) > 0 {
		ev.Args = step.Args
	}

	value, err := sess.apply(ctx, step)
	if err != nil {
		code, ok := reject.CodeOf(err)
		if !ok {
			return TraceEvent{}, err
		}
		ev.Outcome = OutcomeRejected
		ev.Code = string(code)
		h.logger.Debug("step rejected", "seq", seq, "action", step.Action, "code", code)
		return ev, nil
	}
	ev.Value = value
	h.logger.Debug("step applied", "seq", seq, "action", step.Action)
	return ev, nil
}

// checkExpect compares a traced step with its expectation. A step without
// an expect clause must apply.
func checkExpect(index int, step Step, ev TraceEvent) string {
	want := ExpectClause{Outcome: OutcomeApplied}
	if step.Expect != nil {
		want = *step.Expect
	}

	if ev.Outcome != want.Outcome {
		detail := ""
		if ev.Code != "" {
			detail = " (" + ev.Code + ")"
		}
		return fmt.Sprintf("steps[%d] %s: expected %s, got %s%s", index, step.Action, want.Outcome, ev.Outcome, detail)
	}
	if want.Code != "" && want.Code != ev.Code {
		return fmt.Sprintf("steps[%d] %s: expected code %s, got %s", index, step.Action, want.Code, ev.Code)
	}
	if want.Value != nil && !jsonEqual(want.Value, ev.Value) {
		return fmt.Sprintf("steps[%d] %s: expected value %v, got %v", index, step.Action, want.Value, ev.Value)
	}
	return ""
}

// toGeneric converts v to the map form produced by decoding its JSON.
func toGeneric(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
