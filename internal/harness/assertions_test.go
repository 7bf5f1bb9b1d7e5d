package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Action: "point", Args: map[string]interface{}{"side": 0}, Outcome: OutcomeApplied},
		{Seq: 2, Action: "close_set", Outcome: OutcomeRejected, Code: "SET_NOT_CLOSABLE"},
		{Seq: 3, Action: "point", Args: map[string]interface{}{"side": 1}, Outcome: OutcomeApplied},
		{Seq: 4, Action: "save", Outcome: OutcomeRejected, Code: "MATCH_NOT_FINISHED"},
	}
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceContains(trace, Assertion{Action: "point", Args: map[string]interface{}{"side": 1}}))
	assert.NoError(t, assertTraceContains(trace, Assertion{Action: "save", Outcome: OutcomeRejected}))

	err := assertTraceContains(trace, Assertion{Action: "point", Args: map[string]interface{}{"side": 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in trace")
	assert.Contains(t, err.Error(), "[2] close_set <nil> -> rejected SET_NOT_CLOSABLE")

	assert.Error(t, assertTraceContains(trace, Assertion{Action: "save", Outcome: OutcomeApplied}))
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Actions: []string{"point", "close_set", "save"}}))

	err := assertTraceOrder(trace, Assertion{Actions: []string{"save", "point"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save (pos 4) should be before point (pos 1)")

	err = assertTraceOrder(trace, Assertion{Actions: []string{"point", "reset_match"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing action: reset_match")
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Action: "point", Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Action: "close_set", Outcome: OutcomeApplied, Count: 0}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Action: "close_set", Outcome: OutcomeRejected, Count: 1}))

	err := assertTraceCount(trace, Assertion{Action: "point", Count: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 occurrences")
}

func TestLookupPath(t *testing.T) {
	state := map[string]interface{}{
		"competitors": []interface{}{
			map[string]interface{}{"name": "Novák", "score": float64(3)},
		},
		"finished": false,
	}

	v, err := lookupPath(state, "competitors.0.name")
	require.NoError(t, err)
	assert.Equal(t, "Novák", v)

	v, err = lookupPath(state, "finished")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	_, err = lookupPath(state, "competitors.1.name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `index "1" out of range at "competitors" (len 1)`)

	_, err = lookupPath(state, "competitors.0.club")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no field "club" at "competitors.0"`)

	_, err = lookupPath(state, "finished.x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot descend into bool")
}

func TestAssertState(t *testing.T) {
	state := map[string]interface{}{
		"history": []interface{}{
			map[string]interface{}{"p1Points": float64(11), "p2Points": float64(9)},
		},
	}

	assert.NoError(t, assertState(state, Assertion{
		Path:   "history",
		Equals: []interface{}{map[string]interface{}{"p1Points": 11, "p2Points": 9}},
	}))
	assert.NoError(t, assertState(state, Assertion{Path: "history.0.p1Points", Equals: 11}))

	err := assertState(state, Assertion{Path: "history.0.p2Points", Equals: 11})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history.0.p2Points = 9")

	err = assertState(state, Assertion{Path: "missing", Equals: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no field "missing"`)
}

func TestJSONEqual(t *testing.T) {
	assert.True(t, jsonEqual(3, float64(3)))
	assert.True(t, jsonEqual(int64(1740823200000), float64(1740823200000)))
	assert.True(t, jsonEqual([]interface{}{}, []interface{}{}))
	assert.False(t, jsonEqual([]interface{}{}, nil))
	assert.False(t, jsonEqual("1:0", "0:1"))
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	for _, ev := range sampleTrace() {
		result.AddTrace(ev)
	}
	result.State["finished"] = false

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Action: "point", Count: 2},
		{Type: AssertState, Path: "finished", Equals: true},
		{Type: "bogus"},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "finished = false")
	assert.Contains(t, errs[1], `unknown assertion type "bogus"`)
}

func TestSnapshotJSON_TrailingNewline(t *testing.T) {
	result := NewResult()
	result.AddTrace(TraceEvent{Seq: 1, Action: "close_set", Outcome: OutcomeRejected, Code: "SET_NOT_CLOSABLE"})

	data, err := SnapshotJSON("s", result)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])
	assert.Contains(t, string(data), `"code": "SET_NOT_CLOSABLE"`)
	assert.NotContains(t, string(data), `"value"`)
}
