// Package harness replays scripted scoring sessions against the match and
// team engines.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: deuce_serve
//	description: "Serve alternates every point after 10:10"
//	kind: match
//	setup:
//	  best_of: 5
//	  competitors:
//	    - {name: Novák, club: Slávia}
//	    - {name: Tóth}
//	steps:
//	  - action: rally
//	    args: {sides: [0, 1, 0, 1]}
//	  - action: close_set
//	    expect: {outcome: rejected, code: SET_NOT_CLOSABLE}
//	assertions:
//	  - type: state
//	    path: competitors.0.score
//	    equals: 2
//	  - type: trace_count
//	    action: close_set
//	    outcome: rejected
//	    count: 1
//
// Team scenarios use kind: team with variant, doubles and an optional CUE
// lineup in the setup.
//
// # Actions
//
// Match: point, rally, play_to, close_set, reset_set, reset_match, toggle_server,
// best_of, competitor, save.
//
// Team: score, doubles, toggle_sub, sub_name, player, meta, configure,
// save, draft.
//
// A step without an expect clause must be applied. Rejections are the
// engines' *reject.Error results; any other error aborts the run.
//
// # Assertion Types
//
//   - trace_contains: Verifies an action appears in the trace with matching args
//   - trace_order: Verifies actions appear in specified order
//   - trace_count: Verifies an action appears exactly N times
//   - state: Verifies the value at a dotted path of the final state view
//
// # Deterministic Testing
//
// Each run uses a fresh in-memory SQLite store, a step clock for archive ids
// and a fixed draft session id, so snapshots are byte-identical across runs
// and can be compared against golden files.
package harness
