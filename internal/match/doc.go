// Package match implements the score engine for a single table-tennis match.
//
// The engine owns the point counters of the current set, the closed-set
// history, the serve rotation and match-completion detection. Every action
// runs to completion synchronously; queries are pure functions of state and
// are cheap enough to call on every render.
//
// State machine:
//
//	InProgress(set k) --awardPoint--> InProgress(set k)      (CanCloseSet may become true)
//	InProgress(set k) --CloseSet-->   InProgress(set k+1)    (neither side reached the threshold)
//	InProgress(set k) --CloseSet-->   Finished               (a side reached the threshold)
//	Finished          --ResetMatch--> InProgress(set 1)
//
// Finished is terminal for every action except ResetMatch. Actions whose
// precondition does not hold return a *reject.Error and leave state untouched.
package match
