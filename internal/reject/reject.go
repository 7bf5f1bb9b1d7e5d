// Package reject defines the rejection error returned by the scoring engines
// when an action's precondition does not hold.
//
// A rejected action leaves engine state untouched. Callers that only care about
// "did it apply" can ignore the error; tests and scripted replays assert on the
// code instead.
package reject

import (
	"errors"
	"fmt"
)

// Code categorizes a rejected action.
type Code string

const (
	// CodeMatchFinished indicates the match is over; only a full reset applies.
	CodeMatchFinished Code = "MATCH_FINISHED"

	// CodeMatchNotFinished indicates an archive save of a match still in play.
	CodeMatchNotFinished Code = "MATCH_NOT_FINISHED"

	// CodeScoreAtZero indicates a point removal on a side that has no points.
	CodeScoreAtZero Code = "SCORE_AT_ZERO"

	// CodeSetNotClosable indicates the current score does not decide the set.
	CodeSetNotClosable Code = "SET_NOT_CLOSABLE"

	// CodeInvalidArgument indicates an out-of-range side, delta, index or count.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeNotConfirmed indicates the caller declined a confirmation prompt.
	CodeNotConfirmed Code = "NOT_CONFIRMED"

	// CodeUnknownMatch indicates a match number outside the current sheet.
	CodeUnknownMatch Code = "UNKNOWN_MATCH"

	// CodeSubstitutionForbidden indicates a substitution on a doubles row or in round 1.
	CodeSubstitutionForbidden Code = "SUBSTITUTION_FORBIDDEN"

	// CodeThresholdReached indicates a shorter match length a side has already won.
	CodeThresholdReached Code = "THRESHOLD_REACHED"
)

// Error is a rejected action.
type Error struct {
	Code    Code
	Op      string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s rejected: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("rejected: %s: %s", e.Code, e.Message)
}

// New creates a rejection for op.
func New(code Code, op, message string) *Error {
	return &Error{Code: code, Op: op, Message: message}
}

// Newf creates a rejection with a formatted message.
func Newf(code Code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a rejection.
// Uses errors.As to handle wrapped errors.
func Is(err error) bool {
	var re *Error
	return errors.As(err, &re)
}

// CodeOf returns the rejection code of err, if any.
func CodeOf(err error) (Code, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Code, true
	}
	return "", false
}

// Has reports whether err is a rejection with the given code.
func Has(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// As returns the rejection in err's chain, if any.
func As(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
