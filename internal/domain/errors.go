package domain

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a rule violation category reported back to the
// initiating actor. Kinds are stable identifiers; the wire layer maps
// them to protocol error codes.
type ErrorKind string

const (
	KindInsufficientResources ErrorKind = "insufficient_resources"
	KindLimitExceeded         ErrorKind = "limit_exceeded"
	KindVertexOccupied        ErrorKind = "vertex_occupied"
	KindNoSettlementAtVertex  ErrorKind = "no_settlement_at_vertex"
	KindSelfTargeting         ErrorKind = "self_targeting"
	KindWrongDiscardAmount    ErrorKind = "wrong_discard_amount"
	KindSessionNotFound       ErrorKind = "session_not_found"
	KindUnauthorizedActor     ErrorKind = "unauthorized_actor"
	KindInvalidTarget         ErrorKind = "invalid_target"
)

// RuleError is a validation failure. It rejects a single action and
// never damages session state.
type RuleError struct {
	Kind   ErrorKind
	Reason string
}

func (e *RuleError) Error() string {
	return string(e.Kind) + ": " + e.Reason
}

// NewRuleError builds a RuleError with a formatted reason.
func NewRuleError(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from an error chain, if any.
func KindOf(err error) (ErrorKind, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return "", false
}
