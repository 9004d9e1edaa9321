package protocol

import "settlers/internal/domain"

// Wire error codes sent to the initiating client on a rejected action.
const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Rule/action layer.
	ErrNoResource       = "E_NO_RESOURCE"
	ErrLimitExceeded    = "E_LIMIT_EXCEEDED"
	ErrVertexOccupied   = "E_VERTEX_OCCUPIED"
	ErrNoSettlement     = "E_NO_SETTLEMENT"
	ErrSelfTarget       = "E_SELF_TARGET"
	ErrDiscardAmount    = "E_DISCARD_AMOUNT"
	ErrSessionNotFound  = "E_SESSION_NOT_FOUND"
	ErrNoPermission     = "E_NO_PERMISSION"
	ErrInvalidTarget    = "E_INVALID_TARGET"
	ErrInternal         = "E_INTERNAL"
)

var kindCodes = map[domain.ErrorKind]string{
	domain.KindInsufficientResources: ErrNoResource,
	domain.KindLimitExceeded:         ErrLimitExceeded,
	domain.KindVertexOccupied:        ErrVertexOccupied,
	domain.KindNoSettlementAtVertex:  ErrNoSettlement,
	domain.KindSelfTargeting:         ErrSelfTarget,
	domain.KindWrongDiscardAmount:    ErrDiscardAmount,
	domain.KindSessionNotFound:       ErrSessionNotFound,
	domain.KindUnauthorizedActor:     ErrNoPermission,
	domain.KindInvalidTarget:         ErrInvalidTarget,
}

// CodeForError maps an engine error to its wire code.
func CodeForError(err error) string {
	if kind, ok := domain.KindOf(err); ok {
		if code, ok := kindCodes[kind]; ok {
			return code
		}
	}
	return ErrInternal
}
