package protocol

import (
	"errors"
	"testing"

	"settlers/internal/domain"
)

func TestCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "Resources", err: domain.NewRuleError(domain.KindInsufficientResources, "broke"), want: ErrNoResource},
		{name: "Limit", err: domain.NewRuleError(domain.KindLimitExceeded, "out of pieces"), want: ErrLimitExceeded},
		{name: "Vertex", err: domain.NewRuleError(domain.KindVertexOccupied, "taken"), want: ErrVertexOccupied},
		{name: "NoSettlement", err: domain.NewRuleError(domain.KindNoSettlementAtVertex, "nothing there"), want: ErrNoSettlement},
		{name: "SelfTarget", err: domain.NewRuleError(domain.KindSelfTargeting, "own hand"), want: ErrSelfTarget},
		{name: "Discard", err: domain.NewRuleError(domain.KindWrongDiscardAmount, "owe more"), want: ErrDiscardAmount},
		{name: "NotFound", err: domain.NewRuleError(domain.KindSessionNotFound, "gone"), want: ErrSessionNotFound},
		{name: "Unauthorized", err: domain.NewRuleError(domain.KindUnauthorizedActor, "not your turn"), want: ErrNoPermission},
		{name: "Target", err: domain.NewRuleError(domain.KindInvalidTarget, "no such tile"), want: ErrInvalidTarget},
		{name: "PlainError", err: errors.New("boom"), want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeForError(tt.err); got != tt.want {
				t.Fatalf("code = %s, want %s", got, tt.want)
			}
		})
	}
}
