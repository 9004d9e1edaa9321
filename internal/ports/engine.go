package ports

import (
	"settlers/internal/app"
	"settlers/internal/domain"
)

// Engine is the action surface the transport adapter drives. It is
// implemented by *app.Service; adapters depend on this interface so
// tests can substitute the engine.
type Engine interface {
	StartSession(sessionID string, participants []app.Participant) (string, []app.Event, error)
	PlaceSettlement(sessionID string, actor domain.PlayerID, vertex string, adjacentTiles []int) ([]app.Event, error)
	UpgradeToCity(sessionID string, actor domain.PlayerID, vertex string) ([]app.Event, error)
	PlaceRoad(sessionID string, actor domain.PlayerID, edge string) ([]app.Event, error)
	RollDice(sessionID string, actor domain.PlayerID) ([]app.Event, error)
	MoveRobber(sessionID string, actor domain.PlayerID, targetTile int, victim domain.PlayerID) ([]app.Event, error)
	BankTrade(sessionID string, actor domain.PlayerID, give, receive domain.Bundle) ([]app.Event, error)
	StartDiscardPhase(sessionID string, roller domain.PlayerID, obligated []domain.PlayerID) ([]app.Event, error)
	CompleteDiscard(sessionID string, actor domain.PlayerID, discard domain.Bundle) ([]app.Event, error)
	EndTurn(sessionID string, actor domain.PlayerID) ([]app.Event, error)
	LeaveSession(sessionID string, actor domain.PlayerID) ([]app.Event, bool, error)
}
