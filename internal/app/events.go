package app

import (
	"time"

	"settlers/internal/domain"
)

// EventKind identifies emitted engine events for transport dispatch.
type EventKind string

const (
	EventSessionStarted   EventKind = "session_started"
	EventBoardGenerated   EventKind = "board_generated"
	EventBuildingPlaced   EventKind = "building_placed"
	EventRoadPlaced       EventKind = "road_placed"
	EventPhaseChanged     EventKind = "phase_changed"
	EventDiceRolled       EventKind = "dice_rolled"
	EventDiscardRequired  EventKind = "discard_required"
	EventDiscardCompleted EventKind = "discard_completed"
	EventRobberMoved      EventKind = "robber_moved"
	EventResourcesStolen  EventKind = "resources_stolen"
	EventTradeCompleted   EventKind = "trade_completed"
	EventTurnEnded        EventKind = "turn_ended"
	EventPlayerLeft       EventKind = "player_left"
	EventSessionEnded     EventKind = "session_ended"
)

// PlayerView is the public per-player snapshot attached to every
// mutating event: resources, points and building counts.
type PlayerView struct {
	ID          domain.PlayerID
	Name        string
	Resources   domain.Bundle
	Points      int
	Settlements int
	Cities      int
	Roads       int
}

// Event is an engine event with optional targeted recipients. At and
// View are stamped by the service after the action applies; empty
// Recipients means broadcast to the whole session.
type Event struct {
	Kind       EventKind
	Actor      domain.PlayerID
	ActorName  string
	At         time.Time
	Payload    any
	Recipients []domain.PlayerID
	View       []PlayerView
}

type SessionStartedPayload struct {
	SessionID string
	Host      domain.PlayerID
	Order     []domain.PlayerID
}

type BoardGeneratedPayload struct {
	Tiles      []domain.Tile
	Rows       [][]int
	RobberTile int
}

type BuildingPlacedPayload struct {
	Building string // "settlement" or "city"
	Vertex   string
	Phase    domain.Phase
	// Gained holds setup bonus production, nil outside setup.
	Gained domain.Bundle
}

type RoadPlacedPayload struct {
	Edge  string
	Phase domain.Phase
}

type PhaseChangedPayload struct {
	Phase domain.Phase
}

type DiceRolledPayload struct {
	D1    int
	D2    int
	Total int
	// Production is the per-player credit for this roll, nil on a seven.
	Production map[domain.PlayerID]domain.Bundle
}

type DiscardRequiredPayload struct {
	Roller   domain.PlayerID
	Required map[domain.PlayerID]int
}

type DiscardCompletedPayload struct {
	Player    domain.PlayerID
	Discarded domain.Bundle
	// AllCompleted is true once the obligation cleared and the roller
	// may move the robber.
	AllCompleted bool
}

type RobberMovedPayload struct {
	Tile   int
	Victim domain.PlayerID
}

type ResourcesStolenPayload struct {
	Victim   domain.PlayerID
	Resource domain.Resource
}

type TradeCompletedPayload struct {
	Gave     domain.Bundle
	Received domain.Bundle
}

type TurnEndedPayload struct {
	Next domain.PlayerID
}

type PlayerLeftPayload struct {
	Player domain.PlayerID
}

type SessionEndedPayload struct {
	Reason string
}
