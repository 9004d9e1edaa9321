package app

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"settlers/internal/config"
	"settlers/internal/domain"
)

// Service contains the settlement-game use-cases. Every action resolves
// its session through the store, validates actor and phase
// preconditions, mutates domain state and returns the events to
// broadcast. A failed action leaves all state untouched.
type Service struct {
	rng   *rand.Rand
	rules config.Rules
	store *Store
}

// NewService constructs a Service with the provided rng or a
// time-seeded default.
func NewService(rng *rand.Rand, rules config.Rules) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, rules: rules, store: NewStore()}
}

// Store exposes the session store, mainly for embedders and tests.
func (s *Service) Store() *Store {
	return s.store
}

// Participant names one player joining a new session. An empty ID gets
// a generated identifier; ids are stable for the session's lifetime.
type Participant struct {
	ID   domain.PlayerID
	Name string
}

func (s *Service) limits() domain.Limits {
	return domain.Limits{
		MaxSettlements: s.rules.MaxSettlements,
		MaxCities:      s.rules.MaxCities,
		MaxRoads:       s.rules.MaxRoads,
	}
}

// StartSession creates a session in the setup phase with a generated
// board. The first participant is the host. An empty sessionID gets a
// generated one; the id is returned either way.
func (s *Service) StartSession(sessionID string, participants []Participant) (string, []Event, error) {
	if len(participants) < s.rules.MinPlayers || len(participants) > s.rules.MaxPlayers {
		return "", nil, domain.NewRuleError(domain.KindUnauthorizedActor,
			"need %d-%d players, got %d", s.rules.MinPlayers, s.rules.MaxPlayers, len(participants))
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	players := make([]domain.Player, 0, len(participants))
	for _, part := range participants {
		id := part.ID
		if id == "" {
			id = domain.PlayerID(uuid.NewString())
		}
		players = append(players, domain.Player{ID: id, Name: part.Name})
	}

	sess := domain.NewSession(sessionID, players, s.rng)
	s.store.Put(sess)

	tiles := make([]domain.Tile, 0, len(sess.Tiles))
	for _, t := range sess.Tiles {
		tiles = append(tiles, *t)
	}

	events := s.stamp(sess, sess.Host,
		Event{
			Kind: EventSessionStarted,
			Payload: SessionStartedPayload{
				SessionID: sessionID,
				Host:      sess.Host,
				Order:     append([]domain.PlayerID(nil), sess.Order...),
			},
		},
		Event{
			Kind: EventBoardGenerated,
			Payload: BoardGeneratedPayload{
				Tiles:      tiles,
				Rows:       sess.Rows,
				RobberTile: sess.RobberTile,
			},
		},
	)
	return sessionID, events, nil
}

// PlaceSettlement places a settlement for the acting player. During
// setup the placement is free and the second settlement earns adjacency
// production; during play the settlement cost is deducted first.
func (s *Service) PlaceSettlement(sessionID string, actor domain.PlayerID, vertex string, adjacentTiles []int) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		p, err := requireTurn(sess, actor)
		if err != nil {
			return nil, err
		}

		switch sess.Phase {
		case domain.PhaseSetup:
			if p.SetupSettlements >= domain.SetupSettlementCount {
				return nil, domain.NewRuleError(domain.KindLimitExceeded,
					"setup allows %d settlements", domain.SetupSettlementCount)
			}
		case domain.PhasePlay:
			if !p.Resources.CanAfford(domain.CostSettlement) {
				return nil, domain.NewRuleError(domain.KindInsufficientResources,
					"cannot afford settlement")
			}
		default:
			return nil, domain.NewRuleError(domain.KindUnauthorizedActor, "session has ended")
		}

		if err := sess.PlaceSettlement(p, vertex, adjacentTiles, s.limits()); err != nil {
			return nil, err
		}

		var gained domain.Bundle
		events := make([]Event, 0, 2)
		if sess.Phase == domain.PhaseSetup {
			p.SetupSettlements++
			if p.SetupSettlements == domain.SetupSettlementCount {
				gained = sess.SetupProduction(p, adjacentTiles)
			}
		} else {
			// Checked affordable above; deduct cannot fail here.
			if err := p.Resources.Deduct(domain.CostSettlement); err != nil {
				return nil, err
			}
		}

		events = append(events, Event{
			Kind: EventBuildingPlaced,
			Payload: BuildingPlacedPayload{
				Building: "settlement",
				Vertex:   vertex,
				Phase:    sess.Phase,
				Gained:   gained,
			},
		})
		events = s.maybeFinishSetup(sess, events)
		return s.stamp(sess, actor, events...), nil
	})
}

// UpgradeToCity replaces the actor's settlement at the vertex with a
// city, deducting the city cost. Play phase only.
func (s *Service) UpgradeToCity(sessionID string, actor domain.PlayerID, vertex string) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		p, err := requireTurn(sess, actor)
		if err != nil {
			return nil, err
		}
		if sess.Phase != domain.PhasePlay {
			return nil, domain.NewRuleError(domain.KindUnauthorizedActor,
				"city upgrades are only allowed during play")
		}
		if !p.Resources.CanAfford(domain.CostCity) {
			return nil, domain.NewRuleError(domain.KindInsufficientResources, "cannot afford city")
		}
		if err := sess.UpgradeToCity(p, vertex, s.limits()); err != nil {
			return nil, err
		}
		if err := p.Resources.Deduct(domain.CostCity); err != nil {
			return nil, err
		}
		return s.stamp(sess, actor, Event{
			Kind: EventBuildingPlaced,
			Payload: BuildingPlacedPayload{
				Building: "city",
				Vertex:   vertex,
				Phase:    sess.Phase,
			},
		}), nil
	})
}

// PlaceRoad places a road for the acting player. Free during setup,
// costs during play.
func (s *Service) PlaceRoad(sessionID string, actor domain.PlayerID, edge string) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		p, err := requireTurn(sess, actor)
		if err != nil {
			return nil, err
		}

		switch sess.Phase {
		case domain.PhaseSetup:
			if p.SetupRoads >= domain.SetupRoadCount {
				return nil, domain.NewRuleError(domain.KindLimitExceeded,
					"setup allows %d roads", domain.SetupRoadCount)
			}
		case domain.PhasePlay:
			if !p.Resources.CanAfford(domain.CostRoad) {
				return nil, domain.NewRuleError(domain.KindInsufficientResources, "cannot afford road")
			}
		default:
			return nil, domain.NewRuleError(domain.KindUnauthorizedActor, "session has ended")
		}

		if err := sess.PlaceRoad(p, edge, s.limits()); err != nil {
			return nil, err
		}

		events := make([]Event, 0, 2)
		if sess.Phase == domain.PhaseSetup {
			p.SetupRoads++
		} else {
			if err := p.Resources.Deduct(domain.CostRoad); err != nil {
				return nil, err
			}
		}

		events = append(events, Event{
			Kind:    EventRoadPlaced,
			Payload: RoadPlacedPayload{Edge: edge, Phase: sess.Phase},
		})
		events = s.maybeFinishSetup(sess, events)
		return s.stamp(sess, actor, events...), nil
	})
}

// RollDice rolls two dice for the acting player. A seven creates a
// discard obligation for over-limit hands and entitles the roller to
// move the robber; any other total distributes production.
func (s *Service) RollDice(sessionID string, actor domain.PlayerID) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		_, err := requireTurn(sess, actor)
		if err != nil {
			return nil, err
		}
		if sess.Phase != domain.PhasePlay {
			return nil, domain.NewRuleError(domain.KindUnauthorizedActor,
				"dice are only rolled during play")
		}

		d1, d2 := domain.RollDice(s.rng)
		total := d1 + d2

		if total == 7 {
			sess.RobberPending = actor
			events := []Event{{
				Kind:    EventDiceRolled,
				Payload: DiceRolledPayload{D1: d1, D2: d2, Total: total},
			}}
			if obligated := sess.ObligatedPlayers(s.rules.HandLimit); len(obligated) > 0 {
				obligation := sess.StartDiscardPhase(actor, obligated)
				required := make(map[domain.PlayerID]int, len(obligation.Required))
				for id, n := range obligation.Required {
					required[id] = n
				}
				events = append(events, Event{
					Kind:    EventDiscardRequired,
					Payload: DiscardRequiredPayload{Roller: actor, Required: required},
				})
			}
			return s.stamp(sess, actor, events...), nil
		}

		production := sess.Distribute(total)
		return s.stamp(sess, actor, Event{
			Kind:    EventDiceRolled,
			Payload: DiceRolledPayload{D1: d1, D2: d2, Total: total, Production: production},
		}), nil
	})
}

// StartDiscardPhase creates a discard obligation for the named players.
// The roll-of-seven path calls this internally; it is exposed for
// embedders that drive the discard flow directly.
func (s *Service) StartDiscardPhase(sessionID string, roller domain.PlayerID, obligated []domain.PlayerID) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		if _, err := requireActor(sess, roller); err != nil {
			return nil, err
		}
		for _, id := range obligated {
			if _, ok := sess.Player(id); !ok {
				return nil, domain.NewRuleError(domain.KindInvalidTarget,
					"player %s is not in the session", id)
			}
		}
		obligation := sess.StartDiscardPhase(roller, obligated)
		required := make(map[domain.PlayerID]int, len(obligation.Required))
		for id, n := range obligation.Required {
			required[id] = n
		}
		return s.stamp(sess, roller, Event{
			Kind:    EventDiscardRequired,
			Payload: DiscardRequiredPayload{Roller: roller, Required: required},
		}), nil
	})
}

// CompleteDiscard applies one obligated player's discard. Unlike most
// actions it does not require the turn: every obligated player
// discards on the roller's turn.
func (s *Service) CompleteDiscard(sessionID string, actor domain.PlayerID, discard domain.Bundle) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		p, err := requireActor(sess, actor)
		if err != nil {
			return nil, err
		}
		if err := sess.CompleteDiscard(p, discard); err != nil {
			return nil, err
		}
		return s.stamp(sess, actor, Event{
			Kind: EventDiscardCompleted,
			Payload: DiscardCompletedPayload{
				Player:       actor,
				Discarded:    discard.Clone(),
				AllCompleted: sess.Obligation == nil,
			},
		}), nil
	})
}

// MoveRobber relocates the robber for the entitled roller and
// optionally steals one random resource unit from the named victim.
func (s *Service) MoveRobber(sessionID string, actor domain.PlayerID, targetTile int, victim domain.PlayerID) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		p, err := requireActor(sess, actor)
		if err != nil {
			return nil, err
		}
		if sess.RobberPending != actor {
			return nil, domain.NewRuleError(domain.KindUnauthorizedActor,
				"player %s is not entitled to move the robber", actor)
		}
		if sess.Obligation != nil {
			return nil, domain.NewRuleError(domain.KindUnauthorizedActor,
				"discards are still outstanding")
		}

		stolen, stole, err := sess.MoveRobber(p, targetTile, victim, s.rng)
		if err != nil {
			return nil, err
		}
		sess.RobberPending = ""

		events := []Event{{
			Kind:    EventRobberMoved,
			Payload: RobberMovedPayload{Tile: targetTile, Victim: victim},
		}}
		if stole {
			// The stolen kind is private to the thief and the victim.
			events = append(events, Event{
				Kind:       EventResourcesStolen,
				Payload:    ResourcesStolenPayload{Victim: victim, Resource: stolen},
				Recipients: []domain.PlayerID{actor, victim},
			})
		}
		return s.stamp(sess, actor, events...), nil
	})
}

// BankTrade converts resources at the fixed bank ratio: the giving
// bundle must total ratio units per received unit. All-or-nothing.
func (s *Service) BankTrade(sessionID string, actor domain.PlayerID, give, receive domain.Bundle) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		p, err := requireTurn(sess, actor)
		if err != nil {
			return nil, err
		}
		if sess.Phase != domain.PhasePlay {
			return nil, domain.NewRuleError(domain.KindUnauthorizedActor,
				"bank trades are only allowed during play")
		}
		if give.Negative() || receive.Negative() {
			return nil, domain.NewRuleError(domain.KindInvalidTarget,
				"resource counts must be non-negative")
		}
		if receive.Total() == 0 {
			return nil, domain.NewRuleError(domain.KindInvalidTarget, "nothing to receive")
		}
		if give.Total() != receive.Total()*s.rules.BankTradeRatio {
			return nil, domain.NewRuleError(domain.KindInvalidTarget,
				"bank trades %d for 1: giving %d for %d", s.rules.BankTradeRatio, give.Total(), receive.Total())
		}
		if err := p.Resources.Deduct(give); err != nil {
			return nil, err
		}
		p.Resources.Add(receive)
		return s.stamp(sess, actor, Event{
			Kind:    EventTradeCompleted,
			Payload: TradeCompletedPayload{Gave: give.Clone(), Received: receive.Clone()},
		}), nil
	})
}

// EndTurn advances the current-actor index. Unused robber entitlement
// lapses with the turn.
func (s *Service) EndTurn(sessionID string, actor domain.PlayerID) ([]Event, error) {
	return s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		if _, err := requireTurn(sess, actor); err != nil {
			return nil, err
		}
		if sess.RobberPending == actor {
			sess.RobberPending = ""
		}
		next := sess.AdvanceTurn()
		return s.stamp(sess, actor, Event{
			Kind:    EventTurnEnded,
			Payload: TurnEndedPayload{Next: next},
		}), nil
	})
}

// LeaveSession removes a participant. The session is destroyed when the
// host leaves or nobody remains; the returned flag reports destruction.
func (s *Service) LeaveSession(sessionID string, actor domain.PlayerID) ([]Event, bool, error) {
	destroyed := false
	events, err := s.store.Do(sessionID, func(sess *domain.Session) ([]Event, error) {
		if _, err := requireActor(sess, actor); err != nil {
			return nil, err
		}
		hostLeft := actor == sess.Host
		sess.RemovePlayer(actor)

		events := []Event{{
			Kind:    EventPlayerLeft,
			Payload: PlayerLeftPayload{Player: actor},
		}}
		if hostLeft || len(sess.Players) == 0 {
			destroyed = true
			sess.Phase = domain.PhaseEnded
			reason := "host left"
			if len(sess.Players) == 0 {
				reason = "all players left"
			}
			events = append(events, Event{
				Kind:    EventSessionEnded,
				Payload: SessionEndedPayload{Reason: reason},
			})
		} else {
			// The leaver may have been the last participant holding up
			// initial placement.
			events = s.maybeFinishSetup(sess, events)
		}
		return s.stamp(sess, actor, events...), nil
	})
	if err != nil {
		return nil, false, err
	}
	if destroyed {
		s.store.Delete(sessionID)
	}
	return events, destroyed, nil
}

// maybeFinishSetup flips the session into play once every participant
// completed initial placement.
func (s *Service) maybeFinishSetup(sess *domain.Session, events []Event) []Event {
	if sess.Phase != domain.PhaseSetup || !sess.SetupComplete() {
		return events
	}
	sess.Phase = domain.PhasePlay
	return append(events, Event{
		Kind:    EventPhaseChanged,
		Payload: PhaseChangedPayload{Phase: sess.Phase},
	})
}

// stamp fills actor, timestamp and the full session view on each event.
func (s *Service) stamp(sess *domain.Session, actor domain.PlayerID, events ...Event) []Event {
	now := time.Now().UTC()
	view := sessionView(sess)
	name := ""
	if p, ok := sess.Player(actor); ok {
		name = p.Name
	}
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		ev.Actor = actor
		ev.ActorName = name
		ev.At = now
		ev.View = view
		out = append(out, ev)
	}
	return out
}

// sessionView snapshots every player's resources and points in turn
// order.
func sessionView(sess *domain.Session) []PlayerView {
	views := make([]PlayerView, 0, len(sess.Order))
	for _, id := range sess.Order {
		p := sess.Players[id]
		views = append(views, PlayerView{
			ID:          p.ID,
			Name:        p.Name,
			Resources:   p.Resources.Clone(),
			Points:      p.Points,
			Settlements: len(p.Settlements),
			Cities:      len(p.Cities),
			Roads:       len(p.Roads),
		})
	}
	return views
}

// requireActor resolves the actor as a session participant.
func requireActor(sess *domain.Session, actor domain.PlayerID) (*domain.Player, error) {
	p, ok := sess.Player(actor)
	if !ok {
		return nil, domain.NewRuleError(domain.KindUnauthorizedActor,
			"player %s is not in the session", actor)
	}
	return p, nil
}

// requireTurn resolves the actor and checks it is their turn.
func requireTurn(sess *domain.Session, actor domain.PlayerID) (*domain.Player, error) {
	p, err := requireActor(sess, actor)
	if err != nil {
		return nil, err
	}
	if sess.CurrentActor() != actor {
		return nil, domain.NewRuleError(domain.KindUnauthorizedActor,
			"it is not %s's turn", actor)
	}
	return p, nil
}
