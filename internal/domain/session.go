package domain

import "math/rand"

// RollDice returns two independent uniform d6 values.
func RollDice(rng *rand.Rand) (int, int) {
	return rng.Intn(6) + 1, rng.Intn(6) + 1
}

// NewSession builds a session in the setup phase with a fresh board.
// Participants keep the given order for the whole session; the first
// entry is the host.
func NewSession(id string, participants []Player, rng *rand.Rand) *Session {
	board := GenerateBoard(rng)
	s := &Session{
		ID:         id,
		Phase:      PhaseSetup,
		Players:    make(map[PlayerID]*Player, len(participants)),
		Order:      make([]PlayerID, 0, len(participants)),
		Tiles:      board.Tiles,
		Rows:       board.Rows,
		RobberTile: board.RobberTile,
	}
	for i := range participants {
		p := participants[i]
		if p.Resources == nil {
			p.Resources = NewBundle()
		}
		s.Players[p.ID] = &p
		s.Order = append(s.Order, p.ID)
	}
	if len(s.Order) > 0 {
		s.Host = s.Order[0]
	}
	return s
}

// ObligatedPlayers lists participants whose hand exceeds the limit,
// in turn order.
func (s *Session) ObligatedPlayers(handLimit int) []PlayerID {
	var out []PlayerID
	for _, id := range s.Order {
		if s.Players[id].Resources.Total() > handLimit {
			out = append(out, id)
		}
	}
	return out
}

// StartDiscardPhase creates or extends the discard obligation for the
// given players. Required amounts are snapshotted from current holdings
// at creation time.
func (s *Session) StartDiscardPhase(roller PlayerID, obligated []PlayerID) *DiscardObligation {
	if s.Obligation == nil {
		s.Obligation = &DiscardObligation{
			Roller:   roller,
			Required: make(map[PlayerID]int),
			Done:     make(map[PlayerID]bool),
		}
	}
	for _, id := range obligated {
		p, ok := s.Players[id]
		if !ok {
			continue
		}
		if _, exists := s.Obligation.Required[id]; exists {
			continue
		}
		s.Obligation.Required[id] = p.Resources.Total() / 2
	}
	return s.Obligation
}

// CompleteDiscard validates and applies one player's discard against
// the active obligation. The obligation clears once every obligated
// player has complied.
func (s *Session) CompleteDiscard(p *Player, discard Bundle) error {
	if s.Obligation == nil {
		return NewRuleError(KindUnauthorizedActor, "no discard obligation is active")
	}
	required, ok := s.Obligation.Required[p.ID]
	if !ok || s.Obligation.Done[p.ID] {
		return NewRuleError(KindUnauthorizedActor, "player %s has no pending discard", p.ID)
	}
	if discard.Negative() {
		return NewRuleError(KindInvalidTarget, "discard counts must be non-negative")
	}
	if discard.Total() != required {
		return NewRuleError(KindWrongDiscardAmount, "must discard %d, got %d", required, discard.Total())
	}
	if err := p.Resources.Deduct(discard); err != nil {
		return err
	}
	s.Obligation.Done[p.ID] = true
	if !s.Obligation.Outstanding() {
		s.Obligation = nil
	}
	return nil
}

// MoveRobber relocates the robber to the target tile and, when a victim
// is named, transfers one uniformly chosen resource unit to the actor.
// A victim with an empty hand yields no transfer and no error.
func (s *Session) MoveRobber(actor *Player, targetTile int, victim PlayerID, rng *rand.Rand) (Resource, bool, error) {
	target, ok := s.Tile(targetTile)
	if !ok {
		return "", false, NewRuleError(KindInvalidTarget, "tile %d does not exist", targetTile)
	}
	if victim == actor.ID {
		return "", false, NewRuleError(KindSelfTargeting, "cannot steal from yourself")
	}
	var victimPlayer *Player
	if victim != "" {
		vp, found := s.Players[victim]
		if !found {
			return "", false, NewRuleError(KindInvalidTarget, "victim %s is not in the session", victim)
		}
		victimPlayer = vp
	}

	if prev, found := s.Tile(s.RobberTile); found {
		prev.HasRobber = false
	}
	target.HasRobber = true
	s.RobberTile = target.ID

	if victimPlayer == nil {
		return "", false, nil
	}
	stolen, drew := victimPlayer.Resources.DrawRandom(rng)
	if !drew {
		return "", false, nil
	}
	actor.Resources[stolen]++
	return stolen, true, nil
}
