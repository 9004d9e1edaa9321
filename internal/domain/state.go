package domain

// Phase represents the lifecycle stage of a game session.
type Phase string

const (
	// PhaseSetup is the initial placement stage (two settlements and
	// two roads per player, free of cost).
	PhaseSetup Phase = "setup"
	// PhasePlay is the active game stage where builds cost resources.
	PhasePlay Phase = "play"
	// PhaseEnded is the state after a session concludes.
	PhaseEnded Phase = "ended"
)

// PlayerID is the canonical player identifier, assigned once when the
// session starts. All actor and victim references use this type.
type PlayerID string

// Terrain is the kind of a board tile.
type Terrain string

const (
	TerrainForest   Terrain = "forest"
	TerrainPasture  Terrain = "pasture"
	TerrainField    Terrain = "field"
	TerrainHill     Terrain = "hill"
	TerrainMountain Terrain = "mountain"
	TerrainDesert   Terrain = "desert"
)

// Produces returns the resource a terrain yields, or false for desert.
func (t Terrain) Produces() (Resource, bool) {
	switch t {
	case TerrainForest:
		return ResourceWood, true
	case TerrainHill:
		return ResourceBrick, true
	case TerrainPasture:
		return ResourceWool, true
	case TerrainField:
		return ResourceGrain, true
	case TerrainMountain:
		return ResourceOre, true
	}
	return "", false
}

// Tile is a single hex on the board. Terrain and Token are fixed after
// generation; only the robber flag changes.
type Tile struct {
	ID        int
	Terrain   Terrain
	Token     int // 0 for the desert
	HasRobber bool
}

// Building is a settlement or city at a board vertex. Adjacency is
// supplied by the client at placement time and trusted as-is.
type Building struct {
	Vertex        string
	AdjacentTiles []int
}

// Road is an owned board edge.
type Road struct {
	Edge string
}

// Player holds the per-participant state inside a session.
type Player struct {
	ID          PlayerID
	Name        string
	Resources   Bundle
	Settlements []Building
	Cities      []Building
	Roads       []Road
	Points      int

	// Setup placement progress, counted so the session knows when
	// every participant finished the two-settlement/two-road sequence.
	SetupSettlements int
	SetupRoads       int
}

// DiscardObligation tracks players who must relinquish half their hand
// after a roll of seven. Required amounts are snapshotted at creation
// and never re-derived.
type DiscardObligation struct {
	Roller   PlayerID
	Required map[PlayerID]int
	Done     map[PlayerID]bool
}

// Outstanding reports whether any obligated player has not discarded yet.
func (o *DiscardObligation) Outstanding() bool {
	for id := range o.Required {
		if !o.Done[id] {
			return true
		}
	}
	return false
}

// Session is one game instance: board, participants and turn state.
// It owns its players for its whole lifetime.
type Session struct {
	ID      string
	Host    PlayerID
	Phase   Phase
	Players map[PlayerID]*Player
	Order   []PlayerID // turn order, fixed at session start
	Current int        // index into Order

	Tiles      []*Tile
	Rows       [][]int // tile ids grouped into the 3,4,5,4,3 layout
	RobberTile int

	Obligation *DiscardObligation

	// RobberPending names the roller entitled to move the robber after
	// a seven; empty when nobody is.
	RobberPending PlayerID
}

// Player looks up a participant by id.
func (s *Session) Player(id PlayerID) (*Player, bool) {
	p, ok := s.Players[id]
	return p, ok
}

// CurrentActor returns the id of the player whose turn it is.
func (s *Session) CurrentActor() PlayerID {
	if len(s.Order) == 0 {
		return ""
	}
	return s.Order[s.Current]
}

// AdvanceTurn moves the current-actor index to the next participant.
func (s *Session) AdvanceTurn() PlayerID {
	if len(s.Order) == 0 {
		return ""
	}
	s.Current = (s.Current + 1) % len(s.Order)
	return s.Order[s.Current]
}

// Tile returns the tile with the given id.
func (s *Session) Tile(id int) (*Tile, bool) {
	for _, t := range s.Tiles {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// SetupComplete reports whether every participant has finished initial
// placement. Ordering within the sequence is client-driven; the session
// only counts placements.
func (s *Session) SetupComplete() bool {
	for _, p := range s.Players {
		if p.SetupSettlements < SetupSettlementCount || p.SetupRoads < SetupRoadCount {
			return false
		}
	}
	return true
}

// RemovePlayer drops a participant from the session and the turn order.
// Pending state owed by or to the leaver is released so the remaining
// players are never blocked on someone who is gone.
func (s *Session) RemovePlayer(id PlayerID) {
	delete(s.Players, id)
	for i, pid := range s.Order {
		if pid != id {
			continue
		}
		s.Order = append(s.Order[:i], s.Order[i+1:]...)
		if i < s.Current {
			s.Current--
		}
		if len(s.Order) == 0 || s.Current >= len(s.Order) {
			s.Current = 0
		}
		break
	}
	if s.Obligation != nil {
		delete(s.Obligation.Required, id)
		delete(s.Obligation.Done, id)
		if !s.Obligation.Outstanding() {
			s.Obligation = nil
		}
	}
	if s.RobberPending == id {
		s.RobberPending = ""
	}
}
