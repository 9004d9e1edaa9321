package domain

// buildingAt finds the building occupying a vertex, if any, along with
// its owner. A vertex holds at most one building across all players.
func (s *Session) buildingAt(vertex string) (*Player, bool) {
	for _, p := range s.Players {
		for _, b := range p.Settlements {
			if b.Vertex == vertex {
				return p, true
			}
		}
		for _, b := range p.Cities {
			if b.Vertex == vertex {
				return p, true
			}
		}
	}
	return nil, false
}

// PlaceSettlement appends a settlement for the player. Structural rules
// only; cost enforcement is the caller's job.
func (s *Session) PlaceSettlement(p *Player, vertex string, adjacentTiles []int, limits Limits) error {
	if _, occupied := s.buildingAt(vertex); occupied {
		return NewRuleError(KindVertexOccupied, "vertex %s already holds a building", vertex)
	}
	if len(p.Settlements) >= limits.MaxSettlements {
		return NewRuleError(KindLimitExceeded, "settlement limit %d reached", limits.MaxSettlements)
	}
	p.Settlements = append(p.Settlements, Building{
		Vertex:        vertex,
		AdjacentTiles: append([]int(nil), adjacentTiles...),
	})
	recomputePoints(p)
	return nil
}

// UpgradeToCity replaces the player's settlement at the vertex with a
// city carrying over its adjacency list. Net building count at the
// vertex stays one.
func (s *Session) UpgradeToCity(p *Player, vertex string, limits Limits) error {
	idx := -1
	for i, b := range p.Settlements {
		if b.Vertex == vertex {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NewRuleError(KindNoSettlementAtVertex, "no settlement owned at vertex %s", vertex)
	}
	if len(p.Cities) >= limits.MaxCities {
		return NewRuleError(KindLimitExceeded, "city limit %d reached", limits.MaxCities)
	}
	settlement := p.Settlements[idx]
	p.Settlements = append(p.Settlements[:idx], p.Settlements[idx+1:]...)
	p.Cities = append(p.Cities, settlement)
	recomputePoints(p)
	return nil
}

// PlaceRoad appends a road for the player.
func (s *Session) PlaceRoad(p *Player, edge string, limits Limits) error {
	if len(p.Roads) >= limits.MaxRoads {
		return NewRuleError(KindLimitExceeded, "road limit %d reached", limits.MaxRoads)
	}
	p.Roads = append(p.Roads, Road{Edge: edge})
	return nil
}

// recomputePoints derives the point total from placed buildings. Called
// after every building mutation.
func recomputePoints(p *Player) {
	p.Points = len(p.Settlements)*PointsPerSettlement + len(p.Cities)*PointsPerCity
}
