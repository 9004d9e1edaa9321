package domain

// Distribute credits production for a dice total: one unit per adjacent
// settlement, two per adjacent city, for every matching tile that is
// neither the desert nor robber-blocked. Returns the per-player gains
// that were credited. Pure batch credit; never fails.
func (s *Session) Distribute(diceTotal int) map[PlayerID]Bundle {
	gains := make(map[PlayerID]Bundle)

	credit := func(p *Player, tileID int, units int) {
		tile, ok := s.Tile(tileID)
		if !ok || tile.HasRobber || tile.Token != diceTotal {
			return
		}
		resource, produces := tile.Terrain.Produces()
		if !produces {
			return
		}
		if gains[p.ID] == nil {
			gains[p.ID] = NewBundle()
		}
		gains[p.ID][resource] += units
		p.Resources[resource] += units
	}

	for _, id := range s.Order {
		p := s.Players[id]
		for _, b := range p.Settlements {
			for _, tileID := range b.AdjacentTiles {
				credit(p, tileID, 1)
			}
		}
		for _, b := range p.Cities {
			for _, tileID := range b.AdjacentTiles {
				credit(p, tileID, 2)
			}
		}
	}

	return gains
}

// SetupProduction credits one unit per producing tile adjacent to a
// newly placed settlement. Used for the bonus on the second setup
// settlement.
func (s *Session) SetupProduction(p *Player, adjacentTiles []int) Bundle {
	gained := NewBundle()
	for _, tileID := range adjacentTiles {
		tile, ok := s.Tile(tileID)
		if !ok {
			continue
		}
		resource, produces := tile.Terrain.Produces()
		if !produces {
			continue
		}
		gained[resource]++
		p.Resources[resource]++
	}
	return gained
}
