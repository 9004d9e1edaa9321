package domain

import "math/rand"

// Board is the generated tile layout for one session.
type Board struct {
	Tiles      []*Tile
	Rows       [][]int // tile ids in the 3,4,5,4,3 arrangement
	RobberTile int     // desert tile id at generation time
}

// terrainPool is the fixed terrain multiset for the 19-tile board.
var terrainPool = []Terrain{
	TerrainForest, TerrainForest, TerrainForest, TerrainForest,
	TerrainPasture, TerrainPasture, TerrainPasture, TerrainPasture,
	TerrainField, TerrainField, TerrainField, TerrainField,
	TerrainHill, TerrainHill, TerrainHill,
	TerrainMountain, TerrainMountain, TerrainMountain,
	TerrainDesert,
}

// tokenPool is the fixed number-token multiset for non-desert tiles.
var tokenPool = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// rowSizes groups the 19 tiles into the hexagonal layout.
var rowSizes = []int{3, 4, 5, 4, 3}

// GenerateBoard produces a randomized board: terrain and tokens are
// independent uniform permutations of their fixed multisets, the
// desert receives no token and starts holding the robber.
func GenerateBoard(rng *rand.Rand) *Board {
	terrains := make([]Terrain, len(terrainPool))
	copy(terrains, terrainPool)
	rng.Shuffle(len(terrains), func(i, j int) { terrains[i], terrains[j] = terrains[j], terrains[i] })

	tokens := make([]int, len(tokenPool))
	copy(tokens, tokenPool)
	rng.Shuffle(len(tokens), func(i, j int) { tokens[i], tokens[j] = tokens[j], tokens[i] })

	board := &Board{Tiles: make([]*Tile, 0, len(terrains))}
	tokenIdx := 0
	for i, terrain := range terrains {
		tile := &Tile{ID: i, Terrain: terrain}
		if terrain == TerrainDesert {
			tile.HasRobber = true
			board.RobberTile = tile.ID
		} else {
			tile.Token = tokens[tokenIdx]
			tokenIdx++
		}
		board.Tiles = append(board.Tiles, tile)
	}

	board.Rows = make([][]int, 0, len(rowSizes))
	next := 0
	for _, size := range rowSizes {
		row := make([]int, 0, size)
		for j := 0; j < size; j++ {
			row = append(row, board.Tiles[next].ID)
			next++
		}
		board.Rows = append(board.Rows, row)
	}

	return board
}
