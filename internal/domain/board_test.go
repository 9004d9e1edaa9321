package domain

import (
	"math/rand"
	"testing"
)

func TestGenerateBoardComposition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	board := GenerateBoard(rng)

	if len(board.Tiles) != 19 {
		t.Fatalf("tile count = %d, want 19", len(board.Tiles))
	}

	terrainCounts := make(map[Terrain]int)
	tokenCounts := make(map[int]int)
	robberTiles := 0
	for _, tile := range board.Tiles {
		terrainCounts[tile.Terrain]++
		if tile.Terrain == TerrainDesert {
			if tile.Token != 0 {
				t.Errorf("desert tile %d has token %d", tile.ID, tile.Token)
			}
		} else {
			tokenCounts[tile.Token]++
		}
		if tile.HasRobber {
			robberTiles++
			if tile.Terrain != TerrainDesert {
				t.Errorf("robber starts on %s, want desert", tile.Terrain)
			}
			if tile.ID != board.RobberTile {
				t.Errorf("RobberTile = %d, robber flag on %d", board.RobberTile, tile.ID)
			}
		}
	}

	wantTerrain := map[Terrain]int{
		TerrainForest:   4,
		TerrainPasture:  4,
		TerrainField:    4,
		TerrainHill:     3,
		TerrainMountain: 3,
		TerrainDesert:   1,
	}
	for terrain, want := range wantTerrain {
		if got := terrainCounts[terrain]; got != want {
			t.Errorf("terrain %s count = %d, want %d", terrain, got, want)
		}
	}

	wantTokens := map[int]int{2: 1, 3: 2, 4: 2, 5: 2, 6: 2, 8: 2, 9: 2, 10: 2, 11: 2, 12: 1}
	for token, want := range wantTokens {
		if got := tokenCounts[token]; got != want {
			t.Errorf("token %d count = %d, want %d", token, got, want)
		}
	}
	if tokenCounts[7] != 0 {
		t.Errorf("token 7 should never be assigned")
	}
	if robberTiles != 1 {
		t.Errorf("robber tiles = %d, want 1", robberTiles)
	}
}

func TestGenerateBoardRows(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	board := GenerateBoard(rng)

	wantSizes := []int{3, 4, 5, 4, 3}
	if len(board.Rows) != len(wantSizes) {
		t.Fatalf("row count = %d, want %d", len(board.Rows), len(wantSizes))
	}
	seen := make(map[int]bool)
	for i, row := range board.Rows {
		if len(row) != wantSizes[i] {
			t.Errorf("row %d size = %d, want %d", i, len(row), wantSizes[i])
		}
		for _, id := range row {
			if seen[id] {
				t.Errorf("tile %d appears in more than one row", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 19 {
		t.Errorf("rows cover %d tiles, want 19", len(seen))
	}
}

func TestGenerateBoardDeterministicPerSeed(t *testing.T) {
	a := GenerateBoard(rand.New(rand.NewSource(123)))
	b := GenerateBoard(rand.New(rand.NewSource(123)))

	for i := range a.Tiles {
		if a.Tiles[i].Terrain != b.Tiles[i].Terrain || a.Tiles[i].Token != b.Tiles[i].Token {
			t.Fatalf("boards from identical seeds diverge at tile %d", i)
		}
	}
}
