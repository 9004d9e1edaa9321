package domain

// Build costs are fixed named templates. Deduction is coordinated by
// the app layer; the registry only enforces structural rules.
var (
	CostSettlement = Bundle{ResourceWood: 1, ResourceBrick: 1, ResourceWool: 1, ResourceGrain: 1}
	CostCity       = Bundle{ResourceGrain: 2, ResourceOre: 3}
	CostRoad       = Bundle{ResourceWood: 1, ResourceBrick: 1}
)

const (
	// SetupSettlementCount and SetupRoadCount define the initial
	// placement sequence every participant completes before play.
	SetupSettlementCount = 2
	SetupRoadCount       = 2

	// PointsPerSettlement and PointsPerCity drive point recomputation.
	PointsPerSettlement = 1
	PointsPerCity       = 2
)

// Limits caps each player's building counts. Values come from config;
// DefaultLimits matches the base game.
type Limits struct {
	MaxSettlements int
	MaxCities      int
	MaxRoads       int
}

// DefaultLimits returns the base-game building caps.
func DefaultLimits() Limits {
	return Limits{MaxSettlements: 5, MaxCities: 4, MaxRoads: 15}
}
