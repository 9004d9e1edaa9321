package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create
	// a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameSettlers is the authoritative match handler name
	// registered with Nakama.
	MatchNameSettlers = "settlers_match"

	// MatchLabelKey_OpenSeats is the label key for open seats.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartSession    int64 = 1
	OpPlaceSettlement int64 = 2
	OpUpgradeCity     int64 = 3
	OpPlaceRoad       int64 = 4
	OpRollDice        int64 = 5
	OpMoveRobber      int64 = 6
	OpBankTrade       int64 = 7
	OpCompleteDiscard int64 = 8
	OpEndTurn         int64 = 9

	// Server -> Client events
	OpLobbyState       int64 = 100
	OpSessionStarted   int64 = 101
	OpBoardGenerated   int64 = 102
	OpBuildingPlaced   int64 = 103
	OpRoadPlaced       int64 = 104
	OpDiceRolled       int64 = 105
	OpDiscardRequired  int64 = 106
	OpDiscardCompleted int64 = 107
	OpRobberMoved      int64 = 108
	OpResourcesStolen  int64 = 109
	OpTradeCompleted   int64 = 110
	OpTurnEnded        int64 = 111
	OpPlayerLeft       int64 = 112
	OpSessionEnded     int64 = 113
	OpPhaseChanged     int64 = 114
	OpActionRejected   int64 = 120
)
