package protocol

// Wire structs for match data payloads. Requests are client -> server
// and validated against the embedded schemas before decoding; events
// are server -> client.

// Client requests.

type StartSessionRequest struct{}

type PlaceSettlementRequest struct {
	Vertex        string `json:"vertex"`
	AdjacentTiles []int  `json:"adjacent_tiles"`
}

type UpgradeCityRequest struct {
	Vertex string `json:"vertex"`
}

type PlaceRoadRequest struct {
	Edge string `json:"edge"`
}

type RollDiceRequest struct{}

type MoveRobberRequest struct {
	Tile   int    `json:"tile"`
	Victim string `json:"victim,omitempty"`
}

type BankTradeRequest struct {
	Give    map[string]int `json:"give"`
	Receive map[string]int `json:"receive"`
}

type CompleteDiscardRequest struct {
	Discard map[string]int `json:"discard"`
}

type EndTurnRequest struct{}

// Server events. EventBase carries what every mutating action
// broadcasts: the acting player, a timestamp and the full updated
// per-player view.

type PlayerView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Resources   map[string]int `json:"resources"`
	Points      int            `json:"points"`
	Settlements int            `json:"settlements"`
	Cities      int            `json:"cities"`
	Roads       int            `json:"roads"`
}

type EventBase struct {
	Actor     string       `json:"actor"`
	ActorName string       `json:"actor_name"`
	At        int64        `json:"at"` // unix milliseconds
	Players   []PlayerView `json:"players"`
}

type TileView struct {
	ID        int    `json:"id"`
	Terrain   string `json:"terrain"`
	Token     int    `json:"token,omitempty"`
	HasRobber bool   `json:"has_robber,omitempty"`
}

type SessionStartedEvent struct {
	EventBase
	SessionID string   `json:"session_id"`
	Host      string   `json:"host"`
	Order     []string `json:"order"`
}

type BoardGeneratedEvent struct {
	EventBase
	Tiles      []TileView `json:"tiles"`
	Rows       [][]int    `json:"rows"`
	RobberTile int        `json:"robber_tile"`
}

type BuildingPlacedEvent struct {
	EventBase
	Building string         `json:"building"`
	Vertex   string         `json:"vertex"`
	Phase    string         `json:"phase"`
	Gained   map[string]int `json:"gained,omitempty"`
}

type RoadPlacedEvent struct {
	EventBase
	Edge  string `json:"edge"`
	Phase string `json:"phase"`
}

type PhaseChangedEvent struct {
	EventBase
	Phase string `json:"phase"`
}

type DiceRolledEvent struct {
	EventBase
	D1         int                       `json:"d1"`
	D2         int                       `json:"d2"`
	Total      int                       `json:"total"`
	Production map[string]map[string]int `json:"production,omitempty"`
}

type DiscardRequiredEvent struct {
	EventBase
	Roller   string         `json:"roller"`
	Required map[string]int `json:"required"`
}

type DiscardCompletedEvent struct {
	EventBase
	Player       string         `json:"player"`
	Discarded    map[string]int `json:"discarded"`
	AllCompleted bool           `json:"all_completed"`
}

type RobberMovedEvent struct {
	EventBase
	Tile   int    `json:"tile"`
	Victim string `json:"victim,omitempty"`
}

type ResourcesStolenEvent struct {
	EventBase
	Victim   string `json:"victim"`
	Resource string `json:"resource"`
}

type TradeCompletedEvent struct {
	EventBase
	Gave     map[string]int `json:"gave"`
	Received map[string]int `json:"received"`
}

type TurnEndedEvent struct {
	EventBase
	Next string `json:"next"`
}

type PlayerLeftEvent struct {
	EventBase
	Player string `json:"player"`
}

type SessionEndedEvent struct {
	EventBase
	Reason string `json:"reason"`
}

// ActionRejectedEvent is sent to the initiating client only; rejected
// actions are never broadcast.
type ActionRejectedEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LobbyStateEvent is broadcast while seats fill before session start.
type LobbyStateEvent struct {
	Seats    []string `json:"seats"`
	HostSeat int      `json:"host_seat"`
	Open     int      `json:"open"`
}
