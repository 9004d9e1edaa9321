package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"settlers/internal/app"
	"settlers/internal/config"
	"settlers/internal/domain"
	"settlers/internal/ports"
	"settlers/internal/protocol"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MaxSeats is the seat capacity of one match.
const MaxSeats = 4

// MatchState holds the authoritative runtime state for the Nakama
// match handler. The game session itself lives in the engine's session
// store; the handler keeps only seating, presences and the session id.
type MatchState struct {
	Seats     [MaxSeats]string            `json:"seats"`     // user ids, empty string means open
	HostSeat  int                         `json:"host_seat"` // seat index of the session host
	Presences map[string]runtime.Presence `json:"-"`
	Engine    ports.Engine                `json:"-"`
	SessionID string                      `json:"session_id"` // engine session id, empty until started
	Rules     config.Rules                `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return MaxSeats - ms.GetOpenSeatsCount()
}

func (ms *MatchState) started() bool {
	return ms.SessionID != ""
}

// findSeat returns the seat index of a user or -1.
func findSeat(seats []string, userID string) int {
	for i, seatUserID := range seats {
		if seatUserID == userID {
			return i
		}
	}
	return -1
}

// firstOccupiedSeat returns the lowest occupied seat index or -1.
func firstOccupiedSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" {
			return i
		}
	}
	return -1
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// matchLabel is the JSON label the lobby filters on.
type matchLabel struct {
	Open  int    `json:"open"`
	Phase string `json:"phase"`
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	rulesPath := ""
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		rulesPath = env["settlers_rules_path"]
	}
	rules, err := config.Load(rulesPath)
	if err != nil {
		logger.Warn("MatchInit: Could not load rules config, using defaults: %v", err)
		rules = config.Default()
	}

	state := &MatchState{
		HostSeat:  -1,
		Presences: make(map[string]runtime.Presence),
		Engine:    app.NewService(nil, rules),
		Rules:     rules,
	}

	labelBytes, err := json.Marshal(matchLabel{Open: state.GetOpenSeatsCount(), Phase: "lobby"})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if matchState.started() {
		return state, false, "Session already started"
	}
	if matchState.GetOpenSeatsCount() <= 0 {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
		}
	}

	if matchState.HostSeat < 0 || matchState.Seats[matchState.HostSeat] == "" {
		matchState.HostSeat = firstOccupiedSeat(matchState.Seats[:])
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		if seat := findSeat(matchState.Seats[:], p.GetUserId()); seat >= 0 {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
		}

		if matchState.started() {
			events, destroyed, err := matchState.Engine.LeaveSession(matchState.SessionID, domain.PlayerID(p.GetUserId()))
			if err != nil {
				logger.Warn("MatchLeave: engine leave for %s failed: %v", p.GetUserId(), err)
				continue
			}
			mh.broadcastEvents(matchState, dispatcher, logger, events)
			if destroyed {
				logger.Info("MatchLeave: Session %s destroyed, terminating match.", matchState.SessionID)
				return nil
			}
		}
	}

	if matchState.GetOccupiedSeatCount() == 0 {
		logger.Info("MatchLeave: Terminating empty match.")
		return nil
	}

	if matchState.HostSeat < 0 || matchState.Seats[matchState.HostSeat] == "" {
		matchState.HostSeat = firstOccupiedSeat(matchState.Seats[:])
	}

	mh.updateLabel(matchState, dispatcher, logger)
	if !matchState.started() {
		mh.broadcastLobbyState(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartSession:
			mh.handleStartSession(ctx, matchState, dispatcher, logger, msg)
		case OpPlaceSettlement:
			mh.handlePlaceSettlement(matchState, dispatcher, logger, msg)
		case OpUpgradeCity:
			mh.handleUpgradeCity(matchState, dispatcher, logger, msg)
		case OpPlaceRoad:
			mh.handlePlaceRoad(matchState, dispatcher, logger, msg)
		case OpRollDice:
			mh.handleRollDice(matchState, dispatcher, logger, msg)
		case OpMoveRobber:
			mh.handleMoveRobber(matchState, dispatcher, logger, msg)
		case OpBankTrade:
			mh.handleBankTrade(matchState, dispatcher, logger, msg)
		case OpCompleteDiscard:
			mh.handleCompleteDiscard(matchState, dispatcher, logger, msg)
		case OpEndTurn:
			mh.handleEndTurn(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

func (mh *matchHandler) handleStartSession(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := findSeat(state.Seats[:], senderID)

	if err := protocol.ValidateAction(protocol.ActionStartSession, msg.GetData()); err != nil {
		logger.Warn("StartSession: Invalid payload from %s: %v", senderID, err)
		mh.sendRejection(state, dispatcher, logger, senderID, protocol.ErrProtoBadRequest, err.Error())
		return
	}

	if state.started() {
		mh.sendRejection(state, dispatcher, logger, senderID, protocol.ErrNoPermission, "session already started")
		return
	}
	if senderSeat != state.HostSeat {
		logger.Warn("StartSession: User %s tried to start but is not host (host_seat=%d)", senderID, state.HostSeat)
		mh.sendRejection(state, dispatcher, logger, senderID, protocol.ErrNoPermission, "only the host can start the session")
		return
	}

	participants := make([]app.Participant, 0, MaxSeats)
	for _, seatUserID := range state.Seats {
		if seatUserID == "" {
			continue
		}
		name := seatUserID
		if p, exists := state.Presences[seatUserID]; exists {
			name = p.GetUsername()
		}
		participants = append(participants, app.Participant{
			ID:   domain.PlayerID(seatUserID),
			Name: name,
		})
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	sessionID, events, err := state.Engine.StartSession(matchID, participants)
	if err != nil {
		logger.Warn("StartSession: Failed to start: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	state.SessionID = sessionID

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvents(state, dispatcher, logger, events)
	logger.Info("StartSession: Session %s started with %d players.", sessionID, len(participants))
}

func (mh *matchHandler) handlePlaceSettlement(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	request, ok := decodeRequest[protocol.PlaceSettlementRequest](mh, state, dispatcher, logger, msg, protocol.ActionPlaceSettlement)
	if !ok {
		return
	}
	events, err := state.Engine.PlaceSettlement(state.SessionID, domain.PlayerID(senderID), request.Vertex, request.AdjacentTiles)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleUpgradeCity(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	request, ok := decodeRequest[protocol.UpgradeCityRequest](mh, state, dispatcher, logger, msg, protocol.ActionUpgradeCity)
	if !ok {
		return
	}
	events, err := state.Engine.UpgradeToCity(state.SessionID, domain.PlayerID(senderID), request.Vertex)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlaceRoad(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	request, ok := decodeRequest[protocol.PlaceRoadRequest](mh, state, dispatcher, logger, msg, protocol.ActionPlaceRoad)
	if !ok {
		return
	}
	events, err := state.Engine.PlaceRoad(state.SessionID, domain.PlayerID(senderID), request.Edge)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleRollDice(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if _, ok := decodeRequest[protocol.RollDiceRequest](mh, state, dispatcher, logger, msg, protocol.ActionRollDice); !ok {
		return
	}
	events, err := state.Engine.RollDice(state.SessionID, domain.PlayerID(senderID))
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleMoveRobber(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	request, ok := decodeRequest[protocol.MoveRobberRequest](mh, state, dispatcher, logger, msg, protocol.ActionMoveRobber)
	if !ok {
		return
	}
	events, err := state.Engine.MoveRobber(state.SessionID, domain.PlayerID(senderID), request.Tile, domain.PlayerID(request.Victim))
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleBankTrade(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	request, ok := decodeRequest[protocol.BankTradeRequest](mh, state, dispatcher, logger, msg, protocol.ActionBankTrade)
	if !ok {
		return
	}
	events, err := state.Engine.BankTrade(state.SessionID, domain.PlayerID(senderID),
		bundleFromWire(request.Give), bundleFromWire(request.Receive))
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleCompleteDiscard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	request, ok := decodeRequest[protocol.CompleteDiscardRequest](mh, state, dispatcher, logger, msg, protocol.ActionCompleteDiscard)
	if !ok {
		return
	}
	events, err := state.Engine.CompleteDiscard(state.SessionID, domain.PlayerID(senderID), bundleFromWire(request.Discard))
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleEndTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if _, ok := decodeRequest[protocol.EndTurnRequest](mh, state, dispatcher, logger, msg, protocol.ActionEndTurn); !ok {
		return
	}
	events, err := state.Engine.EndTurn(state.SessionID, domain.PlayerID(senderID))
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
}

// decodeRequest validates an inbound payload against the action schema
// and unmarshals it. On failure the sender gets a targeted rejection.
func decodeRequest[T any](mh *matchHandler, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData, action string) (T, bool) {
	var request T
	if err := protocol.ValidateAction(action, msg.GetData()); err != nil {
		logger.Warn("%s: Invalid payload from %s: %v", action, msg.GetUserId(), err)
		mh.sendRejection(state, dispatcher, logger, msg.GetUserId(), protocol.ErrProtoBadRequest, err.Error())
		return request, false
	}
	data := msg.GetData()
	if len(data) == 0 {
		data = []byte("{}")
	}
	if err := json.Unmarshal(data, &request); err != nil {
		logger.Warn("%s: Failed to unmarshal payload from %s: %v", action, msg.GetUserId(), err)
		mh.sendRejection(state, dispatcher, logger, msg.GetUserId(), protocol.ErrProtoBadRequest, err.Error())
		return request, false
	}
	return request, true
}

// broadcastEvents converts and dispatches engine events. Targeted
// events go only to connected intended recipients; if none of the
// intended recipients are connected nothing is sent.
func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, payload, ok := eventToWire(ev)
		if !ok {
			logger.Warn("Unknown event kind: %v", ev.Kind)
			continue
		}
		bytes, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, id := range ev.Recipients {
				if p, exists := state.Presences[string(id)]; exists {
					recipients = append(recipients, p)
				}
			}
			if len(recipients) == 0 {
				continue
			}
		}

		dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
	}
}

func (mh *matchHandler) broadcastLobbyState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	payload := protocol.LobbyStateEvent{
		Seats:    state.Seats[:],
		HostSeat: state.HostSeat,
		Open:     state.GetOpenSeatsCount(),
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal lobby state: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpLobbyState, bytes, nil, nil, true)
}

// sendError maps an engine error to its wire code and rejects the
// action toward the initiating user only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, err error) {
	mh.sendRejection(state, dispatcher, logger, userID, protocol.CodeForError(err), err.Error())
}

func (mh *matchHandler) sendRejection(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, code, message string) {
	payload := protocol.ActionRejectedEvent{Code: code, Message: message}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal ActionRejectedEvent: %v", err)
		return
	}
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send rejection to %s: Presence not found", userID)
		return
	}
	dispatcher.BroadcastMessage(OpActionRejected, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	open := state.GetOpenSeatsCount()
	if state.started() {
		phase = "in_session"
		open = 0
	}
	labelBytes, err := json.Marshal(matchLabel{Open: open, Phase: phase})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
