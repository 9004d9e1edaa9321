package protocol

import "testing"

func TestValidateAction(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		payload string
		wantErr bool
	}{
		{name: "StartSessionEmptyBody", action: ActionStartSession, payload: ""},
		{name: "StartSessionEmptyObject", action: ActionStartSession, payload: "{}"},
		{name: "StartSessionExtraField", action: ActionStartSession, payload: `{"mode":"ranked"}`, wantErr: true},

		{name: "PlaceSettlement", action: ActionPlaceSettlement, payload: `{"vertex":"v12","adjacent_tiles":[3,4,8]}`},
		{name: "PlaceSettlementNoTiles", action: ActionPlaceSettlement, payload: `{"vertex":"v12","adjacent_tiles":[]}`, wantErr: true},
		{name: "PlaceSettlementFourTiles", action: ActionPlaceSettlement, payload: `{"vertex":"v12","adjacent_tiles":[1,2,3,4]}`, wantErr: true},
		{name: "PlaceSettlementTileOutOfRange", action: ActionPlaceSettlement, payload: `{"vertex":"v12","adjacent_tiles":[19]}`, wantErr: true},
		{name: "PlaceSettlementMissingVertex", action: ActionPlaceSettlement, payload: `{"adjacent_tiles":[1]}`, wantErr: true},

		{name: "UpgradeCity", action: ActionUpgradeCity, payload: `{"vertex":"v12"}`},
		{name: "UpgradeCityEmptyVertex", action: ActionUpgradeCity, payload: `{"vertex":""}`, wantErr: true},

		{name: "PlaceRoad", action: ActionPlaceRoad, payload: `{"edge":"e7"}`},
		{name: "PlaceRoadMissingEdge", action: ActionPlaceRoad, payload: `{}`, wantErr: true},

		{name: "RollDice", action: ActionRollDice, payload: "{}"},
		{name: "RollDiceExtraField", action: ActionRollDice, payload: `{"dice":3}`, wantErr: true},

		{name: "MoveRobber", action: ActionMoveRobber, payload: `{"tile":9,"victim":"u2"}`},
		{name: "MoveRobberNoVictim", action: ActionMoveRobber, payload: `{"tile":9}`},
		{name: "MoveRobberTileTooLarge", action: ActionMoveRobber, payload: `{"tile":19}`, wantErr: true},
		{name: "MoveRobberMissingTile", action: ActionMoveRobber, payload: `{"victim":"u2"}`, wantErr: true},

		{name: "BankTrade", action: ActionBankTrade, payload: `{"give":{"wood":4},"receive":{"ore":1}}`},
		{name: "BankTradeUnknownResource", action: ActionBankTrade, payload: `{"give":{"gold":4},"receive":{"ore":1}}`, wantErr: true},
		{name: "BankTradeNegativeCount", action: ActionBankTrade, payload: `{"give":{"wood":-4},"receive":{"ore":1}}`, wantErr: true},
		{name: "BankTradeMissingReceive", action: ActionBankTrade, payload: `{"give":{"wood":4}}`, wantErr: true},

		{name: "CompleteDiscard", action: ActionCompleteDiscard, payload: `{"discard":{"wood":2,"brick":2}}`},
		{name: "CompleteDiscardFractional", action: ActionCompleteDiscard, payload: `{"discard":{"wood":1.5}}`, wantErr: true},

		{name: "EndTurn", action: ActionEndTurn, payload: ""},

		{name: "UnknownAction", action: "play_knight", payload: "{}", wantErr: true},
		{name: "MalformedJSON", action: ActionRollDice, payload: "{", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAction(tt.action, []byte(tt.payload))
			if tt.wantErr && err == nil {
				t.Fatalf("payload accepted: %s", tt.payload)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("payload rejected: %v", err)
			}
		})
	}
}
