package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Action names, one per client opcode. Each has an embedded schema.
const (
	ActionStartSession    = "start_session"
	ActionPlaceSettlement = "place_settlement"
	ActionUpgradeCity     = "upgrade_city"
	ActionPlaceRoad       = "place_road"
	ActionRollDice        = "roll_dice"
	ActionMoveRobber      = "move_robber"
	ActionBankTrade       = "bank_trade"
	ActionCompleteDiscard = "complete_discard"
	ActionEndTurn         = "end_turn"
)

var actionNames = []string{
	ActionStartSession,
	ActionPlaceSettlement,
	ActionUpgradeCity,
	ActionPlaceRoad,
	ActionRollDice,
	ActionMoveRobber,
	ActionBankTrade,
	ActionCompleteDiscard,
	ActionEndTurn,
}

var actionSchemas = compileSchemas()

func compileSchemas() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()

	addResource := func(name string) {
		b, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			panic("protocol: missing schema " + name + ": " + err.Error())
		}
		if err := compiler.AddResource(name+".json", bytes.NewReader(b)); err != nil {
			panic("protocol: bad schema " + name + ": " + err.Error())
		}
	}

	addResource("bundle")
	for _, name := range actionNames {
		addResource(name)
	}

	out := make(map[string]*jsonschema.Schema, len(actionNames))
	for _, name := range actionNames {
		out[name] = compiler.MustCompile(name + ".json")
	}
	return out
}

// ValidateAction checks an inbound payload against the action's schema.
// Empty payloads are treated as the empty object so zero-field actions
// need no body. Malformed or unknown payloads are rejected before they
// reach the engine.
func ValidateAction(action string, data []byte) error {
	schema, ok := actionSchemas[action]
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%s: invalid json: %w", action, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}
