package nakama

import (
	"settlers/internal/app"
	"settlers/internal/domain"
	"settlers/internal/protocol"
)

func bundleToWire(b domain.Bundle) map[string]int {
	if b == nil {
		return nil
	}
	out := make(map[string]int, len(b))
	for k, v := range b {
		if v != 0 {
			out[string(k)] = v
		}
	}
	return out
}

func bundleFromWire(m map[string]int) domain.Bundle {
	out := domain.NewBundle()
	for k, v := range m {
		out[domain.Resource(k)] = v
	}
	return out
}

func viewsToWire(views []app.PlayerView) []protocol.PlayerView {
	out := make([]protocol.PlayerView, 0, len(views))
	for _, v := range views {
		out = append(out, protocol.PlayerView{
			ID:          string(v.ID),
			Name:        v.Name,
			Resources:   bundleToWire(v.Resources),
			Points:      v.Points,
			Settlements: v.Settlements,
			Cities:      v.Cities,
			Roads:       v.Roads,
		})
	}
	return out
}

func eventBase(ev app.Event) protocol.EventBase {
	return protocol.EventBase{
		Actor:     string(ev.Actor),
		ActorName: ev.ActorName,
		At:        ev.At.UnixMilli(),
		Players:   viewsToWire(ev.View),
	}
}

func tilesToWire(tiles []domain.Tile) []protocol.TileView {
	out := make([]protocol.TileView, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, protocol.TileView{
			ID:        t.ID,
			Terrain:   string(t.Terrain),
			Token:     t.Token,
			HasRobber: t.HasRobber,
		})
	}
	return out
}

func playerIDsToWire(ids []domain.PlayerID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

// eventToWire maps an engine event to its opcode and wire payload.
// Returns false for kinds with no wire mapping.
func eventToWire(ev app.Event) (int64, any, bool) {
	base := eventBase(ev)
	switch ev.Kind {
	case app.EventSessionStarted:
		p := ev.Payload.(app.SessionStartedPayload)
		return OpSessionStarted, protocol.SessionStartedEvent{
			EventBase: base,
			SessionID: p.SessionID,
			Host:      string(p.Host),
			Order:     playerIDsToWire(p.Order),
		}, true
	case app.EventBoardGenerated:
		p := ev.Payload.(app.BoardGeneratedPayload)
		return OpBoardGenerated, protocol.BoardGeneratedEvent{
			EventBase:  base,
			Tiles:      tilesToWire(p.Tiles),
			Rows:       p.Rows,
			RobberTile: p.RobberTile,
		}, true
	case app.EventBuildingPlaced:
		p := ev.Payload.(app.BuildingPlacedPayload)
		return OpBuildingPlaced, protocol.BuildingPlacedEvent{
			EventBase: base,
			Building:  p.Building,
			Vertex:    p.Vertex,
			Phase:     string(p.Phase),
			Gained:    bundleToWire(p.Gained),
		}, true
	case app.EventRoadPlaced:
		p := ev.Payload.(app.RoadPlacedPayload)
		return OpRoadPlaced, protocol.RoadPlacedEvent{
			EventBase: base,
			Edge:      p.Edge,
			Phase:     string(p.Phase),
		}, true
	case app.EventPhaseChanged:
		p := ev.Payload.(app.PhaseChangedPayload)
		return OpPhaseChanged, protocol.PhaseChangedEvent{
			EventBase: base,
			Phase:     string(p.Phase),
		}, true
	case app.EventDiceRolled:
		p := ev.Payload.(app.DiceRolledPayload)
		var production map[string]map[string]int
		if p.Production != nil {
			production = make(map[string]map[string]int, len(p.Production))
			for id, b := range p.Production {
				production[string(id)] = bundleToWire(b)
			}
		}
		return OpDiceRolled, protocol.DiceRolledEvent{
			EventBase:  base,
			D1:         p.D1,
			D2:         p.D2,
			Total:      p.Total,
			Production: production,
		}, true
	case app.EventDiscardRequired:
		p := ev.Payload.(app.DiscardRequiredPayload)
		required := make(map[string]int, len(p.Required))
		for id, n := range p.Required {
			required[string(id)] = n
		}
		return OpDiscardRequired, protocol.DiscardRequiredEvent{
			EventBase: base,
			Roller:    string(p.Roller),
			Required:  required,
		}, true
	case app.EventDiscardCompleted:
		p := ev.Payload.(app.DiscardCompletedPayload)
		return OpDiscardCompleted, protocol.DiscardCompletedEvent{
			EventBase:    base,
			Player:       string(p.Player),
			Discarded:    bundleToWire(p.Discarded),
			AllCompleted: p.AllCompleted,
		}, true
	case app.EventRobberMoved:
		p := ev.Payload.(app.RobberMovedPayload)
		return OpRobberMoved, protocol.RobberMovedEvent{
			EventBase: base,
			Tile:      p.Tile,
			Victim:    string(p.Victim),
		}, true
	case app.EventResourcesStolen:
		p := ev.Payload.(app.ResourcesStolenPayload)
		return OpResourcesStolen, protocol.ResourcesStolenEvent{
			EventBase: base,
			Victim:    string(p.Victim),
			Resource:  string(p.Resource),
		}, true
	case app.EventTradeCompleted:
		p := ev.Payload.(app.TradeCompletedPayload)
		return OpTradeCompleted, protocol.TradeCompletedEvent{
			EventBase: base,
			Gave:      bundleToWire(p.Gave),
			Received:  bundleToWire(p.Received),
		}, true
	case app.EventTurnEnded:
		p := ev.Payload.(app.TurnEndedPayload)
		return OpTurnEnded, protocol.TurnEndedEvent{
			EventBase: base,
			Next:      string(p.Next),
		}, true
	case app.EventPlayerLeft:
		p := ev.Payload.(app.PlayerLeftPayload)
		return OpPlayerLeft, protocol.PlayerLeftEvent{
			EventBase: base,
			Player:    string(p.Player),
		}, true
	case app.EventSessionEnded:
		p := ev.Payload.(app.SessionEndedPayload)
		return OpSessionEnded, protocol.SessionEndedEvent{
			EventBase: base,
			Reason:    p.Reason,
		}, true
	}
	return 0, nil, false
}
