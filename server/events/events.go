// Package events fans domain events out to WebSocket clients. Table-wide
// events go to everyone watching the table; hole cards and lobby events go
// only to the player concerned.
package events

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/server/connection"
)

// EventEnvelope wraps an event with its name for client consumption.
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher routes domain events to the clients that may see them.
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *log.Logger
}

func NewDispatcher(connMgr *connection.Manager, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleEvent marshals a domain event and delivers it. Plug it into a
// lobby or table with AddEventHandler.
func (d *Dispatcher) HandleEvent(event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("failed to marshal event payload", "event", event.Name(), "err", err)
		return
	}

	envelopeData, err := json.Marshal(EventEnvelope{
		Name:    event.Name(),
		Payload: payload,
	})
	if err != nil {
		d.logger.Error("failed to marshal event envelope", "event", event.Name(), "err", err)
		return
	}

	d.logger.Debug("dispatching event", "event", events.Describe(event))

	switch e := event.(type) {
	case events.PlayerEnteredLobby:
		d.connMgr.SendToPlayer(e.PlayerID, envelopeData)

	case events.PlayerLeftLobby:
		d.connMgr.SendToPlayer(e.PlayerID, envelopeData)

	case events.HoleCardDealt:
		// only the owner may see their cards
		d.connMgr.SendToPlayer(e.PlayerID, envelopeData)

	default:
		if tableID := events.ExtractTableID(event); tableID != "" {
			d.connMgr.SendToTable(tableID, envelopeData)
		}
	}
}
