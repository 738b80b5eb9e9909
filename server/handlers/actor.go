package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/server/connection"
)

// ErrNoPendingAction is returned when a player sends an action while the
// engine is not waiting on them.
var ErrNoPendingAction = errors.New("no action is pending for this player")

// RemoteActor bridges the hand engine to a WebSocket player. Act pushes
// the action request down the socket and blocks until the player's command
// arrives or the engine's deadline fires; an expired deadline reads as an
// actor failure and the engine folds the seat.
type RemoteActor struct {
	playerID string
	connMgr  *connection.Manager

	mu      sync.Mutex
	pending chan domain.ActionResponse
}

func NewRemoteActor(playerID string, connMgr *connection.Manager) *RemoteActor {
	return &RemoteActor{
		playerID: playerID,
		connMgr:  connMgr,
	}
}

func (a *RemoteActor) Act(ctx context.Context, req domain.ActionRequest) (domain.ActionResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return domain.ActionResponse{}, err
	}
	envelope, err := json.Marshal(struct {
		Name    string          `json:"name"`
		Payload json.RawMessage `json:"payload"`
	}{Name: "ActionRequest", Payload: payload})
	if err != nil {
		return domain.ActionResponse{}, err
	}

	pending := make(chan domain.ActionResponse, 1)
	a.mu.Lock()
	a.pending = pending
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.pending = nil
		a.mu.Unlock()
	}()

	if !a.connMgr.SendToPlayer(a.playerID, envelope) {
		return domain.ActionResponse{}, errors.New("player is not connected")
	}

	select {
	case <-ctx.Done():
		return domain.ActionResponse{}, ctx.Err()
	case resp := <-pending:
		return resp, nil
	}
}

// Deliver hands an incoming player command to the waiting Act call.
func (a *RemoteActor) Deliver(resp domain.ActionResponse) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pending == nil {
		return ErrNoPendingAction
	}

	select {
	case a.pending <- resp:
		a.pending = nil
		return nil
	default:
		return ErrNoPendingAction
	}
}
