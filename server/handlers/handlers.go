package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/server/connection"
)

// defaultBalance is the bankroll handed to players until accounts exist.
const defaultBalance = 10_000

// CommandRouter decodes incoming client messages and applies them to the
// lobby. It also owns the remote actors, so a PlayerActs command finds its
// way back to the betting round waiting on it.
type CommandRouter struct {
	lobby   *domain.Lobby
	connMgr *connection.Manager
	logger  *log.Logger

	mu      sync.Mutex
	actors  map[string]*RemoteActor // player ID to actor
	running map[string]bool         // tables with a session in flight
}

func NewCommandRouter(lobby *domain.Lobby, connMgr *connection.Manager, logger *log.Logger) *CommandRouter {
	return &CommandRouter{
		lobby:   lobby,
		connMgr: connMgr,
		logger:  logger,
		actors:  make(map[string]*RemoteActor),
		running: make(map[string]bool),
	}
}

// HandleCommand decodes a raw message by its command name and dispatches it.
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return err
	}

	switch baseCmd.Name {
	case commands.EnterLobby{}.Name():
		var cmd commands.EnterLobby
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleEnterLobby(client, cmd)

	case commands.LeaveLobby{}.Name():
		var cmd commands.LeaveLobby
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleLeaveLobby(client, cmd)

	case commands.PlayerSeats{}.Name():
		var cmd commands.PlayerSeats
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handlePlayerSeats(client, cmd)

	case commands.PlayerLeavesTable{}.Name():
		var cmd commands.PlayerLeavesTable
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handlePlayerLeavesTable(client, cmd)

	case commands.StartGame{}.Name():
		var cmd commands.StartGame
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleStartGame(client, cmd)

	case commands.PlayerActs{}.Name():
		var cmd commands.PlayerActs
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handlePlayerActs(client, cmd)

	default:
		r.logger.Warn("unknown command", "name", baseCmd.Name, "client", client.ID)
		return errors.New("unknown command type")
	}
}

func (r *CommandRouter) handleEnterLobby(client *connection.Client, cmd commands.EnterLobby) error {
	if cmd.PlayerID == "" {
		return errors.New("a player id is required")
	}

	r.connMgr.BindPlayer(client.ID, cmd.PlayerID)
	r.lobby.EnterLobby(cmd.PlayerID, cmd.PlayerName, defaultBalance)
	return nil
}

func (r *CommandRouter) handleLeaveLobby(client *connection.Client, cmd commands.LeaveLobby) error {
	r.lobby.LeaveLobby(cmd.PlayerID)
	return nil
}

func (r *CommandRouter) handlePlayerSeats(client *connection.Client, cmd commands.PlayerSeats) error {
	if _, err := r.lobby.GetPlayer(cmd.PlayerID); err != nil {
		return err
	}

	actor := NewRemoteActor(cmd.PlayerID, r.connMgr)
	if _, err := r.lobby.BuyIn(cmd.PlayerID, cmd.TableID, cmd.BuyIn, actor); err != nil {
		return err
	}

	r.mu.Lock()
	r.actors[cmd.PlayerID] = actor
	r.mu.Unlock()

	r.connMgr.AddTableToClient(client.ID, cmd.TableID)
	return nil
}

func (r *CommandRouter) handlePlayerLeavesTable(client *connection.Client, cmd commands.PlayerLeavesTable) error {
	table, err := r.lobby.GetTable(cmd.TableID)
	if err != nil {
		return err
	}

	if err := table.RemovePlayer(cmd.PlayerID); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.actors, cmd.PlayerID)
	r.mu.Unlock()

	r.connMgr.RemoveTableFromClient(client.ID, cmd.TableID)
	return nil
}

// handleStartGame launches the table's session loop. Hands then deal back
// to back until the table cannot field two stacks.
func (r *CommandRouter) handleStartGame(client *connection.Client, cmd commands.StartGame) error {
	table, err := r.lobby.GetTable(cmd.TableID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if r.running[cmd.TableID] {
		r.mu.Unlock()
		return errors.New("the table is already playing")
	}
	r.running[cmd.TableID] = true
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			delete(r.running, cmd.TableID)
			r.mu.Unlock()
		}()

		if err := table.Run(context.Background()); err != nil {
			r.logger.Error("table session ended with error", "table", cmd.TableID, "err", err)
			return
		}
		r.logger.Info("table session over", "table", cmd.TableID)
	}()

	return nil
}

func (r *CommandRouter) handlePlayerActs(client *connection.Client, cmd commands.PlayerActs) error {
	r.mu.Lock()
	actor, ok := r.actors[cmd.PlayerID]
	r.mu.Unlock()
	if !ok {
		return ErrNoPendingAction
	}

	return actor.Deliver(domain.ActionResponse{
		Action: domain.ActionKind(cmd.Action),
		Amount: cmd.Amount,
	})
}
