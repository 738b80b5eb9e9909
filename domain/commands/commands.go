// Package commands defines the messages clients send to drive the game.
// Each command carries its name so the server can route raw JSON without
// decoding the whole payload first.
package commands

// EnterLobby registers a player with the service.
type EnterLobby struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

func (c EnterLobby) Name() string { return "EnterLobby" }

// LeaveLobby removes a player from the service.
type LeaveLobby struct {
	PlayerID string `json:"playerId"`
}

func (c LeaveLobby) Name() string { return "LeaveLobby" }

// PlayerSeats buys a player into a table for the given amount.
type PlayerSeats struct {
	PlayerID string `json:"playerId"`
	TableID  string `json:"tableId"`
	BuyIn    int    `json:"buyIn"`
}

func (c PlayerSeats) Name() string { return "PlayerSeats" }

// PlayerLeavesTable stands a player up from a table between hands.
type PlayerLeavesTable struct {
	PlayerID string `json:"playerId"`
	TableID  string `json:"tableId"`
}

func (c PlayerLeavesTable) Name() string { return "PlayerLeavesTable" }

// StartGame begins dealing hands at a table.
type StartGame struct {
	PlayerID string `json:"playerId"`
	TableID  string `json:"tableId"`
}

func (c StartGame) Name() string { return "StartGame" }

// PlayerActs answers an action request during a betting round. Amount is
// the raise-to total and is ignored for other actions.
type PlayerActs struct {
	PlayerID string `json:"playerId"`
	TableID  string `json:"tableId"`
	HandID   string `json:"handId"`
	Action   string `json:"action"`
	Amount   int    `json:"amount,omitempty"`
}

func (c PlayerActs) Name() string { return "PlayerActs" }
