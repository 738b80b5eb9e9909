package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/holdem/events"
)

func TestLobbyPlayers(t *testing.T) {
	lobby := NewLobby()

	player := lobby.EnterLobby("u1", "alice", 5000)
	assert.Equal(t, 5000, player.Balance)

	t.Run("re-entering refreshes the name", func(t *testing.T) {
		again := lobby.EnterLobby("u1", "alice2", 9999)
		assert.Same(t, player, again)
		assert.Equal(t, "alice2", again.Name)
		assert.Equal(t, 5000, again.Balance, "balance survives a reconnect")
	})

	t.Run("lookup", func(t *testing.T) {
		found, err := lobby.GetPlayer("u1")
		require.NoError(t, err)
		assert.Same(t, player, found)

		_, err = lobby.GetPlayer("nobody")
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("leaving", func(t *testing.T) {
		lobby.LeaveLobby("u1")
		_, err := lobby.GetPlayer("u1")
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})
}

func TestLobbyTables(t *testing.T) {
	lobby := NewLobby()

	var seen []string
	lobby.AddEventHandler(func(event events.Event) {
		seen = append(seen, event.Name())
	})

	table := lobby.CreateTable("main", NewTableRules())
	found, err := lobby.GetTable(table.ID)
	require.NoError(t, err)
	assert.Same(t, table, found)
	assert.Len(t, lobby.Tables(), 1)

	_, err = lobby.GetTable("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)

	t.Run("table events reach lobby subscribers", func(t *testing.T) {
		lobby.EnterLobby("u1", "alice", 5000)
		_, err := lobby.BuyIn("u1", table.ID, 1000, CallingActor{})
		require.NoError(t, err)
		assert.Contains(t, seen, "PlayerJoinedTable")
	})
}

func TestLobbyBuyIn(t *testing.T) {
	lobby := NewLobby()
	table := lobby.CreateTable("main", NewTableRules())
	player := lobby.EnterLobby("u1", "alice", 500)

	t.Run("buy-in moves bankroll onto the table", func(t *testing.T) {
		seat, err := lobby.BuyIn("u1", table.ID, 300, CallingActor{})
		require.NoError(t, err)
		assert.Equal(t, 300, seat.Chips)
		assert.Equal(t, 200, player.Balance)
	})

	t.Run("cannot buy in beyond the bankroll", func(t *testing.T) {
		_, err := lobby.BuyIn("u1", table.ID, 1000, CallingActor{})
		assert.Error(t, err)
		assert.Equal(t, 200, player.Balance)
	})

	t.Run("unknown ids are rejected", func(t *testing.T) {
		_, err := lobby.BuyIn("ghost", table.ID, 100, CallingActor{})
		assert.ErrorIs(t, err, ErrUnknownPlayer)
		_, err = lobby.BuyIn("u1", "nope", 100, CallingActor{})
		assert.ErrorIs(t, err, ErrUnknownTable)
	})
}
