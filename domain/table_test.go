package domain

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/holdem/events"
)

func TestTableSeating(t *testing.T) {
	rules := NewTableRules()
	rules.MaxSeats = 2
	table := NewTable("micro", rules, nil)

	_, err := table.SeatPlayer("alice", 1000, CallingActor{})
	require.NoError(t, err)

	t.Run("duplicate names are refused", func(t *testing.T) {
		_, err := table.SeatPlayer("alice", 500, CallingActor{})
		assert.ErrorIs(t, err, ErrAlreadySeated)
	})

	t.Run("empty stacks are refused", func(t *testing.T) {
		_, err := table.SeatPlayer("bob", 0, CallingActor{})
		assert.Error(t, err)
	})

	t.Run("the table fills up", func(t *testing.T) {
		_, err := table.SeatPlayer("bob", 1000, CallingActor{})
		require.NoError(t, err)
		_, err = table.SeatPlayer("carol", 1000, CallingActor{})
		assert.ErrorIs(t, err, ErrTableFull)
	})

	t.Run("leaving frees the seat", func(t *testing.T) {
		require.NoError(t, table.RemovePlayer("bob"))
		assert.Nil(t, table.FindSeat("bob"))
		assert.ErrorIs(t, table.RemovePlayer("bob"), ErrNotSeated)
	})
}

func TestTableStartNewHand(t *testing.T) {
	table := NewTable("main", NewTableRules(), rand.New(rand.NewSource(1)))

	t.Run("needs two seats", func(t *testing.T) {
		_, err := table.StartNewHand()
		assert.ErrorIs(t, err, ErrInsufficientSeats)

		_, err = table.SeatPlayer("alice", 1000, CallingActor{})
		require.NoError(t, err)
		_, err = table.StartNewHand()
		assert.ErrorIs(t, err, ErrInsufficientSeats)
	})

	_, err := table.SeatPlayer("bob", 1000, CallingActor{})
	require.NoError(t, err)

	hand, err := table.StartNewHand()
	require.NoError(t, err)
	assert.Equal(t, TableStatusPlaying, table.Status)
	assert.Same(t, hand, table.ActiveHand)

	t.Run("one hand at a time", func(t *testing.T) {
		_, err := table.StartNewHand()
		assert.ErrorIs(t, err, ErrHandInProgress)
	})

	t.Run("no leaving mid-hand", func(t *testing.T) {
		assert.ErrorIs(t, table.RemovePlayer("alice"), ErrHandInProgress)
	})
}

func TestTableDealerRotation(t *testing.T) {
	table := NewTable("main", NewTableRules(), rand.New(rand.NewSource(42)))
	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := table.SeatPlayer(name, 1000, CallingActor{})
		require.NoError(t, err)
	}

	hand, err := table.StartNewHand()
	require.NoError(t, err)
	assert.Equal(t, 0, hand.DealerPos, "the button starts on the first seat")
	require.NoError(t, hand.Play(context.Background()))

	hand, err = table.StartNewHand()
	require.NoError(t, err)
	assert.Equal(t, 1, hand.DealerPos, "the button advances one seat per hand")
}

func TestTableRemovesBustedSeats(t *testing.T) {
	rules := NewTableRules()
	rules.SmallBlind = 50
	rules.BigBlind = 100

	table := NewTable("main", rules, rand.New(rand.NewSource(7)))
	_, err := table.SeatPlayer("rich", 10000, CallingActor{})
	require.NoError(t, err)
	_, err = table.SeatPlayer("poor", 100, CallingActor{})
	require.NoError(t, err)

	// call-down hands until one stack holds everything
	require.NoError(t, table.Run(context.Background()))

	assert.Equal(t, TableStatusEnded, table.Status)
	require.Len(t, table.Seats, 1)
	assert.Equal(t, 10100, table.Seats[0].Chips, "the survivor holds every chip")
}

func TestTableDebugDump(t *testing.T) {
	table := NewTable("main", NewTableRules(), rand.New(rand.NewSource(11)))
	table.Debug = true

	_, err := table.SeatPlayer("alice", 1000, CallingActor{})
	require.NoError(t, err)
	_, err = table.SeatPlayer("bob", 1000, CallingActor{})
	require.NoError(t, err)

	// every event goes through the dump path without disturbing the hand
	hand, err := table.StartNewHand()
	require.NoError(t, err)
	require.NoError(t, hand.Play(context.Background()))
	assert.NotEmpty(t, hand.Events)
}

func TestTableEventForwarding(t *testing.T) {
	table := NewTable("main", NewTableRules(), rand.New(rand.NewSource(3)))

	var names []string
	table.AddEventHandler(func(event events.Event) {
		names = append(names, event.Name())
	})

	_, err := table.SeatPlayer("alice", 1000, CallingActor{})
	require.NoError(t, err)
	_, err = table.SeatPlayer("bob", 1000, CallingActor{})
	require.NoError(t, err)

	hand, err := table.StartNewHand()
	require.NoError(t, err)
	require.NoError(t, hand.Play(context.Background()))

	assert.Contains(t, names, "PlayerJoinedTable")
	assert.Contains(t, names, "HandStarted")
	assert.Contains(t, names, "HandEnded")
	assert.Nil(t, table.ActiveHand, "the table clears the hand when it ends")
}
