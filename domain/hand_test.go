package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/events"
)

func mustStack(t *testing.T, shorthands ...string) cards.Stack {
	t.Helper()
	stack, err := cards.StackFromStrings(shorthands...)
	require.NoError(t, err)
	return stack
}

func testRules() TableRules {
	return TableRules{SmallBlind: 5, BigBlind: 10, MaxSeats: 9, MaxActionRetries: 3}
}

func totalChips(seats []*Seat) int {
	total := 0
	for _, seat := range seats {
		total += seat.Chips
	}
	return total
}

func eventNames(hand *Hand) []string {
	names := make([]string, len(hand.Events))
	for i, event := range hand.Events {
		names[i] = event.Name()
	}
	return names
}

func TestHandEveryoneFoldsToBigBlind(t *testing.T) {
	seats := []*Seat{
		NewSeat("dealer", 1000, NewScriptedActor(ActionResponse{Action: ActionFold})),
		NewSeat("small", 1000, NewScriptedActor(ActionResponse{Action: ActionFold})),
		NewSeat("big", 1000, NewScriptedActor()),
	}

	deck := cards.NewDeck(nil)
	hand := NewHand("t1", testRules(), seats, 0, deck)
	require.NoError(t, hand.Play(context.Background()))

	assert.Equal(t, 1000, seats[0].Chips)
	assert.Equal(t, 995, seats[1].Chips, "small blind is forfeit")
	assert.Equal(t, 1005, seats[2].Chips, "big blind collects both blinds")
	assert.Equal(t, 3000, totalChips(seats), "chips are conserved")

	assert.Empty(t, hand.Community, "no board is dealt for an uncontested pot")

	names := eventNames(hand)
	assert.Equal(t, "HandStarted", names[0])
	assert.Equal(t, "HandEnded", names[len(names)-1])
	assert.Contains(t, names, "SingleWinnerDetermined")
	assert.NotContains(t, names, "HandsEvaluated")
}

func TestHandHeadsUpShowdown(t *testing.T) {
	// the dealer posts the small blind heads-up and is dealt second
	deck := cards.NewStackedDeck(mustStack(t,
		"Kh", "As", "Kd", "Ac", // hole cards: big gets kings, dealer gets aces
		"2c", "7d", "8s", "2h", // burn + flop
		"3c", "9c", // burn + turn
		"4d", "Jh", // burn + river
	))

	seats := []*Seat{
		NewSeat("dealer", 1000, NewScriptedActor(ActionResponse{Action: ActionCall})),
		NewSeat("big", 1000, NewScriptedActor()), // checks everything down
	}

	hand := NewHand("t1", testRules(), seats, 0, deck)
	require.NoError(t, hand.Play(context.Background()))

	require.Equal(t, mustStack(t, "As", "Ac"), seats[0].HoleCards)
	require.Equal(t, mustStack(t, "Kh", "Kd"), seats[1].HoleCards)
	assert.Equal(t, mustStack(t, "7d", "8s", "2h", "9c", "Jh"), hand.Community)

	assert.Equal(t, 1010, seats[0].Chips, "aces take the blinds")
	assert.Equal(t, 990, seats[1].Chips)
	assert.Equal(t, StreetShowdown, hand.Street)

	names := eventNames(hand)
	assert.Contains(t, names, "HandsEvaluated")
	assert.NotContains(t, names, "SingleWinnerDetermined")
}

func TestHandHeadsUpBlindOrder(t *testing.T) {
	seats := []*Seat{
		NewSeat("dealer", 1000, NewScriptedActor(ActionResponse{Action: ActionFold})),
		NewSeat("big", 1000, NewScriptedActor()),
	}

	hand := NewHand("t1", testRules(), seats, 0, cards.NewDeck(nil))
	require.NoError(t, hand.Play(context.Background()))

	var blinds []events.BlindPosted
	for _, event := range hand.Events {
		if blind, ok := event.(events.BlindPosted); ok {
			blinds = append(blinds, blind)
		}
	}

	require.Len(t, blinds, 2)
	assert.Equal(t, "dealer", blinds[0].PlayerID)
	assert.Equal(t, "small", blinds[0].Kind)
	assert.Equal(t, 5, blinds[0].Amount)
	assert.Equal(t, "big", blinds[1].PlayerID)
	assert.Equal(t, "big", blinds[1].Kind)
	assert.Equal(t, 10, blinds[1].Amount)
}

func TestHandAllInSidePots(t *testing.T) {
	// deal order left of the dealer: b, c, a, one card each then again
	deck := cards.NewStackedDeck(mustStack(t,
		"Ks", "Qs", "As", "Kd", "Qd", "Ac",
		"2c", "2h", "7d", "8s", // burn + flop
		"3c", "3d", // burn + turn
		"4c", "9h", // burn + river
	))

	seats := []*Seat{
		NewSeat("a", 100, NewScriptedActor(ActionResponse{Action: ActionRaise, Amount: 100})),
		NewSeat("b", 300, NewScriptedActor(ActionResponse{Action: ActionRaise, Amount: 300})),
		NewSeat("c", 300, NewScriptedActor(ActionResponse{Action: ActionCall})),
	}

	hand := NewHand("t1", testRules(), seats, 0, deck)
	require.NoError(t, hand.Play(context.Background()))

	// a's aces take the 300 main pot, b's kings take the 400 side pot
	assert.Equal(t, 300, seats[0].Chips)
	assert.Equal(t, 400, seats[1].Chips)
	assert.Equal(t, 0, seats[2].Chips)
	assert.Equal(t, 700, totalChips(seats), "chips are conserved")

	assert.Len(t, hand.Community, 5, "board runs out once betting is impossible")

	var awards []events.PotAwarded
	for _, event := range hand.Events {
		if award, ok := event.(events.PotAwarded); ok {
			awards = append(awards, award)
		}
	}
	require.Len(t, awards, 2)
	assert.Equal(t, 0, awards[0].PotIndex)
	assert.Equal(t, "a", awards[0].PlayerID)
	assert.Equal(t, 300, awards[0].Amount)
	assert.Equal(t, 1, awards[1].PotIndex)
	assert.Equal(t, "b", awards[1].PlayerID)
	assert.Equal(t, 400, awards[1].Amount)

	names := eventNames(hand)
	assert.Contains(t, names, "PlayerBusted")
}

func TestHandSplitPot(t *testing.T) {
	// both players play the board: a 9-high straight on it
	deck := cards.NewStackedDeck(mustStack(t,
		"2s", "2h", "3s", "3h",
		"4c", "5d", "6s", "7h", // burn + flop
		"8c", "8d", // burn + turn
		"Tc", "9c", // burn + river
	))

	seats := []*Seat{
		NewSeat("dealer", 1000, NewScriptedActor(ActionResponse{Action: ActionCall})),
		NewSeat("big", 1000, NewScriptedActor()),
	}

	hand := NewHand("t1", testRules(), seats, 0, deck)
	require.NoError(t, hand.Play(context.Background()))

	assert.Equal(t, 1000, seats[0].Chips)
	assert.Equal(t, 1000, seats[1].Chips)
	assert.Equal(t, 2000, totalChips(seats))
}

func TestHandIllegalResponsesAreRetriedThenFolded(t *testing.T) {
	stubborn := NewScriptedActor(
		ActionResponse{Action: ActionCheck}, // illegal while facing the blind
		ActionResponse{Action: ActionRaise, Amount: 12}, // below the min raise
		ActionResponse{Action: ActionCheck},
	)

	seats := []*Seat{
		NewSeat("dealer", 1000, stubborn),
		NewSeat("small", 1000, NewScriptedActor(ActionResponse{Action: ActionFold})),
		NewSeat("big", 1000, NewScriptedActor()),
	}

	hand := NewHand("t1", testRules(), seats, 0, cards.NewDeck(nil))
	require.NoError(t, hand.Play(context.Background()))

	assert.True(t, seats[0].Folded, "three illegal answers force a fold")
	assert.Equal(t, 1000, seats[0].Chips)
	assert.Equal(t, 1005, seats[2].Chips)

	rejected := 0
	for _, event := range hand.Events {
		if _, ok := event.(events.ActionRejected); ok {
			rejected++
		}
	}
	assert.Equal(t, 3, rejected)
}

func TestHandActorErrorFolds(t *testing.T) {
	broken := ActorFunc(func(ctx context.Context, req ActionRequest) (ActionResponse, error) {
		return ActionResponse{}, assert.AnError
	})

	seats := []*Seat{
		NewSeat("dealer", 1000, broken),
		NewSeat("small", 1000, NewScriptedActor(ActionResponse{Action: ActionFold})),
		NewSeat("big", 1000, NewScriptedActor()),
	}

	hand := NewHand("t1", testRules(), seats, 0, cards.NewDeck(nil))
	require.NoError(t, hand.Play(context.Background()))

	assert.True(t, seats[0].Folded)
	assert.Equal(t, 1005, seats[2].Chips)
}

func TestHandContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seats := []*Seat{
		NewSeat("dealer", 1000, CallingActor{}),
		NewSeat("big", 1000, CallingActor{}),
	}

	hand := NewHand("t1", testRules(), seats, 0, cards.NewDeck(nil))
	assert.ErrorIs(t, hand.Play(ctx), context.Canceled)
}

func TestBuildHandView(t *testing.T) {
	deck := cards.NewStackedDeck(mustStack(t,
		"Kh", "As", "Kd", "Ac",
		"2c", "7d", "8s", "2h",
		"3c", "9c",
		"4d", "Jh",
	))

	seats := []*Seat{
		NewSeat("dealer", 1000, NewScriptedActor(ActionResponse{Action: ActionCall})),
		NewSeat("big", 1000, NewScriptedActor()),
	}

	hand := NewHand("t1", testRules(), seats, 0, deck)
	require.NoError(t, hand.Play(context.Background()))

	t.Run("viewer sees only their own hole cards", func(t *testing.T) {
		view := BuildHandView(hand, "big")
		require.Len(t, view.Seats, 2)
		assert.Empty(t, view.Seats[0].HoleCards)
		assert.Equal(t, mustStack(t, "Kh", "Kd"), view.Seats[1].HoleCards)
		assert.True(t, view.Seats[0].IsDealer)
	})

	t.Run("spectators see no hole cards", func(t *testing.T) {
		view := BuildHandView(hand, "")
		for _, sv := range view.Seats {
			assert.Empty(t, sv.HoleCards)
		}
	})
}
