package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatWithBet(name string, betInHand int, folded bool) *Seat {
	return &Seat{Name: name, BetInHand: betInHand, Folded: folded}
}

func eligibleNames(pot Pot) []string {
	names := make([]string, len(pot.Eligible))
	for i, seat := range pot.Eligible {
		names[i] = seat.Name
	}
	return names
}

func TestBuildPots(t *testing.T) {
	t.Run("equal contributions form a single pot", func(t *testing.T) {
		seats := []*Seat{
			seatWithBet("a", 100, false),
			seatWithBet("b", 100, false),
			seatWithBet("c", 100, false),
		}

		pots := BuildPots(seats)
		require.Len(t, pots, 1)
		assert.Equal(t, 300, pots[0].Amount)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, eligibleNames(pots[0]))
	})

	t.Run("short all-in carves a side pot", func(t *testing.T) {
		seats := []*Seat{
			seatWithBet("a", 100, false),
			seatWithBet("b", 300, false),
			seatWithBet("c", 300, false),
		}

		pots := BuildPots(seats)
		require.Len(t, pots, 2)

		assert.Equal(t, 300, pots[0].Amount, "main pot takes 100 from everyone")
		assert.ElementsMatch(t, []string{"a", "b", "c"}, eligibleNames(pots[0]))

		assert.Equal(t, 400, pots[1].Amount, "side pot takes the 200 overage twice")
		assert.ElementsMatch(t, []string{"b", "c"}, eligibleNames(pots[1]))
	})

	t.Run("overbet over two capped stacks", func(t *testing.T) {
		seats := []*Seat{
			seatWithBet("a", 100, false),
			seatWithBet("b", 100, false),
			seatWithBet("c", 300, false),
		}

		pots := BuildPots(seats)
		require.Len(t, pots, 2)

		assert.Equal(t, 300, pots[0].Amount)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, eligibleNames(pots[0]))

		// nobody matched c's extra 200, it can only come back to c
		assert.Equal(t, 200, pots[1].Amount)
		assert.ElementsMatch(t, []string{"c"}, eligibleNames(pots[1]))
	})

	t.Run("folded seats fund pots they cannot win", func(t *testing.T) {
		seats := []*Seat{
			seatWithBet("a", 100, false),
			seatWithBet("b", 60, true),
			seatWithBet("c", 100, false),
		}

		pots := BuildPots(seats)
		require.Len(t, pots, 2)

		assert.Equal(t, 180, pots[0].Amount)
		assert.ElementsMatch(t, []string{"a", "c"}, eligibleNames(pots[0]),
			"the folder's 60 stays in but they can never win it")

		assert.Equal(t, 80, pots[1].Amount)
		assert.ElementsMatch(t, []string{"a", "c"}, eligibleNames(pots[1]))
	})

	t.Run("three stack sizes make three pots", func(t *testing.T) {
		seats := []*Seat{
			seatWithBet("a", 50, false),
			seatWithBet("b", 120, false),
			seatWithBet("c", 200, false),
			seatWithBet("d", 200, false),
		}

		pots := BuildPots(seats)
		require.Len(t, pots, 3)
		assert.Equal(t, 200, pots[0].Amount) // 50 x 4
		assert.Equal(t, 210, pots[1].Amount) // 70 x 3
		assert.Equal(t, 160, pots[2].Amount) // 80 x 2
		assert.ElementsMatch(t, []string{"c", "d"}, eligibleNames(pots[2]))
	})

	t.Run("pot totals always match the contributions", func(t *testing.T) {
		seats := []*Seat{
			seatWithBet("a", 37, false),
			seatWithBet("b", 144, true),
			seatWithBet("c", 144, false),
			seatWithBet("d", 12, true),
			seatWithBet("e", 200, false),
		}

		contributed := 0
		for _, seat := range seats {
			contributed += seat.BetInHand
		}

		total := 0
		for _, pot := range BuildPots(seats) {
			total += pot.Amount
		}
		assert.Equal(t, contributed, total)
	})

	t.Run("no contributions, no pots", func(t *testing.T) {
		seats := []*Seat{seatWithBet("a", 0, false), seatWithBet("b", 0, false)}
		assert.Empty(t, BuildPots(seats))
	})
}

func TestSplitAmount(t *testing.T) {
	a, b, c := seatWithBet("a", 0, false), seatWithBet("b", 0, false), seatWithBet("c", 0, false)

	t.Run("even split", func(t *testing.T) {
		shares := SplitAmount(300, []*Seat{a, b, c})
		assert.Equal(t, 100, shares[a])
		assert.Equal(t, 100, shares[b])
		assert.Equal(t, 100, shares[c])
	})

	t.Run("remainder lands on the earliest winners", func(t *testing.T) {
		shares := SplitAmount(100, []*Seat{a, b, c})
		assert.Equal(t, 34, shares[a])
		assert.Equal(t, 33, shares[b])
		assert.Equal(t, 33, shares[c])
	})

	t.Run("single winner takes it all", func(t *testing.T) {
		shares := SplitAmount(275, []*Seat{b})
		assert.Equal(t, 275, shares[b])
	})

	t.Run("no winners yields nothing", func(t *testing.T) {
		assert.Empty(t, SplitAmount(100, nil))
	})
}
