package domain

import "sort"

// Pot is one layer of the money in play: the main pot or a side pot created
// by an all-in. Eligible holds the non-folded seats that can win this layer.
type Pot struct {
	Amount   int
	Eligible []*Seat
}

// BuildPots slices the seats' total contributions into a main pot and side
// pots. Each distinct positive contribution level, taken in ascending
// order, caps one layer: every seat that put in at least that much funds
// the layer, folded seats included, but only non-folded contributors can
// win it. Layers with no money or no eligible winner are dropped.
//
// The sum over all returned pots always equals the sum of BetInHand across
// the seats, so no chips appear or vanish in the split.
func BuildPots(seats []*Seat) []Pot {
	levelSet := map[int]bool{}
	for _, seat := range seats {
		if seat.BetInHand > 0 {
			levelSet[seat.BetInHand] = true
		}
	}

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var pots []Pot
	previous := 0
	for _, level := range levels {
		contribution := level - previous
		previous = level

		amount := 0
		var eligible []*Seat
		for _, seat := range seats {
			if seat.BetInHand < level {
				continue
			}
			amount += contribution
			if !seat.Folded {
				eligible = append(eligible, seat)
			}
		}

		if amount == 0 || len(eligible) == 0 {
			continue
		}
		pots = append(pots, Pot{Amount: amount, Eligible: eligible})
	}

	return pots
}

// SplitAmount divides a pot between winners, handing out the indivisible
// remainder one chip at a time following the order the winners are given
// in. Ordering the winners clockwise from the dealer makes the extra chips
// land on the seats closest to the dealer's left.
func SplitAmount(amount int, winners []*Seat) map[*Seat]int {
	shares := make(map[*Seat]int, len(winners))
	if len(winners) == 0 {
		return shares
	}

	base := amount / len(winners)
	remainder := amount % len(winners)

	for i, winner := range winners {
		share := base
		if i < remainder {
			share++
		}
		shares[winner] += share
	}

	return shares
}
