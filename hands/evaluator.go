package hands

import (
	"errors"
	"sort"

	"github.com/lazharichir/holdem/cards"
)

// ErrInsufficientCards is returned when fewer than five cards are supplied to
// the evaluator. That always indicates a caller defect, never a game state.
var ErrInsufficientCards = errors.New("hand evaluation requires at least 5 cards")

// HandRank represents the strength category of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the human-readable name of the hand rank
func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandEvaluation represents the evaluation of a poker hand. Kickers is the
// ordered tie-break key, most significant first; two evaluations of the same
// rank are ordered by comparing Kickers lexicographically.
type HandEvaluation struct {
	Rank      HandRank
	HandCards cards.Stack // The 5 cards that make up the hand
	Kickers   []int
}

// Evaluate returns the best five-card hand buildable from the given cards,
// searching every 5-card subset (21 subsets for the usual 7 cards).
func Evaluate(cardSet cards.Stack) (HandEvaluation, error) {
	if len(cardSet) < 5 {
		return HandEvaluation{}, ErrInsufficientCards
	}

	var best HandEvaluation
	first := true

	for _, combo := range combinations(len(cardSet), 5) {
		hand := make(cards.Stack, 5)
		for i, idx := range combo {
			hand[i] = cardSet[idx]
		}

		eval := evaluateFive(hand)
		if first || Compare(eval, best) > 0 {
			best = eval
			first = false
		}
	}

	return best, nil
}

// Compare orders two hand evaluations:
// -1 if a is worse than b, 0 if equal, 1 if a is better than b.
func Compare(a, b HandEvaluation) int {
	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return -1
		}
		return 1
	}

	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if a.Kickers[i] != b.Kickers[i] {
			if a.Kickers[i] < b.Kickers[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// evaluateFive evaluates exactly five cards and returns their ranking.
// Checks run from the strongest category down, each feeding the next.
func evaluateFive(hand cards.Stack) HandEvaluation {
	sorted := sortByRankDesc(hand)

	flush := isFlush(sorted)
	straightHigh := straightHighCard(sorted)

	if flush && straightHigh == 14 {
		return HandEvaluation{Rank: RoyalFlush, HandCards: sorted, Kickers: []int{}}
	}

	if flush && straightHigh > 0 {
		return HandEvaluation{Rank: StraightFlush, HandCards: sorted, Kickers: []int{straightHigh}}
	}

	if quad, kicker := findFourOfAKind(sorted); quad > 0 {
		return HandEvaluation{Rank: FourOfAKind, HandCards: sorted, Kickers: []int{quad, kicker}}
	}

	if trips, pair := findFullHouse(sorted); trips > 0 {
		return HandEvaluation{Rank: FullHouse, HandCards: sorted, Kickers: []int{trips, pair}}
	}

	if flush {
		return HandEvaluation{Rank: Flush, HandCards: sorted, Kickers: ranksDesc(sorted)}
	}

	if straightHigh > 0 {
		return HandEvaluation{Rank: Straight, HandCards: sorted, Kickers: []int{straightHigh}}
	}

	if trips, kickers := findThreeOfAKind(sorted); trips > 0 {
		return HandEvaluation{Rank: ThreeOfAKind, HandCards: sorted, Kickers: append([]int{trips}, kickers...)}
	}

	if high, low, kicker := findTwoPair(sorted); high > 0 {
		return HandEvaluation{Rank: TwoPair, HandCards: sorted, Kickers: []int{high, low, kicker}}
	}

	if pair, kickers := findOnePair(sorted); pair > 0 {
		return HandEvaluation{Rank: OnePair, HandCards: sorted, Kickers: append([]int{pair}, kickers...)}
	}

	return HandEvaluation{Rank: HighCard, HandCards: sorted, Kickers: ranksDesc(sorted)}
}

// sortByRankDesc sorts cards by rank in descending order
func sortByRankDesc(hand cards.Stack) cards.Stack {
	result := hand.Copy()
	sort.Slice(result, func(i, j int) bool {
		return result[i].Rank() > result[j].Rank()
	})
	return result
}

// ranksDesc returns the card ranks of a rank-sorted hand, highest first
func ranksDesc(sorted cards.Stack) []int {
	ranks := make([]int, len(sorted))
	for i, card := range sorted {
		ranks[i] = card.Rank()
	}
	return ranks
}

// isFlush checks if all cards are of the same suit
func isFlush(hand cards.Stack) bool {
	if len(hand) == 0 {
		return false
	}
	suit := hand[0].Suit
	for _, card := range hand[1:] {
		if card.Suit != suit {
			return false
		}
	}
	return true
}

// straightHighCard returns the high card of a straight, or 0 if the hand is
// not one. The wheel (A-5-4-3-2) is keyed by 5, not 14.
func straightHighCard(sorted cards.Stack) int {
	if len(sorted) != 5 {
		return 0
	}

	run := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank() != sorted[i-1].Rank()-1 {
			run = false
			break
		}
	}
	if run {
		return sorted[0].Rank()
	}

	// A,5,4,3,2: the ace sorts high so the run check above misses it
	if sorted[0].Rank() == 14 &&
		sorted[1].Rank() == 5 &&
		sorted[2].Rank() == 4 &&
		sorted[3].Rank() == 3 &&
		sorted[4].Rank() == 2 {
		return 5
	}

	return 0
}

// rankCounts counts the occurrences of each rank in the hand
func rankCounts(hand cards.Stack) map[int]int {
	counts := make(map[int]int)
	for _, card := range hand {
		counts[card.Rank()]++
	}
	return counts
}

// findFourOfAKind returns the quad rank and kicker, or zeros
func findFourOfAKind(hand cards.Stack) (int, int) {
	counts := rankCounts(hand)

	quad, kicker := 0, 0
	for rank, count := range counts {
		switch count {
		case 4:
			quad = rank
		case 1:
			kicker = rank
		}
	}
	if quad == 0 {
		return 0, 0
	}
	return quad, kicker
}

// findFullHouse returns the trips rank and pair rank, or zeros
func findFullHouse(hand cards.Stack) (int, int) {
	counts := rankCounts(hand)

	trips, pair := 0, 0
	for rank, count := range counts {
		switch count {
		case 3:
			trips = rank
		case 2:
			pair = rank
		}
	}
	if trips == 0 || pair == 0 {
		return 0, 0
	}
	return trips, pair
}

// findThreeOfAKind returns the trips rank and the kickers descending, or zeros
func findThreeOfAKind(hand cards.Stack) (int, []int) {
	counts := rankCounts(hand)

	trips := 0
	var kickers []int
	for rank, count := range counts {
		if count == 3 {
			trips = rank
		} else {
			kickers = append(kickers, rank)
		}
	}
	if trips == 0 {
		return 0, nil
	}

	sort.Sort(sort.Reverse(sort.IntSlice(kickers)))
	return trips, kickers
}

// findTwoPair returns both pair ranks (higher first) and the kicker, or zeros
func findTwoPair(hand cards.Stack) (int, int, int) {
	counts := rankCounts(hand)

	var pairs []int
	kicker := 0
	for rank, count := range counts {
		if count == 2 {
			pairs = append(pairs, rank)
		} else if count == 1 {
			kicker = rank
		}
	}
	if len(pairs) != 2 {
		return 0, 0, 0
	}

	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))
	return pairs[0], pairs[1], kicker
}

// findOnePair returns the pair rank and the kickers descending, or zeros
func findOnePair(hand cards.Stack) (int, []int) {
	counts := rankCounts(hand)

	pair := 0
	var kickers []int
	for rank, count := range counts {
		if count == 2 {
			pair = rank
		} else {
			kickers = append(kickers, rank)
		}
	}
	if pair == 0 {
		return 0, nil
	}

	sort.Sort(sort.Reverse(sort.IntSlice(kickers)))
	return pair, kickers
}

// combinations generates all possible combinations of k elements from n
func combinations(n, k int) [][]int {
	if k > n {
		return nil
	}

	var result [][]int
	var combine func(int, []int)

	combine = func(start int, current []int) {
		if len(current) == k {
			combo := make([]int, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}

		for i := start; i < n; i++ {
			current = append(current, i)
			combine(i+1, current)
			current = current[:len(current)-1]
		}
	}

	combine(0, []int{})
	return result
}
