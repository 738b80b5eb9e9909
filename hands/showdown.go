package hands

import (
	"sort"

	"github.com/lazharichir/holdem/cards"
)

// ShowdownResult represents the outcome of comparing one player's best hand
// against the others contending for the same pot.
type ShowdownResult struct {
	PlayerID   string
	Evaluation HandEvaluation
	IsWinner   bool
	PlaceIndex int // 0 for first place, 1 for second place, etc.
}

// CompareHands evaluates each player's available cards (hole + community),
// and returns results sorted by hand strength, best first. Every player tied
// for the best hand is a winner.
func CompareHands(playerCards map[string]cards.Stack) ([]ShowdownResult, error) {
	if len(playerCards) == 0 {
		return nil, nil
	}

	results := make([]ShowdownResult, 0, len(playerCards))
	for playerID, available := range playerCards {
		eval, err := Evaluate(available)
		if err != nil {
			return nil, err
		}
		results = append(results, ShowdownResult{
			PlayerID:   playerID,
			Evaluation: eval,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if cmp := Compare(results[i].Evaluation, results[j].Evaluation); cmp != 0 {
			return cmp > 0
		}
		// Stable order for equal hands so callers get deterministic output
		return results[i].PlayerID < results[j].PlayerID
	})

	results[0].IsWinner = true
	placeIndex := 0
	for i := 1; i < len(results); i++ {
		if Compare(results[i].Evaluation, results[i-1].Evaluation) == 0 {
			results[i].PlaceIndex = results[i-1].PlaceIndex
			results[i].IsWinner = results[i-1].IsWinner
			continue
		}
		placeIndex = i
		results[i].PlaceIndex = placeIndex
	}

	return results, nil
}

// Winners returns the IDs of every player holding the best hand.
func Winners(results []ShowdownResult) []string {
	var winners []string
	for _, r := range results {
		if r.IsWinner {
			winners = append(winners, r.PlayerID)
		}
	}
	return winners
}
