package events

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders an event as a single human-readable log line. A logging
// collaborator may persist these lines verbatim; nothing in the engine reads
// them back.
func Describe(event Event) string {
	switch e := event.(type) {
	case PlayerEnteredLobby:
		return fmt.Sprintf("%s entered the lobby", e.PlayerID)
	case PlayerLeftLobby:
		return fmt.Sprintf("%s left the lobby", e.PlayerID)
	case PlayerJoinedTable:
		return fmt.Sprintf("%s sat down with %d chips", e.PlayerID, e.Chips)
	case PlayerLeftTable:
		return fmt.Sprintf("%s left the table", e.PlayerID)
	case PlayerChipsChanged:
		return fmt.Sprintf("%s stack %d -> %d", e.PlayerID, e.Before, e.After)
	case HandStarted:
		return fmt.Sprintf("hand started, dealer %s, blinds %d/%d, players: %s",
			e.DealerSeat, e.SmallBlind, e.BigBlind, strings.Join(e.Players, ", "))
	case BlindPosted:
		suffix := ""
		if e.AllIn {
			suffix = " (all-in)"
		}
		return fmt.Sprintf("%s posts %s blind %d%s", e.PlayerID, e.Kind, e.Amount, suffix)
	case HoleCardDealt:
		return fmt.Sprintf("%s dealt a hole card", e.PlayerID)
	case HoleCardsDealt:
		return "hole cards dealt"
	case StreetAdvanced:
		return fmt.Sprintf("street: %s -> %s", e.PreviousStreet, e.NewStreet)
	case CardBurned:
		return fmt.Sprintf("card burned before the %s", e.Street)
	case CommunityCardDealt:
		return fmt.Sprintf("%s card: %s", e.Street, e.Card)
	case BettingRoundStarted:
		return fmt.Sprintf("%s betting begins, first to act %s", e.Street, e.FirstToAct)
	case PlayerTurnStarted:
		if e.ToCall > 0 {
			return fmt.Sprintf("%s to act, %d to call", e.PlayerID, e.ToCall)
		}
		return fmt.Sprintf("%s to act", e.PlayerID)
	case ActionTaken:
		switch {
		case e.Action == "fold" || e.Action == "check":
			return fmt.Sprintf("%s %ss", e.PlayerID, e.Action)
		case e.AllIn:
			// a short call may move fewer chips than the call price
			return fmt.Sprintf("%s %ss all-in for %d, pot %d", e.PlayerID, e.Action, e.Amount, e.Pot)
		default:
			return fmt.Sprintf("%s %ss %d, pot %d", e.PlayerID, e.Action, e.Amount, e.Pot)
		}
	case ActionRejected:
		return fmt.Sprintf("%s proposed %s rejected: %s", e.PlayerID, e.Action, e.Reason)
	case BettingRoundEnded:
		return fmt.Sprintf("%s betting closed, pot %d", e.Street, e.Pot)
	case HandsEvaluated:
		return fmt.Sprintf("pot %d showdown: %s", e.PotIndex, describeRankings(e.Rankings))
	case PotAwarded:
		return fmt.Sprintf("%s wins %d from pot %d (%s)", e.PlayerID, e.Amount, e.PotIndex, e.Reason)
	case PotBrokenDown:
		return fmt.Sprintf("pot split: %s", describeBreakdown(e.Breakdown))
	case SingleWinnerDetermined:
		return fmt.Sprintf("%s wins uncontested (%s)", e.PlayerID, e.Reason)
	case PlayerBusted:
		return fmt.Sprintf("%s busted out", e.PlayerID)
	case HandEnded:
		return fmt.Sprintf("hand ended, winners: %s", strings.Join(e.Winners, ", "))
	default:
		return event.Name()
	}
}

func describeRankings(rankings map[string]string) string {
	keys := make([]string, 0, len(rankings))
	for k := range rankings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s has %s", k, rankings[k])
	}
	return strings.Join(parts, ", ")
}

func describeBreakdown(breakdown map[string]int) string {
	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s +%d", k, breakdown[k])
	}
	return strings.Join(parts, ", ")
}
