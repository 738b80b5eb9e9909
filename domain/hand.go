package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/hands"
)

// Hand orchestrates a single hand from blinds to payout: it posts the
// blinds, deals, runs one betting round per street, short-circuits when the
// hand can no longer be contested, and settles the pots. Everything the
// hand does is emitted as events; the seats' chip stacks are the only state
// it mutates outside itself.
type Hand struct {
	ID        string
	TableID   string
	Rules     TableRules
	Seats     []*Seat
	DealerPos int
	Street    Street
	Deck      *cards.Deck
	Community cards.Stack
	Pot       int

	// CurrentBettor names the seat being waited on, empty between turns.
	CurrentBettor string

	StartedAt time.Time
	Events    []events.Event

	eventHandlers []events.EventHandler
}

// NewHand snapshots the participating seats and prepares them for a fresh
// deal. The dealer position indexes into seats.
func NewHand(tableID string, rules TableRules, seats []*Seat, dealerPos int, deck *cards.Deck) *Hand {
	h := &Hand{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Rules:     rules,
		Seats:     seats,
		DealerPos: dealerPos,
		Street:    StreetPreFlop,
		Deck:      deck,
	}

	for _, seat := range h.Seats {
		seat.resetForHand()
	}

	return h
}

// AddEventHandler subscribes a handler to everything the hand emits.
func (h *Hand) AddEventHandler(handler events.EventHandler) {
	h.eventHandlers = append(h.eventHandlers, handler)
}

func (h *Hand) emitEvent(event events.Event) {
	h.Events = append(h.Events, event)
	for _, handler := range h.eventHandlers {
		handler(event)
	}
}

// Play runs the whole hand. It returns an error only for broken
// preconditions (an exhausted deck, a cancelled context); poker outcomes,
// including everyone folding, are normal completions.
func (h *Hand) Play(ctx context.Context) error {
	h.StartedAt = time.Now()
	h.emitEvent(events.HandStarted{
		TableID:    h.TableID,
		HandID:     h.ID,
		Players:    h.seatNames(),
		DealerSeat: h.Seats[h.DealerPos].Name,
		SmallBlind: h.Rules.SmallBlind,
		BigBlind:   h.Rules.BigBlind,
		At:         time.Now(),
	})

	h.postBlinds()
	if err := h.dealHoleCards(); err != nil {
		return err
	}

	for _, street := range []Street{StreetPreFlop, StreetFlop, StreetTurn, StreetRiver} {
		if street != StreetPreFlop {
			if err := h.advanceStreet(street); err != nil {
				return err
			}
		}

		if h.countAble() >= 2 {
			if err := h.runBetting(ctx, street); err != nil {
				return err
			}
		}

		if h.countNonFolded() <= 1 {
			break
		}

		// with fewer than two seats able to act the remaining streets
		// cannot be bet, so the board runs out straight to showdown
		if h.countAble() < 2 && street != StreetRiver {
			if err := h.runOutBoard(street); err != nil {
				return err
			}
			break
		}
	}

	h.settle()

	h.emitEvent(events.HandEnded{
		TableID:  h.TableID,
		HandID:   h.ID,
		Duration: time.Since(h.StartedAt).Milliseconds(),
		Winners:  h.winnersFromPayouts(),
		At:       time.Now(),
	})

	return nil
}

// postBlinds charges the small and big blind. Heads-up the dealer posts the
// small blind; otherwise the two seats left of the dealer post. A stack
// that cannot cover its blind goes all-in for what it has.
func (h *Hand) postBlinds() {
	smallPos := h.seatAfter(h.DealerPos)
	if len(h.Seats) == 2 {
		smallPos = h.DealerPos
	}
	bigPos := h.seatAfter(smallPos)

	h.postBlind(h.Seats[smallPos], "small", h.Rules.SmallBlind)
	h.postBlind(h.Seats[bigPos], "big", h.Rules.BigBlind)
}

func (h *Hand) postBlind(seat *Seat, kind string, amount int) {
	paid := seat.placeBet(amount)
	h.Pot += paid
	h.emitEvent(events.BlindPosted{
		TableID:  h.TableID,
		HandID:   h.ID,
		PlayerID: seat.Name,
		Kind:     kind,
		Amount:   paid,
		AllIn:    seat.AllIn,
		At:       time.Now(),
	})
}

// dealHoleCards gives every seat two cards, one at a time, starting left of
// the dealer.
func (h *Hand) dealHoleCards() error {
	order := h.dealOrder()

	for round := 0; round < 2; round++ {
		for _, pos := range order {
			seat := h.Seats[pos]
			card, err := h.Deck.Draw()
			if err != nil {
				return err
			}
			seat.HoleCards = append(seat.HoleCards, card)
			h.emitEvent(events.HoleCardDealt{
				TableID:  h.TableID,
				HandID:   h.ID,
				PlayerID: seat.Name,
				Card:     card,
				At:       time.Now(),
			})
		}
	}

	dealOrder := make(map[string]int, len(order))
	for i, pos := range order {
		dealOrder[h.Seats[pos].Name] = i
	}
	h.emitEvent(events.HoleCardsDealt{
		TableID:   h.TableID,
		HandID:    h.ID,
		DealOrder: dealOrder,
		At:        time.Now(),
	})

	return nil
}

// advanceStreet moves to the next street, resets the per-street bets and
// deals the board cards for it: burn then three for the flop, burn then one
// for the turn and the river.
func (h *Hand) advanceStreet(street Street) error {
	previous := h.Street
	h.Street = street
	for _, seat := range h.Seats {
		seat.resetForStreet()
	}
	h.emitEvent(events.StreetAdvanced{
		TableID:        h.TableID,
		HandID:         h.ID,
		PreviousStreet: string(previous),
		NewStreet:      string(street),
		At:             time.Now(),
	})

	count := 1
	if street == StreetFlop {
		count = 3
	}

	if err := h.Deck.Burn(); err != nil {
		return err
	}
	h.emitEvent(events.CardBurned{
		TableID: h.TableID,
		HandID:  h.ID,
		Street:  string(street),
		At:      time.Now(),
	})

	for i := 0; i < count; i++ {
		card, err := h.Deck.Draw()
		if err != nil {
			return err
		}
		h.Community = append(h.Community, card)
		h.emitEvent(events.CommunityCardDealt{
			TableID:   h.TableID,
			HandID:    h.ID,
			Street:    string(street),
			CardIndex: len(h.Community) - 1,
			Card:      card,
			At:        time.Now(),
		})
	}

	return nil
}

// runOutBoard deals every street after the given one without betting.
func (h *Hand) runOutBoard(after Street) error {
	remaining := map[Street][]Street{
		StreetPreFlop: {StreetFlop, StreetTurn, StreetRiver},
		StreetFlop:    {StreetTurn, StreetRiver},
		StreetTurn:    {StreetRiver},
	}
	for _, street := range remaining[after] {
		if err := h.advanceStreet(street); err != nil {
			return err
		}
	}
	return nil
}

// runBetting runs one betting round, soliciting each seat in turn through
// its actor. Illegal responses are rejected and re-solicited; a seat that
// keeps failing, times out or errors is folded.
func (h *Hand) runBetting(ctx context.Context, street Street) error {
	round := NewBettingRound(h.Seats, h.DealerPos, street, h.Rules.BigBlind)

	if first := round.SeatToAct(); first != nil {
		h.emitEvent(events.BettingRoundStarted{
			TableID:    h.TableID,
			HandID:     h.ID,
			Street:     string(street),
			FirstToAct: first.Name,
			At:         time.Now(),
		})
	}

	for round.State() == RoundInProgress {
		if err := ctx.Err(); err != nil {
			return err
		}

		seat := round.SeatToAct()
		if err := h.playTurn(ctx, round, seat); err != nil {
			return err
		}
	}

	h.emitEvent(events.BettingRoundEnded{
		TableID: h.TableID,
		HandID:  h.ID,
		Street:  string(street),
		Pot:     h.Pot,
		At:      time.Now(),
	})

	return nil
}

func (h *Hand) playTurn(ctx context.Context, round *BettingRound, seat *Seat) error {
	toCall, minRaiseTo, maxRaiseTo := round.Constraints(seat)
	req := ActionRequest{
		TableID:        h.TableID,
		HandID:         h.ID,
		SeatName:       seat.Name,
		Street:         h.Street,
		Legal:          round.LegalActions(seat),
		ToCall:         toCall,
		MinRaiseTo:     minRaiseTo,
		MaxRaiseTo:     maxRaiseTo,
		Stack:          seat.Chips,
		Pot:            h.Pot,
		HoleCards:      seat.HoleCards.Copy(),
		CommunityCards: h.Community.Copy(),
	}

	h.CurrentBettor = seat.Name
	defer func() { h.CurrentBettor = "" }()

	h.emitEvent(events.PlayerTurnStarted{
		TableID:    h.TableID,
		HandID:     h.ID,
		PlayerID:   seat.Name,
		Street:     string(h.Street),
		ToCall:     toCall,
		MinRaiseTo: minRaiseTo,
		MaxRaiseTo: maxRaiseTo,
		At:         time.Now(),
	})

	retries := h.Rules.MaxActionRetries
	if retries <= 0 {
		retries = 3
	}

	for attempt := 0; attempt < retries; attempt++ {
		resp, err := h.solicit(ctx, seat, req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// unreachable or broken actor: fold them and move on
			resp = ActionResponse{Action: ActionFold}
		}

		applied, err := round.Apply(resp)
		if err != nil {
			h.emitEvent(events.ActionRejected{
				TableID:  h.TableID,
				HandID:   h.ID,
				PlayerID: seat.Name,
				Street:   string(h.Street),
				Action:   string(resp.Action),
				Amount:   resp.Amount,
				Reason:   err.Error(),
				At:       time.Now(),
			})
			continue
		}

		h.Pot += applied.ChipsMoved
		h.emitEvent(events.ActionTaken{
			TableID:  h.TableID,
			HandID:   h.ID,
			PlayerID: seat.Name,
			Street:   string(h.Street),
			Action:   string(applied.Action),
			Amount:   applied.ChipsMoved,
			AllIn:    applied.AllIn,
			Pot:      h.Pot,
			At:       time.Now(),
		})
		return nil
	}

	// out of retries, the fold is always legal
	applied, err := round.Apply(ActionResponse{Action: ActionFold})
	if err != nil {
		return fmt.Errorf("force-folding %s: %w", seat.Name, err)
	}
	h.emitEvent(events.ActionTaken{
		TableID:  h.TableID,
		HandID:   h.ID,
		PlayerID: seat.Name,
		Street:   string(h.Street),
		Action:   string(applied.Action),
		At:       time.Now(),
		Pot:      h.Pot,
	})
	return nil
}

// solicit asks the seat's actor for a decision, bounded by the table's
// action timeout when one is configured.
func (h *Hand) solicit(ctx context.Context, seat *Seat, req ActionRequest) (ActionResponse, error) {
	if h.Rules.ActionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Rules.ActionTimeout)
		defer cancel()
	}
	return seat.Actor.Act(ctx, req)
}

// settle pays the money out. With a single seat left standing the whole pot
// goes to it without any showdown; otherwise the contributions are split
// into pots and each pot goes to the best eligible hand.
func (h *Hand) settle() {
	if h.countNonFolded() == 1 {
		winner := h.lastNonFolded()
		h.emitEvent(events.SingleWinnerDetermined{
			TableID:  h.TableID,
			HandID:   h.ID,
			PlayerID: winner.Name,
			Reason:   "all opponents folded",
			At:       time.Now(),
		})
		h.payout(0, winner, h.Pot, "last player standing")
		h.finishPayouts()
		return
	}

	previous := h.Street
	h.Street = StreetShowdown
	h.emitEvent(events.StreetAdvanced{
		TableID:        h.TableID,
		HandID:         h.ID,
		PreviousStreet: string(previous),
		NewStreet:      string(StreetShowdown),
		At:             time.Now(),
	})

	for potIndex, pot := range BuildPots(h.Seats) {
		h.settlePot(potIndex, pot)
	}
	h.finishPayouts()
}

func (h *Hand) settlePot(potIndex int, pot Pot) {
	if len(pot.Eligible) == 1 {
		h.payout(potIndex, pot.Eligible[0], pot.Amount, "sole eligible seat")
		return
	}

	holdings := make(map[string]cards.Stack, len(pot.Eligible))
	byName := make(map[string]*Seat, len(pot.Eligible))
	for _, seat := range pot.Eligible {
		holdings[seat.Name] = append(seat.HoleCards.Copy(), h.Community...)
		byName[seat.Name] = seat
	}

	results, err := hands.CompareHands(holdings)
	if err != nil {
		// evaluation only fails on malformed holdings, which the dealing
		// above cannot produce
		return
	}

	rankings := make(map[string]string, len(results))
	for _, result := range results {
		rankings[result.PlayerID] = result.Evaluation.Rank.String()
	}
	h.emitEvent(events.HandsEvaluated{
		TableID:  h.TableID,
		HandID:   h.ID,
		PotIndex: potIndex,
		Rankings: rankings,
		At:       time.Now(),
	})

	var winners []*Seat
	for _, pos := range h.dealOrder() {
		seat := h.Seats[pos]
		if _, eligible := byName[seat.Name]; !eligible {
			continue
		}
		for _, name := range hands.Winners(results) {
			if name == seat.Name {
				winners = append(winners, seat)
			}
		}
	}

	shares := SplitAmount(pot.Amount, winners)
	for _, winner := range winners {
		h.payout(potIndex, winner, shares[winner], "best hand")
	}
}

// payouts accumulates what each seat received this hand, for the final
// breakdown event and the winners list.
func (h *Hand) payout(potIndex int, seat *Seat, amount int, reason string) {
	if amount <= 0 {
		return
	}
	before := seat.Chips
	seat.Chips += amount
	h.emitEvent(events.PlayerChipsChanged{
		TableID:  h.TableID,
		PlayerID: seat.Name,
		Before:   before,
		After:    seat.Chips,
		Change:   amount,
		At:       time.Now(),
	})
	h.emitEvent(events.PotAwarded{
		TableID:  h.TableID,
		HandID:   h.ID,
		PotIndex: potIndex,
		PlayerID: seat.Name,
		Amount:   amount,
		Reason:   reason,
		At:       time.Now(),
	})
}

func (h *Hand) finishPayouts() {
	breakdown := map[string]int{}
	for _, event := range h.Events {
		if award, ok := event.(events.PotAwarded); ok {
			breakdown[award.PlayerID] += award.Amount
		}
	}
	h.emitEvent(events.PotBrokenDown{
		TableID:   h.TableID,
		HandID:    h.ID,
		Breakdown: breakdown,
		At:        time.Now(),
	})

	for _, seat := range h.Seats {
		if seat.Chips == 0 {
			h.emitEvent(events.PlayerBusted{
				TableID:  h.TableID,
				HandID:   h.ID,
				PlayerID: seat.Name,
				At:       time.Now(),
			})
		}
	}
}

func (h *Hand) winnersFromPayouts() []string {
	seen := map[string]bool{}
	var winners []string
	for _, event := range h.Events {
		award, ok := event.(events.PotAwarded)
		if !ok || seen[award.PlayerID] {
			continue
		}
		seen[award.PlayerID] = true
		winners = append(winners, award.PlayerID)
	}
	return winners
}

// dealOrder lists seat positions clockwise starting left of the dealer.
func (h *Hand) dealOrder() []int {
	order := make([]int, 0, len(h.Seats))
	for i := 1; i <= len(h.Seats); i++ {
		order = append(order, (h.DealerPos+i)%len(h.Seats))
	}
	return order
}

func (h *Hand) seatAfter(pos int) int {
	return (pos + 1) % len(h.Seats)
}

func (h *Hand) seatNames() []string {
	names := make([]string, len(h.Seats))
	for i, seat := range h.Seats {
		names[i] = seat.Name
	}
	return names
}

func (h *Hand) countNonFolded() int {
	count := 0
	for _, seat := range h.Seats {
		if !seat.Folded {
			count++
		}
	}
	return count
}

func (h *Hand) lastNonFolded() *Seat {
	for _, seat := range h.Seats {
		if !seat.Folded {
			return seat
		}
	}
	return nil
}

func (h *Hand) countAble() int {
	count := 0
	for _, seat := range h.Seats {
		if seat.CanAct() {
			count++
		}
	}
	return count
}
