package domain

import "errors"

// Street identifies a phase of the hand.
type Street string

const (
	StreetPreFlop  Street = "preflop"
	StreetFlop     Street = "flop"
	StreetTurn     Street = "turn"
	StreetRiver    Street = "river"
	StreetShowdown Street = "showdown"
)

// RoundState tracks the life cycle of a betting round.
type RoundState string

const (
	RoundNotStarted RoundState = "not_started"
	RoundInProgress RoundState = "in_progress"
	RoundClosed     RoundState = "closed"
)

var (
	ErrRoundClosed        = errors.New("betting round is closed")
	ErrIllegalAction      = errors.New("action is not legal for this seat")
	ErrIllegalRaiseAmount = errors.New("raise amount is outside the legal range")
)

// AppliedAction reports what a successfully applied action did to the round.
type AppliedAction struct {
	Seat       *Seat
	Action     ActionKind
	ChipsMoved int
	RaisedTo   int
	AllIn      bool
}

// BettingRound runs the action for a single street. It owns turn order, the
// current bet level, the min-raise increment and closure detection; the
// seats themselves are shared with the enclosing hand.
//
// The round holds the standard rules: preflop action starts left of the big
// blind (or on the dealer heads-up) and the big blind retains the option to
// raise; postflop action starts left of the dealer. A raise reopens the
// action for everyone else still able to act.
type BettingRound struct {
	seats    []*Seat
	dealer   int
	street   Street
	bigBlind int

	state      RoundState
	currentBet int
	minRaise   int
	toAct      int
	acted      map[int]bool // seats that acted since the last raise
}

// NewBettingRound prepares the round for a street. For the preflop round
// the blinds must already be posted; the big blind sets the opening bet
// level there. The round may close immediately when fewer than two seats
// can act.
func NewBettingRound(seats []*Seat, dealer int, street Street, bigBlind int) *BettingRound {
	br := &BettingRound{
		seats:    seats,
		dealer:   dealer,
		street:   street,
		bigBlind: bigBlind,
		state:    RoundNotStarted,
		minRaise: bigBlind,
		acted:    map[int]bool{},
	}

	start := br.dealer + 1
	if street == StreetPreFlop {
		br.currentBet = bigBlind
		if len(seats) == 2 {
			// heads-up the dealer posts the small blind and opens the preflop action
			start = br.dealer
		} else {
			start = br.dealer + 3
		}
	}

	br.state = RoundInProgress
	br.toAct = br.nextAbleSeat(start)
	if br.isClosed() {
		br.state = RoundClosed
	}

	return br
}

// State returns the round's life-cycle state.
func (br *BettingRound) State() RoundState {
	return br.state
}

// CurrentBet returns the bet level seats must match this street.
func (br *BettingRound) CurrentBet() int {
	return br.currentBet
}

// SeatToAct returns the seat whose turn it is, or nil once the round closed.
func (br *BettingRound) SeatToAct() *Seat {
	if br.state != RoundInProgress {
		return nil
	}
	return br.seats[br.toAct]
}

// LegalActions lists what the given seat may do right now. Folding is
// always allowed; checking only for free; calling only when facing a bet;
// raising only when the seat has chips left beyond the call.
func (br *BettingRound) LegalActions(seat *Seat) []ActionKind {
	toCall := br.currentBet - seat.BetInStreet

	legal := []ActionKind{ActionFold}
	if toCall == 0 {
		legal = append(legal, ActionCheck)
	}
	if toCall > 0 && seat.Chips > 0 {
		legal = append(legal, ActionCall)
	}
	if seat.Chips > toCall {
		legal = append(legal, ActionRaise)
	}
	return legal
}

// Constraints returns the call price and the raise-to bounds for a seat.
// When the seat's whole stack does not reach the min-raise level, the only
// legal raise is the all-in for MaxRaiseTo.
func (br *BettingRound) Constraints(seat *Seat) (toCall, minRaiseTo, maxRaiseTo int) {
	toCall = br.currentBet - seat.BetInStreet
	minRaiseTo = br.currentBet + br.minRaise
	maxRaiseTo = seat.BetInStreet + seat.Chips
	if minRaiseTo > maxRaiseTo {
		minRaiseTo = maxRaiseTo
	}
	return toCall, minRaiseTo, maxRaiseTo
}

// Apply validates and executes the acting seat's response, then advances
// the turn or closes the round. A raise amount below the minimum is only
// accepted as a full-stack all-in; a non-positive amount is treated as a
// malformed message and clamped to the smallest legal raise.
func (br *BettingRound) Apply(resp ActionResponse) (AppliedAction, error) {
	if br.state != RoundInProgress {
		return AppliedAction{}, ErrRoundClosed
	}

	seat := br.seats[br.toAct]
	if !seatHasAction(br.LegalActions(seat), resp.Action) {
		return AppliedAction{}, ErrIllegalAction
	}

	toCall, minRaiseTo, maxRaiseTo := br.Constraints(seat)
	applied := AppliedAction{Seat: seat, Action: resp.Action}

	switch resp.Action {
	case ActionFold:
		seat.Folded = true

	case ActionCheck:
		// nothing moves

	case ActionCall:
		applied.ChipsMoved = seat.placeBet(toCall)

	case ActionRaise:
		target := resp.Amount
		if target <= 0 {
			target = minRaiseTo
		}
		if target > maxRaiseTo {
			return AppliedAction{}, ErrIllegalRaiseAmount
		}
		if target < minRaiseTo && target != maxRaiseTo {
			return AppliedAction{}, ErrIllegalRaiseAmount
		}
		if target <= br.currentBet {
			return AppliedAction{}, ErrIllegalRaiseAmount
		}

		applied.ChipsMoved = seat.placeBet(target - seat.BetInStreet)
		br.minRaise = seat.BetInStreet - br.currentBet
		br.currentBet = seat.BetInStreet
		applied.RaisedTo = br.currentBet

		// a raise reopens the action for everyone else
		br.acted = map[int]bool{}
	}

	applied.AllIn = seat.AllIn
	br.acted[br.toAct] = true

	if br.isClosed() {
		br.state = RoundClosed
	} else {
		br.toAct = br.nextAbleSeat(br.toAct + 1)
	}

	return applied, nil
}

// isClosed implements the closure rule: the round ends once every seat
// still able to act has matched the current bet and acted since the last
// raise. A lone able seat that has matched is not prompted again, since no
// opponent could respond to a raise.
func (br *BettingRound) isClosed() bool {
	able := br.ableSeats()
	if len(able) == 0 {
		return true
	}

	for _, idx := range able {
		if br.seats[idx].BetInStreet != br.currentBet {
			return false
		}
	}
	if len(able) == 1 {
		return true
	}

	for _, idx := range able {
		if !br.acted[idx] {
			return false
		}
	}
	return true
}

func (br *BettingRound) ableSeats() []int {
	var able []int
	for idx, seat := range br.seats {
		if seat.CanAct() {
			able = append(able, idx)
		}
	}
	return able
}

// nextAbleSeat walks clockwise from the given position to the next seat
// that can still act.
func (br *BettingRound) nextAbleSeat(from int) int {
	n := len(br.seats)
	for offset := 0; offset < n; offset++ {
		idx := (from + offset) % n
		if br.seats[idx].CanAct() {
			return idx
		}
	}
	return from % n
}

func seatHasAction(legal []ActionKind, kind ActionKind) bool {
	for _, k := range legal {
		if k == kind {
			return true
		}
	}
	return false
}
