package domain

import "github.com/lazharichir/holdem/cards"

// Seat represents one position at the table: the player's identity, their
// chip stack, and their betting state for the hand in progress.
//
// Chips plus BetInHand always equals the stack the seat started the hand
// with, minus anything already paid out. BetInStreet never exceeds BetInHand,
// and AllIn implies Chips == 0.
type Seat struct {
	Name        string
	Chips       int
	HoleCards   cards.Stack
	BetInStreet int // contribution since the current street began
	BetInHand   int // cumulative contribution for the whole hand, drives side-pot math
	Folded      bool
	AllIn       bool

	// Actor decides this seat's moves; human terminal, scripted bot and
	// remote client are interchangeable here.
	Actor Actor
}

// NewSeat creates a seat with a starting stack and the actor deciding for it.
func NewSeat(name string, chips int, actor Actor) *Seat {
	return &Seat{
		Name:  name,
		Chips: chips,
		Actor: actor,
	}
}

// CanAct reports whether the seat may still take betting actions this hand.
func (s *Seat) CanAct() bool {
	return !s.Folded && !s.AllIn
}

// placeBet moves chips from the stack into the seat's bet, clamped to what
// the stack can cover. Committing the full stack marks the seat all-in.
// The three counters move together so a partial bet never leaves the seat
// inconsistent. Returns the amount actually moved.
func (s *Seat) placeBet(requested int) int {
	actual := requested
	if actual > s.Chips {
		actual = s.Chips
	}
	if actual <= 0 {
		return 0
	}

	s.Chips -= actual
	s.BetInStreet += actual
	s.BetInHand += actual

	if s.Chips == 0 {
		s.AllIn = true
	}

	return actual
}

// resetForStreet clears the per-street contribution counter.
func (s *Seat) resetForStreet() {
	s.BetInStreet = 0
}

// resetForHand clears all per-hand state ahead of a new deal.
func (s *Seat) resetForHand() {
	s.HoleCards = nil
	s.BetInStreet = 0
	s.BetInHand = 0
	s.Folded = false
	s.AllIn = false
}
