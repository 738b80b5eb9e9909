package domain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sanity-io/litter"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/events"
)

type TableStatus string

const (
	TableStatusWaiting TableStatus = "waiting"
	TableStatusPlaying TableStatus = "playing"
	TableStatusEnded   TableStatus = "ended"
)

var (
	ErrTableFull         = errors.New("table has no free seat")
	ErrAlreadySeated     = errors.New("player is already seated at this table")
	ErrNotSeated         = errors.New("player is not seated at this table")
	ErrHandInProgress    = errors.New("a hand is already in progress")
	ErrInsufficientSeats = errors.New("need at least two funded seats to deal")
)

// TableRules holds the game parameters for a table.
type TableRules struct {
	SmallBlind       int
	BigBlind         int
	MaxSeats         int
	ActionTimeout    time.Duration // zero means actors may take forever
	MaxActionRetries int           // illegal responses tolerated before a forced fold
	HandStartDelay   time.Duration // pause between hands in a session
}

// NewTableRules returns sensible defaults for a small cash game.
func NewTableRules() TableRules {
	return TableRules{
		SmallBlind:       5,
		BigBlind:         10,
		MaxSeats:         9,
		ActionTimeout:    30 * time.Second,
		MaxActionRetries: 3,
	}
}

// Table is a cash-game table: a roster of seats, a dealer button and at
// most one hand in flight. Seats keep their stacks across hands; busted
// seats are removed when the hand ends.
//
// Table is not safe for concurrent mutation; callers running hands from
// multiple goroutines must serialize access themselves.
type Table struct {
	ID     string
	Name   string
	Rules  TableRules
	Status TableStatus

	Seats       []*Seat
	DealerIndex int
	ActiveHand  *Hand

	// Debug dumps every event to stdout, handy while developing actors.
	Debug bool

	rng        *rand.Rand
	handsDealt int

	eventHandlers []events.EventHandler
}

// NewTable creates an empty table. A nil rng means each deck is seeded
// from the clock; tests pass a fixed seed for reproducible deals.
func NewTable(name string, rules TableRules, rng *rand.Rand) *Table {
	if rules.MaxSeats <= 0 {
		rules.MaxSeats = 9
	}
	return &Table{
		ID:     uuid.NewString(),
		Name:   name,
		Rules:  rules,
		Status: TableStatusWaiting,
		rng:    rng,
	}
}

// AddEventHandler subscribes a handler to all table and hand events.
func (t *Table) AddEventHandler(handler events.EventHandler) {
	t.eventHandlers = append(t.eventHandlers, handler)
}

func (t *Table) emitEvent(event events.Event) {
	if t.Debug {
		litter.D(event)
	}
	for _, handler := range t.eventHandlers {
		handler(event)
	}
}

// SeatPlayer adds a player with a starting stack decided by an actor.
func (t *Table) SeatPlayer(name string, chips int, actor Actor) (*Seat, error) {
	if t.Status == TableStatusEnded {
		return nil, fmt.Errorf("table %s has ended", t.ID)
	}
	if len(t.Seats) >= t.Rules.MaxSeats {
		return nil, ErrTableFull
	}
	if t.FindSeat(name) != nil {
		return nil, ErrAlreadySeated
	}
	if chips <= 0 {
		return nil, fmt.Errorf("cannot seat %s with a stack of %d", name, chips)
	}

	seat := NewSeat(name, chips, actor)
	t.Seats = append(t.Seats, seat)
	t.emitEvent(events.PlayerJoinedTable{
		TableID:  t.ID,
		PlayerID: name,
		Chips:    chips,
		At:       time.Now(),
	})

	return seat, nil
}

// RemovePlayer takes a player off the table between hands.
func (t *Table) RemovePlayer(name string) error {
	if t.ActiveHand != nil {
		return ErrHandInProgress
	}
	for idx, seat := range t.Seats {
		if seat.Name == name {
			t.removeSeatAt(idx)
			t.emitEvent(events.PlayerLeftTable{
				TableID:  t.ID,
				PlayerID: name,
				At:       time.Now(),
			})
			return nil
		}
	}
	return ErrNotSeated
}

// FindSeat returns the seat for a player name, or nil.
func (t *Table) FindSeat(name string) *Seat {
	for _, seat := range t.Seats {
		if seat.Name == name {
			return seat
		}
	}
	return nil
}

// StartNewHand deals the next hand. The dealer button advances one seat
// per hand; the first hand is dealt with the button on the first seat.
func (t *Table) StartNewHand() (*Hand, error) {
	if t.ActiveHand != nil {
		return nil, ErrHandInProgress
	}
	if len(t.Seats) < 2 {
		return nil, ErrInsufficientSeats
	}

	if t.handsDealt > 0 {
		t.DealerIndex = (t.DealerIndex + 1) % len(t.Seats)
	}

	hand := NewHand(t.ID, t.Rules, t.Seats, t.DealerIndex, cards.NewDeck(t.rng))
	hand.AddEventHandler(t.handleHandEvent)

	t.ActiveHand = hand
	t.Status = TableStatusPlaying
	t.handsDealt++

	return hand, nil
}

// handleHandEvent forwards hand events to the table's subscribers and
// reacts to the hand ending: busted seats leave the table and the table
// ends when fewer than two remain.
func (t *Table) handleHandEvent(event events.Event) {
	t.emitEvent(event)

	if _, ended := event.(events.HandEnded); !ended {
		return
	}

	t.ActiveHand = nil
	t.removeBustedSeats()

	if len(t.Seats) < 2 {
		t.Status = TableStatusEnded
	}
}

// removeBustedSeats drops seats with no chips left, keeping the dealer
// button pointing at the same live seat so the next advance lands where
// it should.
func (t *Table) removeBustedSeats() {
	for idx := len(t.Seats) - 1; idx >= 0; idx-- {
		if t.Seats[idx].Chips > 0 {
			continue
		}
		t.removeSeatAt(idx)
	}
}

func (t *Table) removeSeatAt(idx int) {
	t.Seats = append(t.Seats[:idx], t.Seats[idx+1:]...)
	if idx <= t.DealerIndex {
		t.DealerIndex--
	}
	if t.DealerIndex < 0 {
		t.DealerIndex = len(t.Seats) - 1
	}
	if t.DealerIndex < 0 {
		t.DealerIndex = 0
	}
}

// Run plays hands back to back until the table cannot field two stacks or
// the context is cancelled. It returns nil when the game ends naturally.
func (t *Table) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hand, err := t.StartNewHand()
		if errors.Is(err, ErrInsufficientSeats) {
			t.Status = TableStatusEnded
			return nil
		}
		if err != nil {
			return err
		}

		if err := hand.Play(ctx); err != nil {
			t.ActiveHand = nil
			return err
		}

		if t.Status == TableStatusEnded {
			return nil
		}

		if t.Rules.HandStartDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(t.Rules.HandStartDelay):
			}
		}
	}
}
