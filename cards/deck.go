package cards

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyDeck is returned when drawing from an exhausted deck. With at most
// nine seats it can only happen through a dealing-count bug upstream.
var ErrEmptyDeck = errors.New("no cards left in deck")

// Deck is a shuffled draw pile of the 52 unique cards. One deck exists per
// hand and is discarded when the hand ends.
type Deck struct {
	cards Stack
}

// NewDeck creates a standard 52-card deck shuffled with the given source.
// A nil rng falls back to a time-seeded source.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var cards Stack
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	values := []Value{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	for _, suit := range suits {
		for _, value := range values {
			cards = append(cards, Card{Suit: suit, Value: value})
		}
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// NewStackedDeck creates a deck that deals the given cards in order.
// Used by tests to force known boards.
func NewStackedDeck(cards Stack) *Deck {
	return &Deck{cards: cards.Copy()}
}

// Draw removes and returns the top card of the deck.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Burn discards the top card without revealing it.
func (d *Deck) Burn() error {
	if len(d.cards) == 0 {
		return ErrEmptyDeck
	}

	d.cards = d.cards[1:]
	return nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
