package cards

import "strings"

// Stack represents multiple cards
type Stack []Card

// NewStack creates a new stack from the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

// StackFromStrings builds a stack from card shorthands ("Ah", "10s", ...).
func StackFromStrings(shorthands ...string) (Stack, error) {
	stack := make(Stack, 0, len(shorthands))
	for _, s := range shorthands {
		card, err := CardFromString(s)
		if err != nil {
			return nil, err
		}
		stack = append(stack, card)
	}
	return stack, nil
}

// String returns the string representation of the stack, e.g. "A♠ K♦ 2♣"
func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, card := range s {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

// Contains checks if the stack holds the given card
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// Copy returns a shallow copy of the stack
func (s Stack) Copy() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
