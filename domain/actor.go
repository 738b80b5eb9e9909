package domain

import (
	"context"

	"github.com/lazharichir/holdem/cards"
)

// ActionKind enumerates the betting actions a seat may take.
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionRaise ActionKind = "raise"
)

// ActionRequest carries everything an actor needs to decide a move: the
// legal actions, the price of continuing, the raise bounds, and a view of
// the seat's own cards and the board. Hole cards of other seats are never
// included.
type ActionRequest struct {
	TableID        string
	HandID         string
	SeatName       string
	Street         Street
	Legal          []ActionKind
	ToCall         int
	MinRaiseTo     int
	MaxRaiseTo     int
	Stack          int
	Pot            int
	HoleCards      cards.Stack
	CommunityCards cards.Stack
}

// CanDo reports whether kind is among the legal actions for this request.
func (r ActionRequest) CanDo(kind ActionKind) bool {
	for _, k := range r.Legal {
		if k == kind {
			return true
		}
	}
	return false
}

// ActionResponse is an actor's answer to an ActionRequest. Amount is the
// raise-to total for the street and is ignored for the other actions.
type ActionResponse struct {
	Action ActionKind `json:"action"`
	Amount int        `json:"amount,omitempty"`
}

// Actor decides betting actions for a seat. Implementations may block on
// user input or the network; they must honor ctx cancellation. Returning an
// error is treated by the engine as the seat folding.
type Actor interface {
	Act(ctx context.Context, req ActionRequest) (ActionResponse, error)
}

// ActorFunc adapts a plain function into an Actor.
type ActorFunc func(ctx context.Context, req ActionRequest) (ActionResponse, error)

func (f ActorFunc) Act(ctx context.Context, req ActionRequest) (ActionResponse, error) {
	return f(ctx, req)
}
