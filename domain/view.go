package domain

import "github.com/lazharichir/holdem/cards"

// SeatView is what one player is allowed to see of another seat. Hole
// cards only appear on the viewer's own seat.
type SeatView struct {
	Name        string      `json:"name"`
	Chips       int         `json:"chips"`
	BetInStreet int         `json:"betInStreet"`
	BetInHand   int         `json:"betInHand"`
	Folded      bool        `json:"folded"`
	AllIn       bool        `json:"allIn"`
	IsDealer    bool        `json:"isDealer"`
	IsTurn      bool        `json:"isTurn"`
	HoleCards   cards.Stack `json:"holeCards,omitempty"`
}

// HandView is the state of a hand redacted for one player, suitable for
// sending to a client.
type HandView struct {
	TableID        string      `json:"tableId"`
	HandID         string      `json:"handId"`
	Street         Street      `json:"street"`
	Pot            int         `json:"pot"`
	CommunityCards cards.Stack `json:"communityCards"`
	Seats          []SeatView  `json:"seats"`
	ViewerSeat     string      `json:"viewerSeat,omitempty"`
}

// BuildHandView renders the hand as seen by viewerName. An empty viewer
// name produces a spectator view with every hole card hidden.
func BuildHandView(h *Hand, viewerName string) HandView {
	view := HandView{
		TableID:        h.TableID,
		HandID:         h.ID,
		Street:         h.Street,
		Pot:            h.Pot,
		CommunityCards: h.Community.Copy(),
		ViewerSeat:     viewerName,
	}

	for idx, seat := range h.Seats {
		sv := SeatView{
			Name:        seat.Name,
			Chips:       seat.Chips,
			BetInStreet: seat.BetInStreet,
			BetInHand:   seat.BetInHand,
			Folded:      seat.Folded,
			AllIn:       seat.AllIn,
			IsDealer:    idx == h.DealerPos,
			IsTurn:      seat.Name == h.CurrentBettor,
		}
		if seat.Name == viewerName {
			sv.HoleCards = seat.HoleCards.Copy()
		}
		view.Seats = append(view.Seats, sv)
	}

	return view
}
