package events

import (
	"time"

	"github.com/lazharichir/holdem/cards"
)

// Lobby and table membership events

type PlayerEnteredLobby struct {
	PlayerID string
	At       time.Time
}

func (e PlayerEnteredLobby) Name() string { return "PlayerEnteredLobby" }

type PlayerLeftLobby struct {
	PlayerID string
	At       time.Time
}

func (e PlayerLeftLobby) Name() string { return "PlayerLeftLobby" }

type PlayerJoinedTable struct {
	TableID  string
	PlayerID string
	Chips    int
	At       time.Time
}

func (e PlayerJoinedTable) Name() string { return "PlayerJoinedTable" }

type PlayerLeftTable struct {
	TableID  string
	PlayerID string
	At       time.Time
}

func (e PlayerLeftTable) Name() string { return "PlayerLeftTable" }

type PlayerChipsChanged struct {
	TableID  string
	PlayerID string
	Before   int
	After    int
	Change   int
	At       time.Time
}

func (e PlayerChipsChanged) Name() string { return "PlayerChipsChanged" }

// Hand lifecycle events

type HandStarted struct {
	TableID    string
	HandID     string
	Players    []string
	DealerSeat string
	SmallBlind int
	BigBlind   int
	At         time.Time
}

func (e HandStarted) Name() string { return "HandStarted" }

type BlindPosted struct {
	TableID  string
	HandID   string
	PlayerID string
	Kind     string // "small" or "big"
	Amount   int    // may be short of the blind when the stack cannot cover it
	AllIn    bool
	At       time.Time
}

func (e BlindPosted) Name() string { return "BlindPosted" }

type HoleCardDealt struct {
	TableID  string
	HandID   string
	PlayerID string
	Card     cards.Card
	At       time.Time
}

func (e HoleCardDealt) Name() string { return "HoleCardDealt" }

type HoleCardsDealt struct {
	TableID   string
	HandID    string
	DealOrder map[string]int // PlayerID to dealing position
	At        time.Time
}

func (e HoleCardsDealt) Name() string { return "HoleCardsDealt" }

type StreetAdvanced struct {
	TableID        string
	HandID         string
	PreviousStreet string
	NewStreet      string
	At             time.Time
}

func (e StreetAdvanced) Name() string { return "StreetAdvanced" }

type CardBurned struct {
	TableID string
	HandID  string
	Street  string
	At      time.Time
}

func (e CardBurned) Name() string { return "CardBurned" }

type CommunityCardDealt struct {
	TableID   string
	HandID    string
	Street    string
	CardIndex int // 0-based position on the board
	Card      cards.Card
	At        time.Time
}

func (e CommunityCardDealt) Name() string { return "CommunityCardDealt" }

// Betting events

type BettingRoundStarted struct {
	TableID    string
	HandID     string
	Street     string
	FirstToAct string
	At         time.Time
}

func (e BettingRoundStarted) Name() string { return "BettingRoundStarted" }

type PlayerTurnStarted struct {
	TableID    string
	HandID     string
	PlayerID   string
	Street     string
	ToCall     int
	MinRaiseTo int
	MaxRaiseTo int
	At         time.Time
}

func (e PlayerTurnStarted) Name() string { return "PlayerTurnStarted" }

type ActionTaken struct {
	TableID  string
	HandID   string
	PlayerID string
	Street   string
	Action   string
	Amount   int // chips moved by this action; for raises the new bet level is Amount+prior street bet
	AllIn    bool
	Pot      int
	At       time.Time
}

func (e ActionTaken) Name() string { return "ActionTaken" }

type ActionRejected struct {
	TableID  string
	HandID   string
	PlayerID string
	Street   string
	Action   string
	Amount   int
	Reason   string
	At       time.Time
}

func (e ActionRejected) Name() string { return "ActionRejected" }

type BettingRoundEnded struct {
	TableID string
	HandID  string
	Street  string
	Pot     int
	At      time.Time
}

func (e BettingRoundEnded) Name() string { return "BettingRoundEnded" }

// Showdown and payout events

type HandsEvaluated struct {
	TableID  string
	HandID   string
	PotIndex int
	Rankings map[string]string // PlayerID to hand rank name, eligible seats only
	At       time.Time
}

func (e HandsEvaluated) Name() string { return "HandsEvaluated" }

type PotAwarded struct {
	TableID  string
	HandID   string
	PotIndex int // 0 = main pot, 1+ = side pots
	PlayerID string
	Amount   int
	Reason   string
	At       time.Time
}

func (e PotAwarded) Name() string { return "PotAwarded" }

type PotBrokenDown struct {
	TableID   string
	HandID    string
	Breakdown map[string]int // PlayerID to total amount received
	At        time.Time
}

func (e PotBrokenDown) Name() string { return "PotBrokenDown" }

type SingleWinnerDetermined struct {
	TableID  string
	HandID   string
	PlayerID string
	Reason   string
	At       time.Time
}

func (e SingleWinnerDetermined) Name() string { return "SingleWinnerDetermined" }

type PlayerBusted struct {
	TableID  string
	HandID   string
	PlayerID string
	At       time.Time
}

func (e PlayerBusted) Name() string { return "PlayerBusted" }

type HandEnded struct {
	TableID  string
	HandID   string
	Duration int64 // in milliseconds
	Winners  []string
	At       time.Time
}

func (e HandEnded) Name() string { return "HandEnded" }
