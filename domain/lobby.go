package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/lazharichir/holdem/events"
)

var (
	ErrUnknownPlayer = errors.New("player is not in the lobby")
	ErrUnknownTable  = errors.New("no such table")
)

// Player is a lobby member. The balance is the bankroll chips are bought
// in from when sitting down at a table.
type Player struct {
	ID      string
	Name    string
	Balance int
}

// Lobby tracks the players connected to the service and the tables they
// can join. It is safe for concurrent use.
type Lobby struct {
	mu      sync.RWMutex
	players map[string]*Player
	tables  map[string]*Table

	eventHandlers []events.EventHandler
}

func NewLobby() *Lobby {
	return &Lobby{
		players: map[string]*Player{},
		tables:  map[string]*Table{},
	}
}

// AddEventHandler subscribes to lobby events and to every table's events.
func (l *Lobby) AddEventHandler(handler events.EventHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eventHandlers = append(l.eventHandlers, handler)
	for _, table := range l.tables {
		table.AddEventHandler(handler)
	}
}

func (l *Lobby) emitEvent(event events.Event) {
	for _, handler := range l.eventHandlers {
		handler(event)
	}
}

// EnterLobby registers a player, or refreshes them if already present.
func (l *Lobby) EnterLobby(id, name string, balance int) *Player {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.players[id]; ok {
		existing.Name = name
		return existing
	}

	player := &Player{ID: id, Name: name, Balance: balance}
	l.players[id] = player
	l.emitEvent(events.PlayerEnteredLobby{PlayerID: id, At: time.Now()})
	return player
}

// LeaveLobby removes a player.
func (l *Lobby) LeaveLobby(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.players[id]; !ok {
		return
	}
	delete(l.players, id)
	l.emitEvent(events.PlayerLeftLobby{PlayerID: id, At: time.Now()})
}

// GetPlayer looks a player up by id.
func (l *Lobby) GetPlayer(id string) (*Player, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	player, ok := l.players[id]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	return player, nil
}

// CreateTable opens a table and wires the lobby's subscribers to it.
func (l *Lobby) CreateTable(name string, rules TableRules) *Table {
	l.mu.Lock()
	defer l.mu.Unlock()

	table := NewTable(name, rules, nil)
	for _, handler := range l.eventHandlers {
		table.AddEventHandler(handler)
	}
	l.tables[table.ID] = table
	return table
}

// GetTable looks a table up by id.
func (l *Lobby) GetTable(id string) (*Table, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	table, ok := l.tables[id]
	if !ok {
		return nil, ErrUnknownTable
	}
	return table, nil
}

// Tables snapshots the open tables.
func (l *Lobby) Tables() []*Table {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tables := make([]*Table, 0, len(l.tables))
	for _, table := range l.tables {
		tables = append(tables, table)
	}
	return tables
}

// BuyIn moves chips from a player's bankroll onto a table seat.
func (l *Lobby) BuyIn(playerID, tableID string, amount int, actor Actor) (*Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	player, ok := l.players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	table, ok := l.tables[tableID]
	if !ok {
		return nil, ErrUnknownTable
	}
	if amount > player.Balance {
		return nil, errors.New("buy-in exceeds the player's balance")
	}

	seat, err := table.SeatPlayer(player.ID, amount, actor)
	if err != nil {
		return nil, err
	}

	player.Balance -= amount
	return seat, nil
}
