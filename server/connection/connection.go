// Package connection tracks the live WebSocket clients and knows how to
// route a message to one player or to everyone watching a table.
package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected socket. A client becomes addressable as a player
// once it has entered the lobby.
type Client struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	PlayerID string
	TableIDs []string
}

// Manager owns the set of live clients. Registration runs through channels
// serviced by Start; lookups take the read lock.
type Manager struct {
	clients    map[string]*Client // connection ID to client
	playerMap  map[string]string  // player ID to connection ID
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		playerMap:  make(map[string]string),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start processes registrations until the channels close. Run it in its
// own goroutine.
func (m *Manager) Start() {
	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			if client.PlayerID != "" {
				m.playerMap[client.PlayerID] = client.ID
			}
			m.mutex.Unlock()

		case client := <-m.Unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client.ID]; ok {
				if client.PlayerID != "" {
					delete(m.playerMap, client.PlayerID)
				}
				delete(m.clients, client.ID)
				close(client.Send)
			}
			m.mutex.Unlock()
		}
	}
}

// BindPlayer makes the client addressable by its player ID.
func (m *Manager) BindPlayer(clientID, playerID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	client.PlayerID = playerID
	m.playerMap[playerID] = clientID
	return true
}

// SendToPlayer delivers a message to one player, reporting whether the
// player had a live connection.
func (m *Manager) SendToPlayer(playerID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if connID, exists := m.playerMap[playerID]; exists {
		if client, ok := m.clients[connID]; ok {
			client.Send <- message
			return true
		}
	}
	return false
}

// SendToTable delivers a message to every client watching a table.
func (m *Manager) SendToTable(tableID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		for _, id := range client.TableIDs {
			if id == tableID {
				client.Send <- message
				break
			}
		}
	}
}

// AddTableToClient subscribes a client to a table's traffic.
func (m *Manager) AddTableToClient(clientID, tableID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	for _, id := range client.TableIDs {
		if id == tableID {
			return true
		}
	}
	client.TableIDs = append(client.TableIDs, tableID)
	return true
}

// RemoveTableFromClient unsubscribes a client from a table.
func (m *Manager) RemoveTableFromClient(clientID, tableID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	for i, id := range client.TableIDs {
		if id == tableID {
			client.TableIDs = append(client.TableIDs[:i], client.TableIDs[i+1:]...)
			return true
		}
	}
	return false
}
