package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lazharichir/holdem/domain"
	domainevents "github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/server/events"
	"github.com/lazharichir/holdem/server/handlers"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict origins before exposing this publicly
	},
}

// Server exposes the lobby over WebSocket for gameplay and over a small
// REST surface for table discovery. Every domain event also lands in the
// event store, so a hand can be replayed after the fact.
type Server struct {
	lobby      *domain.Lobby
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	store      domainevents.EventStore
	logger     *log.Logger
}

// TableResponse represents a table in API responses.
type TableResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PlayerCount int      `json:"playerCount"`
	Players     []string `json:"players"`
	Status      string   `json:"status"`
	SmallBlind  int      `json:"smallBlind"`
	BigBlind    int      `json:"bigBlind"`
	CurrentHand string   `json:"currentHand,omitempty"`
}

// CreateTableRequest is the body for creating a table.
type CreateTableRequest struct {
	Name       string `json:"name"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
}

// NewServer wires the lobby, the connection manager, the command router
// and the event fan-out together.
func NewServer(logger *log.Logger) *Server {
	lobby := domain.NewLobby()
	connMgr := connection.NewManager()
	store := domainevents.NewInMemoryEventStore()

	dispatcher := events.NewDispatcher(connMgr, logger)
	cmdRouter := handlers.NewCommandRouter(lobby, connMgr, logger)

	lobby.AddEventHandler(dispatcher.HandleEvent)
	lobby.AddEventHandler(func(event domainevents.Event) {
		if err := store.Append(event); err != nil {
			logger.Debug("event not stored", "event", event.Name(), "err", err)
		}
	})

	return &Server{
		lobby:      lobby,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
	}
}

// Lobby exposes the underlying lobby, mostly for tests and tooling.
func (s *Server) Lobby() *domain.Lobby {
	return s.lobby
}

// Start blocks serving HTTP on the given port.
func (s *Server) Start(port string) error {
	go s.connMgr.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/tables", corsMiddleware(s.handleGetTables))
	mux.HandleFunc("/api/tables/create", corsMiddleware(s.handleCreateTable))

	s.logger.Info("starting server", "port", port)
	return http.ListenAndServe("0.0.0.0:"+port, mux)
}

// corsMiddleware adds permissive CORS headers for browser clients.
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	client := &connection.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	s.logger.Info("client connected", "remote", r.RemoteAddr, "client", client.ID)

	s.connMgr.Register <- client

	go s.readPump(client)
	go s.writePump(client)
}

func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("websocket read failed", "client", client.ID, "err", err)
			}
			break
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			s.logger.Warn("command failed", "client", client.ID, "err", err)
			s.sendError(client, err)
		}
	}
}

func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Error("websocket write failed", "client", client.ID, "err", err)
				return
			}

		case <-ticker.C:
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) sendError(client *connection.Client, cause error) {
	data, err := json.Marshal(struct {
		Name  string `json:"name"`
		Error string `json:"error"`
	}{Name: "Error", Error: cause.Error()})
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
		// client's buffer is full, the error is droppable
	}
}

func (s *Server) handleGetTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tables := s.lobby.Tables()
	tableResponses := make([]TableResponse, 0, len(tables))
	for _, table := range tables {
		tableResponses = append(tableResponses, toTableResponse(table))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tableResponses)
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var createReq CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if createReq.Name == "" {
		http.Error(w, "Table name is required", http.StatusBadRequest)
		return
	}

	rules := domain.NewTableRules()
	if createReq.SmallBlind > 0 {
		rules.SmallBlind = createReq.SmallBlind
	}
	if createReq.BigBlind > 0 {
		rules.BigBlind = createReq.BigBlind
	}
	if rules.BigBlind <= rules.SmallBlind {
		http.Error(w, "The big blind must exceed the small blind", http.StatusBadRequest)
		return
	}

	table := s.lobby.CreateTable(createReq.Name, rules)
	s.logger.Info("table created", "table", table.ID, "name", table.Name,
		"smallBlind", rules.SmallBlind, "bigBlind", rules.BigBlind)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toTableResponse(table))
}

func toTableResponse(table *domain.Table) TableResponse {
	players := make([]string, 0, len(table.Seats))
	for _, seat := range table.Seats {
		players = append(players, seat.Name)
	}

	resp := TableResponse{
		ID:          table.ID,
		Name:        table.Name,
		PlayerCount: len(players),
		Players:     players,
		Status:      string(table.Status),
		SmallBlind:  table.Rules.SmallBlind,
		BigBlind:    table.Rules.BigBlind,
	}
	if table.ActiveHand != nil {
		resp.CurrentHand = table.ActiveHand.ID
	}
	return resp
}
