package network

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"Checkers/game/core"
	"Checkers/game/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrSpectator    = errors.New("spectators cannot move")
)

const (
	rolePlayer    = "player"
	roleSpectator = "spectator"
)

// GameSession is one human-vs-computer game and the connections watching it.
// The first connection plays; later ones spectate.
type GameSession struct {
	ID      string
	Game    *session.Game
	Clients map[*websocket.Conn]string
	mu      sync.Mutex
}

type HubOptions struct {
	logger      zerolog.Logger
	registry    prometheus.Registerer
	rules       core.Rules
	idleTimeout time.Duration
	session     []session.Option
}

type HubOption func(*HubOptions)

func WithLogger(logger zerolog.Logger) HubOption {
	return func(o *HubOptions) {
		o.logger = logger
	}
}

func WithRegistry(reg prometheus.Registerer) HubOption {
	return func(o *HubOptions) {
		o.registry = reg
	}
}

func WithRules(r core.Rules) HubOption {
	return func(o *HubOptions) {
		o.rules = r
	}
}

// WithIdleTimeout sets how long a room may wait for its first client.
// Zero keeps unjoined rooms until the hub goes away.
func WithIdleTimeout(d time.Duration) HubOption {
	return func(o *HubOptions) {
		o.idleTimeout = d
	}
}

// WithSessionOptions adds options to every game the hub starts.
func WithSessionOptions(opts ...session.Option) HubOption {
	return func(o *HubOptions) {
		o.session = append(o.session, opts...)
	}
}

// Hub owns every room of the server.
type Hub struct {
	rooms   map[string]*GameSession
	mu      sync.Mutex
	metrics *Metrics

	HubOptions
}

func NewHub(opts ...HubOption) *Hub {
	o := HubOptions{
		logger:      log.Logger,
		registry:    prometheus.NewRegistry(),
		rules:       core.DefaultRules(),
		idleTimeout: time.Minute,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Hub{
		rooms:      make(map[string]*GameSession),
		metrics:    NewMetrics(o.registry),
		HubOptions: o,
	}
}

// CreateRoom starts a new game with the human on the given color.
// If the computer moves first its opening move is already made.
// A room nobody joins within the idle timeout is dropped.
func (h *Hub) CreateRoom(human core.Color) *GameSession {
	id := uuid.NewString()
	logger := h.logger.With().Str("room", id).Logger()
	opts := append([]session.Option{session.WithRules(h.rules), session.WithLogger(logger)}, h.session...)
	s := &GameSession{
		ID:      id,
		Game:    session.New(human, opts...),
		Clients: make(map[*websocket.Conn]string),
	}

	h.mu.Lock()
	h.rooms[id] = s
	h.metrics.activeRooms.Set(float64(len(h.rooms)))
	h.mu.Unlock()
	h.metrics.gamesStarted.Inc()

	s.mu.Lock()
	h.computerReply(s)
	h.recordResult(s)
	s.mu.Unlock()

	if h.idleTimeout > 0 {
		time.AfterFunc(h.idleTimeout, func() {
			if h.dropIfEmpty(s) {
				logger.Info().Msg("dropped idle room")
			}
		})
	}

	logger.Info().Str("human", human.String()).Msg("created room")
	return s
}

func (h *Hub) Room(id string) (*GameSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return s, nil
}

// dropIfEmpty removes s from the hub if it is still there and has no client.
func (h *Hub) dropIfEmpty(s *GameSession) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[s.ID] != s {
		return false
	}
	s.mu.Lock()
	empty := len(s.Clients) == 0
	s.mu.Unlock()
	if !empty {
		return false
	}

	delete(h.rooms, s.ID)
	h.metrics.activeRooms.Set(float64(len(h.rooms)))
	return true
}

// join attaches conn to s only while s is still held by the hub.
// Lock order is h.mu then s.mu, as in dropIfEmpty.
func (h *Hub) join(s *GameSession, conn *websocket.Conn) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[s.ID] != s {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	role := roleSpectator
	if !s.hasPlayer() {
		role = rolePlayer
	}
	s.Clients[conn] = role
	return role, true
}

// HandleWebSocket serves /ws?room=<id> or /ws?color=<w|b> for a new room.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	var (
		room    *GameSession
		created bool
	)
	if id := c.Query("room"); id != "" {
		r, err := h.Room(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		room = r
	} else {
		human, err := colorParam(c.Query("color"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		room, created = h.CreateRoom(human), true
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		if created {
			h.dropIfEmpty(room)
		}
		return
	}

	role, ok := h.join(room, conn)
	if !ok {
		h.sendError(conn, ErrRoomNotFound.Error())
		conn.Close()
		return
	}
	defer h.disconnect(room, conn)

	room.mu.Lock()
	h.send(conn, room.state(role, "", ""))
	room.mu.Unlock()

	h.logger.Info().Str("room", room.ID).Str("role", role).Str("remote", c.Request.RemoteAddr).Msg("client connected")

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug().Err(err).Str("room", room.ID).Msg("read failed")
			}
			return
		}

		switch msg.Type {
		case TypeMove:
			h.processMove(room, conn, msg.Move)
		default:
			room.mu.Lock()
			h.sendError(conn, "unknown message type: "+msg.Type)
			room.mu.Unlock()
		}
	}
}

func (h *Hub) processMove(s *GameSession, conn *websocket.Conn, input string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Clients[conn] != rolePlayer {
		h.sendError(conn, ErrSpectator.Error())
		return
	}

	turn, err := s.Game.PlayHuman(input)
	if err != nil {
		h.metrics.moves.WithLabelValues("human", "rejected").Inc()
		h.sendError(conn, err.Error())
		return
	}
	h.metrics.moves.WithLabelValues("human", "accepted").Inc()

	reply := h.computerReply(s)
	h.recordResult(s)

	for client, role := range s.Clients {
		msg := Message{Type: TypeState, Content: s.state(role, turn.Notation, reply)}
		if err := client.WriteJSON(msg); err != nil {
			h.logger.Debug().Err(err).Str("room", s.ID).Msg("broadcast failed")
			delete(s.Clients, client)
			client.Close()
		}
	}
}

// computerReply plays the computer's move if it is its turn. Callers hold s.mu.
func (h *Hub) computerReply(s *GameSession) string {
	if s.Game.Phase() != session.ComputerToMove {
		return ""
	}
	turn, err := s.Game.PlayComputer()
	if err != nil {
		if !errors.Is(err, session.ErrNoMoves) {
			h.logger.Error().Err(err).Str("room", s.ID).Msg("computer move failed")
		}
		return ""
	}
	h.metrics.moves.WithLabelValues("computer", "accepted").Inc()
	return turn.Notation
}

func (h *Hub) recordResult(s *GameSession) {
	winner, over := s.Game.Winner()
	if !over {
		return
	}
	side := "computer"
	if winner == s.Game.Human() {
		side = "human"
	}
	h.metrics.gamesFinished.WithLabelValues(side).Inc()
}

func (h *Hub) disconnect(s *GameSession, conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.Clients, conn)
	s.mu.Unlock()
	conn.Close()

	if h.dropIfEmpty(s) {
		h.logger.Info().Str("room", s.ID).Msg("room closed")
	}
}

func (h *Hub) send(conn *websocket.Conn, state GameState) {
	if err := conn.WriteJSON(Message{Type: TypeState, Content: state}); err != nil {
		h.logger.Debug().Err(err).Msg("send failed")
	}
}

func (h *Hub) sendError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(Message{Type: TypeError, Content: message}); err != nil {
		h.logger.Debug().Err(err).Msg("error message not sent")
	}
}

func (s *GameSession) hasPlayer() bool {
	for _, role := range s.Clients {
		if role == rolePlayer {
			return true
		}
	}
	return false
}

func (s *GameSession) state(role, lastMove, computerMove string) GameState {
	return GameState{
		RoomID:       s.ID,
		YourRole:     role,
		Game:         s.Game.Snapshot(),
		View:         core.Render(s.Game.Board(), s.Game.Orientation()),
		LastMove:     lastMove,
		ComputerMove: computerMove,
	}
}

func colorParam(v string) (core.Color, error) {
	if v == "" {
		return core.White, nil
	}
	return core.ParseColor(v)
}
