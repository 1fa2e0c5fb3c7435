package network

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Checkers/game/session"
)

// NewRouter wires the hub's HTTP and websocket endpoints.
// gatherer serves /metrics; nil leaves the endpoint out.
func NewRouter(h *Hub, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws", h.HandleWebSocket)

	api := r.Group("/api")
	api.POST("/rooms", h.createRoom)
	api.GET("/rooms/:id", h.getRoom)
	api.GET("/rooms/:id/moves", h.getMoves)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

func (h *Hub) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func (h *Hub) createRoom(c *gin.Context) {
	var req CreateRoomRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	human, err := colorParam(req.Color)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := h.CreateRoom(human)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusCreated, RoomResponse{RoomID: s.ID, Game: s.Game.Snapshot()})
}

func (h *Hub) getRoom(c *gin.Context) {
	s, err := h.Room(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, RoomResponse{RoomID: s.ID, Game: s.Game.Snapshot()})
}

// getMoves lists the human's candidate moves in the human's own notation.
func (h *Hub) getMoves(c *gin.Context) {
	s, err := h.Room(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.Game
	resp := MovesResponse{RoomID: s.ID, Color: g.Human().String(), Moves: []string{}}
	if g.Phase() != session.GameOver {
		for _, m := range g.Rules().AllMoves(g.Board(), g.Human()) {
			resp.Moves = append(resp.Moves, m.Path().Format(g.Orientation()))
		}
	}
	c.JSON(http.StatusOK, resp)
}
