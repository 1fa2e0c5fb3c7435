package network

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Checkers/game/core"
	"Checkers/game/session"
)

type inbound struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

func newTestServer(t *testing.T, opts ...HubOption) (*httptest.Server, *Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	hub := NewHub(append([]HubOption{WithLogger(zerolog.Nop()), WithRegistry(reg)}, opts...)...)
	srv := httptest.NewServer(NewRouter(hub, reg))
	t.Cleanup(srv.Close)
	return srv, hub
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) inbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg inbound
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) GameState {
	t.Helper()
	msg := read(t, conn)
	require.Equal(t, TypeState, msg.Type, string(msg.Content))
	var st GameState
	require.NoError(t, json.Unmarshal(msg.Content, &st))
	return st
}

func TestWebSocketGame(t *testing.T) {
	srv, hub := newTestServer(t)
	conn := dial(t, srv, "color=white")

	st := readState(t, conn)
	assert.Equal(t, rolePlayer, st.YourRole)
	assert.Equal(t, "human_to_move", st.Game.Phase)
	assert.Equal(t, "normal", st.Game.Orientation)
	assert.True(t, strings.HasPrefix(st.View, "  A B C D E F G H"))
	_, err := hub.Room(st.RoomID)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeMove, Move: "A2 A4"}))
	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, string(msg.Content), "illegal move")

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeMove, Move: "C3 D4"}))
	st = readState(t, conn)
	assert.Equal(t, "C3 D4", st.LastMove)
	assert.NotEmpty(t, st.ComputerMove)
	assert.Equal(t, "human_to_move", st.Game.Phase)
	require.Len(t, st.Game.History, 2)
	assert.True(t, st.Game.History[1].Computer)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "resign"}))
	msg = read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
}

func TestWebSocketBlackStartsAfterComputer(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "color=b")

	st := readState(t, conn)
	assert.Equal(t, "mirrored", st.Game.Orientation)
	assert.Equal(t, "human_to_move", st.Game.Phase)
	require.Len(t, st.Game.History, 1)
	assert.Equal(t, "white", st.Game.History[0].Color)
	assert.True(t, strings.HasPrefix(strings.Split(st.View, "\n")[2], "1|"))
}

func TestWebSocketSpectator(t *testing.T) {
	srv, _ := newTestServer(t)
	player := dial(t, srv, "")
	st := readState(t, player)

	watcher := dial(t, srv, "room="+st.RoomID)
	wst := readState(t, watcher)
	assert.Equal(t, roleSpectator, wst.YourRole)

	require.NoError(t, watcher.WriteJSON(ClientMessage{Type: TypeMove, Move: "C3 D4"}))
	msg := read(t, watcher)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, string(msg.Content), ErrSpectator.Error())

	require.NoError(t, player.WriteJSON(ClientMessage{Type: TypeMove, Move: "C3 D4"}))
	assert.Equal(t, "C3 D4", readState(t, player).LastMove)
	assert.Equal(t, "C3 D4", readState(t, watcher).LastMove)
}

func TestWebSocketUnknownRoom(t *testing.T) {
	srv, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?room=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoomAPI(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/rooms", "application/json", strings.NewReader(`{"color":"black"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var room RoomResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&room))
	assert.Equal(t, "black", room.Game.Human)
	assert.Len(t, room.Game.History, 1)

	resp, err = http.Get(srv.URL + "/api/rooms/" + room.RoomID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/rooms/" + room.RoomID + "/moves")
	require.NoError(t, err)
	defer resp.Body.Close()
	var moves MovesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&moves))
	assert.Equal(t, "black", moves.Color)
	assert.NotEmpty(t, moves.Moves)

	resp, err = http.Get(srv.URL + "/api/rooms/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/rooms", "application/json", strings.NewReader(`{"color":"green"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "color=white")
	readState(t, conn)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeMove, Move: "C3 D4"}))
	readState(t, conn)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `checkers_moves_total{result="accepted",side="human"} 1`)
	assert.Contains(t, string(body), "checkers_games_started_total 1")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func roomCount(h *Hub) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

func TestUnjoinedRoomsAreDropped(t *testing.T) {
	srv, hub := newTestServer(t, WithIdleTimeout(50*time.Millisecond))

	for i := 0; i < 5; i++ {
		resp, err := http.Post(srv.URL+"/api/rooms", "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	assert.Equal(t, 5, roomCount(hub))

	require.Eventually(t, func() bool { return roomCount(hub) == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, testutil.ToFloat64(hub.metrics.activeRooms))
}

func TestJoinedRoomOutlivesIdleTimeout(t *testing.T) {
	srv, hub := newTestServer(t, WithIdleTimeout(200*time.Millisecond))
	conn := dial(t, srv, "color=white")
	st := readState(t, conn)

	time.Sleep(400 * time.Millisecond)
	_, err := hub.Room(st.RoomID)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeMove, Move: "C3 D4"}))
	assert.Equal(t, "C3 D4", readState(t, conn).LastMove)
}

func TestJoinRefusedAfterDrop(t *testing.T) {
	hub := NewHub(WithLogger(zerolog.Nop()), WithIdleTimeout(0))
	s := hub.CreateRoom(core.White)

	require.True(t, hub.dropIfEmpty(s))
	_, err := hub.Room(s.ID)
	require.ErrorIs(t, err, ErrRoomNotFound)

	_, ok := hub.join(s, nil)
	assert.False(t, ok)
	assert.Empty(t, s.Clients)
	assert.False(t, hub.dropIfEmpty(s))
}

func TestGameDecidedOnOpeningReplyIsCounted(t *testing.T) {
	b, err := core.ParseBoard(
		"........",
		"........",
		"........",
		"........",
		"........",
		"W.......",
		"........",
		"........",
	)
	require.NoError(t, err)
	hub := NewHub(WithLogger(zerolog.Nop()), WithSessionOptions(session.WithBoard(b)))

	s := hub.CreateRoom(core.Black)
	winner, over := s.Game.Winner()
	require.True(t, over)
	assert.Equal(t, core.White, winner)
	assert.Equal(t, 1.0, testutil.ToFloat64(hub.metrics.gamesFinished.WithLabelValues("computer")))
}
