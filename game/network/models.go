package network

import "Checkers/game/session"

const (
	TypeState = "state"
	TypeMove  = "move"
	TypeError = "error"
)

type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// ClientMessage is what a browser sends; Move uses the player's own view,
// e.g. "C3 D4" or "F4 D6 B4".
type ClientMessage struct {
	Type string `json:"type"`
	Move string `json:"move"`
}

type GameState struct {
	RoomID       string           `json:"roomId"`
	YourRole     string           `json:"yourRole"`
	Game         session.Snapshot `json:"game"`
	View         string           `json:"view"`
	LastMove     string           `json:"lastMove,omitempty"`
	ComputerMove string           `json:"computerMove,omitempty"`
}

type CreateRoomRequest struct {
	Color string `json:"color"`
}

type RoomResponse struct {
	RoomID string           `json:"roomId"`
	Game   session.Snapshot `json:"game"`
}

type MovesResponse struct {
	RoomID string   `json:"roomId"`
	Color  string   `json:"color"`
	Moves  []string `json:"moves"`
}
