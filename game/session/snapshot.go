package session

import "Checkers/game/core"

// Snapshot is the transport view of a game.
type Snapshot struct {
	Board       []string     `json:"board"`
	ToMove      string       `json:"toMove"`
	Human       string       `json:"human"`
	Orientation string       `json:"orientation"`
	Phase       string       `json:"phase"`
	Winner      string       `json:"winner,omitempty"`
	Pieces      PieceCount   `json:"pieces"`
	History     []TurnRecord `json:"history"`
}

type PieceCount struct {
	White int `json:"white"`
	Black int `json:"black"`
}

type TurnRecord struct {
	Color    string `json:"color"`
	Move     string `json:"move"`
	Captured int    `json:"captured"`
	Promoted bool   `json:"promoted,omitempty"`
	Computer bool   `json:"computer,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Board:       g.board.Rows(),
		ToMove:      g.toMove.String(),
		Human:       g.human.String(),
		Orientation: g.Orientation().String(),
		Phase:       g.phase.String(),
		Pieces: PieceCount{
			White: g.board.Count(core.White),
			Black: g.board.Count(core.Black),
		},
		History: make([]TurnRecord, 0, len(g.history)),
	}
	if w, over := g.Winner(); over {
		s.Winner = w.String()
	}
	for _, t := range g.history {
		s.History = append(s.History, TurnRecord{
			Color:    t.Color.String(),
			Move:     t.Notation,
			Captured: len(t.Captured),
			Promoted: t.Promoted,
			Computer: t.Computer,
		})
	}
	return s
}
