package session

import (
	"errors"
	"fmt"

	"Checkers/game/core"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNoMoves     = errors.New("no legal moves")
)

type Phase int

const (
	HumanToMove Phase = iota
	ComputerToMove
	GameOver
)

func (p Phase) String() string {
	switch p {
	case HumanToMove:
		return "human_to_move"
	case ComputerToMove:
		return "computer_to_move"
	default:
		return "game_over"
	}
}

// Turn is one committed move.
type Turn struct {
	Color    core.Color
	Path     core.Path
	Notation string
	Captured []core.Coord
	Promoted bool
	Computer bool
}

// Game drives alternating turns between a human and the computer.
// It is not safe for concurrent use; transports serialize access.
type Game struct {
	board   core.Board
	toMove  core.Color
	human   core.Color
	phase   Phase
	winner  core.Color
	history []Turn

	options
}

func New(human core.Color, opts ...Option) *Game {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Game{
		board:   o.board,
		toMove:  core.White,
		human:   human,
		options: o,
	}
	g.phase = g.phaseFor(g.toMove)
	g.checkStuck()

	g.logger.Info().Str("human", human.String()).Str("phase", g.phase.String()).Msg("game started")
	return g
}

func (g *Game) Board() core.Board { return g.board }
func (g *Game) ToMove() core.Color { return g.toMove }
func (g *Game) Human() core.Color { return g.human }
func (g *Game) Computer() core.Color { return g.human.Opponent() }
func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Rules() core.Rules { return g.rules }
func (g *Game) Orientation() core.Orientation { return core.OrientationFor(g.human) }

func (g *Game) Winner() (core.Color, bool) {
	return g.winner, g.phase == GameOver
}

func (g *Game) History() []Turn {
	return append([]Turn(nil), g.history...)
}

// PlayHuman parses input in the human's orientation and applies it.
// On any error the game is left exactly as it was.
func (g *Game) PlayHuman(input string) (Turn, error) {
	switch g.phase {
	case GameOver:
		return Turn{}, ErrGameOver
	case ComputerToMove:
		return Turn{}, ErrNotYourTurn
	}

	path, err := core.ParseMove(input, g.Orientation())
	if err != nil {
		g.logger.Debug().Err(err).Str("input", input).Msg("rejected human move")
		return Turn{}, err
	}
	turn, err := g.commit(path, false)
	if err != nil {
		g.logger.Debug().Err(err).Str("input", input).Msg("rejected human move")
		return Turn{}, err
	}
	return turn, nil
}

// PlayComputer picks one of the computer's legal moves and applies it.
// When there is none the human wins and ErrNoMoves is returned.
func (g *Game) PlayComputer() (Turn, error) {
	switch g.phase {
	case GameOver:
		return Turn{}, ErrGameOver
	case HumanToMove:
		return Turn{}, ErrNotYourTurn
	}

	moves := g.rules.LegalMoves(g.board, g.toMove)
	if len(moves) == 0 {
		g.finish(g.human)
		return Turn{}, ErrNoMoves
	}

	m := g.picker.Pick(moves)
	turn, err := g.commit(m.Path(), true)
	if err != nil {
		// generated moves always apply; reaching this is a generator bug
		return Turn{}, fmt.Errorf("computer move %s: %w", m, err)
	}
	return turn, nil
}

func (g *Game) commit(path core.Path, computer bool) (Turn, error) {
	res, err := g.rules.Apply(g.board, path, g.toMove)
	if err != nil {
		return Turn{}, err
	}

	turn := Turn{
		Color:    g.toMove,
		Path:     path,
		Captured: res.Captured,
		Promoted: res.Promoted,
		Computer: computer,
	}
	if computer {
		turn.Notation = path.Format(core.Normal)
	} else {
		turn.Notation = path.Format(g.Orientation())
	}

	g.board = res.Board
	g.history = append(g.history, turn)
	g.toMove = g.toMove.Opponent()
	g.phase = g.phaseFor(g.toMove)

	g.logger.Debug().
		Str("color", turn.Color.String()).
		Str("move", turn.Notation).
		Int("captured", len(turn.Captured)).
		Bool("promoted", turn.Promoted).
		Msg("move applied")

	g.checkStuck()
	return turn, nil
}

// checkStuck ends the game when the side to move has nothing to play.
// The computer is held to the moves it can generate; the human loses only
// when no move at all would be accepted.
func (g *Game) checkStuck() {
	if g.phase == GameOver {
		return
	}
	moves := g.rules.LegalMoves
	if g.toMove == g.human {
		moves = g.rules.AllMoves
	}
	if len(moves(g.board, g.toMove)) == 0 {
		g.finish(g.toMove.Opponent())
	}
}

func (g *Game) finish(winner core.Color) {
	g.phase = GameOver
	g.winner = winner
	g.logger.Info().Str("winner", winner.String()).Int("turns", len(g.history)).Msg("game over")
}

func (g *Game) phaseFor(c core.Color) Phase {
	if c == g.human {
		return HumanToMove
	}
	return ComputerToMove
}
