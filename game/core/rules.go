package core

import "fmt"

// Rules carries the two behaviors that are ambiguous in house play.
type Rules struct {
	// BackwardManCaptures lets a Man jump toward its own side.
	BackwardManCaptures bool
	// LongRangeKingMoves makes the generator enumerate King moves of any distance.
	LongRangeKingMoves bool
}

func DefaultRules() Rules {
	return Rules{BackwardManCaptures: true}
}

type Result struct {
	Board    Board
	Captured []Coord
	Promoted bool
}

// Apply validates path for mover against b and returns the resulting board.
// b is never modified; on error the caller keeps its board untouched.
func (r Rules) Apply(b Board, path Path, mover Color) (Result, error) {
	if len(path) < 2 {
		return Result{}, fmt.Errorf("%w: path needs at least two squares", ErrIllegalMove)
	}
	for _, c := range path {
		if !c.Valid() {
			return Result{}, fmt.Errorf("%w: %w", ErrIllegalMove, ErrOutOfBounds)
		}
	}

	next := b
	chain := len(path) > 2
	var captured []Coord

	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		taken, err := r.leg(&next, from, to, mover)
		if err != nil {
			return Result{}, fmt.Errorf("leg %s-%s: %w", FormatSquare(from, Normal), FormatSquare(to, Normal), err)
		}
		if chain && taken == nil {
			return Result{}, fmt.Errorf("%w: every leg of a chain must capture", ErrIllegalMove)
		}
		if taken != nil {
			captured = append(captured, *taken)
		}
	}

	res := Result{Board: next, Captured: captured}
	last := path[len(path)-1]
	if p, _ := next.at(last).Piece(); p.Rank == Man && last.Row == mover.PromotionRow() {
		next.set(last, Occupied(Piece{mover, King}))
		res.Board = next
		res.Promoted = true
	}
	return res, nil
}

// leg checks and performs one diagonal segment on b, returning the captured square if any.
func (r Rules) leg(b *Board, from, to Coord, mover Color) (*Coord, error) {
	piece, ok := b.at(from).Piece()
	if !ok || piece.Color != mover {
		return nil, fmt.Errorf("%w: no %s piece on the source square", ErrIllegalMove, mover)
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col
	dist := abs(dr)
	if dist == 0 || dist != abs(dc) {
		return nil, fmt.Errorf("%w: move must be diagonal", ErrIllegalMove)
	}
	if !b.at(to).IsEmpty() {
		return nil, fmt.Errorf("%w: destination is occupied", ErrIllegalMove)
	}

	var taken *Coord
	switch {
	case piece.Rank == King:
		stepR, stepC := dr/dist, dc/dist
		for c := (Coord{from.Row + stepR, from.Col + stepC}); c != to; c = (Coord{c.Row + stepR, c.Col + stepC}) {
			other, ok := b.at(c).Piece()
			if !ok {
				continue
			}
			if other.Color == mover {
				return nil, fmt.Errorf("%w: own piece in the way", ErrIllegalMove)
			}
			if taken != nil {
				return nil, fmt.Errorf("%w: more than one piece in the way", ErrIllegalMove)
			}
			hit := c
			taken = &hit
		}
	case dist == 1:
		if dr != mover.Forward() {
			return nil, fmt.Errorf("%w: men only step forward", ErrIllegalMove)
		}
	case dist == 2:
		if dr != 2*mover.Forward() && !r.BackwardManCaptures {
			return nil, fmt.Errorf("%w: men only capture forward", ErrIllegalMove)
		}
		mid := Coord{from.Row + dr/2, from.Col + dc/2}
		other, ok := b.at(mid).Piece()
		if !ok || other.Color == mover {
			return nil, fmt.Errorf("%w: no enemy piece to jump", ErrIllegalMove)
		}
		taken = &mid
	default:
		return nil, fmt.Errorf("%w: men move one square or jump two", ErrIllegalMove)
	}

	if taken != nil {
		b.set(*taken, EmptyCell())
	}
	b.set(to, b.at(from))
	b.set(from, EmptyCell())
	return taken, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
