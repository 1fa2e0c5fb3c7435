package core

import (
	"fmt"
	"strings"
)

const Size = 8

type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the row delta a Man of this color moves by.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PromotionRow is the far edge for the color.
func (c Color) PromotionRow() int {
	if c == White {
		return 0
	}
	return Size - 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

type Rank int8

const (
	Man Rank = iota
	King
)

type Piece struct {
	Color Color
	Rank  Rank
}

// Cell is either empty or holds exactly one piece.
type Cell struct {
	piece    Piece
	occupied bool
}

func EmptyCell() Cell { return Cell{} }

func Occupied(p Piece) Cell { return Cell{piece: p, occupied: true} }

func (c Cell) IsEmpty() bool { return !c.occupied }

func (c Cell) Piece() (Piece, bool) { return c.piece, c.occupied }

func (c Cell) Symbol() byte {
	if !c.occupied {
		return '.'
	}
	switch {
	case c.piece.Color == White && c.piece.Rank == King:
		return 'K'
	case c.piece.Color == White:
		return 'W'
	case c.piece.Rank == King:
		return 'Q'
	default:
		return 'B'
	}
}

func cellFromSymbol(s byte) (Cell, bool) {
	switch s {
	case '.':
		return EmptyCell(), true
	case 'W':
		return Occupied(Piece{White, Man}), true
	case 'K':
		return Occupied(Piece{White, King}), true
	case 'B':
		return Occupied(Piece{Black, Man}), true
	case 'Q':
		return Occupied(Piece{Black, King}), true
	}
	return Cell{}, false
}

type Coord struct {
	Row, Col int
}

func IsValidPosition(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (c Coord) Valid() bool { return IsValidPosition(c.Row, c.Col) }

// Dark reports whether pieces may stand on c.
func (c Coord) Dark() bool { return (c.Row+c.Col)%2 == 1 }

type Board struct {
	cells [Size][Size]Cell
}

func EmptyBoard() Board { return Board{} }

func NewBoard() Board {
	var b Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if (row+col)%2 == 0 {
				continue
			}
			if row < 3 {
				b.cells[row][col] = Occupied(Piece{Black, Man})
			} else if row > 4 {
				b.cells[row][col] = Occupied(Piece{White, Man})
			}
		}
	}
	return b
}

// ParseBoard builds a board from eight rows of cell symbols, top row first.
func ParseBoard(rows ...string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("expected %d rows, got %d", Size, len(rows))
	}
	for row, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != Size {
			return b, fmt.Errorf("row %d: expected %d cells, got %d", row, Size, len(line))
		}
		for col := 0; col < Size; col++ {
			cell, ok := cellFromSymbol(line[col])
			if !ok {
				return b, fmt.Errorf("row %d col %d: unknown symbol %q", row, col, line[col])
			}
			if !cell.IsEmpty() && !(Coord{row, col}).Dark() {
				return b, fmt.Errorf("row %d col %d: piece on a light square", row, col)
			}
			b.cells[row][col] = cell
		}
	}
	return b, nil
}

func (b Board) CellAt(c Coord) (Cell, error) {
	if !c.Valid() {
		return Cell{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, c.Row, c.Col)
	}
	return b.cells[c.Row][c.Col], nil
}

// at and set assume c was bounds-checked by the caller.
func (b *Board) at(c Coord) Cell { return b.cells[c.Row][c.Col] }

func (b *Board) set(c Coord, cell Cell) { b.cells[c.Row][c.Col] = cell }

func (b Board) Count(color Color) int {
	n := 0
	for row := range b.cells {
		for _, cell := range b.cells[row] {
			if p, ok := cell.Piece(); ok && p.Color == color {
				n++
			}
		}
	}
	return n
}

// Rows returns the board as symbol rows in absolute orientation.
func (b Board) Rows() []string {
	rows := make([]string, Size)
	for row := range b.cells {
		var sb strings.Builder
		for _, cell := range b.cells[row] {
			sb.WriteByte(cell.Symbol())
		}
		rows[row] = sb.String()
	}
	return rows
}
