package core

import "golang.org/x/sync/errgroup"

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// LegalMoves lists the single steps and single jumps available to color.
// This is the computer's move list: Kings share the Man's forward geometry
// unless LongRangeKingMoves is set. The order of the result is unspecified.
func (r Rules) LegalMoves(b Board, color Color) []Move {
	return scanRows(&b, color, r.rowMoves)
}

// AllMoves lists every single-leg move Apply accepts for color, with Kings in
// all four directions at any distance and backward Man jumps when allowed.
// Any legal chain starts with one of these legs, so an empty result means
// color cannot move at all.
func (r Rules) AllMoves(b Board, color Color) []Move {
	return scanRows(&b, color, r.rowAllMoves)
}

// scanRows runs scan once per row concurrently against b, which the workers
// only read. Each worker fills its own slot and the slots are merged in row
// order once all rows are done.
func scanRows(b *Board, color Color, scan func(*Board, int, Color) []Move) []Move {
	var (
		g     errgroup.Group
		slots [Size][]Move
	)
	for row := 0; row < Size; row++ {
		g.Go(func() error {
			slots[row] = scan(b, row, color)
			return nil
		})
	}
	// row workers never fail
	g.Wait()

	var moves []Move
	for _, s := range slots {
		moves = append(moves, s...)
	}
	return moves
}

func (r Rules) rowMoves(b *Board, row int, color Color) []Move {
	var moves []Move
	fwd := color.Forward()
	for col := 0; col < Size; col++ {
		from := Coord{row, col}
		piece, ok := b.at(from).Piece()
		if !ok || piece.Color != color {
			continue
		}

		for _, dc := range [2]int{-1, 1} {
			to := Coord{row + fwd, col + dc}
			if to.Valid() && b.at(to).IsEmpty() {
				moves = append(moves, Move{from, to})
			}
		}
		for _, dc := range [2]int{-1, 1} {
			to := Coord{row + 2*fwd, col + 2*dc}
			mid := Coord{row + fwd, col + dc}
			if !to.Valid() || !b.at(to).IsEmpty() {
				continue
			}
			if other, ok := b.at(mid).Piece(); ok && other.Color != color {
				moves = append(moves, Move{from, to})
			}
		}

		if piece.Rank == King && r.LongRangeKingMoves {
			moves = append(moves, r.kingMoves(b, from, color)...)
		}
	}
	return moves
}

// kingMoves adds the King moves the forward scan above does not cover.
func (r Rules) kingMoves(b *Board, from Coord, color Color) []Move {
	var moves []Move
	for _, d := range diagonals {
		for dist := 1; ; dist++ {
			to := Coord{from.Row + d[0]*dist, from.Col + d[1]*dist}
			if !to.Valid() {
				break
			}
			if d[0] == color.Forward() && dist == 1 {
				continue
			}
			if d[0] == color.Forward() && dist == 2 {
				mid := Coord{from.Row + d[0], from.Col + d[1]}
				if other, ok := b.at(mid).Piece(); ok && other.Color != color {
					continue
				}
			}
			if _, err := r.Apply(*b, Path{from, to}, color); err == nil {
				moves = append(moves, Move{from, to})
			}
		}
	}
	return moves
}

func (r Rules) rowAllMoves(b *Board, row int, color Color) []Move {
	var moves []Move
	for col := 0; col < Size; col++ {
		from := Coord{row, col}
		if p, ok := b.at(from).Piece(); !ok || p.Color != color {
			continue
		}
		for _, d := range diagonals {
			for dist := 1; ; dist++ {
				to := Coord{from.Row + d[0]*dist, from.Col + d[1]*dist}
				if !to.Valid() {
					break
				}
				if _, err := r.Apply(*b, Path{from, to}, color); err == nil {
					moves = append(moves, Move{from, to})
				}
			}
		}
	}
	return moves
}
