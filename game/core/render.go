package core

import (
	"fmt"
	"strings"
)

// Render draws b as a text grid from the point of view o.
// Mirrored reverses rows and columns; legends come from FormatSquare so that
// what is printed is what ParseSquare accepts in the same orientation.
func Render(b Board, o Orientation) string {
	order := [Size]int{}
	for i := range order {
		order[i] = i
		if o == Mirrored {
			order[i] = Size - 1 - i
		}
	}

	var legend strings.Builder
	legend.WriteString(" ")
	for _, col := range order {
		legend.WriteByte(' ')
		legend.WriteByte(FormatSquare(Coord{0, col}, o)[0])
	}
	legend.WriteByte('\n')
	rule := "  " + strings.Repeat("-", 2*Size-1) + "\n"

	var sb strings.Builder
	sb.WriteString(legend.String())
	sb.WriteString(rule)
	for _, row := range order {
		label := FormatSquare(Coord{row, 0}, o)[1:]
		fmt.Fprintf(&sb, "%s|", label)
		for i, col := range order {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.cells[row][col].Symbol())
		}
		fmt.Fprintf(&sb, "|%s\n", label)
	}
	sb.WriteString(rule)
	sb.WriteString(legend.String())
	return sb.String()
}
