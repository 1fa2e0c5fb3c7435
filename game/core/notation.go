package core

import (
	"fmt"
	"strings"
)

// Orientation selects how square names map to board coordinates.
// Mirrored is the view of a human playing Black, whose board is shown flipped.
type Orientation int8

const (
	Normal Orientation = iota
	Mirrored
)

func OrientationFor(human Color) Orientation {
	if human == Black {
		return Mirrored
	}
	return Normal
}

func (o Orientation) String() string {
	if o == Mirrored {
		return "mirrored"
	}
	return "normal"
}

// ParseSquare converts a token such as "C3" into a coordinate.
func ParseSquare(tok string, o Orientation) (Coord, error) {
	if len(tok) != 2 {
		return Coord{}, fmt.Errorf("%w: square %q must be a letter and a digit", ErrMalformedMove, tok)
	}
	letter := tok[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	digit := tok[1]
	if letter < 'A' || letter > 'H' || digit < '1' || digit > '8' {
		return Coord{}, fmt.Errorf("%w: square %q is off the board", ErrMalformedMove, tok)
	}

	c := Coord{Row: Size - int(digit-'0'), Col: int(letter - 'A')}
	if o == Mirrored {
		c.Col = int('H' - letter)
	}
	if !c.Valid() {
		return Coord{}, fmt.Errorf("%w: square %q", ErrMalformedMove, tok)
	}
	return c, nil
}

func FormatSquare(c Coord, o Orientation) string {
	letter := byte('A' + c.Col)
	if o == Mirrored {
		letter = byte('H' - c.Col)
	}
	return fmt.Sprintf("%c%d", letter, Size-c.Row)
}

// Path is a source square followed by one or more destinations.
type Path []Coord

func ParseMove(input string, o Orientation) (Path, error) {
	tokens := strings.Fields(input)
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: need a source and at least one destination, e.g. \"C3 D4\"", ErrMalformedMove)
	}
	path := make(Path, 0, len(tokens))
	for _, tok := range tokens {
		c, err := ParseSquare(tok, o)
		if err != nil {
			return nil, err
		}
		path = append(path, c)
	}
	return path, nil
}

func (p Path) Format(o Orientation) string {
	squares := make([]string, len(p))
	for i, c := range p {
		squares[i] = FormatSquare(c, o)
	}
	return strings.Join(squares, " ")
}

func (p Path) String() string { return p.Format(Normal) }

// Move is a single leg as produced by the generator.
type Move struct {
	From, To Coord
}

func (m Move) Path() Path { return Path{m.From, m.To} }

func (m Move) String() string { return m.Path().String() }
