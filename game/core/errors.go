package core

import "errors"

var (
	ErrOutOfBounds   = errors.New("coordinate out of bounds")
	ErrMalformedMove = errors.New("malformed move")
	ErrIllegalMove   = errors.New("illegal move")
)
