package session

import (
	"math/rand/v2"

	"Checkers/game/core"
)

// Picker chooses the computer's move among the legal ones. moves is never empty.
type Picker interface {
	Pick(moves []core.Move) core.Move
}

type PickerFunc func([]core.Move) core.Move

func (f PickerFunc) Pick(moves []core.Move) core.Move { return f(moves) }

// RandomPicker picks uniformly at random.
type RandomPicker struct {
	rng *rand.Rand
}

func NewRandomPicker() *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func NewSeededPicker(seed uint64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (p *RandomPicker) Pick(moves []core.Move) core.Move {
	return moves[p.rng.IntN(len(moves))]
}
