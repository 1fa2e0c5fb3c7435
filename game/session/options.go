package session

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"Checkers/game/core"
)

type options struct {
	rules  core.Rules
	picker Picker
	logger zerolog.Logger
	board  core.Board
}

type Option func(*options)

func defaultOptions() options {
	return options{
		rules:  core.DefaultRules(),
		picker: NewRandomPicker(),
		logger: log.Logger,
		board:  core.NewBoard(),
	}
}

func WithRules(r core.Rules) Option {
	return func(o *options) {
		o.rules = r
	}
}

func WithPicker(p Picker) Option {
	return func(o *options) {
		o.picker = p
	}
}

// WithSeed makes the computer's choices reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.picker = NewSeededPicker(seed)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBoard starts the game from a custom position instead of the standard one.
func WithBoard(b core.Board) Option {
	return func(o *options) {
		o.board = b
	}
}
