package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Checkers/game/core"
	"Checkers/game/session"
)

func TestAskColor(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(strings.NewReader("x\nb\n"), &out)

	c, err := sh.AskColor()
	require.NoError(t, err)
	assert.Equal(t, core.Black, c)
	assert.Contains(t, out.String(), "Please answer W or B.")
	assert.Contains(t, out.String(), "You are playing as black")
}

func TestPlayUntilHumanWins(t *testing.T) {
	b, err := core.ParseBoard(
		"........",
		"........",
		"........",
		"........",
		"........",
		"..W.....",
		"........",
		"B.......",
	)
	require.NoError(t, err)
	g := session.New(core.White, session.WithBoard(b), session.WithLogger(zerolog.Nop()))

	var out bytes.Buffer
	sh := NewShell(strings.NewReader("B3 C4\nC3\nC3 D4\n"), &out)
	require.NoError(t, sh.Play(context.Background(), g))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Invalid move, try again!"))
	assert.Contains(t, text, "Computer has no valid moves. You win!")
	assert.Contains(t, text, "  A B C D E F G H")
}

func TestPlayReportsComputerMoves(t *testing.T) {
	g := session.New(core.Black, session.WithSeed(3), session.WithLogger(zerolog.Nop()))

	var out bytes.Buffer
	sh := NewShell(strings.NewReader(""), &out)
	err := sh.Play(context.Background(), g)
	require.ErrorIs(t, err, io.EOF)

	text := out.String()
	assert.Contains(t, text, "Computer moved: ")
	assert.Contains(t, text, "1|")
	assert.Len(t, g.History(), 1)
}

func TestPlayStopsOnCancel(t *testing.T) {
	g := session.New(core.White, session.WithLogger(zerolog.Nop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewShell(strings.NewReader("C3 D4\n"), &out).Play(ctx, g)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, g.History())
}
