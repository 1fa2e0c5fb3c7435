package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"Checkers/game/core"
	"Checkers/game/session"
)

type styles struct {
	prompt lipgloss.Style
	info   lipgloss.Style
	errMsg lipgloss.Style
	result lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		prompt: r.NewStyle().Bold(true),
		info:   r.NewStyle().Foreground(lipgloss.Color("12")),
		errMsg: r.NewStyle().Foreground(lipgloss.Color("9")),
		result: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}

// Shell is the terminal front-end: it prints the board, reads the human's
// moves and reports the computer's replies.
type Shell struct {
	in    *bufio.Reader
	out   io.Writer
	style styles
}

func NewShell(in io.Reader, out io.Writer) *Shell {
	return &Shell{
		in:    bufio.NewReader(in),
		out:   out,
		style: newStyles(out),
	}
}

// AskColor prompts until the player picks a side.
func (s *Shell) AskColor() (core.Color, error) {
	for {
		s.printf(s.style.prompt, "Choose your color (W/B): ")
		line, err := s.readLine()
		if err != nil {
			return core.White, err
		}
		c, err := core.ParseColor(line)
		if err == nil {
			s.println(s.style.info, fmt.Sprintf("You are playing as %s", c))
			return c, nil
		}
		s.println(s.style.errMsg, "Please answer W or B.")
	}
}

// Play runs g until it is over, the input ends or ctx is cancelled.
func (s *Shell) Play(ctx context.Context, g *session.Game) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, core.Render(g.Board(), g.Orientation()))

		switch g.Phase() {
		case session.GameOver:
			s.announce(g)
			return nil

		case session.HumanToMove:
			s.printf(s.style.prompt, "Your move (e.g., C3 D4): ")
			line, err := s.readLine()
			if err != nil {
				return err
			}
			if _, err := g.PlayHuman(line); err != nil {
				log.Debug().Err(err).Msg("human move rejected")
				s.println(s.style.errMsg, fmt.Sprintf("Invalid move, try again! (%s)", reason(err)))
			}

		case session.ComputerToMove:
			turn, err := g.PlayComputer()
			if errors.Is(err, session.ErrNoMoves) {
				continue
			}
			if err != nil {
				return err
			}
			s.println(s.style.info, "Computer moved: "+turn.Notation)
		}
	}
}

func (s *Shell) announce(g *session.Game) {
	winner, _ := g.Winner()
	if winner == g.Human() {
		s.println(s.style.result, "Computer has no valid moves. You win!")
		return
	}
	s.println(s.style.result, "You have no valid moves. Computer wins!")
}

func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) printf(st lipgloss.Style, text string) {
	fmt.Fprint(s.out, st.Render(text))
}

func (s *Shell) println(st lipgloss.Style, text string) {
	fmt.Fprintln(s.out, st.Render(text))
}

func reason(err error) string {
	switch {
	case errors.Is(err, core.ErrMalformedMove):
		return "use squares like C3 D4, chains like F4 D6 B4"
	case errors.Is(err, core.ErrIllegalMove):
		msg := err.Error()
		if i := strings.LastIndex(msg, ": "); i >= 0 {
			return msg[i+2:]
		}
		return msg
	}
	return err.Error()
}
