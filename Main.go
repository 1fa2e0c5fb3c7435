package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"Checkers/game/console"
	"Checkers/game/core"
	"Checkers/game/logging"
	"Checkers/game/session"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "checkers",
		Usage: "play checkers against a random computer opponent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "trace|debug|info|warn|error",
				EnvVars: []string{"CHECKERS_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "backward-captures",
				Value:   true,
				Usage:   "allow men to capture backward",
				EnvVars: []string{"CHECKERS_BACKWARD_CAPTURES"},
			},
			&cli.BoolFlag{
				Name:    "long-king-moves",
				Usage:   "let the computer move kings more than one square",
				EnvVars: []string{"CHECKERS_LONG_KING_MOVES"},
			},
		},
		Before: func(cCtx *cli.Context) error {
			logging.Configure(cCtx.String("log-level"), true)
			return nil
		},
		DefaultCommand: "play",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "color",
						Aliases: []string{"c"},
						Usage:   "your color (w|b); asked interactively when empty",
						EnvVars: []string{"CHECKERS_COLOR"},
					},
					&cli.Uint64Flag{
						Name:    "seed",
						Usage:   "seed for the computer's choices; random when 0",
						EnvVars: []string{"CHECKERS_SEED"},
					},
				},
				Action: runPlay,
			},
			{
				Name:  "serve",
				Usage: "serve games over websocket",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Value:   ":8080",
						Usage:   "listen address",
						EnvVars: []string{"CHECKERS_ADDR"},
					},
				},
				Action: runServe,
			},
		},
	}
}

func rulesFrom(cCtx *cli.Context) core.Rules {
	return core.Rules{
		BackwardManCaptures: cCtx.Bool("backward-captures"),
		LongRangeKingMoves:  cCtx.Bool("long-king-moves"),
	}
}

func runPlay(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shell := console.NewShell(os.Stdin, os.Stdout)

	var (
		human core.Color
		err   error
	)
	if v := cCtx.String("color"); v != "" {
		human, err = core.ParseColor(v)
	} else {
		human, err = shell.AskColor()
	}
	if err != nil {
		return quiet(err)
	}

	opts := []session.Option{session.WithRules(rulesFrom(cCtx)), session.WithLogger(log.Logger)}
	if seed := cCtx.Uint64("seed"); seed != 0 {
		opts = append(opts, session.WithSeed(seed))
	}

	return quiet(shell.Play(ctx, session.New(human, opts...)))
}

// quiet drops the errors that just mean the player left.
func quiet(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
