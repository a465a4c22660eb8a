package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/holdem-odds/internal/config"
	"github.com/lox/holdem-odds/internal/display"
	"github.com/lox/holdem-odds/internal/game"
	"github.com/lox/holdem-odds/internal/randutil"
)

// OddsCmd reports the best-opposing-hand distribution for one position
type OddsCmd struct {
	Hole  []string `arg:"" help:"Your two hole cards, e.g. 'AsKs'"`
	Board string   `short:"b" help:"Community cards: a flop, turn or river (e.g. 'Td7s8h')"`
	Exact bool     `short:"x" help:"Enumerate every heads-up opponent hand instead of sampling"`
}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, seed := newAnalyzer(cfg, logger)
	renderer := display.NewRenderer(os.Stdout, cfg.ColorEnabled())
	return c.run(ctx, os.Stdout, renderer, analyzer, cfg, seed)
}

func (c *OddsCmd) run(ctx context.Context, w io.Writer, r *display.Renderer, analyzer *game.Analyzer, cfg *config.Config, seed int64) error {
	hole, err := parseCardArgs(c.Hole)
	if err != nil {
		return err
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}

	g, err := game.NewManualGame(hole[0], hole[1], randutil.New(seed))
	if err != nil {
		return err
	}
	if c.Board != "" {
		board, err := parseCardArgs([]string{c.Board})
		if err != nil {
			return err
		}
		if err := g.AddCommunity(board...); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	if c.Exact {
		results := []game.Analysis{analyzer.AnalyzeExact(g.Table())}
		fmt.Fprint(w, r.Analysis(g, results))
		return nil
	}

	results, err := analyzer.Analyze(ctx, g.Table(), cfg.Opponents, cfg.Simulation.Trials, seed)
	if len(results) > 0 || err == nil {
		fmt.Fprint(w, r.Analysis(g, results))
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("interrupted with %d of %d opponent counts reported", len(results), len(cfg.Opponents))
	}
	return err
}
