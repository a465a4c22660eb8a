package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/display"
	"github.com/lox/holdem-odds/internal/evaluator"
)

// EvalCmd evaluates a single hand
type EvalCmd struct {
	Cards []string `arg:"" help:"Cards to evaluate, e.g. 'AsKs QsJsTs' (2 to 7 cards)"`
}

func (c *EvalCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	return c.run(os.Stdout, display.NewRenderer(os.Stdout, cfg.ColorEnabled()))
}

func (c *EvalCmd) run(w io.Writer, r *display.Renderer) error {
	cards, err := parseCardArgs(c.Cards)
	if err != nil {
		return err
	}
	if err := deck.ValidateDistinct(cards); err != nil {
		return err
	}

	strength, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, r.Cards(cards))
	fmt.Fprintln(w, r.Strength(strength))
	fmt.Fprintf(w, "%s, strength %d\n", strength, strength.Scalar())
	return nil
}

// parseCardArgs accepts cards split across any number of arguments
func parseCardArgs(args []string) ([]deck.Card, error) {
	cards, err := deck.ParseCards(strings.Join(args, " "))
	if err != nil {
		return nil, fmt.Errorf("parsing cards: %w", err)
	}
	return cards, nil
}
