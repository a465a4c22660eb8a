// Package game steps a single player's hand through the streets of a
// Texas Hold'em deal and keeps the opponent equity table in sync with the
// board.
package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/equity"
	"github.com/lox/holdem-odds/internal/evaluator"
)

// ErrHandComplete is returned when advancing past the river
var ErrHandComplete = errors.New("hand complete: river already dealt")

// Street is a stage of community card reveal
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
)

// String returns the name of the street
func (s Street) String() string {
	switch s {
	case PreFlop:
		return "Pre-Flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

// CommunitySize is the number of community cards showing on the street
func (s Street) CommunitySize() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return 0
	}
}

// streetFor maps a community card count to its street
func streetFor(n int) (Street, error) {
	for s := PreFlop; s <= River; s++ {
		if s.CommunitySize() == n {
			return s, nil
		}
	}
	return 0, fmt.Errorf("no street has %d community cards", n)
}

// Game is one hand from the player's point of view
type Game struct {
	deck      *deck.Deck
	hole      []deck.Card
	community []deck.Card
	street    Street
	table     *equity.Table
}

// NewRandomGame shuffles a fresh deck and deals the player two cards
func NewRandomGame(rng *rand.Rand) (*Game, error) {
	d := deck.NewDeck(rng)
	hole, err := d.Draw(2)
	if err != nil {
		return nil, err
	}
	return newGame(d, hole)
}

// NewManualGame starts a hand with the given hole cards
func NewManualGame(first, second deck.Card, rng *rand.Rand) (*Game, error) {
	d := deck.NewDeck(rng)
	if err := d.Remove(first, second); err != nil {
		return nil, fmt.Errorf("hole cards: %w", err)
	}
	return newGame(d, []deck.Card{first, second})
}

func newGame(d *deck.Deck, hole []deck.Card) (*Game, error) {
	table, err := equity.Build(hole, nil, d.Cards())
	if err != nil {
		return nil, err
	}
	return &Game{deck: d, hole: hole, street: PreFlop, table: table}, nil
}

// Advance deals the next street from the deck: three cards for the flop,
// then one each for the turn and river.
func (g *Game) Advance() error {
	if g.street == River {
		return ErrHandComplete
	}
	n := (g.street + 1).CommunitySize() - len(g.community)
	cards, err := g.deck.Draw(n)
	if err != nil {
		return err
	}
	return g.reveal(cards)
}

// AddCommunity reveals specific community cards, e.g. to follow a real
// board. The cards must bring the board to exactly a flop, turn or river.
func (g *Game) AddCommunity(cards ...deck.Card) error {
	if _, err := streetFor(len(g.community) + len(cards)); err != nil {
		return err
	}
	if err := g.deck.Remove(cards...); err != nil {
		if errors.Is(err, deck.ErrCardNotInDeck) {
			// Not in the deck means it is already held or showing
			for _, card := range cards {
				if !g.deck.Contains(card) {
					return &deck.DuplicateCardError{Card: card}
				}
			}
		}
		return err
	}
	return g.reveal(cards)
}

func (g *Game) reveal(cards []deck.Card) error {
	street, err := streetFor(len(g.community) + len(cards))
	if err != nil {
		return err
	}
	table, err := g.table.Advance(cards...)
	if err != nil {
		return err
	}
	g.community = append(g.community, cards...)
	g.street = street
	g.table = table
	return nil
}

// Street returns the current street
func (g *Game) Street() Street {
	return g.street
}

// Hole returns the player's hole cards
func (g *Game) Hole() []deck.Card {
	return append([]deck.Card(nil), g.hole...)
}

// Community returns the community cards revealed so far
func (g *Game) Community() []deck.Card {
	return append([]deck.Card(nil), g.community...)
}

// Table returns the opponent equity table for the current street
func (g *Game) Table() *equity.Table {
	return g.table
}

// PlayerStrength is the player's hand strength on the current board
func (g *Game) PlayerStrength() evaluator.HandStrength {
	return g.table.PlayerStrength()
}

// Complete reports whether the river has been dealt
func (g *Game) Complete() bool {
	return g.street == River
}
