// Package equity estimates how the strongest of several random opponents
// compares with the player's hand.
//
// A Table caches the strength of every opponent starting hand that can
// still be dealt on the current board. A Sampler draws disjoint opponent
// hands from that table over many trials and counts where the best one
// lands relative to the player; Exact does the same by full enumeration
// for a single opponent.
package equity

import (
	"fmt"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
)

// Table is an immutable snapshot of every two-card opponent hand that can
// be formed from the remaining deck, keyed by the unordered pair, with its
// strength on the current board. Build a new one whenever the board changes.
type Table struct {
	hole      [2]deck.Card
	community []deck.Card
	remaining []deck.Card
	player    evaluator.HandStrength

	// position of each card in remaining, -1 when not in the deck
	position [deck.NumRanks * deck.NumSuits]int
	// strengths in upper-triangular order of (i, j) positions, i < j
	strengths []evaluator.HandStrength
}

// Build evaluates every opponent pair from the remaining deck against the
// community cards. Hole, community and remaining cards must be pairwise
// distinct; the community must be empty, a flop, a turn or a river.
func Build(hole []deck.Card, community []deck.Card, remaining []deck.Card) (*Table, error) {
	if len(hole) != 2 {
		return nil, fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}
	switch len(community) {
	case 0, 3, 4, 5:
	default:
		return nil, fmt.Errorf("community must have 0, 3, 4 or 5 cards, got %d", len(community))
	}
	if err := deck.ValidateDistinct(hole, community, remaining); err != nil {
		return nil, err
	}

	t := &Table{
		hole:      [2]deck.Card{hole[0], hole[1]},
		community: append([]deck.Card(nil), community...),
		remaining: append([]deck.Card(nil), remaining...),
	}

	player, err := evaluator.Evaluate(append(t.hole[:], t.community...))
	if err != nil {
		return nil, fmt.Errorf("evaluate player hand: %w", err)
	}
	t.player = player

	for i := range t.position {
		t.position[i] = -1
	}
	for i, card := range t.remaining {
		t.position[card.Index()] = i
	}

	r := len(t.remaining)
	t.strengths = make([]evaluator.HandStrength, r*(r-1)/2)
	hand := make([]deck.Card, len(t.community)+2)
	copy(hand, t.community)
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			hand[len(hand)-2] = t.remaining[i]
			hand[len(hand)-1] = t.remaining[j]
			strength, err := evaluator.Evaluate(hand)
			if err != nil {
				return nil, fmt.Errorf("evaluate %s%s: %w", t.remaining[i], t.remaining[j], err)
			}
			t.strengths[pairIndex(r, i, j)] = strength
		}
	}

	return t, nil
}

// Advance reveals new community cards and returns the rebuilt table for the
// next street. The cards must still be in the remaining deck; the receiver
// is left unchanged.
func (t *Table) Advance(cards ...deck.Card) (*Table, error) {
	if err := deck.ValidateDistinct(cards); err != nil {
		return nil, err
	}
	revealed := deck.NewCardSet(cards...)
	for _, card := range cards {
		if t.position[card.Index()] < 0 {
			return nil, &deck.DuplicateCardError{Card: card}
		}
	}

	remaining := make([]deck.Card, 0, len(t.remaining)-len(cards))
	for _, card := range t.remaining {
		if !revealed.Contains(card) {
			remaining = append(remaining, card)
		}
	}
	community := append(append([]deck.Card(nil), t.community...), cards...)

	return Build(t.hole[:], community, remaining)
}

// Lookup returns the strength of the opponent hand {a, b}. The order of the
// two cards does not matter. ok is false when either card is not in the
// remaining deck or a == b.
func (t *Table) Lookup(a, b deck.Card) (evaluator.HandStrength, bool) {
	if !a.Valid() || !b.Valid() {
		return evaluator.HandStrength{}, false
	}
	i, j := t.position[a.Index()], t.position[b.Index()]
	if i < 0 || j < 0 || i == j {
		return evaluator.HandStrength{}, false
	}
	return t.at(i, j), true
}

// at looks up a pair by positions in the remaining deck
func (t *Table) at(i, j int) evaluator.HandStrength {
	if i > j {
		i, j = j, i
	}
	return t.strengths[pairIndex(len(t.remaining), i, j)]
}

// Each calls fn for every opponent pair in the table
func (t *Table) Each(fn func(a, b deck.Card, strength evaluator.HandStrength)) {
	r := len(t.remaining)
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			fn(t.remaining[i], t.remaining[j], t.strengths[pairIndex(r, i, j)])
		}
	}
}

// Len returns the number of opponent pairs in the table
func (t *Table) Len() int {
	return len(t.strengths)
}

// Hole returns the player's hole cards
func (t *Table) Hole() []deck.Card {
	return []deck.Card{t.hole[0], t.hole[1]}
}

// Community returns a copy of the community cards the table was built on
func (t *Table) Community() []deck.Card {
	return append([]deck.Card(nil), t.community...)
}

// Remaining returns a copy of the cards opponents can still hold
func (t *Table) Remaining() []deck.Card {
	return append([]deck.Card(nil), t.remaining...)
}

// PlayerStrength is the strength of the hole cards on the current board
func (t *Table) PlayerStrength() evaluator.HandStrength {
	return t.player
}

// pairIndex maps positions i < j out of r to a dense upper-triangular index
func pairIndex(r, i, j int) int {
	return i*(2*r-i-1)/2 + (j - i - 1)
}
