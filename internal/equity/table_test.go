package equity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
)

// remainingAfter returns the 52-card universe minus the given cards
func remainingAfter(used ...[]deck.Card) []deck.Card {
	var taken deck.CardSet
	for _, group := range used {
		for _, card := range group {
			taken.Add(card)
		}
	}
	var remaining []deck.Card
	for _, card := range deck.FullDeck() {
		if !taken.Contains(card) {
			remaining = append(remaining, card)
		}
	}
	return remaining
}

func buildTable(t *testing.T, hole, board string) *Table {
	t.Helper()
	holeCards := deck.MustParseCards(hole)
	community := deck.MustParseCards(board)
	table, err := Build(holeCards, community, remainingAfter(holeCards, community))
	require.NoError(t, err)
	return table
}

func TestBuildPreflop(t *testing.T) {
	table := buildTable(t, "AsAh", "")

	assert.Equal(t, 1225, table.Len())
	assert.Len(t, table.Remaining(), 50)
	assert.Empty(t, table.Community())
	assert.Equal(t, evaluator.OnePair, table.PlayerStrength().Level)
}

func TestLookupIsOrderIndependent(t *testing.T) {
	table := buildTable(t, "AsAh", "Kd7c2h")
	a, b := deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Spades, deck.Seven)

	ab, ok := table.Lookup(a, b)
	require.True(t, ok)
	ba, ok := table.Lookup(b, a)
	require.True(t, ok)
	assert.Equal(t, ab, ba)
	assert.Equal(t, evaluator.MustEvaluate(deck.MustParseCards("Kd7c2hKs7s")), ab)
}

func TestLookupMissingCards(t *testing.T) {
	table := buildTable(t, "AsAh", "Kd7c2h")

	_, ok := table.Lookup(deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Spades, deck.King))
	assert.False(t, ok, "hole card must not be in the table")

	_, ok = table.Lookup(deck.NewCard(deck.Diamonds, deck.King), deck.NewCard(deck.Spades, deck.King))
	assert.False(t, ok, "community card must not be in the table")

	same := deck.NewCard(deck.Spades, deck.King)
	_, ok = table.Lookup(same, same)
	assert.False(t, ok)

	_, ok = table.Lookup(deck.Card{}, same)
	assert.False(t, ok)
}

func TestEntriesMatchDirectEvaluation(t *testing.T) {
	table := buildTable(t, "9c9d", "Th8h2s7d")
	community := table.Community()

	seen := 0
	table.Each(func(a, b deck.Card, strength evaluator.HandStrength) {
		seen++
		direct := evaluator.MustEvaluate(append(append([]deck.Card(nil), community...), a, b))
		require.Equal(t, direct, strength, "pair %s%s", a, b)
	})
	assert.Equal(t, 46*45/2, seen)
	assert.Equal(t, seen, table.Len())
}

func TestAdvanceShrinksTable(t *testing.T) {
	preflop := buildTable(t, "QsJs", "")
	flopCards := deck.MustParseCards("Ts9s2d")

	flop, err := preflop.Advance(flopCards...)
	require.NoError(t, err)
	turn, err := flop.Advance(deck.MustParseCards("8s")...)
	require.NoError(t, err)
	river, err := turn.Advance(deck.MustParseCards("Ah")...)
	require.NoError(t, err)

	assert.Equal(t, 1225, preflop.Len(), "advancing must not mutate the previous snapshot")
	assert.Equal(t, 47*46/2, flop.Len())
	assert.Equal(t, 46*45/2, turn.Len())
	assert.Equal(t, 45*44/2, river.Len())
	assert.Equal(t, evaluator.StraightFlush, river.PlayerStrength().Level)

	for _, table := range []*Table{flop, turn, river} {
		excluded := deck.NewCardSet(append(table.Hole(), table.Community()...)...)
		table.Each(func(a, b deck.Card, _ evaluator.HandStrength) {
			assert.False(t, excluded.Contains(a), "%s leaked into table", a)
			assert.False(t, excluded.Contains(b), "%s leaked into table", b)
		})
	}
}

func TestAdvanceRejectsUsedCards(t *testing.T) {
	flop := buildTable(t, "QsJs", "Ts9s2d")

	var dup *deck.DuplicateCardError
	_, err := flop.Advance(deck.MustParseCards("Qs")...)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, deck.NewCard(deck.Spades, deck.Queen), dup.Card)

	_, err = flop.Advance(deck.MustParseCards("2d")...)
	assert.ErrorAs(t, err, &dup)

	_, err = flop.Advance(deck.MustParseCards("3h3h")...)
	assert.ErrorAs(t, err, &dup)
}

func TestBuildValidation(t *testing.T) {
	hole := deck.MustParseCards("AsKs")

	_, err := Build(deck.MustParseCards("As"), nil, remainingAfter(hole))
	assert.Error(t, err)

	board := deck.MustParseCards("2h3h")
	_, err = Build(hole, board, remainingAfter(hole, board))
	assert.Error(t, err, "two community cards is not a street")

	var dup *deck.DuplicateCardError
	board = deck.MustParseCards("As3h4h")
	_, err = Build(hole, board, remainingAfter(hole, board))
	assert.ErrorAs(t, err, &dup)

	board = deck.MustParseCards("2h3h4h")
	_, err = Build(hole, board, remainingAfter(hole))
	assert.ErrorAs(t, err, &dup, "community cards still in the deck")
}
