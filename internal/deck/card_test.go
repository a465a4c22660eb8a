package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Spades, Ace).String())
	assert.Equal(t, "T♥", NewCard(Hearts, Ten).String())
	assert.Equal(t, "2♣", NewCard(Clubs, Two).String())
	assert.Equal(t, "9d", NewCard(Diamonds, Nine).Notation())
}

func TestRankNames(t *testing.T) {
	assert.Equal(t, "Queen", Queen.Name())
	assert.Equal(t, "Queens", Queen.Plural())
	assert.Equal(t, "Sixes", Six.Plural())
	assert.Equal(t, "Unknown", Rank(1).Name())
}

func TestCardIndexRoundTrip(t *testing.T) {
	seen := make(map[int]bool)
	for _, card := range FullDeck() {
		idx := card.Index()
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 52)
		assert.False(t, seen[idx], "index %d reused by %s", idx, card)
		seen[idx] = true
		assert.Equal(t, card, CardFromIndex(idx))
	}
	assert.Len(t, seen, 52)
}

func TestCardSet(t *testing.T) {
	cs := NewCardSet(MustParseCards("AsKd2c")...)
	assert.Equal(t, 3, cs.Len())
	assert.True(t, cs.Contains(NewCard(Diamonds, King)))
	assert.False(t, cs.Contains(NewCard(Hearts, King)))

	cs.Remove(NewCard(Diamonds, King))
	assert.False(t, cs.Contains(NewCard(Diamonds, King)))
	assert.ElementsMatch(t, MustParseCards("As2c"), cs.Cards())
}

func TestValidateDistinct(t *testing.T) {
	assert.NoError(t, ValidateDistinct(MustParseCards("AsKs"), MustParseCards("2h3h4h")))

	err := ValidateDistinct(MustParseCards("AsKs"), MustParseCards("2hAs"))
	var dup *DuplicateCardError
	if assert.ErrorAs(t, err, &dup) {
		assert.Equal(t, NewCard(Spades, Ace), dup.Card)
	}

	assert.Error(t, ValidateDistinct([]Card{{Suit: Spades, Rank: 1}}))
}
