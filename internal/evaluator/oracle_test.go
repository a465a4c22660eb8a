package evaluator

import (
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/randutil"
)

// toOracle converts a card to the paulhankin/poker encoding, where aces
// are rank 1 and suits run clubs, diamonds, hearts, spades.
func toOracle(t *testing.T, c deck.Card) poker.Card {
	t.Helper()
	rank := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		rank = 1
	}
	suit := poker.Suit(deck.Clubs - c.Suit)
	card, err := poker.MakeCard(suit, rank)
	require.NoError(t, err)
	return card
}

func oracleScore(t *testing.T, cards []deck.Card) int16 {
	t.Helper()
	var hand [7]poker.Card
	for i, c := range cards {
		hand[i] = toOracle(t, c)
	}
	return poker.Eval7(&hand)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Random showdowns must be ordered the same way by an independent evaluator.
func TestEvaluateAgreesWithOracle(t *testing.T) {
	rng := randutil.New(31337)
	const showdowns = 20000

	for i := 0; i < showdowns; i++ {
		d := deck.NewDeck(rng)
		cards, err := d.Draw(9)
		require.NoError(t, err)

		board := cards[4:]
		a := append([]deck.Card{cards[0], cards[1]}, board...)
		b := append([]deck.Card{cards[2], cards[3]}, board...)

		ours := MustEvaluate(a).Compare(MustEvaluate(b))
		theirs := sign(int(oracleScore(t, a)) - int(oracleScore(t, b)))
		require.Equal(t, theirs, ours, "showdown %v vs %v (%s vs %s)",
			a, b, MustEvaluate(a), MustEvaluate(b))
	}
}
