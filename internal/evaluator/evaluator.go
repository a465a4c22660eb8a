// Package evaluator classifies poker hands of two to seven cards into a
// totally ordered HandStrength following standard hand rankings.
package evaluator

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/lox/holdem-odds/internal/deck"
)

const (
	// MinCards is the smallest hand Evaluate accepts (two hole cards)
	MinCards = 2
	// MaxCards is the largest hand Evaluate accepts (hole cards plus a full board)
	MaxCards = 7
)

// aceLow is the rank an ace takes in the wheel (A-2-3-4-5)
const aceLow deck.Rank = 1

// wheelMask has the bits for A, 2, 3, 4 and 5 set
const wheelMask = 1<<deck.Ace | 1<<deck.Two | 1<<deck.Three | 1<<deck.Four | 1<<deck.Five

// InvalidHandError is returned for card multisets Evaluate cannot classify.
// Invalid is set when a card lies outside the 52-card universe.
type InvalidHandError struct {
	Count   int
	Invalid *deck.Card
}

func (e *InvalidHandError) Error() string {
	if e.Invalid != nil {
		return fmt.Sprintf("invalid hand: card with rank %d and suit %d is not a standard card", e.Invalid.Rank, e.Invalid.Suit)
	}
	return fmt.Sprintf("invalid hand: %d cards (need %d to %d)", e.Count, MinCards, MaxCards)
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// Evaluate returns the strength of the best hand that can be made from
// cards. The result does not depend on the order of cards. Hands with fewer
// than five cards are classified by the best grouping they contain, so
// straights and flushes never appear for them. Duplicate cards are not
// detected here; callers validate the card universe once up front.
func Evaluate(cards []deck.Card) (HandStrength, error) {
	if len(cards) < MinCards || len(cards) > MaxCards {
		return HandStrength{}, &InvalidHandError{Count: len(cards)}
	}
	for i := range cards {
		if !cards[i].Valid() {
			bad := cards[i]
			return HandStrength{}, &InvalidHandError{Count: len(cards), Invalid: &bad}
		}
	}

	var (
		counts    [deck.Ace + 1]int
		rankMask  uint16
		suitMasks [deck.NumSuits]uint16
	)
	for _, c := range cards {
		counts[c.Rank]++
		rankMask |= 1 << c.Rank
		suitMasks[c.Suit] |= 1 << c.Rank
	}

	// Groups sorted by count desc, then rank desc
	groups := make([]rankGroup, 0, len(cards))
	for r := deck.Ace; r >= deck.Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	var flushMask uint16
	for _, mask := range suitMasks {
		if bits.OnesCount16(mask) >= 5 {
			flushMask = mask
			break
		}
	}

	if flushMask != 0 {
		if high := straightHigh(flushMask); high != 0 {
			return straightStrength(StraightFlush, high), nil
		}
	}

	top := groups[0]

	if top.count == 4 {
		kicker := topRanks(rankMask&^(1<<top.rank), 1)
		return HandStrength{
			Level:    FourOfAKind,
			Tiebreak: [TiebreakSize]deck.Rank{top.rank, top.rank, top.rank, top.rank, kicker[0]},
		}, nil
	}

	if top.count == 3 {
		// The highest trip is the three; the best other group of two or
		// more supplies the pair, even when it is itself a trip.
		var pair deck.Rank
		for _, g := range groups[1:] {
			if g.count >= 2 && g.rank > pair {
				pair = g.rank
			}
		}
		if pair != 0 {
			return HandStrength{
				Level:    FullHouse,
				Tiebreak: [TiebreakSize]deck.Rank{top.rank, top.rank, top.rank, pair, pair},
			}, nil
		}
	}

	if flushMask != 0 {
		var tb [TiebreakSize]deck.Rank
		copy(tb[:], topRanks(flushMask, TiebreakSize))
		return HandStrength{Level: Flush, Tiebreak: tb}, nil
	}

	if high := straightHigh(rankMask); high != 0 {
		return straightStrength(Straight, high), nil
	}

	switch {
	case top.count == 3:
		kickers := topRanks(rankMask&^(1<<top.rank), 2)
		return HandStrength{
			Level:    ThreeOfAKind,
			Tiebreak: [TiebreakSize]deck.Rank{top.rank, top.rank, top.rank, kickers[0], kickers[1]},
		}, nil

	case top.count == 2 && len(groups) > 1 && groups[1].count == 2:
		high, low := top.rank, groups[1].rank
		kicker := topRanks(rankMask&^(1<<high|1<<low), 1)
		return HandStrength{
			Level:    TwoPair,
			Tiebreak: [TiebreakSize]deck.Rank{high, high, low, low, kicker[0]},
		}, nil

	case top.count == 2:
		kickers := topRanks(rankMask&^(1<<top.rank), 3)
		return HandStrength{
			Level:    OnePair,
			Tiebreak: [TiebreakSize]deck.Rank{top.rank, top.rank, kickers[0], kickers[1], kickers[2]},
		}, nil
	}

	var tb [TiebreakSize]deck.Rank
	copy(tb[:], topRanks(rankMask, TiebreakSize))
	return HandStrength{Level: HighCard, Tiebreak: tb}, nil
}

// MustEvaluate evaluates cards and panics on error (for tests)
func MustEvaluate(cards []deck.Card) HandStrength {
	h, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return h
}

// straightHigh returns the high card of the best straight in a rank mask,
// Five for the wheel, or 0 when there is none.
func straightHigh(mask uint16) deck.Rank {
	for high := deck.Ace; high >= deck.Six; high-- {
		run := uint16(0x1F) << (high - 4)
		if mask&run == run {
			return high
		}
	}
	if mask&wheelMask == wheelMask {
		return deck.Five
	}
	return 0
}

func straightStrength(level Level, high deck.Rank) HandStrength {
	h := HandStrength{Level: level}
	for i := range h.Tiebreak {
		h.Tiebreak[i] = high - deck.Rank(i)
	}
	if high == deck.Five {
		h.Tiebreak[4] = aceLow
	}
	return h
}

// topRanks returns the n highest ranks set in mask, zero-padded to length n
func topRanks(mask uint16, n int) []deck.Rank {
	ranks := make([]deck.Rank, n)
	i := 0
	for r := deck.Ace; r >= deck.Two && i < n; r-- {
		if mask&(1<<r) != 0 {
			ranks[i] = r
			i++
		}
	}
	return ranks
}
