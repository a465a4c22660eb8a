package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-odds/internal/deck"
)

// Level is the category of a poker hand, weakest first
type Level int

const (
	HighCard Level = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// NumLevels is the number of hand categories
const NumLevels = 9

// String returns the readable name of the level
func (l Level) String() string {
	switch l {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Levels returns every level in ascending order of strength
func Levels() []Level {
	levels := make([]Level, NumLevels)
	for i := range levels {
		levels[i] = Level(i)
	}
	return levels
}

// TiebreakSize is the number of rank slots compared within a level
const TiebreakSize = 5

// scalarBase covers the rank domain 0..14 so packed slots never overlap
const scalarBase = 15

// HandStrength is the totally ordered strength of a hand: its level, then
// the tiebreak ranks most-significant first. Unused slots are zero.
type HandStrength struct {
	Level    Level
	Tiebreak [TiebreakSize]deck.Rank
}

// Scalar packs the strength into a single comparable integer:
// level*15^5 + sum(tiebreak[i] * 15^(4-i)).
func (h HandStrength) Scalar() int {
	v := int(h.Level)
	for _, r := range h.Tiebreak {
		v = v*scalarBase + int(r)
	}
	return v
}

// Compare returns 1 if h is stronger, -1 if weaker and 0 on an exact tie
func (h HandStrength) Compare(other HandStrength) int {
	a, b := h.Scalar(), other.Scalar()
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// String returns the level with its tiebreak ranks, e.g. "Full House [K K K Q Q]"
func (h HandStrength) String() string {
	parts := make([]string, 0, TiebreakSize)
	for _, r := range h.Tiebreak {
		if r == 0 {
			break
		}
		parts = append(parts, rankLabel(r))
	}
	return fmt.Sprintf("%s [%s]", h.Level, strings.Join(parts, " "))
}

// Description returns a human readable summary such as
// "Pair of Kings, A-J-4 kickers" or "Queens full of Fours".
func (h HandStrength) Description() string {
	tb := h.Tiebreak
	switch h.Level {
	case StraightFlush:
		if tb[0] == deck.Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", tb[0].Name())
	case FourOfAKind:
		return withKickers("Four "+tb[0].Plural(), tb[4:])
	case FullHouse:
		return fmt.Sprintf("%s full of %s", tb[0].Plural(), tb[3].Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s high", tb[0].Name())
	case Straight:
		return fmt.Sprintf("Straight, %s high", tb[0].Name())
	case ThreeOfAKind:
		return withKickers("Three "+tb[0].Plural(), tb[3:])
	case TwoPair:
		return withKickers(fmt.Sprintf("%s and %s", tb[0].Plural(), tb[2].Plural()), tb[4:])
	case OnePair:
		return withKickers("Pair of "+tb[0].Plural(), tb[2:])
	case HighCard:
		return withKickers(tb[0].Name()+" high", tb[1:])
	default:
		return "Unknown"
	}
}

func withKickers(head string, kickers []deck.Rank) string {
	var labels []string
	for _, r := range kickers {
		if r != 0 {
			labels = append(labels, rankLabel(r))
		}
	}
	switch len(labels) {
	case 0:
		return head
	case 1:
		return fmt.Sprintf("%s, %s kicker", head, labels[0])
	default:
		return fmt.Sprintf("%s, %s kickers", head, strings.Join(labels, "-"))
	}
}

// rankLabel prints the ace-low rank of a wheel as "A" too
func rankLabel(r deck.Rank) string {
	if r == 1 {
		return deck.Ace.String()
	}
	return r.String()
}
