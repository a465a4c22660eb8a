package deck

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseCards parses a string of card notation into a slice of cards.
//
// Each card is a rank followed by a suit. Ranks: A, K, Q, J, T (or 10),
// 9..2 and 1 as an alias for the ace. Suits: s, h, d, c or ♠ ♥ ♦ ♣.
// Matching is case-insensitive and spaces or commas between cards are
// ignored, so "AsKd", "As Kd" and "10h,1c" all parse.
func ParseCards(s string) ([]Card, error) {
	runes := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, s))

	cards := []Card{}
	for i := 0; i < len(runes); {
		rank, width, err := parseRank(runes[i:])
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", len(cards)+1, err)
		}
		i += width
		if i >= len(runes) {
			return nil, fmt.Errorf("card %d: missing suit after rank %s", len(cards)+1, rank)
		}
		suit, err := parseSuit(runes[i])
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", len(cards)+1, err)
		}
		i++
		cards = append(cards, Card{Suit: suit, Rank: rank})
	}

	return cards, nil
}

// ParseCard parses exactly one card
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("expected one card in %q, got %d", s, len(cards))
	}
	return cards[0], nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards renders cards in compact notation ("AsKd")
func FormatCards(cards []Card) string {
	var b strings.Builder
	for _, card := range cards {
		b.WriteString(card.Notation())
	}
	return b.String()
}

func parseRank(runes []rune) (Rank, int, error) {
	if len(runes) >= 2 && runes[0] == '1' && runes[1] == '0' {
		return Ten, 2, nil
	}
	switch unicode.ToUpper(runes[0]) {
	case 'A', '1':
		return Ace, 1, nil
	case 'K':
		return King, 1, nil
	case 'Q':
		return Queen, 1, nil
	case 'J':
		return Jack, 1, nil
	case 'T':
		return Ten, 1, nil
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(runes[0] - '0'), 1, nil
	default:
		return 0, 0, fmt.Errorf("unknown rank '%c'", runes[0])
	}
}

func parseSuit(r rune) (Suit, error) {
	switch unicode.ToLower(r) {
	case 's', '♠':
		return Spades, nil
	case 'h', '♥':
		return Hearts, nil
	case 'd', '♦':
		return Diamonds, nil
	case 'c', '♣':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", r)
	}
}
