package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-odds/internal/deck"
)

// CardHeight is the number of lines in a card drawing
const CardHeight = 10

var suitArt = map[deck.Suit][6]string{
	deck.Clubs: {
		`|      __      |`,
		`|     /  \     |`,
		`|    _\  /_    |`,
		`|   /      \   |`,
		`|   \__/\__/   |`,
		`|      ||      |`,
	},
	deck.Spades: {
		`|              |`,
		`|      /\      |`,
		`|     /  \     |`,
		`|    /    \    |`,
		`|    \____/    |`,
		`|      ||      |`,
	},
	deck.Diamonds: {
		`|      /\      |`,
		`|     /  \     |`,
		`|    /    \    |`,
		`|    \    /    |`,
		`|     \  /     |`,
		`|      \/      |`,
	},
	deck.Hearts: {
		`|    __  __    |`,
		`|   /  \/  \   |`,
		`|   \      /   |`,
		`|    \    /    |`,
		`|     \  /     |`,
		`|      \/      |`,
	},
}

// CardArt draws a card as CardHeight lines of equal width
func CardArt(card deck.Card) []string {
	upperLeft, lowerRight := card.Rank.String()+" ", " "+card.Rank.String()
	if card.Rank == deck.Ten {
		upperLeft, lowerRight = "10", "10"
	}

	lines := make([]string, 0, CardHeight)
	lines = append(lines, ` ______________ `, "| "+upperLeft+"           |")
	art, ok := suitArt[card.Suit]
	if !ok {
		art = [6]string{}
		for i := range art {
			art[i] = strings.Repeat(" ", 16)
		}
	}
	lines = append(lines, art[:]...)
	lines = append(lines, "|           "+lowerRight+" |", `|______________|`)
	return lines
}

// Cards draws cards side by side, coloured by suit
func (r *Renderer) Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}
	drawn := make([]string, len(cards))
	for i, card := range cards {
		style := r.styles.BlackCard
		if card.IsRed() {
			style = r.styles.RedCard
		}
		drawn[i] = style.Render(strings.Join(CardArt(card), "\n"))
	}

	row := make([]string, 0, 2*len(drawn)-1)
	for i, d := range drawn {
		if i > 0 {
			row = append(row, " ")
		}
		row = append(row, d)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, row...)
}

// CardsInline formats cards on one line, e.g. "A♠ K♥"
func (r *Renderer) CardsInline(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		style := r.styles.BlackCard
		if card.IsRed() {
			style = r.styles.RedCard
		}
		parts[i] = style.Render(card.String())
	}
	return strings.Join(parts, " ")
}
