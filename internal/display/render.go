// Package display renders cards, hand strengths and opponent distributions
// for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-odds/internal/equity"
	"github.com/lox/holdem-odds/internal/evaluator"
	"github.com/lox/holdem-odds/internal/game"
)

// Styles contains all styling for rendered output
type Styles struct {
	Header    lipgloss.Style
	Street    lipgloss.Style
	HandInfo  lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Stronger  lipgloss.Style
	Same      lipgloss.Style
	Weaker    lipgloss.Style
	Border    lipgloss.Style
	Info      lipgloss.Style
	Error     lipgloss.Style
}

// Renderer turns domain values into styled terminal text
type Renderer struct {
	lg     *lipgloss.Renderer
	styles *Styles
}

// NewRenderer creates a renderer writing to w. With color off every style
// renders as plain text.
func NewRenderer(w io.Writer, color bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if !color {
		lg.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		lg: lg,
		styles: &Styles{
			Header: lg.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1).
				Bold(true),
			Street: lg.NewStyle().
				Foreground(lipgloss.Color("#FFD700")).
				Bold(true),
			HandInfo: lg.NewStyle().
				Foreground(lipgloss.Color("#96CEB4")).
				Bold(true),
			RedCard: lg.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B")).
				Bold(true),
			BlackCard: lg.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Bold(true),
			Stronger: lg.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B")),
			Same: lg.NewStyle().
				Foreground(lipgloss.Color("#FFEAA7")).
				Bold(true),
			Weaker: lg.NewStyle().
				Foreground(lipgloss.Color("#96CEB4")),
			Border: lg.NewStyle().
				Foreground(lipgloss.Color("#626262")),
			Info: lg.NewStyle().
				Foreground(lipgloss.Color("#626262")),
			Error: lg.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B")).
				Bold(true),
		},
	}
}

// Styles exposes the renderer's styles for callers composing their own views
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Strength describes a hand strength, e.g. "Kings full of Queens"
func (r *Renderer) Strength(h evaluator.HandStrength) string {
	return r.styles.HandInfo.Render(h.Description())
}

// Percent formats a probability as a percentage with two decimals
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", 100*p)
}

// Distribution renders the best-opposing-hand distribution as a table,
// strongest bucket first, with the player's own level split into its
// High, Tie and Low rows.
func (r *Renderer) Distribution(d equity.Distribution) string {
	entries := d.Entries()
	groups := make([]lipgloss.Style, len(entries))
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Bucket.String(), fmt.Sprintf("%d", e.Count), Percent(e.Probability)}
		switch {
		case i < len(d.Stronger):
			groups[i] = r.styles.Stronger
		case i < len(d.Stronger)+len(d.Same):
			groups[i] = r.styles.Same
		default:
			groups[i] = r.styles.Weaker
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Border).
		Headers("Best opposing hand", "Tables", "Chance").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := r.lg.NewStyle().Padding(0, 1)
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style.Inherit(groups[row])
		})

	beaten := d.StrongerProbability()
	summary := fmt.Sprintf("Beaten %s  Split %s  Ahead %s  %s",
		r.styles.Stronger.Render(Percent(beaten)),
		r.styles.Same.Render(Percent(d.TieProbability())),
		r.styles.Weaker.Render(Percent(d.WeakerProbability())),
		r.styles.Info.Render("±"+Percent(1.96*d.StdError(beaten))))

	return t.Render() + "\n" + summary
}

// Analysis renders one street of a game: the cards, the player's hand and
// a distribution for every analysed opponent count.
func (r *Renderer) Analysis(g *game.Game, results []game.Analysis) string {
	var b strings.Builder

	b.WriteString(r.styles.Street.Render(g.Street().String()))
	b.WriteString("\n\n")

	b.WriteString(r.styles.Info.Render("Your hand"))
	b.WriteString("\n")
	b.WriteString(r.Cards(g.Hole()))
	b.WriteString("\n")

	if community := g.Community(); len(community) > 0 {
		b.WriteString(r.styles.Info.Render("Community cards"))
		b.WriteString("\n")
		b.WriteString(r.Cards(community))
		b.WriteString("\n")
	}

	b.WriteString(r.Strength(g.PlayerStrength()))
	b.WriteString("\n")
	if g.Street() == game.PreFlop {
		if hand, err := game.NewStartingHand(g.Hole()); err == nil {
			b.WriteString(r.styles.Info.Render(fmt.Sprintf("Starting hand %s (%s), %.1f percentile",
				hand, hand.Category(), 100*hand.Percentile())))
			b.WriteString("\n")
		}
	}

	for _, res := range results {
		b.WriteString("\n")
		b.WriteString(r.styles.Header.Render(fmt.Sprintf("%d %s", res.Opponents, plural(res.Opponents, "opponent"))))
		b.WriteString(" ")
		b.WriteString(r.styles.Info.Render(fmt.Sprintf("%d tables in %s", res.Distribution.Trials, res.Elapsed.Round(time.Millisecond))))
		b.WriteString("\n")
		b.WriteString(r.Distribution(res.Distribution))
		b.WriteString("\n")
	}

	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
