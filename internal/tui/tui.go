// Package tui is the interactive hand-by-hand odds explorer: pick a random
// or manual deal, then step through the streets and read the distribution
// of the best opposing hand at each one.
package tui

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/display"
	"github.com/lox/holdem-odds/internal/game"
	"github.com/lox/holdem-odds/internal/randutil"
)

// Phase is the step of the interactive flow the model is waiting on
type Phase int

const (
	ChooseMode Phase = iota
	EnterHole
	Analyzing
	NextStreet
	PlayAgain
)

// Options configures a TUIModel
type Options struct {
	Analyzer  *game.Analyzer
	Renderer  *display.Renderer
	Logger    *log.Logger
	Opponents []int
	Trials    int
	Seed      int64
}

// analysisMsg carries a finished analysis back into the update loop
type analysisMsg struct {
	game    *game.Game
	results []game.Analysis
	err     error
}

// TUIModel represents the Bubble Tea model for the odds explorer
type TUIModel struct {
	opts   Options
	logger *log.Logger

	// UI components
	viewport viewport.Model
	input    textinput.Model

	// State
	phase    Phase
	game     *game.Game
	hands    int
	status   string
	cancel   context.CancelFunc
	quitting bool

	// Dimensions
	width  int
	height int
}

// NewTUIModel creates a new TUI model
func NewTUIModel(opts Options) *TUIModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	// Sized properly when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputTextStyle
	ti.Prompt = "> "

	m := &TUIModel{
		opts:     opts,
		logger:   opts.Logger.WithPrefix("tui"),
		viewport: vp,
		input:    ti,
	}
	m.setPhase(ChooseMode)
	return m
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(1, msg.Width-2)
		m.viewport.Height = max(1, msg.Height-8) // title, input pane, status and borders
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case analysisMsg:
		return m, m.handleAnalysis(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit()
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			return m, m.submit(value)
		}
		if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
			// Navigation keys scroll the analysis; typed text goes to the input only
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit acts on a line entered in the current phase
func (m *TUIModel) submit(value string) tea.Cmd {
	m.status = ""

	switch m.phase {
	case ChooseMode:
		switch strings.ToLower(value) {
		case "r", "random":
			g, err := game.NewRandomGame(m.dealRNG())
			if err != nil {
				m.status = err.Error()
				return nil
			}
			return m.startHand(g)
		case "m", "manual":
			m.setPhase(EnterHole)
		default:
			m.status = fmt.Sprintf("I couldn't understand %q. Type manual or random.", value)
		}

	case EnterHole:
		cards, err := deck.ParseCards(value)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		if len(cards) != 2 {
			m.status = fmt.Sprintf("Enter exactly 2 pocket cards, got %d", len(cards))
			return nil
		}
		g, err := game.NewManualGame(cards[0], cards[1], m.dealRNG())
		if err != nil {
			m.status = describeError(err)
			return nil
		}
		return m.startHand(g)

	case NextStreet:
		if value == "" {
			if err := m.game.Advance(); err != nil {
				m.status = err.Error()
				return nil
			}
		} else {
			cards, err := deck.ParseCards(value)
			if err != nil {
				m.status = err.Error()
				return nil
			}
			if err := m.game.AddCommunity(cards...); err != nil {
				m.status = describeError(err)
				return nil
			}
		}
		m.logger.Debug("Dealt street", "street", m.game.Street(), "community", deck.FormatCards(m.game.Community()))
		return m.analyze()

	case PlayAgain:
		switch strings.ToLower(value) {
		case "y", "yes", "":
			m.game = nil
			m.viewport.SetContent("")
			m.setPhase(ChooseMode)
		case "n", "no":
			m.quit()
			return tea.Sequence(tea.ClearScreen, tea.Quit)
		default:
			m.status = "Play again? Type y or n."
		}

	case Analyzing:
		m.status = "Still analyzing..."
	}

	return nil
}

func (m *TUIModel) startHand(g *game.Game) tea.Cmd {
	m.game = g
	m.hands++
	m.logger.Info("Starting hand", "hand", m.hands, "hole", deck.FormatCards(g.Hole()))
	return m.analyze()
}

// dealRNG gives every hand its own reproducible deck order
func (m *TUIModel) dealRNG() *rand.Rand {
	return randutil.Stream(m.opts.Seed, m.hands)
}

// analyze samples the current street in the background
func (m *TUIModel) analyze() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.setPhase(Analyzing)

	g := m.game
	table := g.Table()
	seed := m.opts.Seed + int64(m.hands)*1000 + int64(g.Street())*100
	analyzer, opponents, trials := m.opts.Analyzer, m.opts.Opponents, m.opts.Trials

	return func() tea.Msg {
		defer cancel()
		results, err := analyzer.Analyze(ctx, table, opponents, trials, seed)
		return analysisMsg{game: g, results: results, err: err}
	}
}

func (m *TUIModel) handleAnalysis(msg analysisMsg) tea.Cmd {
	m.cancel = nil
	if msg.game != m.game {
		// Stale result from an abandoned hand
		return nil
	}
	if msg.err != nil {
		m.logger.Error("Analysis failed", "error", msg.err)
		m.status = describeError(msg.err)
	}

	m.viewport.SetContent(m.opts.Renderer.Analysis(msg.game, msg.results))
	m.viewport.GotoTop()

	if msg.game.Complete() {
		m.setPhase(PlayAgain)
	} else {
		m.setPhase(NextStreet)
	}
	return nil
}

func (m *TUIModel) setPhase(p Phase) {
	m.phase = p
	switch p {
	case ChooseMode:
		m.input.Placeholder = "manual or random"
	case EnterHole:
		m.input.Placeholder = "your pocket cards, e.g. AsKd"
	case Analyzing:
		m.input.Placeholder = "analyzing..."
	case NextStreet:
		m.input.Placeholder = fmt.Sprintf("Enter to deal the %s, or type the cards", m.game.Street()+1)
	case PlayAgain:
		m.input.Placeholder = "play again? (y/n)"
	}
}

func (m *TUIModel) quit() {
	m.quitting = true
	if m.cancel != nil {
		m.cancel()
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	title := TitleStyle.Render("Texas Hold'em odds")
	if m.game != nil {
		title += " " + HelpStyle.Render(fmt.Sprintf("hand %d, %s", m.hands, m.game.Street()))
	}

	var prompt strings.Builder
	prompt.WriteString(m.question())
	prompt.WriteString("\n")
	prompt.WriteString(m.input.View())
	prompt.WriteString("\n")
	if m.status != "" {
		prompt.WriteString(ErrorStyle.Render(m.status))
	} else {
		prompt.WriteString(HelpStyle.Render("↑↓ PgUp/PgDn scroll • Enter to submit • Ctrl+C to quit"))
	}

	body := m.viewport.View()
	if m.width > 0 {
		body = PaneStyle.Width(max(1, m.width-2)).Render(body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, prompt.String())
}

func (m *TUIModel) question() string {
	switch m.phase {
	case ChooseMode:
		return "Manual game or random game?"
	case EnterHole:
		return "Enter your pocket cards:"
	case Analyzing:
		return WarningStyle.Render("Analyzing...")
	case NextStreet:
		return fmt.Sprintf("Hit Enter for the %s", strings.ToLower((m.game.Street() + 1).String()))
	case PlayAgain:
		return "Play again?"
	default:
		return ""
	}
}

// Phase returns the step the model is waiting on
func (m *TUIModel) Phase() Phase {
	return m.phase
}

// Game returns the hand in progress, if any
func (m *TUIModel) Game() *game.Game {
	return m.game
}

// Status returns the last error or notice shown to the user
func (m *TUIModel) Status() string {
	return m.status
}

// describeError turns domain errors into a line the user can act on
func describeError(err error) string {
	var dup *deck.DuplicateCardError
	if errors.As(err, &dup) {
		return fmt.Sprintf("%s is already in use", dup.Card)
	}
	return err.Error()
}
