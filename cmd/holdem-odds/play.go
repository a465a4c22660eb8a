package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdem-odds/internal/display"
	"github.com/lox/holdem-odds/internal/tui"
)

// PlayCmd runs the interactive explorer
type PlayCmd struct {
	LogFile string `default:"holdem-odds.log" help:"Log file path; the terminal is owned by the UI"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := newLogger(logFile, cfg)
	analyzer, seed := newAnalyzer(cfg, logger)
	logger.Info("Starting interactive session", "seed", seed, "trials", cfg.Simulation.Trials, "opponents", cfg.Opponents)

	model := tui.NewTUIModel(tui.Options{
		Analyzer:  analyzer,
		Renderer:  display.NewRenderer(os.Stdout, cfg.ColorEnabled()),
		Logger:    logger,
		Opponents: cfg.Opponents,
		Trials:    cfg.Simulation.Trials,
		Seed:      seed,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running interactive session: %w", err)
	}
	return nil
}
