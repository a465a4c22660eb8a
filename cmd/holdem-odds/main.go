package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-odds/internal/config"
	"github.com/lox/holdem-odds/internal/equity"
	"github.com/lox/holdem-odds/internal/game"
	"github.com/lox/holdem-odds/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command. Flags left unset fall back to
// the config file, then to built-in defaults.
type Globals struct {
	Config    string `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	Debug     bool   `help:"Enable debug logging"`
	LogLevel  string `short:"l" help:"Log level (overrides config)"`
	Seed      *int64 `help:"Deterministic RNG seed (overrides config)"`
	Trials    *int   `short:"n" help:"Monte Carlo trials per opponent count (overrides config)"`
	Workers   *int   `short:"w" help:"Sampler workers, 0 for min(NumCPU, 8) (overrides config)"`
	Opponents []int  `short:"o" help:"Opponent counts to analyse, each 1 to 22, e.g. 7,5,3,1 (overrides config)"`
	NoColor   bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate a hand of 2 to 7 cards"`
	Odds    OddsCmd          `cmd:"" help:"Distribution of the best opposing hand for given hole and board cards"`
	Play    PlayCmd          `cmd:"" default:"1" help:"Step through a random or manual hand interactively"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-odds"),
		kong.Description("Texas Hold'em hand strength and opponent odds"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load resolves the effective configuration from the file and any flags
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}

	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.Debug {
		cfg.LogLevel = "debug"
	}
	if g.Seed != nil {
		cfg.Simulation.Seed = *g.Seed
	}
	if g.Trials != nil {
		cfg.Simulation.Trials = *g.Trials
	}
	if g.Workers != nil {
		cfg.Simulation.Workers = *g.Workers
	}
	if len(g.Opponents) > 0 {
		cfg.Opponents = g.Opponents
	}
	if g.NoColor {
		color := false
		cfg.Display.Color = &color
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger creates the process logger at the configured level
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// newAnalyzer wires the sampler and analyzer from config, returning the
// seed actually used so runs can be replayed.
func newAnalyzer(cfg *config.Config, logger *log.Logger) (*game.Analyzer, int64) {
	seed := randutil.SeedOrNow(cfg.Simulation.Seed)
	if cfg.Simulation.Seed == 0 {
		logger.Debug("Using random seed", "seed", seed)
	} else {
		logger.Debug("Using deterministic seed", "seed", seed)
	}

	sampler := equity.NewSampler(cfg.Simulation.Workers, logger.WithPrefix("sampler"))
	return game.NewAnalyzer(sampler, logger.WithPrefix("analyzer")), seed
}
