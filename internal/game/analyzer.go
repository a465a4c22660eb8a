package game

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-odds/internal/equity"
)

// DefaultOpponents are the table sizes analysed when none are configured
var DefaultOpponents = []int{7, 5, 3, 1}

// Analysis is the sampled distribution for one opponent count
type Analysis struct {
	Opponents    int
	Distribution equity.Distribution
	Elapsed      time.Duration
}

// Analyzer runs the sampler once per opponent count on a game's table
type Analyzer struct {
	Sampler *equity.Sampler
	Clock   quartz.Clock
	Logger  *log.Logger
}

// NewAnalyzer creates an analyzer backed by a real clock
func NewAnalyzer(sampler *equity.Sampler, logger *log.Logger) *Analyzer {
	return &Analyzer{Sampler: sampler, Clock: quartz.NewReal(), Logger: logger}
}

// Analyze samples the best opposing hand for every entry in opponents, in
// order. Each count gets its own seed derived from seed so the runs are
// independent but reproducible. Counts that cannot be seated at the
// current street are reported as an error before any sampling starts.
func (a *Analyzer) Analyze(ctx context.Context, table *equity.Table, opponents []int, trials int, seed int64) ([]Analysis, error) {
	if len(opponents) == 0 {
		opponents = DefaultOpponents
	}
	available := len(table.Remaining())
	for _, n := range opponents {
		if n < 1 {
			return nil, fmt.Errorf("%w: opponents must be at least 1, got %d", equity.ErrInvalidConfig, n)
		}
		if 2*n > available {
			return nil, &equity.InsufficientCardsError{Opponents: n, Available: available}
		}
	}

	clock := a.clock()
	logger := a.logger()

	results := make([]Analysis, 0, len(opponents))
	for i, n := range opponents {
		start := clock.Now()
		counts, err := a.Sampler.Run(ctx, table, n, trials, seed+int64(i))
		elapsed := clock.Since(start)
		if err != nil {
			// Trials finished before cancellation are still a fair estimate
			if counts.Trials > 0 {
				logger.Warn("Analysis interrupted", "opponents", n, "trials", counts.Trials, "requested", trials)
				results = append(results, Analysis{Opponents: n, Distribution: equity.NewDistribution(counts), Elapsed: elapsed})
			}
			return results, fmt.Errorf("sampling %d opponents: %w", n, err)
		}

		dist := equity.NewDistribution(counts)
		logger.Info("Analysed table",
			"opponents", n,
			"trials", counts.Trials,
			"stronger", fmt.Sprintf("%.2f%%", 100*dist.StrongerProbability()),
			"elapsed", elapsed)

		results = append(results, Analysis{Opponents: n, Distribution: dist, Elapsed: elapsed})
	}
	return results, nil
}

// AnalyzeExact enumerates every heads-up opponent hand instead of sampling
func (a *Analyzer) AnalyzeExact(table *equity.Table) Analysis {
	clock := a.clock()
	start := clock.Now()
	counts := equity.Exact(table)
	elapsed := clock.Since(start)

	a.logger().Info("Enumerated table", "hands", counts.Trials, "elapsed", elapsed)
	return Analysis{Opponents: 1, Distribution: equity.NewDistribution(counts), Elapsed: elapsed}
}

func (a *Analyzer) clock() quartz.Clock {
	if a.Clock == nil {
		return quartz.NewReal()
	}
	return a.Clock
}

func (a *Analyzer) logger() *log.Logger {
	if a.Logger == nil {
		return log.Default().WithPrefix("analyzer")
	}
	return a.Logger
}
