package equity

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-odds/internal/evaluator"
	"github.com/lox/holdem-odds/internal/randutil"
)

// ErrInvalidConfig is returned for a non-positive opponent or trial count
var ErrInvalidConfig = errors.New("invalid sampler configuration")

// InsufficientCardsError is returned when the remaining deck cannot seat
// every opponent with two cards.
type InsufficientCardsError struct {
	Opponents int
	Available int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("cannot deal %d opponents: need %d cards, %d remain",
		e.Opponents, 2*e.Opponents, e.Available)
}

const (
	// maxWorkers caps the default fan-out; more workers stop paying off
	maxWorkers = 8
	// cancelCheckInterval is how many trials a worker runs between context checks
	cancelCheckInterval = 256
)

// Sampler runs Monte Carlo trials over a Table. The zero value is usable.
type Sampler struct {
	// Workers is the number of parallel workers; zero means min(NumCPU, 8).
	// Results for a given seed are reproducible only for a fixed worker count.
	Workers int
	Logger  *log.Logger
}

// NewSampler creates a sampler with the given worker count and logger
func NewSampler(workers int, logger *log.Logger) *Sampler {
	return &Sampler{Workers: workers, Logger: logger}
}

// Run samples trials tables of opponents against the table's player hand.
// See RunAgainst.
func (s *Sampler) Run(ctx context.Context, t *Table, opponents, trials int, seed int64) (Counts, error) {
	return s.RunAgainst(ctx, t, t.PlayerStrength(), opponents, trials, seed)
}

// RunAgainst deals opponents disjoint random hands from the table in each
// of trials independent trials and records where the strongest of them
// lands relative to player.
//
// If ctx is cancelled mid-run, RunAgainst returns the counts of the trials
// completed so far together with the context's error; those counts are
// still a valid, if noisier, estimate.
func (s *Sampler) RunAgainst(ctx context.Context, t *Table, player evaluator.HandStrength, opponents, trials int, seed int64) (Counts, error) {
	if opponents < 1 {
		return Counts{}, fmt.Errorf("%w: opponents must be at least 1, got %d", ErrInvalidConfig, opponents)
	}
	if trials < 1 {
		return Counts{}, fmt.Errorf("%w: trials must be at least 1, got %d", ErrInvalidConfig, trials)
	}
	if 2*opponents > len(t.remaining) {
		return Counts{}, &InsufficientCardsError{Opponents: opponents, Available: len(t.remaining)}
	}

	workers := s.workerCount(trials)
	logger := s.logger()
	logger.Debug("Starting sampler", "opponents", opponents, "trials", trials, "workers", workers, "seed", seed)

	results := make([]Counts, workers)
	g, gctx := errgroup.WithContext(ctx)

	perWorker := trials / workers
	remainder := trials % workers
	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++ // Distribute remainder trials
		}
		rng := randutil.Stream(seed, w)

		g.Go(func() error {
			counts, err := sampleTrials(gctx, t, player, opponents, n, rng)
			results[w] = counts
			return err
		})
	}

	err := g.Wait()

	total := NewCounts(player.Level)
	for _, counts := range results {
		total.Add(counts)
	}

	if err != nil {
		logger.Warn("Sampler stopped early", "completed", total.Trials, "requested", trials, "error", err)
		return total, err
	}
	logger.Debug("Sampler finished", "trials", total.Trials)
	return total, nil
}

// sampleTrials is one worker's share of the run
func sampleTrials(ctx context.Context, t *Table, player evaluator.HandStrength, opponents, trials int, rng *rand.Rand) (Counts, error) {
	counts := NewCounts(player.Level)
	r := len(t.remaining)
	draw := 2 * opponents

	positions := make([]int, r)
	for i := range positions {
		positions[i] = i
	}

	for n := 0; n < trials; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return counts, err
			}
		}

		// Partial Fisher-Yates: the first draw positions become a uniform
		// sample without replacement, whatever order positions started in.
		for i := 0; i < draw; i++ {
			j := i + rng.IntN(r-i)
			positions[i], positions[j] = positions[j], positions[i]
		}

		best := t.at(positions[0], positions[1])
		for k := 1; k < opponents; k++ {
			if s := t.at(positions[2*k], positions[2*k+1]); s.Compare(best) > 0 {
				best = s
			}
		}
		counts.Record(best, player)
	}

	return counts, nil
}

// Exact enumerates every opponent hand once and returns the exact heads-up
// distribution against the table's player hand. Trials is the number of
// pairs in the table.
func Exact(t *Table) Counts {
	player := t.PlayerStrength()
	counts := NewCounts(player.Level)
	for _, strength := range t.strengths {
		counts.Record(strength, player)
	}
	return counts
}

func (s *Sampler) workerCount(trials int) int {
	workers := s.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), maxWorkers)
	}
	return max(1, min(workers, trials))
}

func (s *Sampler) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default().WithPrefix("sampler")
	}
	return s.Logger
}
