package equity

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
)

func quietSampler(workers int) *Sampler {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
	return NewSampler(workers, logger)
}

func TestExactHeadsUpPreflop(t *testing.T) {
	t.Run("pocket aces", func(t *testing.T) {
		counts := Exact(buildTable(t, "AsAh", ""))

		assert.Equal(t, 1225, counts.Trials)
		assert.Equal(t, evaluator.OnePair, counts.Player)
		assert.Equal(t, 0, counts.High)
		assert.Equal(t, 1, counts.Tie, "only AdAc ties")
		assert.Equal(t, 72, counts.Low, "every lower pocket pair")
		assert.Equal(t, 1152, counts.Levels[evaluator.HighCard])
		assert.Equal(t, counts.Trials, counts.Total())
	})

	t.Run("seven deuce", func(t *testing.T) {
		counts := Exact(buildTable(t, "7h2c", ""))

		assert.Equal(t, evaluator.HighCard, counts.Player)
		assert.Equal(t, 72, counts.Levels[evaluator.OnePair])
		assert.Equal(t, 9, counts.Tie)
		assert.Equal(t, 144, counts.Low)
		assert.Equal(t, 1000, counts.High)
		assert.Equal(t, 1225, counts.Total())
	})
}

func TestSamplerConvergesToExact(t *testing.T) {
	for _, hole := range []string{"AsAh", "7h2c", "KdQd"} {
		t.Run(hole, func(t *testing.T) {
			table := buildTable(t, hole, "")
			exact := NewDistribution(Exact(table))

			counts, err := quietSampler(4).Run(context.Background(), table, 1, 100000, 11)
			require.NoError(t, err)
			sampled := NewDistribution(counts)

			want, got := exact.Entries(), sampled.Entries()
			require.Len(t, got, NumBuckets)
			for i := range want {
				assert.Equal(t, want[i].Bucket, got[i].Bucket)
				assert.InDelta(t, want[i].Probability, got[i].Probability, 0.01, "bucket %s", want[i].Bucket)
			}
			assert.InDelta(t, exact.StrongerProbability(), sampled.StrongerProbability(), 0.01)
		})
	}
}

func TestSamplerDistributionIsComplete(t *testing.T) {
	boards := []struct {
		hole, board string
		opponents   int
	}{
		{"AsKs", "", 7},
		{"AsKs", "QsJs2h", 5},
		{"9c9d", "Th8h2s7d", 3},
		{"2h3c", "AsKdQh5c9s", 1},
		{"2h3c", "AsKdQh5c9s", 22},
	}

	for _, tt := range boards {
		t.Run(tt.hole+tt.board, func(t *testing.T) {
			table := buildTable(t, tt.hole, tt.board)
			counts, err := quietSampler(3).Run(context.Background(), table, tt.opponents, 5003, 99)
			require.NoError(t, err)

			assert.Equal(t, 5003, counts.Trials)
			assert.Equal(t, counts.Trials, counts.Total(), "exactly one bucket per trial")
			assert.Equal(t, 0, counts.Levels[counts.Player])

			dist := NewDistribution(counts)
			assert.InDelta(t, 1.0, dist.Sum(), 1e-9)
			assert.InDelta(t, 1.0, dist.StrongerProbability()+dist.TieProbability()+dist.WeakerProbability(), 1e-9)
		})
	}
}

func TestSamplerIsDeterministic(t *testing.T) {
	table := buildTable(t, "JhTh", "9h2c3d")

	a, err := quietSampler(4).Run(context.Background(), table, 5, 20000, 1234)
	require.NoError(t, err)
	b, err := quietSampler(4).Run(context.Background(), table, 5, 20000, 1234)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := quietSampler(4).Run(context.Background(), table, 5, 20000, 4321)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSamplerNuts(t *testing.T) {
	t.Run("royal flush cannot be beaten", func(t *testing.T) {
		table := buildTable(t, "AsKs", "QsJsTs2h3d")
		counts, err := quietSampler(2).Run(context.Background(), table, 8, 2000, 5)
		require.NoError(t, err)

		dist := NewDistribution(counts)
		assert.Zero(t, dist.StrongerProbability())
		assert.Zero(t, dist.TieProbability())
		assert.InDelta(t, 1.0, dist.WeakerProbability(), 1e-9)
		assert.Empty(t, dist.Stronger)
	})

	t.Run("royal flush on the board always splits", func(t *testing.T) {
		table := buildTable(t, "2c3d", "AsKsQsJsTs")
		counts, err := quietSampler(2).Run(context.Background(), table, 4, 2000, 5)
		require.NoError(t, err)
		assert.Equal(t, counts.Trials, counts.Tie)
	})
}

func TestSamplerPreconditions(t *testing.T) {
	river := buildTable(t, "AsKs", "QsJsTs2h3d")
	ctx := context.Background()

	_, err := quietSampler(1).Run(ctx, river, 0, 100, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = quietSampler(1).Run(ctx, river, 1, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// 45 cards remain on the river: 22 opponents fit, 23 do not
	_, err = quietSampler(1).Run(ctx, river, 22, 10, 1)
	assert.NoError(t, err)

	var insufficient *InsufficientCardsError
	_, err = quietSampler(1).Run(ctx, river, 23, 10, 1)
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 45, insufficient.Available)
	assert.Equal(t, 23, insufficient.Opponents)
}

func TestSamplerCancellation(t *testing.T) {
	table := buildTable(t, "AsKs", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counts, err := quietSampler(2).Run(ctx, table, 3, 100000, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, counts.Trials, 100000)
	assert.Equal(t, counts.Trials, counts.Total())

	if counts.Trials > 0 {
		assert.InDelta(t, 1.0, NewDistribution(counts).Sum(), 1e-9)
	}
}

func TestSamplerAgainstExplicitStrength(t *testing.T) {
	table := buildTable(t, "AsKs", "QsJs2h")

	// Pretend the player only holds a pair of twos
	player := evaluator.MustEvaluate(deck.MustParseCards("2d2c"))
	counts, err := quietSampler(2).RunAgainst(context.Background(), table, player, 2, 3000, 8)
	require.NoError(t, err)
	assert.Equal(t, evaluator.OnePair, counts.Player)
	assert.Equal(t, 3000, counts.Total())
}

func TestWorkerCount(t *testing.T) {
	assert.Equal(t, 1, (&Sampler{Workers: 4}).workerCount(1))
	assert.Equal(t, 3, (&Sampler{Workers: 3}).workerCount(1000))

	defaults := (&Sampler{}).workerCount(math.MaxInt32)
	assert.GreaterOrEqual(t, defaults, 1)
	assert.LessOrEqual(t, defaults, maxWorkers)
}
