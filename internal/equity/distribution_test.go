package equity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
)

func bucketNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Bucket.String()
	}
	return names
}

func TestDistributionGrouping(t *testing.T) {
	counts := NewCounts(evaluator.TwoPair)
	counts.Trials = 20
	counts.Levels[evaluator.Flush] = 2
	counts.Levels[evaluator.ThreeOfAKind] = 3
	counts.Levels[evaluator.OnePair] = 5
	counts.Levels[evaluator.HighCard] = 1
	counts.High = 4
	counts.Tie = 1
	counts.Low = 4

	d := NewDistribution(counts)

	assert.Equal(t, []string{
		"Straight Flush", "Four of a Kind", "Full House", "Flush", "Straight", "Three of a Kind",
	}, bucketNames(d.Stronger))
	assert.Equal(t, []string{
		"Two Pair (High)", "Two Pair (Tie)", "Two Pair (Low)",
	}, bucketNames(d.Same[:]))
	assert.Equal(t, []string{"Pair", "High Card"}, bucketNames(d.Weaker))

	require.Len(t, d.Entries(), NumBuckets)
	assert.InDelta(t, 1.0, d.Sum(), 1e-9)
	assert.InDelta(t, 0.10, d.Stronger[3].Probability, 1e-9)
	assert.InDelta(t, (2.0+3.0+4.0)/20, d.StrongerProbability(), 1e-9)
	assert.InDelta(t, 0.05, d.TieProbability(), 1e-9)
	assert.InDelta(t, (4.0+5.0+1.0)/20, d.WeakerProbability(), 1e-9)
}

func TestDistributionAtExtremes(t *testing.T) {
	high := NewDistribution(NewCounts(evaluator.HighCard))
	assert.Len(t, high.Stronger, 8)
	assert.Empty(t, high.Weaker)

	top := NewDistribution(NewCounts(evaluator.StraightFlush))
	assert.Empty(t, top.Stronger)
	assert.Len(t, top.Weaker, 8)
	assert.Equal(t, "Four of a Kind", top.Weaker[0].Bucket.String())
}

func TestDistributionWithoutTrials(t *testing.T) {
	d := NewDistribution(NewCounts(evaluator.Flush))
	assert.Zero(t, d.Sum())
	for _, e := range d.Entries() {
		assert.Zero(t, e.Probability)
	}
}

func TestCountsRecord(t *testing.T) {
	player := evaluator.MustEvaluate(deck.MustParseCards("KsKhQd7c2s"))
	counts := NewCounts(player.Level)

	counts.Record(evaluator.MustEvaluate(deck.MustParseCards("AsAhQd7c2s")), player) // higher pair
	counts.Record(evaluator.MustEvaluate(deck.MustParseCards("KdKcQd7c2s")), player) // same hand
	counts.Record(evaluator.MustEvaluate(deck.MustParseCards("KdKcJd7c2s")), player) // weaker kicker
	counts.Record(evaluator.MustEvaluate(deck.MustParseCards("7s7hQd7c2s")), player) // trips
	counts.Record(evaluator.MustEvaluate(deck.MustParseCards("AsJhQd7c2s")), player) // ace high

	assert.Equal(t, 5, counts.Trials)
	assert.Equal(t, 1, counts.High)
	assert.Equal(t, 1, counts.Tie)
	assert.Equal(t, 1, counts.Low)
	assert.Equal(t, 1, counts.Levels[evaluator.ThreeOfAKind])
	assert.Equal(t, 1, counts.Levels[evaluator.HighCard])
	assert.Equal(t, 0, counts.Count(Bucket{Level: evaluator.OnePair, Relation: Foreign}))

	var merged Counts
	merged.Player = player.Level
	merged.Add(counts)
	merged.Add(counts)
	assert.Equal(t, 10, merged.Total())
	assert.Equal(t, 2, merged.Count(Bucket{Level: evaluator.OnePair, Relation: Higher}))
}

func TestDistributionConfidence(t *testing.T) {
	counts := NewCounts(evaluator.OnePair)
	counts.Trials = 10000
	counts.High = 2500
	counts.Low = 7500
	d := NewDistribution(counts)

	p := d.StrongerProbability()
	assert.InDelta(t, 0.25, p, 1e-9)
	assert.InDelta(t, math.Sqrt(0.25*0.75/10000), d.StdError(p), 1e-12)

	lo, hi := d.ConfidenceInterval95(p)
	assert.InDelta(t, 0.25-1.96*d.StdError(p), lo, 1e-12)
	assert.InDelta(t, 0.25+1.96*d.StdError(p), hi, 1e-12)

	lo, hi = d.ConfidenceInterval95(0)
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	assert.Zero(t, NewDistribution(NewCounts(evaluator.Flush)).StdError(0.5))
}
