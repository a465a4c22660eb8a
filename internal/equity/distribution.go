package equity

import (
	"math"

	"github.com/lox/holdem-odds/internal/evaluator"
)

// Entry is one bucket of a distribution with its observed frequency
type Entry struct {
	Bucket      Bucket
	Count       int
	Probability float64
}

// Distribution is the probability of each bucket, grouped by whether the
// best opponent is stronger than, at, or weaker than the player's level.
type Distribution struct {
	Player evaluator.Level
	Trials int

	// Stronger holds levels above the player's, strongest first
	Stronger []Entry
	// Same holds the player's level as High, Tie, Low
	Same [3]Entry
	// Weaker holds levels below the player's, strongest first
	Weaker []Entry
}

// NewDistribution converts counts into probabilities over completed trials
func NewDistribution(c Counts) Distribution {
	d := Distribution{Player: c.Player, Trials: c.Trials}
	same := 0
	for _, b := range c.Buckets() {
		n := c.Count(b)
		e := Entry{Bucket: b, Count: n}
		if c.Trials > 0 {
			e.Probability = float64(n) / float64(c.Trials)
		}
		switch {
		case b.Relation != Foreign:
			d.Same[same] = e
			same++
		case b.Level > c.Player:
			d.Stronger = append(d.Stronger, e)
		default:
			d.Weaker = append(d.Weaker, e)
		}
	}
	return d
}

// Entries returns all eleven entries in display order
func (d Distribution) Entries() []Entry {
	entries := make([]Entry, 0, NumBuckets)
	entries = append(entries, d.Stronger...)
	entries = append(entries, d.Same[:]...)
	entries = append(entries, d.Weaker...)
	return entries
}

// Sum adds every bucket probability; it is 1 for any non-empty run
func (d Distribution) Sum() float64 {
	var sum float64
	for _, e := range d.Entries() {
		sum += e.Probability
	}
	return sum
}

// StrongerProbability is the chance at least one opponent beats the player
func (d Distribution) StrongerProbability() float64 {
	p := d.Same[0].Probability
	for _, e := range d.Stronger {
		p += e.Probability
	}
	return p
}

// TieProbability is the chance the best opponent exactly ties the player
func (d Distribution) TieProbability() float64 {
	return d.Same[1].Probability
}

// WeakerProbability is the chance every opponent is beaten
func (d Distribution) WeakerProbability() float64 {
	p := d.Same[2].Probability
	for _, e := range d.Weaker {
		p += e.Probability
	}
	return p
}

// StdError is the standard error of a probability estimated from the
// distribution's trials, treating each trial as a Bernoulli draw.
func (d Distribution) StdError(p float64) float64 {
	if d.Trials == 0 {
		return 0
	}
	return math.Sqrt(p * (1 - p) / float64(d.Trials))
}

// ConfidenceInterval95 returns the 95% confidence interval for p, clamped
// to [0, 1]
func (d Distribution) ConfidenceInterval95(p float64) (float64, float64) {
	margin := 1.96 * d.StdError(p)
	return max(0, p-margin), min(1, p+margin)
}
