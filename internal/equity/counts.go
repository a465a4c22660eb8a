package equity

import (
	"fmt"

	"github.com/lox/holdem-odds/internal/evaluator"
)

// Relation says where a bucket sits relative to the player's level
type Relation int

const (
	// Foreign buckets hold trials whose best opponent has a different level
	Foreign Relation = iota
	// Higher is the player's level, opponent stronger on the tiebreak
	Higher
	// Tied is the player's level with an exactly equal hand
	Tied
	// Lower is the player's level, opponent weaker on the tiebreak
	Lower
)

// NumBuckets is the number of mutually exclusive trial outcomes: every
// level but the player's, plus three sub-buckets for the player's level.
const NumBuckets = evaluator.NumLevels - 1 + 3

// Bucket identifies one outcome class of a trial
type Bucket struct {
	Level    evaluator.Level
	Relation Relation
}

// String names the bucket, e.g. "Flush" or "Two Pair (High)"
func (b Bucket) String() string {
	switch b.Relation {
	case Higher:
		return fmt.Sprintf("%s (High)", b.Level)
	case Tied:
		return fmt.Sprintf("%s (Tie)", b.Level)
	case Lower:
		return fmt.Sprintf("%s (Low)", b.Level)
	default:
		return b.Level.String()
	}
}

// Counts tallies trials by the best opponent hand relative to the player
type Counts struct {
	Player evaluator.Level
	Trials int

	// Levels counts trials whose best opponent reached a level other than
	// the player's; the entry at the player's level is always zero.
	Levels [evaluator.NumLevels]int
	High   int
	Tie    int
	Low    int
}

// NewCounts returns empty counts for a player at the given level
func NewCounts(player evaluator.Level) Counts {
	return Counts{Player: player}
}

// Record classifies one trial's best opponent against the player
func (c *Counts) Record(best, player evaluator.HandStrength) {
	c.Trials++
	if best.Level != player.Level {
		c.Levels[best.Level]++
		return
	}
	switch best.Compare(player) {
	case 1:
		c.High++
	case 0:
		c.Tie++
	default:
		c.Low++
	}
}

// Add merges other into c. Both must be for the same player level.
func (c *Counts) Add(other Counts) {
	c.Trials += other.Trials
	for i := range c.Levels {
		c.Levels[i] += other.Levels[i]
	}
	c.High += other.High
	c.Tie += other.Tie
	c.Low += other.Low
}

// Count returns the tally for a bucket
func (c Counts) Count(b Bucket) int {
	switch b.Relation {
	case Higher:
		return c.High
	case Tied:
		return c.Tie
	case Lower:
		return c.Low
	default:
		if b.Level == c.Player {
			return 0
		}
		return c.Levels[b.Level]
	}
}

// Buckets lists the eleven buckets for the player's level, strongest first
func (c Counts) Buckets() []Bucket {
	buckets := make([]Bucket, 0, NumBuckets)
	for l := evaluator.StraightFlush; l >= evaluator.HighCard; l-- {
		if l != c.Player {
			buckets = append(buckets, Bucket{Level: l, Relation: Foreign})
			continue
		}
		buckets = append(buckets,
			Bucket{Level: l, Relation: Higher},
			Bucket{Level: l, Relation: Tied},
			Bucket{Level: l, Relation: Lower},
		)
	}
	return buckets
}

// Total sums every bucket; it always equals Trials
func (c Counts) Total() int {
	total := c.High + c.Tie + c.Low
	for _, n := range c.Levels {
		total += n
	}
	return total
}
