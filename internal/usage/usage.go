// Package usage reduces a telemetry snapshot to the discrete load level
// that selects the active animation set.
package usage

import "github.com/oledtop/oledtop/internal/stats"

// Level is the discrete usage tier derived from combined CPU, memory and
// network load.
type Level int

const (
	Low Level = iota
	Medium
	High
)

// String returns the lowercase tier name, which doubles as the animation
// asset name (low.gif and friends).
func (l Level) String() string {
	switch l {
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "low"
	}
}

// Levels lists all tiers in ascending order.
func Levels() []Level { return []Level{Low, Medium, High} }

// Classification thresholds. Entering a tier demands a higher score than
// staying in it, so a score hovering at a boundary cannot flap the animation
// set every second.
const (
	highEnter   = 0.70
	highStay    = 0.50
	mediumEnter = 0.40
	mediumStay  = 0.30
)

// netScaleKBps is the combined up+down throughput that saturates the
// network component at 1.0.
const netScaleKBps = 1000.0

// Score reduces a snapshot to one load figure in [0, 1]: the mean of the
// CPU, memory and network components, each clamped to 1.
func Score(s stats.Snapshot) float64 {
	c := clamp01(s.CPUPercent / 100)
	m := clamp01(s.MemoryPercent / 100)
	n := clamp01((s.NetUpKBps + s.NetDownKBps) / netScaleKBps)
	return (c + m + n) / 3
}

// Next returns the tier for score given the previous tick's tier. High is
// checked before Medium; the hysteresis bands overlap and that order keeps
// a holding High from being read as Medium.
func Next(score float64, prev Level) Level {
	switch {
	case score >= highEnter, prev == High && score >= highStay:
		return High
	case score >= mediumEnter, prev == Medium && score >= mediumStay:
		return Medium
	default:
		return Low
	}
}

// Classifier carries the previous tier between ticks. The zero value
// starts at Low.
type Classifier struct {
	level Level
}

// Classify folds the snapshot into the classifier and returns the active
// tier.
func (c *Classifier) Classify(s stats.Snapshot) Level {
	c.level = Next(Score(s), c.level)
	return c.level
}

// Level returns the most recent classification without advancing it.
func (c *Classifier) Level() Level { return c.level }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
