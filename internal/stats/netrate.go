package stats

import "time"

// networkInterval is the minimum time between rate recomputations.
const networkInterval = time.Second

// NetRate turns cumulative interface byte counters into up/down throughput.
// It keeps exactly one previous counter sample and never recomputes more
// often than once per interval.
type NetRate struct {
	prevSent uint64
	prevRecv uint64
	prevAt   time.Time
	upKBps   float64
	downKBps float64
}

// Update feeds the current counters and returns throughput in KB/s. The
// first call only establishes the baseline and reports zero. Calls inside
// the recomputation window, or with a clock that failed to advance, return
// the previous rates unchanged without consuming the baseline. A counter
// that moved backwards (interface reset) clamps that direction to zero.
func (n *NetRate) Update(now time.Time, sent, recv uint64) (upKBps, downKBps float64) {
	if n.prevAt.IsZero() {
		n.prevSent, n.prevRecv, n.prevAt = sent, recv, now
		return 0, 0
	}

	elapsed := now.Sub(n.prevAt)
	if elapsed < networkInterval || elapsed <= 0 {
		return n.upKBps, n.downKBps
	}

	secs := elapsed.Seconds()
	n.upKBps = counterRate(sent, n.prevSent, secs)
	n.downKBps = counterRate(recv, n.prevRecv, secs)
	n.prevSent, n.prevRecv, n.prevAt = sent, recv, now
	return n.upKBps, n.downKBps
}

func counterRate(cur, prev uint64, secs float64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur-prev) / secs / 1024
}
