package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var rateBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNetRateFirstCallEstablishesBaseline(t *testing.T) {
	var nr NetRate

	up, down := nr.Update(rateBase, 5_000_000, 9_000_000)
	assert.Zero(t, up)
	assert.Zero(t, down)

	up, down = nr.Update(rateBase.Add(time.Second), 5_000_000+102_400, 9_000_000+204_800)
	assert.InDelta(t, 100, up, 0.001)
	assert.InDelta(t, 200, down, 0.001)
}

func TestNetRateThrottlesInsideInterval(t *testing.T) {
	var nr NetRate
	nr.Update(rateBase, 0, 0)

	up, down := nr.Update(rateBase.Add(time.Second), 102_400, 102_400)
	assert.InDelta(t, 100, up, 0.001)
	assert.InDelta(t, 100, down, 0.001)

	// 500ms later: inside the window, previous rates unchanged and the
	// baseline not consumed.
	up, down = nr.Update(rateBase.Add(1500*time.Millisecond), 999_999, 999_999)
	assert.InDelta(t, 100, up, 0.001)
	assert.InDelta(t, 100, down, 0.001)

	// A full interval after the last recomputation the delta is measured
	// against the values from that recomputation, not the throttled call.
	up, down = nr.Update(rateBase.Add(2*time.Second), 204_800, 307_200)
	assert.InDelta(t, 100, up, 0.001)
	assert.InDelta(t, 200, down, 0.001)
}

func TestNetRateClampsCounterRollback(t *testing.T) {
	var nr NetRate
	nr.Update(rateBase, 1_000_000, 0)

	up, down := nr.Update(rateBase.Add(time.Second), 500, 1_048_576)
	assert.Zero(t, up, "counter reset must not yield a negative rate")
	assert.InDelta(t, 1024, down, 0.001)
}

func TestNetRateSkipsBackwardsClock(t *testing.T) {
	var nr NetRate
	nr.Update(rateBase, 0, 0)

	up, down := nr.Update(rateBase.Add(-time.Hour), 999_999, 999_999)
	assert.Zero(t, up)
	assert.Zero(t, down)

	// The baseline survived the anomaly.
	up, down = nr.Update(rateBase.Add(time.Second), 102_400, 0)
	assert.InDelta(t, 100, up, 0.001)
	assert.Zero(t, down)
}
