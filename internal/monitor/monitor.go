// Package monitor runs the fixed-period render loop tying the sampler,
// usage classifier, animation scheduler and renderer to the display sink.
package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oledtop/oledtop/internal/anim"
	"github.com/oledtop/oledtop/internal/display"
	"github.com/oledtop/oledtop/internal/pixel"
	"github.com/oledtop/oledtop/internal/render"
	"github.com/oledtop/oledtop/internal/stats"
	"github.com/oledtop/oledtop/internal/usage"
)

const (
	// tickInterval paces the render loop. Frame stepping and page rotation
	// enforce their own cadences, the loop only has to wake often enough
	// for the fastest of them.
	tickInterval = 100 * time.Millisecond

	// statusInterval paces the summary line in the log.
	statusInterval = 10 * time.Second

	// goodbyeHold keeps the farewell frame visible before the panel blanks.
	goodbyeHold = time.Second
)

// Monitor owns the per-tick state of the render loop. Everything runs on
// one goroutine; none of the collaborators need locking.
type Monitor struct {
	sampler    *stats.Sampler
	classifier usage.Classifier
	sched      *anim.Scheduler
	sink       display.Sink
	logger     *zap.Logger

	buf        *pixel.Buffer
	lastStatus time.Time
}

// New wires a monitor. The sink is borrowed; closing it stays with the
// caller so release happens on every exit path.
func New(sampler *stats.Sampler, sched *anim.Scheduler, sink display.Sink, logger *zap.Logger) *Monitor {
	w, h := sink.Bounds()
	return &Monitor{
		sampler: sampler,
		sched:   sched,
		sink:    sink,
		logger:  logger,
		buf:     pixel.New(w, h),
	}
}

// Run drives the loop until ctx is done, then shows the farewell frame.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	m.tick(time.Now())
	for {
		select {
		case <-ctx.Done():
			m.goodbye()
			return
		case now := <-ticker.C:
			m.tick(now)
		}
	}
}

// tick runs one iteration: sample, classify, advance the animation clocks,
// compose, push. now is the single timestamp behind every staleness
// decision of the iteration. The page consulted for the process scan is the
// one still on screen; the rotation only moves afterwards, so a page flip
// and its data arrive together on the next tick.
func (m *Monitor) tick(now time.Time) {
	visible := m.sched.Page()
	snap := m.sampler.Snapshot(now, visible == anim.PageProcesses)
	level := m.classifier.Classify(snap)
	frame, page := m.sched.Advance(now, level)

	render.Compose(m.buf, snap, frame, page)
	if err := m.sink.Display(m.buf); err != nil {
		m.logger.Warn("display write failed", zap.Error(err))
	}

	if m.lastStatus.IsZero() {
		m.lastStatus = now
		return
	}
	if now.Sub(m.lastStatus) >= statusInterval {
		m.lastStatus = now
		m.logger.Info("status",
			zap.Stringer("usage", level),
			zap.Float64("cpu_percent", snap.CPUPercent),
			zap.Float64("mem_percent", snap.MemoryPercent),
			zap.Float64("net_up_kbps", snap.NetUpKBps),
			zap.Float64("net_down_kbps", snap.NetDownKBps),
			zap.Stringer("page", page))
	}
}

// goodbye renders the farewell frame and holds it briefly so it is actually
// seen before the caller blanks the panel.
func (m *Monitor) goodbye() {
	render.Goodbye(m.buf)
	if err := m.sink.Display(m.buf); err != nil {
		m.logger.Debug("farewell render failed", zap.Error(err))
		return
	}
	time.Sleep(goodbyeHold)
}
