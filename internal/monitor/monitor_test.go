package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oledtop/oledtop/internal/anim"
	"github.com/oledtop/oledtop/internal/pixel"
	"github.com/oledtop/oledtop/internal/stats"
	"github.com/oledtop/oledtop/internal/usage"
)

type stubSource struct {
	topCalls int
}

func (s *stubSource) CPUPercent() (float64, error) { return 35, nil }

func (s *stubSource) Memory() (stats.MemoryInfo, error) {
	return stats.MemoryInfo{Percent: 50, Used: 2 << 30, Total: 4 << 30}, nil
}

func (s *stubSource) Disk() (stats.DiskInfo, error) {
	return stats.DiskInfo{Percent: 40, Free: 10 << 30, Total: 32 << 30}, nil
}

func (s *stubSource) CPUTemperature() (float64, error) { return 45, nil }
func (s *stubSource) LoadAvg1() (float64, error)       { return 0.3, nil }
func (s *stubSource) ProcessCount() (int, error)       { return 99, nil }

func (s *stubSource) TopProcesses(n int) ([]stats.ProcessSample, error) {
	s.topCalls++
	return []stats.ProcessSample{{Name: "stress", CPUPercent: 80}}, nil
}

func (s *stubSource) NetCounters() (uint64, uint64, error) { return 0, 0, nil }

type captureSink struct {
	frames []*pixel.Buffer
	closed bool
}

func (c *captureSink) Bounds() (int, int) { return 128, 64 }

func (c *captureSink) Display(buf *pixel.Buffer) error {
	c.frames = append(c.frames, buf.Clone())
	return nil
}

func (c *captureSink) Close() error {
	c.closed = true
	return nil
}

func testSets() map[usage.Level]*anim.Set {
	sets := make(map[usage.Level]*anim.Set)
	for _, level := range usage.Levels() {
		sets[level] = anim.FallbackSet(level)
	}
	return sets
}

func newTestMonitor(src stats.Source, sink *captureSink, logger *zap.Logger) *Monitor {
	sampler := stats.NewSampler(src, logger)
	return New(sampler, anim.NewScheduler(testSets()), sink, logger)
}

var monBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestTickComposesFrameToSink(t *testing.T) {
	sink := &captureSink{}
	m := newTestMonitor(&stubSource{}, sink, zap.NewNop())

	m.tick(monBase)

	require.Len(t, sink.frames, 1)
	frame := sink.frames[0]
	assert.True(t, frame.On(0, 0), "status bar fill reaches the corner")
	assert.True(t, frame.On(64, 20), "info panel divider present")
}

func TestTickRequestsTopProcessesOnlyOnProcessesPage(t *testing.T) {
	src := &stubSource{}
	m := newTestMonitor(src, &captureSink{}, zap.NewNop())

	// Pages advance every 3s: system, storage, network, then processes.
	for _, offset := range []time.Duration{0, 3 * time.Second, 6 * time.Second, 9 * time.Second} {
		m.tick(monBase.Add(offset))
	}
	assert.Zero(t, src.topCalls, "no process scan before the page is visible")

	m.tick(monBase.Add(10 * time.Second))
	assert.Equal(t, 1, src.topCalls)
}

func TestStatusLogEveryTenSeconds(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := &captureSink{}
	m := newTestMonitor(&stubSource{}, sink, zap.New(core))

	for _, offset := range []time.Duration{
		0, 5 * time.Second, 10 * time.Second, 15 * time.Second, 20 * time.Second,
	} {
		m.tick(monBase.Add(offset))
	}

	status := logs.FilterMessage("status")
	require.Equal(t, 2, status.Len(), "one status line per ten seconds after warmup")
	fields := status.All()[0].ContextMap()
	assert.Equal(t, "low", fields["usage"])
	assert.Contains(t, fields, "cpu_percent")
}

func TestRunShowsGoodbyeOnCancel(t *testing.T) {
	sink := &captureSink{}
	m := newTestMonitor(&stubSource{}, sink, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.Run(ctx)

	require.NotEmpty(t, sink.frames)
	last := sink.frames[len(sink.frames)-1]

	lit := false
	for y := 27; y < 34 && !lit; y++ {
		for x := 40; x < 90; x++ {
			if last.On(x, y) {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit, "farewell text renders mid-screen")
	assert.False(t, last.On(0, 0), "status bar cleared on the farewell frame")
	assert.False(t, sink.closed, "monitor must not close a borrowed sink")
}
