package stats

import (
	"time"

	"go.uber.org/zap"
)

// Refresh cadences per metric group. The bundle group feeds the status bar
// and the usage classifier every second; the slower groups amortize reads
// that are expensive (process table) or nearly static (disk usage).
const (
	bundleInterval = time.Second
	tempInterval   = 5 * time.Second
	procInterval   = 10 * time.Second
	diskInterval   = 30 * time.Second

	topProcessLimit = 3
)

// freshness tracks when a metric group was last refreshed. The zero value
// is due immediately.
type freshness struct {
	lastSample time.Time
	interval   time.Duration
}

// due reports whether the group must be refreshed at now and stamps the
// attempt when it is. Failed refreshes count: a broken source is retried at
// the group's cadence, not every tick. A clock that steps backwards leaves
// the stamp untouched, so it never regresses.
func (f *freshness) due(now time.Time) bool {
	if !f.lastSample.IsZero() && now.Sub(f.lastSample) < f.interval {
		return false
	}
	f.lastSample = now
	return true
}

// Sampler is the single source of truth for host telemetry within a tick.
// Each metric group refreshes at its own cadence; between refreshes the
// previous values are served unchanged. A failing source never fails a
// snapshot: the affected metric degrades to its default and the loop moves
// on.
type Sampler struct {
	source Source
	logger *zap.Logger

	bundle freshness
	temp   freshness
	procs  freshness
	disk   freshness

	netRate NetRate
	cur     Snapshot
}

// NewSampler returns a sampler with every group due on the first snapshot.
func NewSampler(source Source, logger *zap.Logger) *Sampler {
	return &Sampler{
		source: source,
		logger: logger,
		bundle: freshness{interval: bundleInterval},
		temp:   freshness{interval: tempInterval},
		procs:  freshness{interval: procInterval},
		disk:   freshness{interval: diskInterval},
	}
}

// Snapshot returns the telemetry for now, refreshing only the groups whose
// interval has elapsed. now is the single timestamp for every staleness
// decision in this tick. withTopProcs marks the processes page as visible;
// the top-process list is recomputed only then and is empty otherwise.
func (s *Sampler) Snapshot(now time.Time, withTopProcs bool) Snapshot {
	if s.bundle.due(now) {
		s.refreshBundle(now, withTopProcs)
	}
	if s.temp.due(now) {
		s.refreshTemperature()
	}
	if s.procs.due(now) {
		s.refreshProcessCount()
	}
	if s.disk.due(now) {
		s.refreshDisk()
	}
	return s.cur
}

func (s *Sampler) refreshBundle(now time.Time, withTopProcs bool) {
	if cpu, err := s.source.CPUPercent(); err != nil {
		s.logger.Warn("cpu sample failed", zap.Error(err))
	} else {
		s.cur.CPUPercent = cpu
	}

	if m, err := s.source.Memory(); err != nil {
		s.logger.Warn("memory sample failed", zap.Error(err))
	} else {
		s.cur.MemoryPercent = m.Percent
		s.cur.MemoryUsed = m.Used
		s.cur.MemoryTotal = m.Total
	}

	if load, err := s.source.LoadAvg1(); err != nil {
		s.logger.Debug("load average unavailable", zap.Error(err))
		s.cur.LoadAvg1 = 0
	} else {
		s.cur.LoadAvg1 = load
	}

	if sent, recv, err := s.source.NetCounters(); err != nil {
		s.logger.Warn("network counters failed", zap.Error(err))
	} else {
		s.cur.NetUpKBps, s.cur.NetDownKBps = s.netRate.Update(now, sent, recv)
	}

	if !withTopProcs {
		s.cur.TopProcesses = nil
		return
	}
	top, err := s.source.TopProcesses(topProcessLimit)
	if err != nil {
		s.logger.Warn("top processes failed", zap.Error(err))
		top = nil
	}
	s.cur.TopProcesses = top
}

func (s *Sampler) refreshTemperature() {
	t, err := s.source.CPUTemperature()
	if err != nil {
		s.logger.Debug("temperature unavailable", zap.Error(err))
		t = 0
	}
	s.cur.CPUTempC = t
}

func (s *Sampler) refreshProcessCount() {
	count, err := s.source.ProcessCount()
	if err != nil {
		s.logger.Warn("process count failed", zap.Error(err))
		return
	}
	s.cur.ProcessCount = count
}

func (s *Sampler) refreshDisk() {
	d, err := s.source.Disk()
	if err != nil {
		s.logger.Warn("disk sample failed", zap.Error(err))
		return
	}
	s.cur.DiskPercent = d.Percent
	s.cur.DiskFree = d.Free
	s.cur.DiskTotal = d.Total
}
