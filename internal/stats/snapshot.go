// Package stats assembles host telemetry into point-in-time snapshots,
// throttling each metric group at its own refresh cadence.
package stats

// Snapshot is one tick's view of host telemetry. Between refreshes of a
// metric group the previous values are served unchanged, so consecutive
// snapshots often share fields. Consumers treat snapshots as read-only and
// must not re-derive staleness on their own; the sampler is the single
// authority on freshness.
type Snapshot struct {
	CPUPercent    float64
	MemoryPercent float64
	MemoryUsed    uint64
	MemoryTotal   uint64
	DiskPercent   float64
	DiskFree      uint64
	DiskTotal     uint64
	CPUTempC      float64
	LoadAvg1      float64
	ProcessCount  int
	NetUpKBps     float64
	NetDownKBps   float64

	// TopProcesses is populated only while the processes page is visible
	// and holds at most three entries, busiest first.
	TopProcesses []ProcessSample
}

// ProcessSample is one entry of the top-process list.
type ProcessSample struct {
	PID        int32
	Name       string
	CPUPercent float64
}

// MemoryInfo is the memory reading returned by a Source.
type MemoryInfo struct {
	Percent float64
	Used    uint64
	Total   uint64
}

// DiskInfo is the disk usage reading for the watched mount point.
type DiskInfo struct {
	Percent float64
	Free    uint64
	Total   uint64
}

// Source supplies raw OS telemetry. Implementations are called from the
// single render loop and must bound their own blocking time; a failed read
// returns an error and the sampler substitutes a default or the previous
// value.
type Source interface {
	CPUPercent() (float64, error)
	Memory() (MemoryInfo, error)
	Disk() (DiskInfo, error)
	CPUTemperature() (float64, error)
	LoadAvg1() (float64, error)
	ProcessCount() (int, error)
	TopProcesses(n int) ([]ProcessSample, error)
	NetCounters() (sent, recv uint64, err error)
}
