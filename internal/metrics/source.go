// Package metrics reads host telemetry through gopsutil. It implements
// stats.Source for the sampling layer.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/oledtop/oledtop/internal/stats"
)

// ErrUnavailable marks a metric the host simply does not expose, as opposed
// to a read that failed.
var ErrUnavailable = errors.New("metric unavailable")

const (
	// sampleTimeout bounds every telemetry call so a stuck kernel interface
	// cannot stall the render loop for more than a tick or two.
	sampleTimeout = time.Second

	// cpuWindow is the blocking window for the CPU utilization sample.
	cpuWindow = 100 * time.Millisecond

	// maxValidTemp filters sensors reporting garbage.
	maxValidTemp = 150.0

	// processScanCap stops the process walk early. The display shows three
	// entries and a full table walk is the most expensive sample we take.
	processScanCap = 10
)

// cpuSensorKeys identifies CPU thermal sensors. cpu_thermal is the Raspberry
// Pi zone; the rest cover common x86 and SoC names so development machines
// report a temperature too.
var cpuSensorKeys = []string{
	"cpu_thermal", "cpu-thermal", "coretemp", "k10temp",
	"acpitz", "soc_thermal", "cpu",
}

// HostSource reads telemetry from the local host.
type HostSource struct {
	mount string
}

// NewHostSource returns a source watching disk usage of mount. An empty
// mount falls back to the root filesystem.
func NewHostSource(mount string) *HostSource {
	if mount == "" {
		mount = "/"
	}
	return &HostSource{mount: mount}
}

func sampleCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sampleTimeout)
}

// CPUPercent samples total CPU utilization over a 100ms window.
func (h *HostSource) CPUPercent() (float64, error) {
	ctx, cancel := sampleCtx()
	defer cancel()

	pcts, err := cpu.PercentWithContext(ctx, cpuWindow, false)
	if err != nil {
		return 0, fmt.Errorf("reading cpu utilization: %w", err)
	}
	if len(pcts) == 0 {
		return 0, ErrUnavailable
	}
	return pcts[0], nil
}

func (h *HostSource) Memory() (stats.MemoryInfo, error) {
	ctx, cancel := sampleCtx()
	defer cancel()

	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return stats.MemoryInfo{}, fmt.Errorf("reading memory: %w", err)
	}
	return stats.MemoryInfo{Percent: v.UsedPercent, Used: v.Used, Total: v.Total}, nil
}

func (h *HostSource) Disk() (stats.DiskInfo, error) {
	ctx, cancel := sampleCtx()
	defer cancel()

	u, err := disk.UsageWithContext(ctx, h.mount)
	if err != nil {
		return stats.DiskInfo{}, fmt.Errorf("reading disk usage for %s: %w", h.mount, err)
	}
	return stats.DiskInfo{Percent: u.UsedPercent, Free: u.Free, Total: u.Total}, nil
}

// CPUTemperature returns the hottest reading among sensors that look like
// CPU thermal zones. Hosts without a matching sensor get ErrUnavailable.
func (h *HostSource) CPUTemperature() (float64, error) {
	ctx, cancel := sampleCtx()
	defer cancel()

	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading temperature sensors: %w", err)
	}

	hottest, found := 0.0, false
	for _, t := range temps {
		if t.Temperature <= 0 || t.Temperature > maxValidTemp {
			continue
		}
		if !matchesSensor(strings.ToLower(t.SensorKey), cpuSensorKeys) {
			continue
		}
		if !found || t.Temperature > hottest {
			hottest, found = t.Temperature, true
		}
	}
	if !found {
		return 0, ErrUnavailable
	}
	return hottest, nil
}

func (h *HostSource) LoadAvg1() (float64, error) {
	ctx, cancel := sampleCtx()
	defer cancel()

	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading load average: %w", err)
	}
	return avg.Load1, nil
}

func (h *HostSource) ProcessCount() (int, error) {
	ctx, cancel := sampleCtx()
	defer cancel()

	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing pids: %w", err)
	}
	return len(pids), nil
}

// TopProcesses returns up to n processes by CPU share, busiest first. The
// walk collects at most processScanCap busy candidates before sorting.
func (h *HostSource) TopProcesses(n int) ([]stats.ProcessSample, error) {
	ctx, cancel := sampleCtx()
	defer cancel()

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	samples := make([]stats.ProcessSample, 0, processScanCap)
	for _, p := range procs {
		pct, err := p.CPUPercentWithContext(ctx)
		if err != nil || pct <= 0 {
			continue
		}
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		samples = append(samples, stats.ProcessSample{PID: p.Pid, Name: name, CPUPercent: pct})
		if len(samples) >= processScanCap {
			break
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].CPUPercent > samples[j].CPUPercent
	})
	if len(samples) > n {
		samples = samples[:n]
	}
	return samples, nil
}

func (h *HostSource) NetCounters() (sent, recv uint64, err error) {
	ctx, cancel := sampleCtx()
	defer cancel()

	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, fmt.Errorf("reading network counters: %w", err)
	}
	if len(counters) == 0 {
		return 0, 0, ErrUnavailable
	}
	return counters[0].BytesSent, counters[0].BytesRecv, nil
}

func matchesSensor(key string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(key, c) {
			return true
		}
	}
	return false
}
