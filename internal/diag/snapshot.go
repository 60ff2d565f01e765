package diag

import (
	"time"

	"github.com/edgecli/hostdiag/internal/units"
)

// MemorySnapshot is one memory reading with its derived views
type MemorySnapshot struct {
	TotalBytes  uint64  `json:"total_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	TotalGB     float64 `json:"total_gb"`
	FreeGB      float64 `json:"free_gb"`
	UsedGB      float64 `json:"used_gb"`
	PercentUsed float64 `json:"percent_used"`
	Error       string  `json:"error,omitempty"`
}

// Snapshot collects every facade value once. Failures are recorded in the
// Error fields instead of aborting the snapshot.
type Snapshot struct {
	CPUPercent    float64        `json:"cpu_percent"`
	CPUError      string         `json:"cpu_error,omitempty"`
	RAM           MemorySnapshot `json:"ram"`
	Virtual       MemorySnapshot `json:"virtual"`
	OSName        string         `json:"os_name"`
	ProcessorName string         `json:"processor_name"`
	Elevated      bool           `json:"elevated"`
	UptimeSeconds int64          `json:"uptime_seconds"`
}

// Snapshot samples CPU, RAM and virtual memory once each and resolves the
// descriptors. The CPU value follows the first-sample rule: call Warm first
// to get a meaningful rate.
func (d *Diagnostics) Snapshot() Snapshot {
	s := Snapshot{
		OSName:        d.OSName(),
		ProcessorName: d.ProcessorName(),
		Elevated:      d.IsAdminElevated(),
	}

	if cpu, err := d.CPUCurrentUsagePercent(); err != nil {
		s.CPUError = err.Error()
	} else {
		s.CPUPercent = cpu
	}

	r, err := d.RAMReading()
	s.RAM = memorySnapshot(r, err)
	r, err = d.VirtualReading()
	s.Virtual = memorySnapshot(r, err)

	if up, err := d.Uptime(); err == nil {
		s.UptimeSeconds = int64(up / time.Second)
	}
	return s
}

func memorySnapshot(r units.Reading, err error) MemorySnapshot {
	if err != nil {
		return MemorySnapshot{Error: err.Error()}
	}
	m := MemorySnapshot{
		TotalBytes: uint64(r.Total),
		FreeBytes:  uint64(r.Free),
		UsedBytes:  uint64(r.Used()),
		TotalGB:    r.Total.GB(),
		FreeGB:     r.Free.GB(),
		UsedGB:     r.Used().GB(),
	}
	if pct, err := r.PercentUsed(); err != nil {
		m.Error = err.Error()
	} else {
		m.PercentUsed = pct
	}
	return m
}
