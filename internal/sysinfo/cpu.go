package sysinfo

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
)

// cpuCounter reports the busy percentage of all CPUs since the previous poll
type cpuCounter struct {
	times func(percpu bool) ([]cpu.TimesStat, error)

	mu     sync.Mutex
	prev   cpu.TimesStat
	primed bool
}

// NewCPUCounter builds the total CPU usage counter. Construction checks that
// CPU times can be read at all but does not keep that reading, so the first
// Next returns zero like any fresh rate counter.
func NewCPUCounter() (Counter, error) {
	return newCPUCounter(cpu.Times)
}

func newCPUCounter(times func(bool) ([]cpu.TimesStat, error)) (*cpuCounter, error) {
	stats, err := times(false)
	if err != nil {
		return nil, errors.Wrap(err, "read cpu times")
	}
	if len(stats) == 0 {
		return nil, errors.Wrap(ErrNoData, "read cpu times")
	}
	return &cpuCounter{times: times}, nil
}

// Next polls CPU times and returns the busy percentage (0..100) since the
// previous poll. The poll and the baseline swap happen under one lock so each
// reading is paired with the baseline it replaces.
func (c *cpuCounter) Next() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, err := c.times(false)
	if err != nil {
		return 0, errors.Wrap(err, "read cpu times")
	}
	if len(stats) == 0 {
		return 0, ErrNoData
	}
	cur := stats[0]

	prev, primed := c.prev, c.primed
	c.prev, c.primed = cur, true
	if !primed {
		return 0, nil
	}
	return busyPercent(prev, cur), nil
}

func busyPercent(prev, cur cpu.TimesStat) float64 {
	totalDelta := cur.Total() - prev.Total()
	idleDelta := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
	if totalDelta <= 0 {
		return 0
	}

	usage := 100 * (totalDelta - idleDelta) / totalDelta
	if usage < 0 {
		usage = 0
	}
	if usage > 100 {
		usage = 100
	}
	return usage
}
