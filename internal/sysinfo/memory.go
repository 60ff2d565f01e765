package sysinfo

import (
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/mem"
)

// freeMemoryCounter reports the bytes of physical memory available to new
// allocations
type freeMemoryCounter struct {
	virtualMemory func() (*mem.VirtualMemoryStat, error)
}

// NewFreeMemoryCounter builds the available-bytes counter
func NewFreeMemoryCounter() (Counter, error) {
	return newFreeMemoryCounter(mem.VirtualMemory)
}

func newFreeMemoryCounter(vm func() (*mem.VirtualMemoryStat, error)) (*freeMemoryCounter, error) {
	if _, err := vm(); err != nil {
		return nil, errors.Wrap(err, "read memory stats")
	}
	return &freeMemoryCounter{virtualMemory: vm}, nil
}

func (c *freeMemoryCounter) Next() (float64, error) {
	stat, err := c.virtualMemory()
	if err != nil {
		return 0, errors.Wrap(err, "read memory stats")
	}
	if stat == nil {
		return 0, ErrNoData
	}
	return float64(stat.Available), nil
}
