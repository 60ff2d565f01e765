package sysinfo

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	ErrUnknownCategory = errors.New("unknown counter category")
	ErrUnknownInstance = errors.New("unknown counter instance")
)

// Counter categories understood by Counters
const (
	CategoryCPU    = "cpu"
	CategoryMemory = "memory"
	CategorySwap   = "swap"
)

// Categories lists the counter categories in display order
var Categories = []string{CategoryCPU, CategoryMemory, CategorySwap}

// counterCatalog reads the raw stats the counter names are taken from
type counterCatalog struct {
	times         func(percpu bool) ([]cpu.TimesStat, error)
	virtualMemory func() (*mem.VirtualMemoryStat, error)
	swapMemory    func() (*mem.SwapMemoryStat, error)
}

var defaultCatalog = counterCatalog{
	times:         cpu.Times,
	virtualMemory: mem.VirtualMemory,
	swapMemory:    mem.SwapMemory,
}

// Counters returns the sorted names of the counters available in category.
// For the cpu category an instance such as "cpu0" selects one processor;
// an empty instance means all processors combined.
func Counters(category, instance string) ([]string, error) {
	return defaultCatalog.counters(category, instance)
}

func (c counterCatalog) counters(category, instance string) ([]string, error) {
	var stat any
	switch category {
	case CategoryCPU:
		s, err := c.cpuStat(instance)
		if err != nil {
			return nil, err
		}
		stat = s
	case CategoryMemory, CategorySwap:
		if instance != "" {
			return nil, errors.Wrapf(ErrUnknownInstance, "%s has no instance %q", category, instance)
		}
		var err error
		if category == CategoryMemory {
			stat, err = c.virtualMemory()
		} else {
			stat, err = c.swapMemory()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s stats", category)
		}
	default:
		return nil, errors.Wrapf(ErrUnknownCategory, "%q", category)
	}
	return fieldNames(stat)
}

func (c counterCatalog) cpuStat(instance string) (cpu.TimesStat, error) {
	stats, err := c.times(instance != "")
	if err != nil {
		return cpu.TimesStat{}, errors.Wrap(err, "read cpu times")
	}
	if instance == "" {
		if len(stats) == 0 {
			return cpu.TimesStat{}, ErrNoData
		}
		return stats[0], nil
	}
	for _, s := range stats {
		if s.CPU == instance {
			return s, nil
		}
	}
	return cpu.TimesStat{}, errors.Wrapf(ErrUnknownInstance, "cpu has no instance %q", instance)
}

// fieldNames lists the numeric fields of a gopsutil stat by their JSON names
func fieldNames(stat any) ([]string, error) {
	data, err := json.Marshal(stat)
	if err != nil {
		return nil, errors.Wrap(err, "encode stats")
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(err, "decode stats")
	}
	names := make([]string, 0, len(fields))
	for name, v := range fields {
		if _, ok := v.(float64); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
