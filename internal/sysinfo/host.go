package sysinfo

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// hostInfo answers HostInfo queries from gopsutil. Each call is a fresh
// snapshot; only the handle itself is cached by the Probe.
type hostInfo struct {
	virtualMemory func() (*mem.VirtualMemoryStat, error)
	swapMemory    func() (*mem.SwapMemoryStat, error)
	info          func() (*host.InfoStat, error)
	cpuInfo       func() ([]cpu.InfoStat, error)
	uptime        func() (uint64, error)
}

// NewHostInfo builds the default host-info handle
func NewHostInfo() (HostInfo, error) {
	h := &hostInfo{
		virtualMemory: mem.VirtualMemory,
		swapMemory:    mem.SwapMemory,
		info:          host.Info,
		cpuInfo:       cpu.Info,
		uptime:        host.Uptime,
	}
	if _, err := h.virtualMemory(); err != nil {
		return nil, errors.Wrap(err, "read memory stats")
	}
	return h, nil
}

func (h *hostInfo) TotalPhysical() (uint64, error) {
	vm, err := h.memory()
	if err != nil {
		return 0, err
	}
	return vm.Total, nil
}

// TotalVirtual is physical memory plus swap, the amount the OS can commit
func (h *hostInfo) TotalVirtual() (uint64, error) {
	vm, err := h.memory()
	if err != nil {
		return 0, err
	}
	swap, err := h.swap()
	if err != nil {
		return 0, err
	}
	return vm.Total + swap.Total, nil
}

func (h *hostInfo) AvailableVirtual() (uint64, error) {
	vm, err := h.memory()
	if err != nil {
		return 0, err
	}
	swap, err := h.swap()
	if err != nil {
		return 0, err
	}
	return vm.Available + swap.Free, nil
}

// OSFullName joins platform and platform version, e.g. "ubuntu 22.04"
func (h *hostInfo) OSFullName() (string, error) {
	info, err := h.info()
	if err != nil {
		return "", errors.Wrap(err, "read host info")
	}
	if info == nil || info.Platform == "" {
		return "", ErrNoData
	}
	return strings.TrimSpace(info.Platform + " " + info.PlatformVersion), nil
}

func (h *hostInfo) ProcessorModel() (string, error) {
	infos, err := h.cpuInfo()
	if err != nil {
		return "", errors.Wrap(err, "read cpu info")
	}
	for _, ci := range infos {
		if name := strings.TrimSpace(ci.ModelName); name != "" {
			return name, nil
		}
	}
	return "", ErrNoData
}

func (h *hostInfo) Uptime() (time.Duration, error) {
	secs, err := h.uptime()
	if err != nil {
		return 0, errors.Wrap(err, "read uptime")
	}
	return time.Duration(secs) * time.Second, nil
}

func (h *hostInfo) memory() (*mem.VirtualMemoryStat, error) {
	vm, err := h.virtualMemory()
	if err != nil {
		return nil, errors.Wrap(err, "read memory stats")
	}
	if vm == nil {
		return nil, ErrNoData
	}
	return vm, nil
}

func (h *hostInfo) swap() (*mem.SwapMemoryStat, error) {
	swap, err := h.swapMemory()
	if err != nil {
		return nil, errors.Wrap(err, "read swap stats")
	}
	if swap == nil {
		return nil, ErrNoData
	}
	return swap, nil
}
