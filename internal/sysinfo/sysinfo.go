// Package sysinfo provides lazily acquired host measurement handles:
// rate-based counters sampled on demand and a host-info snapshot probe
package sysinfo

import (
	"time"

	"github.com/pkg/errors"

	"github.com/edgecli/hostdiag/internal/lazy"
	"github.com/edgecli/hostdiag/internal/units"
)

// ErrNoData is returned by a handle that was built but has nothing to report
var ErrNoData = errors.New("no data reported")

// Counter is a measurement handle polled for successive values
type Counter interface {
	Next() (float64, error)
}

// HostInfo is a snapshot source for slowly changing host totals
type HostInfo interface {
	TotalPhysical() (uint64, error)
	TotalVirtual() (uint64, error)
	AvailableVirtual() (uint64, error)
	OSFullName() (string, error)
	ProcessorModel() (string, error)
	Uptime() (time.Duration, error)
}

// Sampler hands out successive readings of a lazily constructed Counter.
//
// For rate-based counters the first reading after construction is zero:
// the rate is a delta between two polls and no earlier poll exists yet.
// Callers that need a meaningful value discard the first one.
type Sampler struct {
	res *lazy.Resource[Counter]
}

// NewSampler binds a sampler to a counter factory. The factory runs on the
// first Sample call, never before.
func NewSampler(name string, factory func() (Counter, error), opts ...lazy.Option) *Sampler {
	return &Sampler{res: lazy.New(name, factory, opts...)}
}

// Sample polls the counter once
func (s *Sampler) Sample() (float64, error) {
	c, err := s.res.Get()
	if err != nil {
		return 0, err
	}
	return c.Next()
}

// Ready reports whether the underlying counter has been constructed
func (s *Sampler) Ready() bool { return s.res.Ready() }

// Probe reads totals from a lazily constructed HostInfo handle
type Probe struct {
	res *lazy.Resource[HostInfo]
}

// NewProbe binds a probe to a host-info factory
func NewProbe(factory func() (HostInfo, error), opts ...lazy.Option) *Probe {
	return &Probe{res: lazy.New("host-info", factory, opts...)}
}

// Handle returns the constructed HostInfo
func (p *Probe) Handle() (HostInfo, error) { return p.res.Get() }

// TotalPhysicalBytes returns the physical memory visible to the OS
func (p *Probe) TotalPhysicalBytes() (units.Bytes, error) {
	return p.bytes(HostInfo.TotalPhysical)
}

// TotalVirtualBytes returns the total virtual memory the OS can commit
func (p *Probe) TotalVirtualBytes() (units.Bytes, error) {
	return p.bytes(HostInfo.TotalVirtual)
}

// AvailableVirtualBytes returns the virtual memory still available
func (p *Probe) AvailableVirtualBytes() (units.Bytes, error) {
	return p.bytes(HostInfo.AvailableVirtual)
}

// OSFullName returns the operating system name reported by the handle
func (p *Probe) OSFullName() (string, error) {
	h, err := p.res.Get()
	if err != nil {
		return "", err
	}
	return h.OSFullName()
}

// ProcessorModel returns the model name of the first processor
func (p *Probe) ProcessorModel() (string, error) {
	h, err := p.res.Get()
	if err != nil {
		return "", err
	}
	return h.ProcessorModel()
}

// Uptime returns the time since the host booted
func (p *Probe) Uptime() (time.Duration, error) {
	h, err := p.res.Get()
	if err != nil {
		return 0, err
	}
	return h.Uptime()
}

func (p *Probe) bytes(read func(HostInfo) (uint64, error)) (units.Bytes, error) {
	h, err := p.res.Get()
	if err != nil {
		return 0, err
	}
	v, err := read(h)
	if err != nil {
		return 0, err
	}
	return units.Bytes(v), nil
}
