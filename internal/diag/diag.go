// Package diag is the read-only facade over host measurements: CPU load,
// physical and virtual memory, OS and processor names, and elevation.
//
// Every handle behind the facade is built on first use and then shared.
// A Diagnostics value owns its handles, so tests and callers can create
// independent instances with fake factories.
package diag

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edgecli/hostdiag/internal/elevate"
	"github.com/edgecli/hostdiag/internal/lazy"
	"github.com/edgecli/hostdiag/internal/osdetect"
	"github.com/edgecli/hostdiag/internal/registry"
	"github.com/edgecli/hostdiag/internal/sysinfo"
	"github.com/edgecli/hostdiag/internal/units"
)

// Diagnostics answers host queries synchronously
type Diagnostics struct {
	cpu       *sysinfo.Sampler
	freeRAM   *sysinfo.Sampler
	probe     *sysinfo.Probe
	osName    *osdetect.Resolver
	processor *osdetect.Resolver
	elevation *elevate.Checker
}

type options struct {
	placeholder string
	cpu         func() (sysinfo.Counter, error)
	freeRAM     func() (sysinfo.Counter, error)
	hostInfo    func() (sysinfo.HostInfo, error)
	registry    registry.Reader
	identity    elevate.IdentityProvider
	lazyOpts    []lazy.Option
}

// Option configures a Diagnostics
type Option func(*options)

// WithPlaceholder sets the string reported for unavailable descriptors
func WithPlaceholder(p string) Option {
	return func(o *options) { o.placeholder = p }
}

// WithCPUCounter replaces the CPU usage counter factory
func WithCPUCounter(f func() (sysinfo.Counter, error)) Option {
	return func(o *options) { o.cpu = f }
}

// WithFreeMemoryCounter replaces the free physical memory counter factory
func WithFreeMemoryCounter(f func() (sysinfo.Counter, error)) Option {
	return func(o *options) { o.freeRAM = f }
}

// WithHostInfo replaces the host-info handle factory
func WithHostInfo(f func() (sysinfo.HostInfo, error)) Option {
	return func(o *options) { o.hostInfo = f }
}

// WithRegistry replaces the registry reader used by the name resolvers
func WithRegistry(r registry.Reader) Option {
	return func(o *options) { o.registry = r }
}

// WithIdentityProvider replaces the process identity source
func WithIdentityProvider(p elevate.IdentityProvider) Option {
	return func(o *options) { o.identity = p }
}

// WithRetry makes failed handle construction retry on the next call
// instead of failing forever
func WithRetry() Option {
	return func(o *options) { o.lazyOpts = append(o.lazyOpts, lazy.WithRetry()) }
}

// New wires a Diagnostics. No handle is constructed until first use.
func New(opts ...Option) *Diagnostics {
	o := options{
		placeholder: osdetect.DefaultPlaceholder,
		cpu:         sysinfo.NewCPUCounter,
		freeRAM:     sysinfo.NewFreeMemoryCounter,
		hostInfo:    sysinfo.NewHostInfo,
		registry:    registry.Default(),
		identity:    elevate.CurrentIdentity,
	}
	for _, opt := range opts {
		opt(&o)
	}

	probe := sysinfo.NewProbe(o.hostInfo, o.lazyOpts...)
	return &Diagnostics{
		cpu:       sysinfo.NewSampler("cpu-total", o.cpu, o.lazyOpts...),
		freeRAM:   sysinfo.NewSampler("memory-available", o.freeRAM, o.lazyOpts...),
		probe:     probe,
		osName:    osdetect.NewOSNameResolver(o.placeholder, o.registry, probe),
		processor: osdetect.NewProcessorNameResolver(o.placeholder, o.registry, probe),
		elevation: elevate.NewChecker(o.identity),
	}
}

// CPUCurrentUsagePercent returns the busy percentage of all CPUs since the
// previous call. The first call after construction returns zero.
func (d *Diagnostics) CPUCurrentUsagePercent() (float64, error) {
	return d.cpu.Sample()
}

// OSName resolves the operating system name or returns the placeholder
func (d *Diagnostics) OSName() string { return d.osName.String() }

// OSNameResult is OSName with the resolution status and source
func (d *Diagnostics) OSNameResult() osdetect.Result { return d.osName.Resolve() }

// ProcessorName resolves the processor name or returns the placeholder
func (d *Diagnostics) ProcessorName() string { return d.processor.String() }

// IsAdminElevated reports whether the process runs with administrative rights
func (d *Diagnostics) IsAdminElevated() bool { return d.elevation.IsElevated() }

// Placeholder returns the string used for unavailable descriptors
func (d *Diagnostics) Placeholder() string { return d.osName.Placeholder() }

// Uptime returns the time since the host booted
func (d *Diagnostics) Uptime() (time.Duration, error) { return d.probe.Uptime() }

// Warm constructs every measurement handle concurrently and takes the
// throw-away first CPU sample, so the next CPUCurrentUsagePercent call
// reports a real rate.
func (d *Diagnostics) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := d.cpu.Sample()
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := d.freeRAM.Sample()
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := d.probe.Handle()
		return err
	})
	return g.Wait()
}

// bytesView converts one component of a reading
func bytesView(r units.Reading, err error, pick func(units.Reading) units.Bytes, conv func(units.Bytes) float64) (float64, error) {
	if err != nil {
		return 0, err
	}
	return conv(pick(r)), nil
}

func pickFree(r units.Reading) units.Bytes  { return r.Free }
func pickUsed(r units.Reading) units.Bytes  { return r.Used() }
func pickTotal(r units.Reading) units.Bytes { return r.Total }
