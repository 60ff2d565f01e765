package diag

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edgecli/hostdiag/internal/elevate"
	"github.com/edgecli/hostdiag/internal/registry"
	"github.com/edgecli/hostdiag/internal/sysinfo"
	"github.com/edgecli/hostdiag/internal/units"
)

const (
	gib         = 1 << 30
	placeholder = "Information unavailable"
)

type stubCounter struct{ values []float64 }

func (c *stubCounter) Next() (float64, error) {
	v := c.values[0]
	if len(c.values) > 1 {
		c.values = c.values[1:]
	}
	return v, nil
}

type stubHostInfo struct {
	physical, virtual, availVirtual uint64
	osName, cpuModel                string
	err                             error
}

func (h stubHostInfo) TotalPhysical() (uint64, error)    { return h.physical, h.err }
func (h stubHostInfo) TotalVirtual() (uint64, error)     { return h.virtual, h.err }
func (h stubHostInfo) AvailableVirtual() (uint64, error) { return h.availVirtual, h.err }
func (h stubHostInfo) OSFullName() (string, error)       { return h.osName, h.err }
func (h stubHostInfo) ProcessorModel() (string, error)   { return h.cpuModel, h.err }
func (h stubHostInfo) Uptime() (time.Duration, error)    { return 90 * time.Minute, h.err }

type noRegistry struct{}

func (noRegistry) String(string, string) (string, error) { return "", registry.ErrUnsupported }

type identity struct{ admin bool }

func (i identity) IsAdmin() (bool, error) { return i.admin, nil }
func (identity) Close() error             { return nil }

func newStubbed(host stubHostInfo, free float64, opts ...Option) *Diagnostics {
	base := []Option{
		WithPlaceholder(placeholder),
		WithCPUCounter(func() (sysinfo.Counter, error) { return &stubCounter{values: []float64{0, 37.5}}, nil }),
		WithFreeMemoryCounter(func() (sysinfo.Counter, error) { return &stubCounter{values: []float64{free}}, nil }),
		WithHostInfo(func() (sysinfo.HostInfo, error) { return host, nil }),
		WithRegistry(noRegistry{}),
		WithIdentityProvider(func() (elevate.Identity, error) { return identity{admin: false}, nil }),
	}
	return New(append(base, opts...)...)
}

func TestEndToEndRAM(t *testing.T) {
	d := newStubbed(stubHostInfo{physical: 8589934592}, 2*gib)

	usedGB, err := d.RAMUsedGB()
	if err != nil || usedGB != 6.0 {
		t.Fatalf("RAMUsedGB = %v, %v, want 6.0", usedGB, err)
	}
	pct, err := d.RAMPercentUsed()
	if err != nil || pct != 75.0 {
		t.Fatalf("RAMPercentUsed = %v, %v, want 75.0", pct, err)
	}
	pf, err := d.RAMPercentFree()
	if err != nil || pf != 25.0 {
		t.Fatalf("RAMPercentFree = %v, %v, want 25.0", pf, err)
	}
	total, err := d.RAMTotalGB()
	if err != nil || total != 8.0 {
		t.Fatalf("RAMTotalGB = %v, %v", total, err)
	}
	freeMB, err := d.RAMFreeMB()
	if err != nil || freeMB != 2048 {
		t.Fatalf("RAMFreeMB = %v, %v", freeMB, err)
	}
	used, err := d.RAMUsedBytes()
	if err != nil || used != 6*gib {
		t.Fatalf("RAMUsedBytes = %v, %v", used, err)
	}
}

func TestVirtualViews(t *testing.T) {
	d := newStubbed(stubHostInfo{physical: 8 * gib, virtual: 16 * gib, availVirtual: 4 * gib}, 1*gib)

	usedGB, err := d.VirtualUsedGB()
	if err != nil || usedGB != 12.0 {
		t.Fatalf("VirtualUsedGB = %v, %v", usedGB, err)
	}
	freeKB, err := d.VirtualFreeKB()
	if err != nil || freeKB != 4*1024*1024 {
		t.Fatalf("VirtualFreeKB = %v, %v", freeKB, err)
	}
	pct, err := d.VirtualPercentUsed()
	if err != nil || pct != 75.0 {
		t.Fatalf("VirtualPercentUsed = %v, %v", pct, err)
	}
	totalMB, err := d.VirtualTotalMB()
	if err != nil || totalMB != 16*1024 {
		t.Fatalf("VirtualTotalMB = %v, %v", totalMB, err)
	}
}

func TestZeroTotalSurfaces(t *testing.T) {
	d := newStubbed(stubHostInfo{physical: 0}, 0)
	if _, err := d.RAMPercentUsed(); !errors.Is(err, units.ErrUndefined) {
		t.Fatalf("err = %v, want ErrUndefined", err)
	}
}

func TestRAMFreeOutOfRange(t *testing.T) {
	cases := map[string]float64{
		"negative":  -1,
		"nan":       math.NaN(),
		"too large": math.MaxUint64,
		"infinite":  math.Inf(1),
	}
	for name, free := range cases {
		t.Run(name, func(t *testing.T) {
			d := newStubbed(stubHostInfo{physical: 8 * gib}, free)
			if _, err := d.RAMFreeBytes(); !errors.Is(err, units.ErrUndefined) {
				t.Fatalf("RAMFreeBytes(%v): got %v, want ErrUndefined", free, err)
			}
			if _, err := d.RAMPercentUsed(); !errors.Is(err, units.ErrUndefined) {
				t.Fatalf("RAMPercentUsed(%v): got %v, want ErrUndefined", free, err)
			}
		})
	}
}

func TestRAMReadingSamplesOnce(t *testing.T) {
	var samples atomic.Int64
	d := newStubbed(stubHostInfo{physical: 8 * gib}, 0,
		WithFreeMemoryCounter(func() (sysinfo.Counter, error) {
			return counterFunc(func() (float64, error) {
				samples.Add(1)
				return 2 * gib, nil
			}), nil
		}),
	)

	r, err := d.RAMReading()
	if err != nil {
		t.Fatalf("RAMReading failed: %v", err)
	}
	if r.Used()+r.Free != r.Total {
		t.Fatalf("inconsistent reading %+v", r)
	}
	if got := samples.Load(); got != 1 {
		t.Fatalf("free memory sampled %d times, want 1", got)
	}
}

type counterFunc func() (float64, error)

func (f counterFunc) Next() (float64, error) { return f() }

func TestCPUFirstSample(t *testing.T) {
	d := newStubbed(stubHostInfo{physical: gib}, 0)

	// the first reading of a fresh rate counter is not meaningful
	if _, err := d.CPUCurrentUsagePercent(); err != nil {
		t.Fatalf("first sample failed: %v", err)
	}
	v, err := d.CPUCurrentUsagePercent()
	if err != nil || v != 37.5 {
		t.Fatalf("second sample = %v, %v, want 37.5", v, err)
	}
}

func TestHandlesAreIndependentAndLazy(t *testing.T) {
	var cpuBuilt, ramBuilt atomic.Int64
	d := newStubbed(stubHostInfo{physical: gib}, 0,
		WithCPUCounter(func() (sysinfo.Counter, error) {
			cpuBuilt.Add(1)
			return &stubCounter{values: []float64{0}}, nil
		}),
		WithFreeMemoryCounter(func() (sysinfo.Counter, error) {
			ramBuilt.Add(1)
			return &stubCounter{values: []float64{1}}, nil
		}),
	)

	if _, err := d.RAMFreeBytes(); err != nil {
		t.Fatal(err)
	}
	if cpuBuilt.Load() != 0 {
		t.Fatal("CPU counter built by a memory query")
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.CPUCurrentUsagePercent()
		}()
	}
	wg.Wait()
	if cpuBuilt.Load() != 1 || ramBuilt.Load() != 1 {
		t.Fatalf("built cpu=%d ram=%d, want 1 each", cpuBuilt.Load(), ramBuilt.Load())
	}
}

func TestConstructionFailurePropagates(t *testing.T) {
	errCategory := errors.New("counter category missing")
	var calls int
	d := newStubbed(stubHostInfo{physical: gib}, 0,
		WithCPUCounter(func() (sysinfo.Counter, error) {
			calls++
			return nil, errCategory
		}),
	)
	for i := 0; i < 3; i++ {
		if _, err := d.CPUCurrentUsagePercent(); !errors.Is(err, errCategory) {
			t.Fatalf("err = %v, want %v", err, errCategory)
		}
	}
	if calls != 1 {
		t.Fatalf("factory called %d times with the caching policy, want 1", calls)
	}

	calls = 0
	d = newStubbed(stubHostInfo{physical: gib}, 0, WithRetry(),
		WithCPUCounter(func() (sysinfo.Counter, error) {
			calls++
			return nil, errCategory
		}),
	)
	_, _ = d.CPUCurrentUsagePercent()
	_, _ = d.CPUCurrentUsagePercent()
	if calls != 2 {
		t.Fatalf("factory called %d times with the retry policy, want 2", calls)
	}
}

func TestDescriptors(t *testing.T) {
	d := newStubbed(stubHostInfo{physical: gib, osName: "Linux Test 1.0", cpuModel: "Test CPU"}, 0)

	if got := d.OSName(); got != "Linux Test 1.0" {
		t.Fatalf("OSName = %q", got)
	}
	if got := d.ProcessorName(); got != "Test CPU" {
		t.Fatalf("ProcessorName = %q", got)
	}
	if d.IsAdminElevated() {
		t.Fatal("IsAdminElevated = true")
	}
	if up, err := d.Uptime(); err != nil || up != 90*time.Minute {
		t.Fatalf("Uptime = %v, %v", up, err)
	}
}

func TestProcessorPlaceholder(t *testing.T) {
	d := newStubbed(stubHostInfo{err: errors.New("probe disposed")}, 0)
	if got := d.ProcessorName(); got != placeholder {
		t.Fatalf("ProcessorName = %q, want placeholder", got)
	}
	if d.Placeholder() != placeholder {
		t.Fatalf("Placeholder = %q", d.Placeholder())
	}
}

func TestWarmPrimesCPU(t *testing.T) {
	d := newStubbed(stubHostInfo{physical: 4 * gib}, gib)
	if err := d.Warm(context.Background()); err != nil {
		t.Fatalf("Warm failed: %v", err)
	}
	v, err := d.CPUCurrentUsagePercent()
	if err != nil || v != 37.5 {
		t.Fatalf("sample after Warm = %v, %v, want 37.5", v, err)
	}
}

func TestWarmReportsFailure(t *testing.T) {
	errDenied := errors.New("access denied")
	d := newStubbed(stubHostInfo{}, 0,
		WithHostInfo(func() (sysinfo.HostInfo, error) { return nil, errDenied }),
	)
	if err := d.Warm(context.Background()); !errors.Is(err, errDenied) {
		t.Fatalf("Warm err = %v, want %v", err, errDenied)
	}
}

func TestSnapshot(t *testing.T) {
	d := newStubbed(stubHostInfo{physical: 8 * gib, virtual: 16 * gib, availVirtual: 8 * gib, osName: "Linux Test 1.0"}, 2*gib)

	s := d.Snapshot()
	if s.RAM.UsedGB != 6.0 || s.RAM.PercentUsed != 75.0 || s.RAM.Error != "" {
		t.Fatalf("RAM snapshot = %+v", s.RAM)
	}
	if s.Virtual.PercentUsed != 50.0 {
		t.Fatalf("Virtual snapshot = %+v", s.Virtual)
	}
	if s.OSName != "Linux Test 1.0" || s.ProcessorName != placeholder {
		t.Fatalf("descriptors = %q / %q", s.OSName, s.ProcessorName)
	}
	if s.UptimeSeconds != 5400 {
		t.Fatalf("UptimeSeconds = %d", s.UptimeSeconds)
	}
}
