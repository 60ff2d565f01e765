package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/edgecli/hostdiag/internal/config"
	"github.com/edgecli/hostdiag/internal/diag"
	"github.com/edgecli/hostdiag/internal/elevate"
	"github.com/edgecli/hostdiag/internal/registry"
	"github.com/edgecli/hostdiag/internal/sysinfo"
)

const gib = 1 << 30

type stubCounter struct{ values []float64 }

func (c *stubCounter) Next() (float64, error) {
	v := c.values[0]
	if len(c.values) > 1 {
		c.values = c.values[1:]
	}
	return v, nil
}

type stubHost struct{}

func (stubHost) TotalPhysical() (uint64, error)    { return 8 * gib, nil }
func (stubHost) TotalVirtual() (uint64, error)     { return 12 * gib, nil }
func (stubHost) AvailableVirtual() (uint64, error) { return 6 * gib, nil }
func (stubHost) OSFullName() (string, error)       { return "Stub OS 1.0", nil }
func (stubHost) ProcessorModel() (string, error)   { return "Stub CPU @ 3.00GHz", nil }
func (stubHost) Uptime() (time.Duration, error)    { return 2 * time.Hour, nil }

type noRegistry struct{}

func (noRegistry) String(string, string) (string, error) { return "", registry.ErrUnsupported }

type admin struct{}

func (admin) IsAdmin() (bool, error) { return true, nil }
func (admin) Close() error           { return nil }

// run executes the root command against stubbed host data
func run(t *testing.T, args ...string) string {
	t.Helper()

	orig := newDiagnostics
	t.Cleanup(func() { newDiagnostics = orig })
	newDiagnostics = func(c *config.Config) *diag.Diagnostics {
		return diag.New(
			diag.WithPlaceholder(c.Placeholder),
			diag.WithCPUCounter(func() (sysinfo.Counter, error) { return &stubCounter{values: []float64{0, 42}}, nil }),
			diag.WithFreeMemoryCounter(func() (sysinfo.Counter, error) { return &stubCounter{values: []float64{2 * gib}}, nil }),
			diag.WithHostInfo(func() (sysinfo.HostInfo, error) { return stubHost{}, nil }),
			diag.WithRegistry(noRegistry{}),
			diag.WithIdentityProvider(func() (elevate.Identity, error) { return admin{}, nil }),
		)
	}

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--no-color"}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("hostdiag %v: %v", args, err)
	}
	return out.String()
}

func TestStatusCommand(t *testing.T) {
	out := run(t, "status", "--interval", "1ms")

	for _, want := range []string{"CPU", "42.0%", "Physical memory", "8.00 GB", "6.00 GB", "75.0%", "Virtual memory", "50.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestInfoCommand(t *testing.T) {
	out := run(t, "info")

	for _, want := range []string{"Stub OS 1.0", "Stub CPU @ 3.00GHz", "yes", "2h0m0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestReportJSON(t *testing.T) {
	out := run(t, "report", "--json", "--interval", "1ms")

	var r Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("report is not JSON: %v\n%s", err, out)
	}
	if len(r.ReportID) != 36 {
		t.Errorf("report_id = %q, want a UUID", r.ReportID)
	}
	if r.Host.CPUPercent != 42 {
		t.Errorf("cpu_percent = %v, want 42", r.Host.CPUPercent)
	}
	if r.Host.RAM.PercentUsed != 75 {
		t.Errorf("ram.percent_used = %v, want 75", r.Host.RAM.PercentUsed)
	}
	if r.Host.OSName != "Stub OS 1.0" || !r.Host.Elevated {
		t.Errorf("host = %+v", r.Host)
	}
	if r.Host.UptimeSeconds != 7200 {
		t.Errorf("uptime_seconds = %d, want 7200", r.Host.UptimeSeconds)
	}
}

func TestPlaceholderFlag(t *testing.T) {
	run(t, "debug", "flags", "--placeholder", "n/a")
	if cfg.Placeholder != "n/a" {
		t.Fatalf("placeholder = %q, want n/a", cfg.Placeholder)
	}
	if diagnostics.Placeholder() != "n/a" {
		t.Fatalf("facade placeholder = %q, want n/a", diagnostics.Placeholder())
	}
	// reset the persistent flag for later tests
	rootCmd.PersistentFlags().Set("placeholder", "")
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version")
	if !strings.Contains(out, "Version:  dev") || !strings.Contains(out, "Stub OS 1.0") {
		t.Fatalf("version output:\n%s", out)
	}
}

func TestDebugCountersCommand(t *testing.T) {
	orig := listCounters
	t.Cleanup(func() { listCounters = orig })

	var gotCategory, gotInstance string
	listCounters = func(category, instance string) ([]string, error) {
		gotCategory, gotInstance = category, instance
		return []string{"idle", "user"}, nil
	}

	out := run(t, "debug", "counters", "cpu", "cpu0")
	if gotCategory != "cpu" || gotInstance != "cpu0" {
		t.Fatalf("listed %q/%q, want cpu/cpu0", gotCategory, gotInstance)
	}
	if !strings.Contains(out, "Counters in the cpu category:") || !strings.Contains(out, "  idle\n") || !strings.Contains(out, "  user\n") {
		t.Fatalf("counters output:\n%s", out)
	}
}
