package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/edgecli/hostdiag/internal/diag"
	"github.com/edgecli/hostdiag/internal/log"
	"github.com/edgecli/hostdiag/internal/ui"
)

const defaultInterval = time.Second

// statusCmd shows CPU and memory utilization
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show CPU load and memory usage",
	Long: `Show the current CPU load and physical and virtual memory usage.

The CPU rate is measured over --interval: the first sample only primes
the counter, the second one is reported.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Duration("interval", defaultInterval, "CPU sampling interval")
}

func runStatus(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	s := takeSnapshot(cmd.Context(), interval)

	out := cmd.OutOrStdout()
	cpu := ui.Row{Label: "Usage", Value: ui.Percent(s.CPUPercent)}
	if s.CPUError != "" {
		cpu.Value = ui.RenderError(errors.New(s.CPUError))
	}
	fmt.Fprint(out, ui.RenderPanel("CPU", []ui.Row{cpu}))
	fmt.Fprint(out, ui.RenderPanel("Physical memory", memoryRows(s.RAM)))
	fmt.Fprint(out, ui.RenderPanel("Virtual memory", memoryRows(s.Virtual)))
	return nil
}

// takeSnapshot warms the facade, waits one interval and collects a snapshot
func takeSnapshot(ctx context.Context, interval time.Duration) diag.Snapshot {
	if ctx == nil {
		ctx = context.Background()
	}
	if interval <= 0 {
		interval = defaultInterval
	}

	spinner := ui.NewSpinner(os.Stderr, "Sampling host...")
	spinner.Start()
	defer spinner.Stop()

	if err := diagnostics.Warm(ctx); err != nil {
		log.Warn("warm-up incomplete", "error", err)
	}

	select {
	case <-time.After(interval):
	case <-ctx.Done():
	}
	return diagnostics.Snapshot()
}

func memoryRows(m diag.MemorySnapshot) []ui.Row {
	if m.Error != "" && m.TotalBytes == 0 {
		return []ui.Row{{Label: "Error", Value: ui.RenderError(errors.New(m.Error))}}
	}
	used := ui.Percent(m.PercentUsed)
	if m.Error != "" {
		used = ui.RenderDim(diagnostics.Placeholder())
	}
	return []ui.Row{
		{Label: "Total", Value: fmt.Sprintf("%.2f GB", m.TotalGB)},
		{Label: "Used", Value: fmt.Sprintf("%.2f GB", m.UsedGB)},
		{Label: "Free", Value: fmt.Sprintf("%.2f GB", m.FreeGB)},
		{Label: "Load", Value: used},
	}
}
