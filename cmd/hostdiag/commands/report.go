package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/edgecli/hostdiag/internal/diag"
	"github.com/edgecli/hostdiag/internal/log"
)

// Report is one machine-readable diagnostics run
type Report struct {
	ReportID  string        `json:"report_id"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
	Host      diag.Snapshot `json:"host"`
}

// reportCmd prints a full snapshot
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a full diagnostics snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		asJSON, _ := cmd.Flags().GetBool("json")

		r := Report{
			ReportID:  uuid.New().String(),
			Timestamp: time.Now().UTC(),
			Version:   Version,
			Host:      takeSnapshot(cmd.Context(), interval),
		}

		log.Info("report collected", "report_id", r.ReportID)

		out := cmd.OutOrStdout()
		if asJSON {
			data, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Report %s (%s)\n", r.ReportID, r.Timestamp.Format(time.RFC3339))
		fmt.Fprintf(out, "  OS:           %s\n", r.Host.OSName)
		fmt.Fprintf(out, "  Processor:    %s\n", r.Host.ProcessorName)
		fmt.Fprintf(out, "  Elevated:     %s\n", yesNo(r.Host.Elevated))
		fmt.Fprintf(out, "  CPU:          %.1f%%\n", r.Host.CPUPercent)
		fmt.Fprintf(out, "  RAM used:     %.1f%% of %.2f GB\n", r.Host.RAM.PercentUsed, r.Host.RAM.TotalGB)
		fmt.Fprintf(out, "  Virtual used: %.1f%% of %.2f GB\n", r.Host.Virtual.PercentUsed, r.Host.Virtual.TotalGB)
		return nil
	},
}

func init() {
	reportCmd.Flags().Duration("interval", defaultInterval, "CPU sampling interval")
	reportCmd.Flags().Bool("json", false, "Output as JSON")
}
