package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/edgecli/hostdiag/internal/ui"
)

// infoCmd shows descriptive host identity
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show OS name, processor and elevation status",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		osName := diagnostics.OSNameResult()
		rows := []ui.Row{{Label: "OS", Value: osName.Value}}
		if verbose && osName.Source != "" {
			rows = append(rows, ui.Row{Label: "OS source", Value: ui.RenderDim(osName.Source)})
		}
		rows = append(rows,
			ui.Row{Label: "Processor", Value: diagnostics.ProcessorName()},
			ui.Row{Label: "Elevated", Value: yesNo(diagnostics.IsAdminElevated())},
		)

		uptime := ui.RenderDim(diagnostics.Placeholder())
		if up, err := diagnostics.Uptime(); err == nil {
			uptime = up.Truncate(time.Second).String()
		}
		rows = append(rows, ui.Row{Label: "Uptime", Value: uptime})

		fmt.Fprint(cmd.OutOrStdout(), ui.RenderPanel("Host", rows))
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
