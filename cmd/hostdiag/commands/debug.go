package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgecli/hostdiag/internal/registry"
	"github.com/edgecli/hostdiag/internal/sysinfo"
)

// debugCmd is the parent command for debug subcommands
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug and diagnostic commands",
	Long:  `Commands for debugging and diagnosing hostdiag itself.`,
}

// debugFlagsCmd prints resolved flag values for debugging
var debugFlagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print resolved flag and config values",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		configPath, _ := cmd.Flags().GetString("config")
		noColor, _ := cmd.Flags().GetBool("no-color")

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Resolved Flag Values:")
		fmt.Fprintf(out, "  --verbose:     %v\n", verbose)
		fmt.Fprintf(out, "  --config:      %q\n", configPath)
		fmt.Fprintf(out, "  --no-color:    %v\n", noColor)
		fmt.Fprintf(out, "  placeholder:   %q\n", cfg.Placeholder)
		fmt.Fprintf(out, "  log level:     %s\n", cfg.LogLevel)
		return nil
	},
}

// debugRegistryCmd dumps an HKLM subtree
var debugRegistryCmd = &cobra.Command{
	Use:   "registry <path>",
	Short: "Dump all values below an HKLM registry key",
	Long: `Dump every value below a HKEY_LOCAL_MACHINE key, depth first.

Example:
  hostdiag debug registry "SOFTWARE\Microsoft\Windows NT\CurrentVersion"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dump, err := registry.Dump(registry.DefaultTree(), args[0])
		if errors.Is(err, registry.ErrUnsupported) {
			return fmt.Errorf("registry dump is only available on Windows")
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		fmt.Fprint(cmd.OutOrStdout(), dump)
		return nil
	},
}

// debugCountersCmd lists the counters available in a category
var debugCountersCmd = &cobra.Command{
	Use:   "counters <category> [instance]",
	Short: "List the counters available in a category",
	Long: `List the counter names available in a category, sorted by name.

Categories: cpu, memory, swap. For cpu an instance such as cpu0 selects a
single processor.

Example:
  hostdiag debug counters cpu cpu0`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: sysinfo.Categories,
	RunE: func(cmd *cobra.Command, args []string) error {
		instance := ""
		if len(args) == 2 {
			instance = args[1]
		}
		names, err := listCounters(args[0], instance)
		if err != nil {
			return fmt.Errorf("failed to list counters: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Counters in the %s category:\n", args[0])
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	},
}

// listCounters enumerates counter names
var listCounters = sysinfo.Counters

func init() {
	debugCmd.AddCommand(debugFlagsCmd)
	debugCmd.AddCommand(debugRegistryCmd)
	debugCmd.AddCommand(debugCountersCmd)
}
