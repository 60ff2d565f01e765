package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/edgecli/hostdiag/internal/config"
	"github.com/edgecli/hostdiag/internal/diag"
	"github.com/edgecli/hostdiag/internal/log"
	"github.com/edgecli/hostdiag/internal/ui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

var (
	cfg         *config.Config
	diagnostics *diag.Diagnostics

	// newDiagnostics builds the facade from the loaded settings
	newDiagnostics = func(c *config.Config) *diag.Diagnostics {
		return diag.New(diag.WithPlaceholder(c.Placeholder))
	}
)

var rootCmd = &cobra.Command{
	Use:   "hostdiag",
	Short: "hostdiag - live host diagnostics",
	Long: `hostdiag reports CPU load, physical and virtual memory usage and
descriptive host identity (OS name, processor name, elevation status).

Use "hostdiag [command] --help" for more information about a command.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ~/.hostdiag/config.yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("placeholder", "", "Text reported when a value is unavailable")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(debugCmd)
}

// setup loads settings, configures logging and colors and builds the facade
func setup(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if placeholder, _ := cmd.Flags().GetString("placeholder"); placeholder != "" {
		loaded.Placeholder = placeholder
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		loaded.LogLevel = "debug"
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		loaded.NoColor = true
	}

	log.InitLog(loaded.LogLevel)
	ui.SetNoColor(loaded.NoColor)

	cfg = loaded
	diagnostics = newDiagnostics(cfg)
	log.Debug("configuration loaded", "placeholder", cfg.Placeholder, "log_level", cfg.LogLevel)
	return nil
}

// versionCmd shows version info
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "hostdiag\n")
		fmt.Fprintf(out, "  Version:  %s\n", Version)
		fmt.Fprintf(out, "  Commit:   %s\n", Commit)
		fmt.Fprintf(out, "  Platform: %s/%s (%s)\n", runtime.GOOS, runtime.GOARCH, diagnostics.OSName())
	},
}
