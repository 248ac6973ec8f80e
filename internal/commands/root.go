package commands

import (
	"github.com/JimHagan/nr-alert-analyzer/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "nr-alert-analyzer",
	Short: "nr-alert-analyzer — New Relic incident pattern analyzer",
	Long: `nr-alert-analyzer fetches NrAiIncident events from New Relic's NerdGraph API
and analyzes patterns by temporal distribution, severity, root cause, and
related entities, helping operators tell chronic alert noise from acute
incidents.

An optional AI summary can be generated from a privacy-minimized payload.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
