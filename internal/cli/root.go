// Package cli holds the talentflow commands.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "talentflow",
	Short: "Talent staffing platform backend",
	Long: `talentflow serves the registration, company, staffing and content APIs
and consumes verification events to send notification emails.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("talentflow version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
