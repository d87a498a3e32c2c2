package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nexus-swipe",
	Short: "Swipe through Nexus mods scored for version compatibility",
	Long: `nexus-swipe fetches the latest mods for a configured game from
Nexus Mods, scores each one for compatibility with your target game version
(a rule-based logic score plus an AI estimate), and lets you approve or
reject them in an interactive deck.`,
	// Running with no subcommand launches the deck.
	Run: func(_ *cobra.Command, _ []string) {
		runSwipe()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
