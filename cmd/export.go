package cmd

import (
	"fmt"

	"nexus-swipe/db"
	"nexus-swipe/export"
	"nexus-swipe/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write approved mods to a text report",
	Long: `Collects every approved decision for the configured game and target
version and writes a numbered text report with names, authors, scores and
mod page links.`,
	Run: func(cmd *cobra.Command, _ []string) {
		outputPath, _ := cmd.Flags().GetString("output")
		runExport(outputPath)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "approved-mods.txt", "Path for the generated report")
}

func runExport(outputPath string) {
	_, def, version, _ := bootstrap(".")

	decisions, err := db.ApprovedDecisions(def.Domain, version)
	if err != nil {
		logger.Log.Fatalw("Failed to load approved decisions", zap.Error(err))
	}
	if len(decisions) == 0 {
		fmt.Printf("No approved mods for %s %s yet — nothing to export\n", def.Name, version)
		return
	}

	if err := export.WriteReport(decisions, outputPath); err != nil {
		logger.Log.Fatalw("Failed to write report", zap.String("path", outputPath), zap.Error(err))
	}

	logger.Log.Infow("Report written",
		zap.String("path", outputPath),
		zap.Int("approved_mods", len(decisions)),
	)
	fmt.Printf("Exported %d approved mods to %s\n", len(decisions), outputPath)
}
