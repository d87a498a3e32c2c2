package cmd

import (
	"context"
	"fmt"
	"os"

	"nexus-swipe/logger"
	"nexus-swipe/scoring"
	"nexus-swipe/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Fetch and score the latest mods without swiping",
	Long: `Runs the full fetch-and-score pipeline for the configured game and
prints one line per mod with its logic and AI compatibility scores. Useful
for scripting or a quick look without the interactive deck.`,
	Run: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		runScore(verbose)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolP("verbose", "v", false, "Print signals and notes for each mod")
}

func runScore(verbose bool) {
	_, def, version, service := bootstrap(".")

	logger.Log.Infow("Scoring latest mods",
		zap.String("game", def.ID),
		zap.String("version", version),
	)

	progress := func(current, total int, mod scoring.NormalizedMod) {
		fmt.Fprintf(os.Stderr, "\rScoring %d/%d", current, total)
	}

	deck, err := service.FetchAndScore(context.Background(), def, version, progress)
	if err != nil {
		logger.Log.Fatalw("Scoring run failed", zap.Error(err))
	}
	fmt.Fprintln(os.Stderr)

	fmt.Printf("%s · target version %s · %d mods\n\n", def.Name, version, len(deck))
	for _, mod := range deck {
		fmt.Printf("%-45s logic %s  ai %s\n",
			truncate(mod.Name, 45),
			ui.RenderScore(mod.Compatibility.LogicScore),
			ui.RenderScore(mod.Compatibility.AiScore),
		)
		if !verbose {
			continue
		}
		for _, signal := range mod.Compatibility.Signals {
			fmt.Printf("    %s\n", signal.Describe())
		}
		for _, note := range mod.Compatibility.Notes {
			fmt.Printf("    › %s\n", note)
		}
	}
}
