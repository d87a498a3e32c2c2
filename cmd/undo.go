package cmd

import (
	"errors"
	"fmt"

	"nexus-swipe/db"
	"nexus-swipe/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// undoCmd represents the undo command
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the most recent swipe decision",
	Long: `Removes the most recently recorded decision for the configured game
and target version, so the mod shows up again on the next swipe run.`,
	Run: func(_ *cobra.Command, _ []string) {
		undoLastDecision()
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

// undoLastDecision deletes the newest decision in the current game/version scope.
func undoLastDecision() {
	_, def, version, _ := bootstrap(".")

	decision, err := db.LatestDecision(def.Domain, version)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("No decisions recorded for %s %s yet\n", def.Name, version)
			return
		}
		logger.Log.Fatalw("Failed to query decisions", zap.Error(err))
	}

	if err := db.DB.Unscoped().Delete(&decision).Error; err != nil {
		logger.Log.Fatalw("Failed to delete decision",
			zap.Int("mod_id", decision.ModID),
			zap.Error(err),
		)
	}

	logger.Log.Infow("Removed decision",
		zap.Int("mod_id", decision.ModID),
		zap.String("mod_name", decision.Name),
		zap.String("verdict", string(decision.Verdict)),
	)
	fmt.Printf("Undid %s for %s\n", decision.Verdict, decision.Name)
}
