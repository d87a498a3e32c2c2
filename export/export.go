package export

import (
	"fmt"
	"os"
	"strings"

	"nexus-swipe/db"
)

const reportHeader = "# Nexus Mod Swiper — Approved Mods"

// RenderReport builds the line-oriented text report for approved mods: one
// numbered line per mod with both scores, the mod page URL and the target
// version the scores were computed against.
func RenderReport(decisions []db.Decision) string {
	lines := make([]string, 0, len(decisions)+2)
	lines = append(lines, reportHeader, "")
	for i, d := range decisions {
		lines = append(lines, fmt.Sprintf("%d. %s (by %s) — Logic %d/100, AI %d/100 — %s [target version: %s]",
			i+1, d.Name, d.Author, d.LogicScore, d.AiScore, d.URL, d.Version))
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteReport renders the report and writes it to path.
func WriteReport(decisions []db.Decision, path string) error {
	if err := os.WriteFile(path, []byte(RenderReport(decisions)), 0644); err != nil {
		return fmt.Errorf("failed to write report to '%s': %w", path, err)
	}
	return nil
}
