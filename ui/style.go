package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ScoreColor picks a terminal color for a 0-100 compatibility score.
func ScoreColor(score int) lipgloss.Color {
	switch {
	case score >= 70:
		return lipgloss.Color("10") // Green
	case score >= 40:
		return lipgloss.Color("11") // Yellow
	default:
		return lipgloss.Color("9") // Red
	}
}

// RenderScore renders "85/100" styled by score band.
func RenderScore(score int) string {
	style := lipgloss.NewStyle().Foreground(ScoreColor(score)).Bold(true)
	return style.Render(fmt.Sprintf("%d/100", score))
}

// Colorize applies a foreground color to text.
func Colorize(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
