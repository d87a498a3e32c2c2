package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nexus-swipe/config"
	"nexus-swipe/db"
	"nexus-swipe/game"
	"nexus-swipe/logger"
	"nexus-swipe/mods"
	"nexus-swipe/scoring"
	"nexus-swipe/ui"
)

// swipeCmd represents the swipe command
var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Swipe through scored mods in an interactive deck",
	Long: `Fetches and scores the latest mods for the configured game, then
presents them one card at a time. Approve or reject each mod; decisions are
stored locally and can be exported as a text report.`,
	Run: func(_ *cobra.Command, _ []string) {
		runSwipe()
	},
}

func init() {
	rootCmd.AddCommand(swipeCmd)
}

type deckProgressMsg struct {
	current int
	total   int
	name    string
}

type deckLoadedMsg struct {
	deck []mods.ScoredMod
}

type deckErrorMsg string

type clearMessageMsg struct{}

// swipeModel is the bubbletea state for the deck.
type swipeModel struct {
	cfg     config.Config
	game    game.Definition
	version string
	service *mods.Service

	spinner      spinner.Model
	progressChan chan tea.Msg

	deck     []mods.ScoredMod
	index    int
	approved int
	rejected int

	loading        bool
	scoringCurrent int
	scoringTotal   int
	scoringName    string
	message        string
	error          string
	width          int
	height         int
}

func initialSwipeModel(cfg config.Config, g game.Definition, version string, service *mods.Service) swipeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return swipeModel{
		cfg:          cfg,
		game:         g,
		version:      version,
		service:      service,
		spinner:      s,
		progressChan: make(chan tea.Msg, 100), // Buffer slightly to avoid blocking
		loading:      true,
	}
}

func (m swipeModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startLoading(),
		m.waitForProgress(),
	)
}

// startLoading runs the fetch-and-score pipeline in the background, feeding
// progress into the channel the model drains.
func (m swipeModel) startLoading() tea.Cmd {
	return func() tea.Msg {
		go func() {
			defer close(m.progressChan)

			progress := func(current, total int, mod scoring.NormalizedMod) {
				m.progressChan <- deckProgressMsg{current: current, total: total, name: mod.Name}
			}

			deck, err := m.service.FetchAndScore(context.Background(), m.game, m.version, progress)
			if err != nil {
				if errors.Is(err, mods.ErrBatchAbandoned) {
					return // superseded, nothing to show
				}
				m.progressChan <- deckErrorMsg(err.Error())
				return
			}

			// Skip mods the user already swiped for this game/version.
			decided, err := db.DecidedModIDs(m.game.Domain, m.version)
			if err != nil {
				logger.Log.Warnw("Failed to load prior decisions", zap.Error(err))
				decided = map[int]bool{}
			}
			fresh := make([]mods.ScoredMod, 0, len(deck))
			for _, mod := range deck {
				if !decided[mod.ID] {
					fresh = append(fresh, mod)
				}
			}

			m.progressChan <- deckLoadedMsg{deck: fresh}
		}()
		return nil
	}
}

func (m swipeModel) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.progressChan
		if !ok {
			return nil
		}
		return msg
	}
}

func (m swipeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case deckProgressMsg:
		m.scoringCurrent = msg.current
		m.scoringTotal = msg.total
		m.scoringName = msg.name
		return m, m.waitForProgress()
	case deckLoadedMsg:
		m.deck = msg.deck
		m.loading = false
		return m, m.waitForProgress()
	case deckErrorMsg:
		m.error = string(msg)
		m.loading = false
		return m, m.waitForProgress()
	case clearMessageMsg:
		m.message = ""
	}
	return m, nil
}

func (m swipeModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "right", "l", "a":
		return m.decide(db.VerdictApprove)
	case "left", "h", "r":
		return m.decide(db.VerdictReject)
	case "s":
		if m.hasCurrent() {
			m.index++
		}
	case "u":
		return m.undo()
	}
	return m, nil
}

func (m swipeModel) hasCurrent() bool {
	return !m.loading && m.index < len(m.deck)
}

// decide records a verdict for the current card and advances the deck.
func (m swipeModel) decide(verdict db.Verdict) (tea.Model, tea.Cmd) {
	if !m.hasCurrent() {
		return m, nil
	}
	mod := m.deck[m.index]

	decision := &db.Decision{
		ModID:      mod.ID,
		GameDomain: mod.GameDomain,
		Version:    m.version,
		Name:       mod.Name,
		Author:     mod.Author,
		URL:        mod.URL,
		LogicScore: mod.Compatibility.LogicScore,
		AiScore:    mod.Compatibility.AiScore,
		Verdict:    verdict,
	}
	if err := db.SaveDecision(decision); err != nil {
		logger.Log.Errorw("Failed to save decision", zap.Int("mod_id", mod.ID), zap.Error(err))
		m.error = fmt.Sprintf("failed to save decision: %v", err)
		return m, nil
	}

	if verdict == db.VerdictApprove {
		m.approved++
		m.message = fmt.Sprintf("Approved %s", mod.Name)
	} else {
		m.rejected++
		m.message = fmt.Sprintf("Rejected %s", mod.Name)
	}
	m.index++

	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearMessageMsg{}
	})
}

// undo steps back one card and removes its stored decision.
func (m swipeModel) undo() (tea.Model, tea.Cmd) {
	if m.loading || m.index == 0 {
		return m, nil
	}
	m.index--
	mod := m.deck[m.index]

	result := db.DB.Where("mod_id = ? AND game_domain = ? AND version = ?", mod.ID, mod.GameDomain, m.version).
		Delete(&db.Decision{})
	if result.Error != nil {
		logger.Log.Warnw("Failed to remove decision", zap.Int("mod_id", mod.ID), zap.Error(result.Error))
	}
	m.message = fmt.Sprintf("Undid decision for %s", mod.Name)
	return m, nil
}

func (m swipeModel) View() string {
	if m.loading {
		return m.renderLoadingScreen()
	}
	if m.error != "" {
		return fmt.Sprintf("Error: %s\n", m.error)
	}
	if len(m.deck) == 0 {
		return "Nothing to swipe: every fetched mod already has a decision.\n"
	}
	if m.index >= len(m.deck) {
		return fmt.Sprintf("Deck finished. Approved %d, rejected %d.\nRun 'nexus-swipe export' to write the report.\n",
			m.approved, m.rejected)
	}

	var output strings.Builder
	output.WriteString(m.renderCard(m.deck[m.index]))
	output.WriteString("\n" + renderSwipeFooter())
	if m.message != "" {
		output.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.message))
	}
	output.WriteString("\n")
	return output.String()
}

func (m swipeModel) renderLoadingScreen() string {
	var progressText string
	if m.scoringTotal > 0 {
		progressText = fmt.Sprintf(" %d/%d", m.scoringCurrent, m.scoringTotal)
		if m.scoringName != "" {
			progressText += " · " + truncate(m.scoringName, 40)
		}
	}

	loadingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	return loadingStyle.Render(fmt.Sprintf("%s Scoring mods%s...", m.spinner.View(), progressText)) + "\n"
}

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("12")).
	Padding(1, 2).
	Width(70)

func (m swipeModel) renderCard(mod mods.ScoredMod) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var body strings.Builder
	title := mod.Name
	if mod.ContainsAdultContent {
		title += "  [adult]"
	}
	body.WriteString(titleStyle.Render(title) + "\n")
	body.WriteString(mutedStyle.Render(fmt.Sprintf("by %s · mod version %s", mod.Author, mod.Version)) + "\n\n")

	body.WriteString(fmt.Sprintf("Logic %s   AI %s\n\n",
		ui.RenderScore(mod.Compatibility.LogicScore),
		ui.RenderScore(mod.Compatibility.AiScore)))

	if len(mod.Compatibility.Signals) > 0 {
		for _, signal := range mod.Compatibility.Signals {
			color := lipgloss.Color("10")
			if signal.Type == scoring.SignalNegative {
				color = lipgloss.Color("9")
			}
			body.WriteString(ui.Colorize("• "+signal.Describe(), color) + "\n")
		}
		body.WriteString("\n")
	}

	body.WriteString(scoring.Snippet(mod.Summary, 280) + "\n")

	for _, note := range mod.Compatibility.Notes {
		body.WriteString(mutedStyle.Render("› "+note) + "\n")
	}

	header := mutedStyle.Render(fmt.Sprintf("%s · target %s · card %d/%d",
		m.game.Name, m.version, m.index+1, len(m.deck)))

	return header + "\n" + cardStyle.Render(body.String())
}

func renderSwipeFooter() string {
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	return footerStyle.Render("→/a: approve  ←/r: reject  s: skip  u: undo  q: quit")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func runSwipe() {
	cfg, def, version, service := bootstrap(".")

	logger.Log.Infow("Starting swipe deck",
		zap.String("game", def.ID),
		zap.String("version", version),
	)

	model := initialSwipeModel(cfg, def, version, service)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Log.Fatalw("TUI crashed", zap.Error(err))
	}
}
