package scoring

import (
	"fmt"
	"strings"

	"nexus-swipe/game"
	"nexus-swipe/nexus"
)

const baseScore = 50

// NoSignalNote is appended when neither the author text nor the comments
// reference the selected patch. The heuristic AI estimate keys off it.
const NoSignalNote = "No explicit references to the selected patch were found."

var (
	negativeAuthorKeywords = []string{"not compatible", "doesn't work", "broken", "unsafe on"}
	partialKeywords        = []string{"partially", "some issues", "feature x broken", "minor issues"}
	positiveUserKeywords   = []string{"works on", "running on", "still works", "confirmed", "stable on"}
	negativeUserKeywords   = []string{"doesn't work", "crash", "broken with", "fails on", "not working"}
	scriptExtenderKeywords = []string{"script extender", "skse", "sfse", "mod fixer", "foundation"}
)

// SignalType classifies a signal's direction.
type SignalType string

const (
	SignalPositive SignalType = "positive"
	SignalNegative SignalType = "negative"
)

// Signal is one named, weighted contribution to the logic score, surfaced to
// the user for explainability.
type Signal struct {
	Label  string
	Weight int
	Type   SignalType
}

// LogicResult is the outcome of one scoring run.
type LogicResult struct {
	LogicScore       int
	Signals          []Signal
	Notes            []string
	HeuristicAiScore int
}

// Breakdown combines the logic result with the AI (or heuristic) estimate.
// Immutable once attached to a mod.
type Breakdown struct {
	LogicScore int
	AiScore    int
	Signals    []Signal
	Notes      []string
}

// Engine evaluates mods against one game and target version. It holds no
// mutable state; Score is a pure function of its inputs.
type Engine struct {
	game    game.Definition
	version string
}

// NewEngine creates a scoring engine for one game/version pair.
func NewEngine(g game.Definition, version string) *Engine {
	return &Engine{game: g, version: version}
}

// Score runs the full rule set over a mod and its comments. Rules accumulate
// on a base score of 50 in a fixed order with no early exit; every applicable
// rule fires and stacks. The final score is clamped into [0,100].
func (e *Engine) Score(mod NormalizedMod, comments []nexus.ModComment) LogicResult {
	logicScore := baseScore
	signals := []Signal{}
	notes := []string{}

	textSource := mod.Summary + " " + mod.Description
	versionPhrases := e.buildVersionPhrases()

	if ContainsAny(textSource, suffixPhrases(versionPhrases, " compatible")) {
		logicScore += 35
		signals = append(signals, Signal{Label: "Author-confirmed compatibility", Weight: 35, Type: SignalPositive})
		notes = append(notes, "Author explicitly states compatibility with the selected patch.")
	}

	// Independent of the confirmation check above; pathological text can
	// fire both.
	if ContainsAny(textSource, suffixPhrases(versionPhrases, " not compatible")) {
		logicScore -= 45
		signals = append(signals, Signal{Label: "Author-declared incompatibility", Weight: -45, Type: SignalNegative})
		notes = append(notes, "Author warns that this mod is currently incompatible.")
	}

	if ContainsAny(textSource, negativeAuthorKeywords) {
		logicScore -= 30
		signals = append(signals, Signal{Label: "Author reports breakage", Weight: -30, Type: SignalNegative})
	}

	if ContainsAny(textSource, partialKeywords) {
		logicScore -= 10
		signals = append(signals, Signal{Label: "Partial incompatibility notice", Weight: -10, Type: SignalNegative})
	}

	if patch, ok := e.game.FindPatch(e.version); ok && !mod.UpdatedAt.Before(patch.ReleasedAt) {
		logicScore += 12
		signals = append(signals, Signal{Label: "Updated after latest patch", Weight: 12, Type: SignalPositive})
		notes = append(notes, "Update landed after the selected patch, suggesting maintenance.")
	}

	// Does not stack even when several framework keywords match.
	extenderHit := e.detectCoreFramework(mod, textSource)
	if extenderHit {
		logicScore += 15
		signals = append(signals, Signal{Label: "Core framework / extender", Weight: 15, Type: SignalPositive})
	}

	userConfirmations := countCommentMatches(comments, positiveUserKeywords, versionPhrases)
	if userConfirmations >= 2 {
		logicScore += 15
		signals = append(signals, Signal{Label: "Multiple users confirm compatibility", Weight: 15, Type: SignalPositive})
		notes = append(notes, "Community posts after the patch report success.")
	} else if userConfirmations == 1 {
		logicScore += 7
		signals = append(signals, Signal{Label: "User confirmation", Weight: 7, Type: SignalPositive})
	}

	userBreakages := countCommentMatches(comments, negativeUserKeywords, versionPhrases)
	if userBreakages >= 2 {
		logicScore -= 25
		signals = append(signals, Signal{Label: "Users report breakage", Weight: -25, Type: SignalNegative})
	} else if userBreakages == 1 {
		logicScore -= 12
		signals = append(signals, Signal{Label: "Single issue report", Weight: -12, Type: SignalNegative})
	}

	if CountMatches(textSource, versionPhrases) == 0 && userConfirmations == 0 {
		notes = append(notes, NoSignalNote)
	}

	logicScore = clampScore(logicScore)

	return LogicResult{
		LogicScore:       logicScore,
		Signals:          signals,
		Notes:            notes,
		HeuristicAiScore: estimateAiScore(logicScore, extenderHit, notes),
	}
}

// buildVersionPhrases returns the textual variants that count as a reference
// to the target version.
func (e *Engine) buildVersionPhrases() []string {
	normalized := strings.ToLower(e.version)
	return []string{
		normalized,
		"v" + normalized,
		"version " + normalized,
		"patch " + normalized,
		strings.ToLower(e.game.ShortName) + " " + normalized,
	}
}

func (e *Engine) detectCoreFramework(mod NormalizedMod, textSource string) bool {
	keywords := append(append([]string{}, scriptExtenderKeywords...), e.game.SpecialCaseKeywords...)
	loweredName := strings.ToLower(mod.Name)
	loweredText := strings.ToLower(textSource)
	for _, keyword := range keywords {
		k := strings.ToLower(keyword)
		if strings.Contains(loweredName, k) || strings.Contains(loweredText, k) {
			return true
		}
	}
	return false
}

// countCommentMatches counts comments that contain a keyword and either a
// version phrase or, redundantly, a keyword again. The redundant branch is
// part of the calibrated rule set and intentionally kept.
func countCommentMatches(comments []nexus.ModComment, keywords, versionPhrases []string) int {
	matches := 0
	for _, comment := range comments {
		lowered := strings.ToLower(comment.Comment)
		hasKeyword := false
		for _, keyword := range keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword {
			continue
		}
		hasVersion := false
		for _, phrase := range versionPhrases {
			if strings.Contains(lowered, phrase) {
				hasVersion = true
				break
			}
		}
		if hasVersion || hasKeyword {
			matches++
		}
	}
	return matches
}

// estimateAiScore derives the deterministic stand-in for the AI score used
// whenever no live AI call is made. A detected core framework raises the
// estimate to at least 80; a missing version reference costs 5 points.
func estimateAiScore(logicScore int, extenderHit bool, notes []string) int {
	aiScore := logicScore
	if extenderHit && aiScore < 80 {
		aiScore = 80
	}
	for _, note := range notes {
		if strings.Contains(note, "No explicit references") {
			aiScore -= 5
			break
		}
	}
	return clampScore(aiScore)
}

func suffixPhrases(phrases []string, suffix string) []string {
	out := make([]string, len(phrases))
	for i, phrase := range phrases {
		out[i] = phrase + suffix
	}
	return out
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Describe renders a short human-readable summary of a signal, used by the
// TUI card view.
func (s Signal) Describe() string {
	sign := "+"
	if s.Weight < 0 {
		sign = ""
	}
	return fmt.Sprintf("%s (%s%d)", s.Label, sign, s.Weight)
}
