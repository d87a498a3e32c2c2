package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Verdict is the swipe outcome stored with a decision.
type Verdict string

const (
	VerdictApprove Verdict = "approve"
	VerdictReject  Verdict = "reject"
)

// Decision is the lightweight summary persisted when the user swipes on a
// scored mod. The full compatibility breakdown is not stored; only what the
// export report needs.
type Decision struct {
	gorm.Model
	ModID      int    `gorm:"uniqueIndex:idx_decision_scope"`
	GameDomain string `gorm:"uniqueIndex:idx_decision_scope"`
	Version    string `gorm:"uniqueIndex:idx_decision_scope"` // Target game version at decision time
	Name       string
	Author     string
	URL        string
	LogicScore int
	AiScore    int
	Verdict    Verdict
}

// SaveDecision records a swipe, replacing any earlier decision for the same
// mod/game/version scope so re-swiping after a reset doesn't error out.
func SaveDecision(decision *Decision) error {
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mod_id"}, {Name: "game_domain"}, {Name: "version"}},
		UpdateAll: true,
	}).Create(decision).Error
}

// LatestDecision returns the most recently recorded decision for a
// game/version scope.
func LatestDecision(gameDomain, version string) (Decision, error) {
	var decision Decision
	err := DB.Where("game_domain = ? AND version = ?", gameDomain, version).
		Order("updated_at DESC").First(&decision).Error
	return decision, err
}

// ApprovedDecisions lists approved mods for a game/version scope in decision
// order.
func ApprovedDecisions(gameDomain, version string) ([]Decision, error) {
	var decisions []Decision
	err := DB.Where("game_domain = ? AND version = ? AND verdict = ?", gameDomain, version, VerdictApprove).
		Order("updated_at ASC").Find(&decisions).Error
	return decisions, err
}

// DecidedModIDs returns the ids already swiped for a game/version scope, so
// the deck can skip them.
func DecidedModIDs(gameDomain, version string) (map[int]bool, error) {
	var decisions []Decision
	err := DB.Select("mod_id").Where("game_domain = ? AND version = ?", gameDomain, version).
		Find(&decisions).Error
	if err != nil {
		return nil, err
	}
	ids := make(map[int]bool, len(decisions))
	for _, d := range decisions {
		ids[d.ModID] = true
	}
	return ids, nil
}
