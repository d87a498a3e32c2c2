package db

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	InitDatabase(filepath.Join(t.TempDir(), "test.db"))
}

func TestSaveDecision(t *testing.T) {
	setupTestDB(t)

	decision := &Decision{
		ModID:      42,
		GameDomain: "skyrimspecialedition",
		Version:    "1.6.1170",
		Name:       "SkyUI",
		Author:     "SkyUI Team",
		URL:        "https://example.com/42",
		LogicScore: 85,
		AiScore:    90,
		Verdict:    VerdictApprove,
	}
	if err := SaveDecision(decision); err != nil {
		t.Fatalf("SaveDecision failed: %v", err)
	}

	t.Run("re-swiping replaces the earlier decision", func(t *testing.T) {
		updated := &Decision{
			ModID:      42,
			GameDomain: "skyrimspecialedition",
			Version:    "1.6.1170",
			Name:       "SkyUI",
			Verdict:    VerdictReject,
		}
		if err := SaveDecision(updated); err != nil {
			t.Fatalf("SaveDecision (replace) failed: %v", err)
		}

		var count int64
		DB.Model(&Decision{}).Where("mod_id = ?", 42).Count(&count)
		if count != 1 {
			t.Errorf("Expected 1 decision row, got %d", count)
		}

		latest, err := LatestDecision("skyrimspecialedition", "1.6.1170")
		if err != nil {
			t.Fatalf("LatestDecision failed: %v", err)
		}
		if latest.Verdict != VerdictReject {
			t.Errorf("Verdict = %s, want reject after replacement", latest.Verdict)
		}
	})
}

func TestApprovedDecisions(t *testing.T) {
	setupTestDB(t)

	seed := []Decision{
		{ModID: 1, GameDomain: "skyrimspecialedition", Version: "1.6.1170", Name: "A", Verdict: VerdictApprove},
		{ModID: 2, GameDomain: "skyrimspecialedition", Version: "1.6.1170", Name: "B", Verdict: VerdictReject},
		{ModID: 3, GameDomain: "skyrimspecialedition", Version: "1.6.1170", Name: "C", Verdict: VerdictApprove},
		{ModID: 4, GameDomain: "fallout4", Version: "1.10.984", Name: "D", Verdict: VerdictApprove},
	}
	for i := range seed {
		if err := SaveDecision(&seed[i]); err != nil {
			t.Fatalf("SaveDecision failed: %v", err)
		}
	}

	approved, err := ApprovedDecisions("skyrimspecialedition", "1.6.1170")
	if err != nil {
		t.Fatalf("ApprovedDecisions failed: %v", err)
	}
	if len(approved) != 2 {
		t.Fatalf("Got %d approved, want 2", len(approved))
	}
	if approved[0].Name != "A" || approved[1].Name != "C" {
		t.Errorf("Unexpected order: %s, %s", approved[0].Name, approved[1].Name)
	}
}

func TestDecidedModIDs(t *testing.T) {
	setupTestDB(t)

	seed := []Decision{
		{ModID: 1, GameDomain: "skyrimspecialedition", Version: "1.6.1170", Verdict: VerdictApprove},
		{ModID: 2, GameDomain: "skyrimspecialedition", Version: "1.6.1170", Verdict: VerdictReject},
	}
	for i := range seed {
		if err := SaveDecision(&seed[i]); err != nil {
			t.Fatalf("SaveDecision failed: %v", err)
		}
	}

	ids, err := DecidedModIDs("skyrimspecialedition", "1.6.1170")
	if err != nil {
		t.Fatalf("DecidedModIDs failed: %v", err)
	}
	if !ids[1] || !ids[2] || len(ids) != 2 {
		t.Errorf("Unexpected id set: %v", ids)
	}
}
