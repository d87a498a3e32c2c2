package scoring

import (
	"errors"
	"testing"
	"time"

	"nexus-swipe/nexus"
)

func ts(v int64) *int64 { return &v }

func TestNormalizeMod(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("full record", func(t *testing.T) {
		raw := nexus.ModSummary{
			ModID:             42,
			Name:              "SkyUI",
			Summary:           "UI overhaul",
			Description:       "Full description",
			Version:           "5.2",
			Author:            "SkyUI Team",
			ModPageURL:        "https://example.com/42",
			UpdatedTimestamp:  ts(1700000000),
			UploadedTimestamp: ts(1600000000),
			CreatedTimestamp:  ts(1500000000),
		}

		mod, err := NormalizeMod(raw, "skyrimspecialedition", now)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if mod.UpdatedAt != time.Unix(1700000000, 0).UTC() {
			t.Errorf("UpdatedAt = %v, want updated_timestamp", mod.UpdatedAt)
		}
		if mod.CreatedAt != time.Unix(1500000000, 0).UTC() {
			t.Errorf("CreatedAt = %v, want created_timestamp", mod.CreatedAt)
		}
		if mod.Description != "Full description" {
			t.Errorf("Description = %q", mod.Description)
		}
		if mod.GameDomain != "skyrimspecialedition" {
			t.Errorf("GameDomain = %q", mod.GameDomain)
		}
	})

	t.Run("timestamp fallback chains are independent", func(t *testing.T) {
		raw := nexus.ModSummary{
			ModID:             7,
			Name:              "Test",
			UploadedTimestamp: ts(1600000000),
		}
		mod, err := NormalizeMod(raw, "skyrimspecialedition", now)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := time.Unix(1600000000, 0).UTC()
		if mod.UpdatedAt != want {
			t.Errorf("UpdatedAt = %v, want uploaded fallback %v", mod.UpdatedAt, want)
		}
		if mod.CreatedAt != want {
			t.Errorf("CreatedAt = %v, want uploaded fallback %v", mod.CreatedAt, want)
		}
	})

	t.Run("all timestamps missing falls back to now", func(t *testing.T) {
		raw := nexus.ModSummary{ModID: 7, Name: "Test"}
		mod, err := NormalizeMod(raw, "skyrimspecialedition", now)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if mod.UpdatedAt != now || mod.CreatedAt != now {
			t.Errorf("Expected now fallback, got updated=%v created=%v", mod.UpdatedAt, mod.CreatedAt)
		}
		if mod.UpdatedAt.IsZero() || mod.CreatedAt.IsZero() {
			t.Error("Timestamps must never be zero")
		}
	})

	t.Run("description falls back to summary", func(t *testing.T) {
		raw := nexus.ModSummary{ModID: 7, Name: "Test", Summary: "short summary"}
		mod, err := NormalizeMod(raw, "skyrimspecialedition", now)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if mod.Description != "short summary" {
			t.Errorf("Description = %q, want summary fallback", mod.Description)
		}
	})

	t.Run("missing identity is an invalid record", func(t *testing.T) {
		for _, raw := range []nexus.ModSummary{
			{Name: "No id"},
			{ModID: 9},
		} {
			_, err := NormalizeMod(raw, "skyrimspecialedition", now)
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("NormalizeMod(%+v) error = %v, want ErrInvalidRecord", raw, err)
			}
		}
	})
}
