package game

import (
	"fmt"
	"time"
)

// Patch is one game update the scoring engine can compare mod activity
// against.
type Patch struct {
	Version    string
	ReleasedAt time.Time
}

// Definition is the static configuration for one supported game. Loaded once
// from the catalog below and never mutated.
type Definition struct {
	ID             string
	Name           string
	Domain         string // Nexus Mods API domain key
	ShortName      string // Used in version phrase construction
	Versions       []string
	DefaultVersion string
	RecentPatches  []Patch
	// SpecialCaseKeywords extends the core-framework keyword list with
	// game-specific framework terms.
	SpecialCaseKeywords []string
}

var catalog = []Definition{
	{
		ID:             "skyrimse",
		Name:           "Skyrim Special Edition",
		Domain:         "skyrimspecialedition",
		ShortName:      "SSE",
		Versions:       []string{"1.6.1170", "1.6.640", "1.5.97"},
		DefaultVersion: "1.6.1170",
		RecentPatches: []Patch{
			{Version: "1.6.1170", ReleasedAt: time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)},
			{Version: "1.6.640", ReleasedAt: time.Date(2022, 9, 15, 0, 0, 0, 0, time.UTC)},
			{Version: "1.5.97", ReleasedAt: time.Date(2019, 11, 21, 0, 0, 0, 0, time.UTC)},
		},
		SpecialCaseKeywords: []string{"skse", "address library"},
	},
	{
		ID:             "fallout4",
		Name:           "Fallout 4",
		Domain:         "fallout4",
		ShortName:      "FO4",
		Versions:       []string{"1.10.984", "1.10.163"},
		DefaultVersion: "1.10.984",
		RecentPatches: []Patch{
			{Version: "1.10.984", ReleasedAt: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
			{Version: "1.10.163", ReleasedAt: time.Date(2019, 12, 4, 0, 0, 0, 0, time.UTC)},
		},
		SpecialCaseKeywords: []string{"f4se", "buffout"},
	},
}

// All returns the supported game definitions.
func All() []Definition {
	return catalog
}

// Find looks up a game by catalog id.
func Find(id string) (Definition, error) {
	for _, def := range catalog {
		if def.ID == id {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown game %q", id)
}

// FindPatch returns the recent-patch entry for a version, if the catalog
// knows about it.
func (d Definition) FindPatch(version string) (Patch, bool) {
	for _, patch := range d.RecentPatches {
		if patch.Version == version {
			return patch, true
		}
	}
	return Patch{}, false
}

// SupportsVersion reports whether a version is in the game's supported list.
func (d Definition) SupportsVersion(version string) bool {
	for _, v := range d.Versions {
		if v == version {
			return true
		}
	}
	return false
}
