package scoring

import (
	"errors"
	"fmt"
	"time"

	"nexus-swipe/nexus"
)

// ErrInvalidRecord marks a raw mod record missing its identity fields. It is
// the only error the scoring engine lets escape; it means the upstream
// contract is broken, not that the source is temporarily degraded.
var ErrInvalidRecord = errors.New("invalid mod record")

// NormalizedMod is the canonical in-memory mod representation, independent of
// the upstream field naming.
type NormalizedMod struct {
	ID                   int
	Name                 string
	Summary              string
	Description          string
	Version              string
	Author               string
	URL                  string
	Thumbnail            string
	UpdatedAt            time.Time
	CreatedAt            time.Time
	GameDomain           string
	ContainsAdultContent bool
}

// NormalizeMod maps a raw Nexus mod summary into a NormalizedMod. Timestamps
// resolve through a fallback chain so they are never zero: "updated" prefers
// updated then uploaded then created then now, "created" prefers created then
// uploaded then updated then now.
func NormalizeMod(raw nexus.ModSummary, gameDomain string, now time.Time) (NormalizedMod, error) {
	if raw.ModID == 0 || raw.Name == "" {
		return NormalizedMod{}, fmt.Errorf("%w: mod_id=%d name=%q", ErrInvalidRecord, raw.ModID, raw.Name)
	}

	description := raw.Description
	if description == "" {
		description = raw.Summary
	}

	return NormalizedMod{
		ID:                   raw.ModID,
		Name:                 raw.Name,
		Summary:              raw.Summary,
		Description:          description,
		Version:              raw.Version,
		Author:               raw.Author,
		URL:                  raw.ModPageURL,
		Thumbnail:            raw.PictureURL,
		UpdatedAt:            resolveTimestamp(now, raw.UpdatedTimestamp, raw.UploadedTimestamp, raw.CreatedTimestamp),
		CreatedAt:            resolveTimestamp(now, raw.CreatedTimestamp, raw.UploadedTimestamp, raw.UpdatedTimestamp),
		GameDomain:           gameDomain,
		ContainsAdultContent: raw.ContainsAdultContent,
	}, nil
}

// resolveTimestamp returns the first present candidate converted from epoch
// seconds, falling back to now.
func resolveTimestamp(now time.Time, candidates ...*int64) time.Time {
	for _, candidate := range candidates {
		if candidate != nil {
			return time.Unix(*candidate, 0).UTC()
		}
	}
	return now.UTC()
}
