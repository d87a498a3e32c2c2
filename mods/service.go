package mods

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"nexus-swipe/ai"
	"nexus-swipe/game"
	"nexus-swipe/nexus"
	"nexus-swipe/scoring"
)

// ErrBatchAbandoned is returned when a newer batch superseded the running
// one; its partial results must be discarded, not surfaced.
var ErrBatchAbandoned = errors.New("scoring batch abandoned")

// ScoredMod is a normalized mod with its immutable compatibility breakdown
// attached. Decisions reference it; nothing mutates it after assembly.
type ScoredMod struct {
	scoring.NormalizedMod
	Compatibility scoring.Breakdown
}

// Source provides raw mods and comments. nexus.Client satisfies it.
type Source interface {
	FetchMods(ctx context.Context, gameDomain string, desired int) ([]nexus.ModSummary, error)
	FetchAllComments(ctx context.Context, gameDomain string, modID int) []nexus.ModComment
}

// AIScorer produces the AI-side estimate. ai.Client satisfies it; a nil
// scorer means the deterministic heuristic is used directly.
type AIScorer interface {
	ScoreMod(ctx context.Context, mod scoring.NormalizedMod, g game.Definition, version string, logic scoring.LogicResult) ai.Result
}

// Progress reports per-mod pipeline progress to an optional observer.
type Progress func(current, total int, mod scoring.NormalizedMod)

// Service runs the fetch → normalize → dedupe → sample → score pipeline.
type Service struct {
	source  Source
	scorer  AIScorer
	log     *zap.SugaredLogger
	maxMods int
	seed    int64

	generation atomic.Int64
}

// NewService wires a pipeline service. seed 0 seeds the shuffle from the
// clock; tests pass a fixed seed for reproducible sampling.
func NewService(source Source, scorer AIScorer, log *zap.SugaredLogger, maxMods int, seed int64) *Service {
	if maxMods <= 0 {
		maxMods = 60
	}
	return &Service{
		source:  source,
		scorer:  scorer,
		log:     log,
		maxMods: maxMods,
		seed:    seed,
	}
}

// Invalidate marks all in-flight batches stale. Callers use it when the user
// abandons the current deck (game or version changed, reload requested).
func (s *Service) Invalidate() {
	s.generation.Add(1)
}

// FetchAndScore produces the scored working set for one game/version pair.
// Mods and comments fetch sequentially to keep rate-limit exposure
// predictable; each mod's scoring context is local, so no locking is needed.
func (s *Service) FetchAndScore(ctx context.Context, g game.Definition, version string, progress Progress) ([]ScoredMod, error) {
	gen := s.generation.Add(1)

	rawMods, fallback := s.fetchWithFallback(ctx, g.Domain)

	normalized := make([]scoring.NormalizedMod, 0, len(rawMods))
	now := time.Now()
	for _, raw := range rawMods {
		mod, err := scoring.NormalizeMod(raw, g.Domain, now)
		if err != nil {
			// Contract break with the mod source; skip the record but make
			// noise about it.
			s.log.Errorw("Dropping malformed mod record", zap.Error(err))
			continue
		}
		normalized = append(normalized, mod)
	}

	working := Sample(DedupeByID(normalized), s.maxMods, s.seed)
	engine := scoring.NewEngine(g, version)
	results := make([]ScoredMod, 0, len(working))

	for i, mod := range working {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Results arriving after the caller moved on belong to a dead batch.
		if s.generation.Load() != gen {
			return nil, ErrBatchAbandoned
		}
		if progress != nil {
			progress(i+1, len(working), mod)
		}

		var comments []nexus.ModComment
		if !fallback {
			comments = s.source.FetchAllComments(ctx, g.Domain, mod.ID)
		}

		logic := engine.Score(mod, comments)

		var aiResult ai.Result
		if s.scorer != nil {
			aiResult = s.scorer.ScoreMod(ctx, mod, g, version, logic)
		} else {
			aiResult = ai.Result{Score: logic.HeuristicAiScore, Rationale: "Derived from compatibility heuristics."}
		}

		notes := append(append([]string{}, logic.Notes...), "AI insight: "+aiResult.Rationale)
		results = append(results, ScoredMod{
			NormalizedMod: mod,
			Compatibility: scoring.Breakdown{
				LogicScore: logic.LogicScore,
				AiScore:    aiResult.Score,
				Signals:    logic.Signals,
				Notes:      notes,
			},
		})
	}

	return results, nil
}

// fetchWithFallback tries the live source and degrades to the offline sample
// set on error or an empty answer. Fallback data never gets comments.
func (s *Service) fetchWithFallback(ctx context.Context, gameDomain string) ([]nexus.ModSummary, bool) {
	// Over-fetch slightly so dedup still leaves a full working set.
	liveMods, err := s.source.FetchMods(ctx, gameDomain, s.maxMods+10)
	if err != nil {
		s.log.Warnw("Falling back to offline mod data", zap.Error(err))
		return nexus.SampleMods(gameDomain), true
	}
	if len(liveMods) == 0 {
		s.log.Warn("Mod source returned no mods, using offline sample")
		return nexus.SampleMods(gameDomain), true
	}
	return liveMods, false
}

// DedupeByID removes duplicate mods by id, preserving first-seen order.
func DedupeByID(mods []scoring.NormalizedMod) []scoring.NormalizedMod {
	seen := make(map[int]bool, len(mods))
	out := make([]scoring.NormalizedMod, 0, len(mods))
	for _, mod := range mods {
		if seen[mod.ID] {
			continue
		}
		seen[mod.ID] = true
		out = append(out, mod)
	}
	return out
}

// Sample shuffles a copy of mods (Fisher-Yates) and caps it at limit. A zero
// seed draws from the clock.
func Sample(mods []scoring.NormalizedMod, limit int, seed int64) []scoring.NormalizedMod {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	shuffled := make([]scoring.NormalizedMod, len(mods))
	copy(shuffled, mods)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	return shuffled
}
