package mods

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"nexus-swipe/ai"
	"nexus-swipe/game"
	"nexus-swipe/nexus"
	"nexus-swipe/scoring"
)

type fakeSource struct {
	mods     []nexus.ModSummary
	err      error
	comments map[int][]nexus.ModComment

	commentCalls int
}

func (f *fakeSource) FetchMods(_ context.Context, _ string, _ int) ([]nexus.ModSummary, error) {
	return f.mods, f.err
}

func (f *fakeSource) FetchAllComments(_ context.Context, _ string, modID int) []nexus.ModComment {
	f.commentCalls++
	return f.comments[modID]
}

type fakeScorer struct {
	result ai.Result
}

func (f *fakeScorer) ScoreMod(_ context.Context, _ scoring.NormalizedMod, _ game.Definition, _ string, _ scoring.LogicResult) ai.Result {
	return f.result
}

func nmod(id int) scoring.NormalizedMod {
	return scoring.NormalizedMod{ID: id, Name: "Mod"}
}

func skyrim(t *testing.T) game.Definition {
	t.Helper()
	def, err := game.Find("skyrimse")
	if err != nil {
		t.Fatalf("catalog lookup failed: %v", err)
	}
	return def
}

func TestDedupeByID(t *testing.T) {
	input := []scoring.NormalizedMod{nmod(3), nmod(1), nmod(3), nmod(2), nmod(1)}

	once := DedupeByID(input)
	twice := DedupeByID(once)

	wantIDs := []int{3, 1, 2}
	gotIDs := make([]int, len(once))
	for i, mod := range once {
		gotIDs[i] = mod.ID
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("DedupeByID order = %v, want first-seen order %v", gotIDs, wantIDs)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("DedupeByID must be idempotent")
	}
}

func TestSample(t *testing.T) {
	input := make([]scoring.NormalizedMod, 10)
	for i := range input {
		input[i] = nmod(i + 1)
	}

	t.Run("caps the working set", func(t *testing.T) {
		sampled := Sample(input, 4, 7)
		if len(sampled) != 4 {
			t.Errorf("Sample returned %d mods, want 4", len(sampled))
		}
	})

	t.Run("only returns input members", func(t *testing.T) {
		sampled := Sample(input, 10, 7)
		seen := map[int]bool{}
		for _, mod := range input {
			seen[mod.ID] = true
		}
		for _, mod := range sampled {
			if !seen[mod.ID] {
				t.Errorf("Sampled mod %d not in input", mod.ID)
			}
		}
	})

	t.Run("fixed seed is reproducible", func(t *testing.T) {
		a := Sample(input, 10, 42)
		b := Sample(input, 10, 42)
		if !reflect.DeepEqual(a, b) {
			t.Error("Same seed must produce the same order")
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := make([]scoring.NormalizedMod, len(input))
		copy(before, input)
		Sample(input, 10, 42)
		if !reflect.DeepEqual(input, before) {
			t.Error("Sample must shuffle a copy")
		}
	})
}

func TestFetchAndScore(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("pipeline assembles breakdowns", func(t *testing.T) {
		uploaded := int64(1700000000)
		source := &fakeSource{
			mods: []nexus.ModSummary{
				{ModID: 1, Name: "First", Summary: "Works on 1.6.1170", UploadedTimestamp: &uploaded},
				{ModID: 1, Name: "Duplicate", Summary: "dup", UploadedTimestamp: &uploaded},
				{ModID: 2, Name: "Second", Summary: "quiet", UploadedTimestamp: &uploaded},
			},
			comments: map[int][]nexus.ModComment{
				1: {{Comment: "still works on 1.6.1170"}},
			},
		}
		scorer := &fakeScorer{result: ai.Result{Score: 88, Rationale: "Recent activity"}}
		service := NewService(source, scorer, log, 60, 42)

		results, err := service.FetchAndScore(context.Background(), skyrim(t), "1.6.1170", nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("Got %d results, want 2 after dedup", len(results))
		}
		for _, mod := range results {
			if mod.Compatibility.AiScore != 88 {
				t.Errorf("AiScore = %d, want 88", mod.Compatibility.AiScore)
			}
			last := mod.Compatibility.Notes[len(mod.Compatibility.Notes)-1]
			if last != "AI insight: Recent activity" {
				t.Errorf("Last note = %q, want AI insight suffix", last)
			}
			if mod.Compatibility.LogicScore < 0 || mod.Compatibility.LogicScore > 100 {
				t.Errorf("LogicScore %d out of range", mod.Compatibility.LogicScore)
			}
		}
	})

	t.Run("nil scorer uses heuristic", func(t *testing.T) {
		uploaded := int64(1700000000)
		source := &fakeSource{
			mods: []nexus.ModSummary{{ModID: 5, Name: "Quiet", Summary: "nothing notable", UploadedTimestamp: &uploaded}},
		}
		service := NewService(source, nil, log, 60, 42)

		results, err := service.FetchAndScore(context.Background(), skyrim(t), "1.6.1170", nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Got %d results, want 1", len(results))
		}
		// Base 50, no-signal note -5.
		if results[0].Compatibility.AiScore != 45 {
			t.Errorf("AiScore = %d, want heuristic 45", results[0].Compatibility.AiScore)
		}
	})

	t.Run("source failure degrades to offline sample without comments", func(t *testing.T) {
		source := &fakeSource{err: errors.New("api down")}
		service := NewService(source, nil, log, 60, 42)

		results, err := service.FetchAndScore(context.Background(), skyrim(t), "1.6.1170", nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(results) == 0 {
			t.Fatal("Expected offline sample results")
		}
		if source.commentCalls != 0 {
			t.Errorf("Fallback mode fetched comments %d times, want 0", source.commentCalls)
		}
	})

	t.Run("malformed records are skipped", func(t *testing.T) {
		uploaded := int64(1700000000)
		source := &fakeSource{
			mods: []nexus.ModSummary{
				{ModID: 0, Name: "No id"},
				{ModID: 9, Name: "Valid", Summary: "ok", UploadedTimestamp: &uploaded},
			},
		}
		service := NewService(source, nil, log, 60, 42)

		results, err := service.FetchAndScore(context.Background(), skyrim(t), "1.6.1170", nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].ID != 9 {
			t.Errorf("Expected only the valid record, got %+v", results)
		}
	})

	t.Run("invalidated batch is abandoned", func(t *testing.T) {
		uploaded := int64(1700000000)
		source := &fakeSource{
			mods: []nexus.ModSummary{
				{ModID: 1, Name: "A", UploadedTimestamp: &uploaded},
				{ModID: 2, Name: "B", UploadedTimestamp: &uploaded},
			},
		}
		service := NewService(source, nil, log, 60, 42)

		var once bool
		progress := func(current, total int, _ scoring.NormalizedMod) {
			if !once {
				once = true
				service.Invalidate()
			}
		}

		_, err := service.FetchAndScore(context.Background(), skyrim(t), "1.6.1170", progress)
		if !errors.Is(err, ErrBatchAbandoned) {
			t.Errorf("Expected ErrBatchAbandoned, got %v", err)
		}
	})

	t.Run("cancelled context stops the pipeline", func(t *testing.T) {
		uploaded := int64(1700000000)
		source := &fakeSource{
			mods: []nexus.ModSummary{{ModID: 1, Name: "A", UploadedTimestamp: &uploaded}},
		}
		service := NewService(source, nil, log, 60, 42)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := service.FetchAndScore(ctx, skyrim(t), "1.6.1170", nil); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}
