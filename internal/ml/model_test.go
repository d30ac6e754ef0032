package ml

import (
	"errors"
	"math"
	"math/rand"
	"path/filepath"
	"testing"
)

func TestArtifact_SaveRequiresTrainedModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	var nilArtifact *Artifact
	if err := nilArtifact.Save(path); !errors.Is(err, ErrNoModel) {
		t.Fatalf("expected ErrNoModel for nil artifact, got %v", err)
	}
	empty := &Artifact{Kind: KindRandomForest}
	if err := empty.Save(path); !errors.Is(err, ErrNoModel) {
		t.Fatalf("expected ErrNoModel for empty artifact, got %v", err)
	}
}

func TestArtifact_RoundTrip(t *testing.T) {
	X, y := separableDataset(40)
	rng := rand.New(rand.NewSource(42))
	forest := FitForest(X, y, 2, ForestParams{
		NumTrees:        10,
		MaxDepth:        4,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Seed:            42,
	}, rng)

	original := &Artifact{
		Kind:         KindRandomForest,
		FeatureNames: []string{"a", "b", "c"},
		Forest:       forest,
	}

	path := filepath.Join(t.TempDir(), "models", "model.json")
	if err := original.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Kind != KindRandomForest || len(loaded.FeatureNames) != 3 {
		t.Fatalf("loaded artifact = %+v", loaded)
	}

	// Predictions must survive the round trip exactly.
	probe := X[0]
	want := original.Forest.PredictProba(probe)
	got := loaded.Classifier().PredictProba(probe)
	if len(got) != len(want) {
		t.Fatalf("class counts differ: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("class %d: %v vs %v", i, got[i], want[i])
		}
	}
}

func TestLoadArtifact_MissingFile(t *testing.T) {
	if _, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestForest_PredictProbaSumsToOne(t *testing.T) {
	X, y := separableDataset(40)
	rng := rand.New(rand.NewSource(42))
	forest := FitForest(X, y, 2, DefaultForestParams(), rng)

	probs := forest.PredictProba([]float64{0.5, 0.5, 0.5})
	sum := 0.0
	for _, p := range probs {
		if p < 0 {
			t.Fatalf("negative probability %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %v", sum)
	}
}
