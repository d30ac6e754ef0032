package ml

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func smallTrainConfig() TrainConfig {
	return TrainConfig{
		Forest: ForestParams{
			NumTrees:        25,
			MaxDepth:        6,
			MinSamplesSplit: 2,
			MinSamplesLeaf:  1,
			Seed:            42,
		},
		TestFraction: 0.2,
		CVFolds:      3,
	}
}

// separableDataset builds two well-separated clusters so the forest should
// classify the held-out split almost perfectly.
func separableDataset(n int) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(7))
	X := make([][]float64, 0, n)
	y := make([]int, 0, n)
	for i := 0; i < n; i++ {
		label := i % 2
		base := float64(label) * 10
		X = append(X, []float64{
			base + rng.Float64(),
			base + rng.Float64(),
			rng.Float64(),
		})
		y = append(y, label)
	}
	return X, y
}

func TestTrain_EmptyDataset(t *testing.T) {
	tr := NewTrainer(smallTrainConfig(), nil)
	if _, _, err := tr.Train(nil, nil, nil); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if _, err := tr.TrainSecondary(nil, nil, nil); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset from secondary, got %v", err)
	}
}

func TestTrain_SeparableDataset(t *testing.T) {
	X, y := separableDataset(60)
	tr := NewTrainer(smallTrainConfig(), nil)

	artifact, metrics, err := tr.Train(X, y, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if artifact.Kind != KindRandomForest || artifact.Forest == nil {
		t.Fatalf("unexpected artifact: %+v", artifact)
	}
	if metrics.Accuracy < 0.9 {
		t.Fatalf("accuracy on separable data = %v, want >= 0.9", metrics.Accuracy)
	}
	if metrics.F1 < 0.9 {
		t.Fatalf("f1 on separable data = %v, want >= 0.9", metrics.F1)
	}
	if !metrics.StratifiedSplit {
		t.Fatal("expected stratified split with balanced classes")
	}
	if len(metrics.CVScores) != 3 {
		t.Fatalf("expected 3 cv scores, got %d", len(metrics.CVScores))
	}
	if metrics.NumSamples != 60 || metrics.NumFeatures != 3 {
		t.Fatalf("metadata wrong: samples=%d features=%d", metrics.NumSamples, metrics.NumFeatures)
	}
	if len(metrics.ConfusionMatrix) != 2 {
		t.Fatalf("confusion matrix has %d rows, want 2", len(metrics.ConfusionMatrix))
	}
}

func TestTrain_SingletonClassFallsBackToPlainSplit(t *testing.T) {
	X, y := separableDataset(40)
	// One lone sample of a third class.
	X = append(X, []float64{100, 100, 100})
	y = append(y, 2)

	tr := NewTrainer(smallTrainConfig(), nil)
	_, metrics, err := tr.Train(X, y, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if metrics.StratifiedSplit {
		t.Fatal("expected plain split with a singleton class")
	}
}

func TestTrain_DefaultFeatureNames(t *testing.T) {
	X, y := separableDataset(30)
	tr := NewTrainer(smallTrainConfig(), nil)

	artifact, metrics, err := tr.Train(X, y, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(artifact.FeatureNames) != 3 {
		t.Fatalf("expected 3 generated feature names, got %d", len(artifact.FeatureNames))
	}
	if artifact.FeatureNames[0] != "feature_0" {
		t.Fatalf("unexpected generated name %q", artifact.FeatureNames[0])
	}
	if len(metrics.FeatureImportances) == 0 {
		t.Fatal("expected feature importances")
	}
}

func TestTrainSecondary_ProbabilitiesSumToOne(t *testing.T) {
	X, y := separableDataset(40)
	tr := NewTrainer(smallTrainConfig(), nil)

	artifact, err := tr.TrainSecondary(X, y, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if artifact.Kind != KindNaiveBayes || artifact.Bayes == nil {
		t.Fatalf("unexpected artifact: %+v", artifact)
	}

	probs := artifact.Bayes.PredictProba([]float64{10.5, 10.5, 0.5})
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %v", sum)
	}
	if probs[1] <= probs[0] {
		t.Fatalf("expected class 1 to dominate near its cluster: %v", probs)
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{1, 1, 1})
	if mean != 1 || std != 0 {
		t.Fatalf("meanStd constant = (%v, %v)", mean, std)
	}
	mean, _ = meanStd([]float64{0, 1})
	if math.Abs(mean-0.5) > 1e-9 {
		t.Fatalf("mean = %v, want 0.5", mean)
	}
}
