package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"course-compass/internal/ml"
)

func TestMetrics_NotFound(t *testing.T) {
	u := NewMetricsUsecase(filepath.Join(t.TempDir(), "missing_metrics.json"))

	_, err := u.Metrics(context.Background())
	if !errors.Is(err, ErrMetricsNotFound) {
		t.Fatalf("expected ErrMetricsNotFound, got %v", err)
	}
}

func TestMetrics_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model_metrics.json")
	saved := ml.Metrics{
		Accuracy:     0.91,
		F1:           0.88,
		CVScores:     []float64{0.87, 0.89},
		NumSamples:   1200,
		NumFeatures:  43,
		ModelVersion: "20250601_120000",
		MeetsTarget:  true,
	}
	if err := ml.SaveMetrics(path, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	u := NewMetricsUsecase(path)
	got, err := u.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.F1 != saved.F1 || got.NumSamples != saved.NumSamples || !got.MeetsTarget {
		t.Fatalf("loaded metrics = %+v", got)
	}
	if len(got.CVScores) != 2 {
		t.Fatalf("cv scores = %v", got.CVScores)
	}
}
