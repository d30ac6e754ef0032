package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"course-compass/internal/domain/employee"
	"course-compass/internal/features"
	"course-compass/internal/ml"
)

func unloadedStore(t *testing.T) *ml.Store {
	t.Helper()
	dir := t.TempDir()
	return ml.NewStore(ml.StoreConfig{
		PrimaryPath:       filepath.Join(dir, "missing_model.json"),
		DefaultClassCount: 10,
	}, nil)
}

func validEmployee() employee.Profile {
	return employee.Profile{
		Skills:     []employee.Skill{{Name: "python", Level: 3}},
		Experience: 4,
		Department: "IT",
	}
}

func TestRecommend_EmptyProfile(t *testing.T) {
	u := NewRecommendUsecase(features.NewEncoder(), unloadedStore(t), 3, 0.7)

	_, err := u.Recommend(context.Background(), employee.Profile{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecommend_MockFallbackWhenUnloaded(t *testing.T) {
	u := NewRecommendUsecase(features.NewEncoder(), unloadedStore(t), 3, 0.7)

	res, err := u.Recommend(context.Background(), validEmployee())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(res.Recommendations))
	}
	want := []struct {
		id    string
		score float64
	}{
		{"COURSE_001", 0.85},
		{"COURSE_002", 0.78},
		{"COURSE_003", 0.72},
	}
	for i, w := range want {
		rec := res.Recommendations[i]
		if rec.CourseID != w.id || rec.ConfidenceScore != w.score || rec.Rank != i+1 {
			t.Fatalf("mock rec %d = %+v", i, rec)
		}
	}
	if len(res.Features) != features.NewEncoder().NumFeatures() {
		t.Fatalf("feature vector length = %d", len(res.Features))
	}
}

func TestRecommend_MockTruncatedToTopK(t *testing.T) {
	u := NewRecommendUsecase(features.NewEncoder(), unloadedStore(t), 2, 0.7)

	res, err := u.Recommend(context.Background(), validEmployee())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(res.Recommendations))
	}
}

func TestRecommend_LoadedStoreUsesClassIndices(t *testing.T) {
	enc := features.NewEncoder()
	store := unloadedStore(t)

	// A naive bayes trained on trivially separable data is enough to light
	// up the real prediction path.
	emp := validEmployee()
	x := enc.Encode(emp)
	other := make([]float64, len(x))
	for i := range other {
		other[i] = x[i] + 5
	}
	nb := ml.FitNaiveBayes([][]float64{x, x, other, other}, []int{0, 0, 1, 1}, 2)
	store.Replace(ml.NewEnsemble(nb, nil, ml.DefaultEnsembleWeights(), 2), nil)

	u := NewRecommendUsecase(enc, store, 2, 0)
	res, err := u.Recommend(context.Background(), emp)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Recommendations) == 0 {
		t.Fatal("expected predictions from loaded store")
	}
	if got := res.Recommendations[0].CourseID; got != "0" && got != "1" {
		t.Fatalf("course id %q is not a class index", got)
	}
}
