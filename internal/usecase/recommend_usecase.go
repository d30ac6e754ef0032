package usecase

import (
	"context"
	"math"
	"strconv"

	"course-compass/internal/domain/employee"
	"course-compass/internal/features"
	"course-compass/internal/ml"
)

// CourseRecommendation is one classifier-only prediction. Course IDs are
// class indices rendered as strings; callers map them onto their catalog.
type CourseRecommendation struct {
	CourseID        string  `json:"course_id"`
	ConfidenceScore float64 `json:"confidence_score"`
	Rank            int     `json:"rank"`
}

type RecommendResult struct {
	Recommendations []CourseRecommendation
	Features        []float64
}

type RecommendUsecase interface {
	Recommend(ctx context.Context, emp employee.Profile) (RecommendResult, error)
}

type Recommend struct {
	encoder   *features.Encoder
	store     *ml.Store
	topK      int
	threshold float64
}

func NewRecommendUsecase(encoder *features.Encoder, store *ml.Store, topK int, threshold float64) *Recommend {
	if topK <= 0 {
		topK = 3
	}
	return &Recommend{encoder: encoder, store: store, topK: topK, threshold: threshold}
}

func (u *Recommend) Recommend(_ context.Context, emp employee.Profile) (RecommendResult, error) {
	if len(emp.Skills) == 0 && emp.Experience == 0 && emp.Department == "" {
		return RecommendResult{}, ErrInvalidInput
	}

	x := u.encoder.Encode(emp)

	if !u.store.Loaded() {
		return RecommendResult{
			Recommendations: mockRecommendations(u.topK),
			Features:        x,
		}, nil
	}

	preds := u.store.Predict(x, u.topK, u.threshold)
	recs := make([]CourseRecommendation, 0, len(preds))
	for _, p := range preds {
		// Class indices stand in for course IDs here; the catalog mapping
		// happens on the hybrid path where real courses are supplied.
		recs = append(recs, CourseRecommendation{
			CourseID:        strconv.Itoa(p.CourseIndex),
			ConfidenceScore: round4(p.Confidence),
			Rank:            p.Rank,
		})
	}

	return RecommendResult{Recommendations: recs, Features: x}, nil
}

// mockRecommendations stands in when no trained model is on disk, so the
// endpoint stays usable during first deploys.
func mockRecommendations(topK int) []CourseRecommendation {
	mock := []CourseRecommendation{
		{CourseID: "COURSE_001", ConfidenceScore: 0.85, Rank: 1},
		{CourseID: "COURSE_002", ConfidenceScore: 0.78, Rank: 2},
		{CourseID: "COURSE_003", ConfidenceScore: 0.72, Rank: 3},
	}
	if topK < len(mock) {
		mock = mock[:topK]
	}
	return mock
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
