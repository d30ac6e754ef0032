package ranking

import (
	"math"
	"testing"

	"course-compass/internal/domain/course"
	"course-compass/internal/domain/employee"
	"course-compass/internal/domain/scoring"
	"course-compass/internal/features"
	"course-compass/internal/ml"
)

// stubPredictor returns a fixed probability vector for every input.
type stubPredictor struct {
	probs []float64
}

func (s *stubPredictor) PredictProba(_ []float64) []float64 { return s.probs }

func (s *stubPredictor) Info() ml.Info {
	return ml.Info{PrimaryLoaded: true, NumClasses: len(s.probs)}
}

func testEmployee() employee.Profile {
	return employee.Profile{
		Skills: []employee.Skill{
			{Name: "Python", Level: 4},
			{Name: "SQL", Level: 3},
		},
		Experience: 5,
		Department: "IT",
		Location:   "Riyadh",
	}
}

func testCourses() []course.Course {
	return []course.Course{
		{ID: "c1", Title: "Advanced Python", RequiredSkills: []string{"python"}, TargetLevel: course.LevelAdvanced, Department: "IT", Duration: 40},
		{ID: "c2", Title: "SQL Mastery", RequiredSkills: []string{"sql"}, TargetLevel: course.LevelIntermediate, Department: "IT", Duration: 30},
		{ID: "c3", Title: "Agile Basics", RequiredSkills: []string{"agile"}, TargetLevel: course.LevelBeginner, Department: "HR", Duration: 20},
		{ID: "c4", Title: "DevOps Intro", RequiredSkills: []string{"devops"}, TargetLevel: course.LevelBeginner, Department: "IT", Duration: 30},
	}
}

func newTestRanker(alpha float64, probs []float64) *Ranker {
	return NewRanker(alpha, features.NewEncoder(), scoring.NewScorer(), &stubPredictor{probs: probs})
}

func TestRank_EmptyCourses(t *testing.T) {
	r := newTestRanker(0.5, []float64{1})
	if got := r.Rank(testEmployee(), nil, 3); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if got := r.Rank(testEmployee(), testCourses(), 0); len(got) != 0 {
		t.Fatalf("expected empty result for topK=0, got %d", len(got))
	}
}

func TestRank_TopKAndRanks(t *testing.T) {
	r := newTestRanker(0.5, []float64{0.4, 0.3, 0.2, 0.1})

	recs := r.Rank(testEmployee(), testCourses(), 3)
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	seen := make(map[string]bool)
	for i, rec := range recs {
		if rec.Rank != i+1 {
			t.Fatalf("rank at position %d = %d", i, rec.Rank)
		}
		if seen[rec.CourseID] {
			t.Fatalf("duplicate course %s", rec.CourseID)
		}
		seen[rec.CourseID] = true
	}
}

func TestRank_TopKClampedToCandidates(t *testing.T) {
	r := newTestRanker(0.5, []float64{0.5, 0.5})

	recs := r.Rank(testEmployee(), testCourses()[:2], 10)
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
}

func TestRank_FusionMath(t *testing.T) {
	// Two probability slots over four courses: confidence wraps around.
	probs := []float64{0.9, 0.1}
	r := newTestRanker(0.5, probs)

	recs := r.Rank(testEmployee(), testCourses(), 4)
	byID := make(map[string]Recommendation, len(recs))
	for _, rec := range recs {
		byID[rec.CourseID] = rec
	}

	for i, c := range testCourses() {
		rec, ok := byID[c.ID]
		if !ok {
			t.Fatalf("course %s missing from results", c.ID)
		}
		wantConf := probs[i%len(probs)]
		if rec.MLConfidence != wantConf {
			t.Fatalf("course %s confidence = %v, want %v", c.ID, rec.MLConfidence, wantConf)
		}
		want := 0.5*wantConf + 0.5*rec.RuleScore
		if math.Abs(rec.FinalScore-want) > 1e-9 {
			t.Fatalf("course %s final = %v, want %v", c.ID, rec.FinalScore, want)
		}
	}
}

func TestRank_TopCourseIsHighestScore(t *testing.T) {
	r := newTestRanker(0.5, []float64{0.25, 0.25, 0.25, 0.25})

	recs := r.Rank(testEmployee(), testCourses(), 4)
	for _, rec := range recs[1:] {
		if rec.FinalScore > recs[0].FinalScore {
			t.Fatalf("rank 1 score %v below %s at %v", recs[0].FinalScore, rec.CourseID, rec.FinalScore)
		}
	}
}

func TestNewRanker_ClampsAlpha(t *testing.T) {
	r := NewRanker(1.5, features.NewEncoder(), scoring.NewScorer(), &stubPredictor{probs: []float64{1}})
	if cfg := r.Config(); cfg.Alpha != DefaultAlpha {
		t.Fatalf("alpha = %v, want default %v", cfg.Alpha, DefaultAlpha)
	}
	r = NewRanker(-0.1, features.NewEncoder(), scoring.NewScorer(), &stubPredictor{probs: []float64{1}})
	if cfg := r.Config(); cfg.Alpha != DefaultAlpha {
		t.Fatalf("alpha = %v, want default %v", cfg.Alpha, DefaultAlpha)
	}
}

func TestConfig_WeightsSumToOne(t *testing.T) {
	r := newTestRanker(0.7, []float64{1})
	cfg := r.Config()
	if cfg.MLWeight != 0.7 {
		t.Fatalf("ml weight = %v", cfg.MLWeight)
	}
	if math.Abs(cfg.MLWeight+cfg.RuleWeight-1) > 1e-9 {
		t.Fatalf("weights sum to %v", cfg.MLWeight+cfg.RuleWeight)
	}
	if !cfg.Ensemble.PrimaryLoaded {
		t.Fatal("expected predictor info to flow through")
	}
}

func TestDiversify_PrefersDistinctCategories(t *testing.T) {
	scored := []Recommendation{
		{CourseID: "a", FinalScore: 0.9, SkillCategories: []string{"programming"}},
		{CourseID: "b", FinalScore: 0.8, SkillCategories: []string{"programming"}},
		{CourseID: "c", FinalScore: 0.7, SkillCategories: []string{"data"}},
		{CourseID: "d", FinalScore: 0.6, SkillCategories: []string{"management"}},
		{CourseID: "e", FinalScore: 0.5, SkillCategories: []string{"data"}},
	}

	got := diversify(scored, 3)
	if len(got) != 3 {
		t.Fatalf("got %d picks, want 3", len(got))
	}
	if got[0].CourseID != "a" {
		t.Fatalf("top pick = %s, want a", got[0].CourseID)
	}
	// b shares a's category and plenty of candidates remain, so the walk
	// skips it in favor of c and d.
	if got[1].CourseID != "c" || got[2].CourseID != "d" {
		t.Fatalf("picks = [%s %s %s]", got[0].CourseID, got[1].CourseID, got[2].CourseID)
	}
}

func TestDiversify_BackfillKeepsScoreOrder(t *testing.T) {
	// With every category taken, the walk skips both b and c; backfill must
	// admit the higher-scoring skip, not whichever the walk reaches last.
	scored := []Recommendation{
		{CourseID: "a", FinalScore: 0.9, SkillCategories: []string{"programming"}},
		{CourseID: "b", FinalScore: 0.8, SkillCategories: []string{"programming"}},
		{CourseID: "c", FinalScore: 0.7, SkillCategories: []string{"programming"}},
	}

	got := diversify(scored, 2)
	if len(got) != 2 {
		t.Fatalf("got %d picks, want 2", len(got))
	}
	if got[0].CourseID != "a" || got[1].CourseID != "b" {
		t.Fatalf("picks = [%s %s], want [a b]", got[0].CourseID, got[1].CourseID)
	}
}

func TestDiversify_BackfillsWhenCategoriesRepeat(t *testing.T) {
	scored := []Recommendation{
		{CourseID: "a", FinalScore: 0.9, SkillCategories: []string{"programming"}},
		{CourseID: "b", FinalScore: 0.8, SkillCategories: []string{"programming"}},
		{CourseID: "c", FinalScore: 0.7, SkillCategories: []string{"programming"}},
	}

	got := diversify(scored, 3)
	if len(got) != 3 {
		t.Fatalf("got %d picks, want 3", len(got))
	}
}
