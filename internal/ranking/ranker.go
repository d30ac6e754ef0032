package ranking

import (
	"sort"

	"course-compass/internal/domain/course"
	"course-compass/internal/domain/employee"
	"course-compass/internal/domain/scoring"
	"course-compass/internal/features"
	"course-compass/internal/ml"
)

// Predictor is the model surface the ranker depends on. Satisfied by
// ml.Store, so rankers keep working across model reloads.
type Predictor interface {
	PredictProba(x []float64) []float64
	Info() ml.Info
}

// Recommendation is one ranked course with its fused score and the rule
// breakdown that produced it.
type Recommendation struct {
	CourseID        string            `json:"course_id"`
	CourseTitle     string            `json:"course_title"`
	FinalScore      float64           `json:"final_score"`
	MLConfidence    float64           `json:"ml_confidence"`
	RuleScore       float64           `json:"rule_score"`
	Breakdown       scoring.Breakdown `json:"breakdown"`
	SkillCategories []string          `json:"skill_categories"`
	Rank            int               `json:"rank"`
}

// Config reports the ranker's fusion weights and the state of its model.
type Config struct {
	Alpha          float64         `json:"alpha"`
	MLWeight       float64         `json:"ml_weight"`
	RuleWeight     float64         `json:"rule_weight"`
	Ensemble       ml.Info         `json:"ensemble"`
	ScoringWeights scoring.Weights `json:"scoring_weights"`
}

const DefaultAlpha = 0.5

// Ranker fuses ensemble confidence with rule-based composite scores and
// applies a category-diversity pass over the top results.
type Ranker struct {
	alpha     float64
	encoder   *features.Encoder
	scorer    *scoring.Scorer
	predictor Predictor
}

func NewRanker(alpha float64, encoder *features.Encoder, scorer *scoring.Scorer, predictor Predictor) *Ranker {
	if alpha < 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &Ranker{
		alpha:     alpha,
		encoder:   encoder,
		scorer:    scorer,
		predictor: predictor,
	}
}

func (r *Ranker) Config() Config {
	return Config{
		Alpha:          r.alpha,
		MLWeight:       r.alpha,
		RuleWeight:     1 - r.alpha,
		Ensemble:       r.predictor.Info(),
		ScoringWeights: r.scorer.Weights(),
	}
}

// Rank scores every candidate course for the employee and returns the top
// topK, diversified across skill categories. The employee is encoded once
// and a single ensemble call covers all candidates; each course reads its
// confidence at position index mod len(proba), matching how the class space
// maps onto catalog positions.
func (r *Ranker) Rank(emp employee.Profile, courses []course.Course, topK int) []Recommendation {
	if len(courses) == 0 || topK <= 0 {
		return []Recommendation{}
	}

	x := r.encoder.Encode(emp)
	proba := r.predictor.PredictProba(x)
	feats := course.BatchExtract(courses)

	scored := make([]Recommendation, 0, len(courses))
	for i, f := range feats {
		ruleScore, breakdown := r.scorer.Composite(emp, f)

		var mlConf float64
		if len(proba) > 0 {
			mlConf = proba[i%len(proba)]
		}

		scored = append(scored, Recommendation{
			CourseID:        f.CourseID,
			CourseTitle:     f.Title,
			FinalScore:      r.alpha*mlConf + (1-r.alpha)*ruleScore,
			MLConfidence:    mlConf,
			RuleScore:       ruleScore,
			Breakdown:       breakdown,
			SkillCategories: f.SkillCategories,
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].FinalScore > scored[b].FinalScore
	})

	selected := diversify(scored, topK)
	for i := range selected {
		selected[i].Rank = i + 1
	}
	return selected
}

// diversify walks the score-ordered list preferring courses whose skill
// categories do not overlap those already picked. The top course is always
// kept, and the overlap rule relaxes once the pool of remaining candidates
// gets close to the number of open slots, so the result never comes up
// short when enough candidates exist.
func diversify(scored []Recommendation, topK int) []Recommendation {
	if topK > len(scored) {
		topK = len(scored)
	}

	selected := make([]Recommendation, 0, topK)
	used := make(map[int]bool, len(scored))
	seen := make(map[string]bool)

	for i, rec := range scored {
		if len(selected) == topK {
			break
		}
		if len(selected) == 0 {
			selected = append(selected, rec)
			used[i] = true
			markCategories(seen, rec.SkillCategories)
			continue
		}

		overlap := false
		for _, cat := range rec.SkillCategories {
			if seen[cat] {
				overlap = true
				break
			}
		}

		// Every unselected course counts, including higher-scoring ones
		// already skipped for overlap: those come back via backfill.
		remaining := len(scored) - len(selected)
		open := topK - len(selected)
		if !overlap || float64(remaining) <= 1.5*float64(open) {
			selected = append(selected, rec)
			used[i] = true
			markCategories(seen, rec.SkillCategories)
		}
	}

	// Backfill by score order if the diversity walk left slots open.
	for i, rec := range scored {
		if len(selected) == topK {
			break
		}
		if used[i] {
			continue
		}
		selected = append(selected, rec)
		used[i] = true
	}

	return selected
}

func markCategories(seen map[string]bool, categories []string) {
	for _, cat := range categories {
		seen[cat] = true
	}
}
