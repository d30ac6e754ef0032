package explain

import (
	"fmt"
	"math"
	"sort"

	"course-compass/internal/domain/employee"
	"course-compass/internal/ranking"
)

// Reason is one scored justification for a recommendation.
type Reason struct {
	Criterion        string  `json:"criterion"`
	Reason           string  `json:"reason"`
	Score            float64 `json:"score"`
	ImpactPercentage float64 `json:"impact_percentage"`
}

// CriterionDetail reports one criterion's score, its weight, and the
// contribution it makes to the composite.
type CriterionDetail struct {
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Explanation is the human-readable account of why a course was recommended.
type Explanation struct {
	TopReasons        []Reason                   `json:"top_reasons"`
	OverallFit        float64                    `json:"overall_fit"`
	FitCategory       string                     `json:"fit_category"`
	DetailedScores    map[string]CriterionDetail `json:"detailed_scores"`
	ConfidenceMetrics ConfidenceMetrics          `json:"confidence_metrics"`
}

type ConfidenceMetrics struct {
	MLConfidence float64 `json:"ml_confidence"`
	RuleScore    float64 `json:"rule_score"`
}

const (
	criterionSkillMatch = "skill_match_score"
	criterionSkillGap   = "skill_gap_score"
	criterionDeptNeeds  = "dept_needs_score"
	criterionCareerPath = "career_path_score"
)

var criterionNames = map[string]string{
	criterionSkillMatch: "Skill Match",
	criterionSkillGap:   "Skill Gap Fill",
	criterionDeptNeeds:  "Department Needs",
	criterionCareerPath: "Career Path",
}

var criterionWeights = map[string]float64{
	criterionSkillMatch: 0.30,
	criterionSkillGap:   0.30,
	criterionDeptNeeds:  0.20,
	criterionCareerPath: 0.20,
}

// Generator turns recommendation breakdowns into ranked reasons.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the explanation for a single recommendation.
func (g *Generator) Generate(rec ranking.Recommendation, emp employee.Profile) Explanation {
	breakdown := map[string]float64{
		criterionSkillMatch: rec.Breakdown.SkillMatch,
		criterionSkillGap:   rec.Breakdown.SkillGap,
		criterionDeptNeeds:  rec.Breakdown.DeptNeeds,
		criterionCareerPath: rec.Breakdown.CareerPath,
	}

	detailed := make(map[string]CriterionDetail, len(breakdown))
	for key, score := range breakdown {
		weight := criterionWeights[key]
		detailed[criterionNames[key]] = CriterionDetail{
			Score:        round3(score),
			Weight:       weight,
			Contribution: round3(score * weight),
		}
	}

	return Explanation{
		TopReasons:     g.topReasons(breakdown, emp),
		OverallFit:     round3(rec.FinalScore),
		FitCategory:    fitCategory(rec.FinalScore),
		DetailedScores: detailed,
		ConfidenceMetrics: ConfidenceMetrics{
			MLConfidence: round3(rec.MLConfidence),
			RuleScore:    round3(rec.RuleScore),
		},
	}
}

// GenerateBatch explains every recommendation in the list, in order.
func (g *Generator) GenerateBatch(recs []ranking.Recommendation, emp employee.Profile) []Explanation {
	out := make([]Explanation, len(recs))
	for i, rec := range recs {
		out[i] = g.Generate(rec, emp)
	}
	return out
}

// topReasons picks the up-to-three strongest criteria, keeping only those
// scoring at least 0.5.
func (g *Generator) topReasons(breakdown map[string]float64, emp employee.Profile) []Reason {
	type entry struct {
		key   string
		score float64
	}
	entries := make([]entry, 0, len(breakdown))
	for key, score := range breakdown {
		entries = append(entries, entry{key, score})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].score != entries[b].score {
			return entries[a].score > entries[b].score
		}
		return entries[a].key < entries[b].key
	})

	reasons := make([]Reason, 0, 3)
	for _, e := range entries {
		if len(reasons) == 3 {
			break
		}
		if e.score < 0.5 {
			continue
		}
		impact := e.score * criterionWeights[e.key]
		reasons = append(reasons, Reason{
			Criterion:        criterionNames[e.key],
			Reason:           reasonText(e.key, e.score, emp),
			Score:            round2(e.score),
			ImpactPercentage: round1(impact * 100),
		})
	}
	return reasons
}

func reasonText(criterion string, score float64, emp employee.Profile) string {
	switch criterion {
	case criterionSkillMatch:
		switch {
		case score >= 0.8:
			return "Closely matches your current skill set"
		case score >= 0.6:
			return "Fits well with your skill level"
		default:
			return "Suited to developing your existing skills"
		}
	case criterionSkillGap:
		switch {
		case score >= 0.7:
			return "Fills important gaps in your core skills"
		case score >= 0.5:
			return "Adds new skills useful for your role"
		default:
			return "Broadens your skill base"
		}
	case criterionDeptNeeds:
		switch {
		case score >= 0.8:
			return fmt.Sprintf("Ideal for the needs of the %s department", emp.Department)
		case score >= 0.6:
			return fmt.Sprintf("Supports the goals of the %s department", emp.Department)
		default:
			return "Provides cross-functional skills"
		}
	case criterionCareerPath:
		switch {
		case emp.Experience < 2:
			return "Helps you advance to the intermediate level"
		case emp.Experience < 5:
			return "Supports your progression toward the advanced level"
		case emp.Experience < 10:
			return "Strengthens your expertise toward the expert level"
		default:
			return "Deepens your specialization in your field"
		}
	}
	return "Suited to your professional profile"
}

func fitCategory(score float64) string {
	switch {
	case score >= 0.8:
		return "excellent"
	case score >= 0.7:
		return "very_good"
	case score >= 0.6:
		return "good"
	case score >= 0.5:
		return "fair"
	default:
		return "weak"
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
