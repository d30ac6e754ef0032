package features

import (
	"strings"
	"time"

	"course-compass/internal/domain/employee"
)

// Fixed vocabularies. Attributes outside these lists carry no signal; the
// encoder silently ignores them rather than erroring.
var (
	knownSkills = []string{
		"python", "javascript", "java", "sql", "react", "node.js",
		"machine_learning", "data_analysis", "project_management",
		"agile", "devops", "cloud_computing", "cybersecurity",
		"network_security", "database_design", "web_development",
	}

	knownDepartments = []string{
		"information_technology", "human_resources", "finance",
		"marketing", "operations", "sales", "engineering",
	}

	knownLocations = []string{"jeddah", "riyadh", "dammam", "unknown"}

	leadershipSkills = []string{"project_management", "agile", "leadership", "management"}
)

// Sentinel values for absent optional data. The classifier needs fully dense
// numeric input, so absence is encoded as fixed constants, never as NaN.
const (
	MaxGapScore            = 1.0
	MaxTrainingRecencyDays = 999
)

// Encoder turns an employee profile into a fixed-order numeric feature vector.
// The feature order is a contract shared with the trained classifier: a model
// persisted against one ordering is invalid for any other.
type Encoder struct {
	names []string
	now   func() time.Time
}

func NewEncoder() *Encoder {
	return NewEncoderWithNow(time.Now)
}

// NewEncoderWithNow fixes the clock used for training-recency features, so
// synthetic datasets and tests are reproducible.
func NewEncoderWithNow(now func() time.Time) *Encoder {
	e := &Encoder{now: now}
	e.names = buildFeatureNames()
	return e
}

// FeatureNames returns the schema in encoding order. Callers must not mutate it.
func (e *Encoder) FeatureNames() []string {
	return e.names
}

func (e *Encoder) NumFeatures() int {
	return len(e.names)
}

// Encode is deterministic and pure: identical profiles produce identical vectors.
func (e *Encoder) Encode(p employee.Profile) []float64 {
	out := make([]float64, 0, len(e.names))

	levels := p.SkillLevels()
	for _, skill := range knownSkills {
		out = append(out, float64(levels[skill]))
	}

	out = append(out, p.MeanSkillLevel())
	out = append(out, float64(len(p.Skills)))

	out = append(out, p.Experience)
	out = append(out, float64(experienceLevel(p.Experience)))

	dept := employee.NormalizeDepartment(p.Department)
	for _, known := range knownDepartments {
		out = append(out, oneHotSubstring(dept, known))
	}

	loc := employee.NormalizeDepartment(p.Location)
	for _, known := range knownLocations {
		out = append(out, oneHotSubstring(loc, known))
	}

	out = append(out, e.skillMetrics(p)...)
	out = append(out, e.careerMetrics(p)...)
	out = append(out, e.trainingMetrics(p)...)

	return out
}

// skillMetrics: weak_skills_count, strong_skills_count, skill_gap_score,
// skill_progression_potential.
func (e *Encoder) skillMetrics(p employee.Profile) []float64 {
	if len(p.Skills) == 0 {
		return []float64{0, 0, MaxGapScore, 0}
	}

	weak := 0
	strong := 0
	for _, s := range p.Skills {
		if s.Level <= 2 {
			weak++
		}
		if s.Level >= 4 {
			strong++
		}
	}

	gap := 0.0
	if len(p.DeptCriticalSkills) > 0 {
		have := p.SkillNames()
		missing := 0
		critical := make(map[string]struct{}, len(p.DeptCriticalSkills))
		for _, c := range p.DeptCriticalSkills {
			critical[employee.NormalizeSkillName(c)] = struct{}{}
		}
		for c := range critical {
			if _, ok := have[c]; !ok {
				missing++
			}
		}
		gap = float64(missing) / float64(len(critical))
	}

	progression := 0.0
	for _, s := range p.Skills {
		if s.Level <= 3 {
			progression += float64(5-s.Level) / 5.0
		} else {
			progression += float64(5-s.Level) / 10.0
		}
	}
	progression /= float64(len(p.Skills))

	return []float64{float64(weak), float64(strong), gap, progression}
}

// careerMetrics: career_level, next_level_readiness, specialization_score,
// leadership_skills.
func (e *Encoder) careerMetrics(p employee.Profile) []float64 {
	level := float64(experienceLevel(p.Experience))

	expReadiness := p.Experience / 10.0
	if expReadiness > 1 {
		expReadiness = 1
	}
	readiness := (expReadiness + p.MeanSkillLevel()/5.0) / 2.0

	specialization := 0.0
	if len(p.Skills) > 0 {
		high := 0
		for _, s := range p.Skills {
			if s.Level >= 4 {
				high++
			}
		}
		specialization = float64(high) / float64(len(p.Skills))
	}

	leadership := 0.0
	names := p.SkillNames()
	for _, keyword := range leadershipSkills {
		if _, ok := names[keyword]; ok {
			leadership = 1
			break
		}
	}

	return []float64{level, readiness, specialization, leadership}
}

// trainingMetrics: training_frequency, completion_rate, avg_assessment_score,
// days_since_last_training.
func (e *Encoder) trainingMetrics(p employee.Profile) []float64 {
	if len(p.TrainingHistory) == 0 {
		return []float64{0, 0, 0, MaxTrainingRecencyDays}
	}

	// Every record in the history is a completed training.
	completionRate := 1.0

	scoreSum := 0.0
	scored := 0
	var last *time.Time
	for i := range p.TrainingHistory {
		rec := p.TrainingHistory[i]
		if rec.AssessmentScore > 0 {
			scoreSum += rec.AssessmentScore
			scored++
		}
		if rec.CompletionDate != nil {
			if last == nil || rec.CompletionDate.After(*last) {
				last = rec.CompletionDate
			}
		}
	}

	avgScore := 0.0
	if scored > 0 {
		avgScore = scoreSum / float64(scored) / 100.0
	}

	recency := float64(MaxTrainingRecencyDays)
	if last != nil {
		days := int(e.now().Sub(*last).Hours() / 24)
		if days < MaxTrainingRecencyDays {
			recency = float64(days)
		}
	}

	return []float64{float64(len(p.TrainingHistory)), completionRate, avgScore, recency}
}

func experienceLevel(years float64) int {
	switch {
	case years < 2:
		return 1
	case years < 5:
		return 2
	case years < 10:
		return 3
	default:
		return 4
	}
}

func oneHotSubstring(value, vocab string) float64 {
	if value == "" {
		return 0
	}
	if strings.Contains(value, vocab) {
		return 1
	}
	return 0
}

func buildFeatureNames() []string {
	names := make([]string, 0, 43)
	for _, s := range knownSkills {
		names = append(names, "skill_"+s)
	}
	names = append(names, "avg_skill_level", "num_skills")
	names = append(names, "experience_years", "experience_level")
	for _, d := range knownDepartments {
		names = append(names, "dept_"+d)
	}
	for _, l := range knownLocations {
		names = append(names, "location_"+l)
	}
	names = append(names,
		"weak_skills_count",
		"strong_skills_count",
		"skill_gap_score",
		"skill_progression_potential",
	)
	names = append(names,
		"career_level",
		"next_level_readiness",
		"specialization_score",
		"leadership_skills",
	)
	names = append(names,
		"training_frequency",
		"completion_rate",
		"avg_assessment_score",
		"days_since_last_training",
	)
	return names
}
