package scoring

import (
	"course-compass/internal/domain/course"
	"course-compass/internal/domain/employee"
)

type Weights struct {
	SkillMatch float64 `json:"skill_match"`
	SkillGap   float64 `json:"skill_gap"`
	DeptNeeds  float64 `json:"dept_needs"`
	CareerPath float64 `json:"career_path"`
}

type Breakdown struct {
	SkillMatch float64 `json:"skill_match_score"`
	SkillGap   float64 `json:"skill_gap_score"`
	DeptNeeds  float64 `json:"dept_needs_score"`
	CareerPath float64 `json:"career_path_score"`
}

// Related departments. Engineering, operations, and IT relate both ways;
// finance and human_resources point at operations one-directionally.
var relatedDepartments = map[string][]string{
	"information_technology": {"engineering", "operations"},
	"engineering":            {"information_technology", "operations"},
	"operations":             {"engineering", "information_technology"},
	"finance":                {"operations"},
	"human_resources":        {"operations"},
}

// Canonical experience ranges per target level, inclusive on both ends.
var levelExperienceRange = map[string][2]float64{
	course.LevelBeginner:     {0, 2},
	course.LevelIntermediate: {2, 5},
	course.LevelAdvanced:     {5, 10},
	course.LevelExpert:       {10, 50},
}

var levelOrdinal = map[string]int{
	course.LevelBeginner:     1,
	course.LevelIntermediate: 2,
	course.LevelAdvanced:     3,
	course.LevelExpert:       4,
}

// Scorer evaluates a course for an employee across four weighted criteria.
type Scorer struct {
	weights Weights
}

func NewScorer() *Scorer {
	return &Scorer{
		weights: Weights{
			SkillMatch: 0.30,
			SkillGap:   0.30,
			DeptNeeds:  0.20,
			CareerPath: 0.20,
		},
	}
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// Composite returns the weighted composite score and the per-criterion breakdown.
// Every score is in [0,1].
func (s *Scorer) Composite(emp employee.Profile, c course.Features) (float64, Breakdown) {
	breakdown := Breakdown{
		SkillMatch: s.skillMatch(emp, c),
		SkillGap:   s.skillGapFill(emp, c),
		DeptNeeds:  s.deptAlignment(emp, c),
		CareerPath: s.careerProgression(emp, c),
	}

	composite := breakdown.SkillMatch*s.weights.SkillMatch +
		breakdown.SkillGap*s.weights.SkillGap +
		breakdown.DeptNeeds*s.weights.DeptNeeds +
		breakdown.CareerPath*s.weights.CareerPath

	return clamp01(composite), breakdown
}

// skillMatch: 0.5*coverage + 0.3*proficiency of matched skills + 0.2*experience fit.
func (s *Scorer) skillMatch(emp employee.Profile, c course.Features) float64 {
	if len(c.RequiredSkills) == 0 {
		return 0.5
	}

	levels := emp.SkillLevels()

	matched := 0
	totalLevel := 0
	for _, req := range c.RequiredSkills {
		if lvl, ok := levels[req]; ok {
			matched++
			totalLevel += lvl
		}
	}

	coverage := float64(matched) / float64(len(c.RequiredSkills))

	proficiency := 0.0
	if matched > 0 {
		proficiency = float64(totalLevel) / float64(matched) / 5.0
	}

	expFit := experienceLevelMatch(emp.Experience, c.TargetLevel)

	return clamp01(coverage*0.5 + proficiency*0.3 + expFit*0.2)
}

// skillGapFill rewards courses that teach missing critical skills, wholly new
// skills, or skills the employee holds at level <= 2.
func (s *Scorer) skillGapFill(emp employee.Profile, c course.Features) float64 {
	if len(c.RequiredSkills) == 0 {
		// A course that declares nothing it teaches is penalized, not neutral.
		return 0.3
	}

	have := emp.SkillNames()
	levels := emp.SkillLevels()

	criticalMissing := make(map[string]struct{})
	for _, crit := range emp.DeptCriticalSkills {
		name := employee.NormalizeSkillName(crit)
		if name == "" {
			continue
		}
		if _, ok := have[name]; !ok {
			criticalMissing[name] = struct{}{}
		}
	}

	fillsCritical := 0
	fillsMissing := 0
	improvesWeak := 0
	for _, req := range c.RequiredSkills {
		if _, ok := criticalMissing[req]; ok {
			fillsCritical++
		}
		if _, ok := have[req]; !ok {
			fillsMissing++
		} else if levels[req] <= 2 {
			improvesWeak++
		}
	}

	score := 0.0
	if len(emp.DeptCriticalSkills) > 0 {
		score += float64(fillsCritical) / float64(len(emp.DeptCriticalSkills)) * 0.5
	}
	score += float64(fillsMissing) / float64(len(c.RequiredSkills)) * 0.3
	score += float64(improvesWeak) / float64(len(c.RequiredSkills)) * 0.2

	return clamp01(score)
}

func (s *Scorer) deptAlignment(emp employee.Profile, c course.Features) float64 {
	empDept := employee.NormalizeDepartment(emp.Department)
	courseDept := employee.NormalizeDepartment(c.Department)

	if empDept == "" || courseDept == "" {
		return 0.5
	}
	if empDept == courseDept {
		return 1.0
	}
	for _, related := range relatedDepartments[empDept] {
		if related == courseDept {
			return 0.7
		}
	}
	return 0.3
}

// careerProgression: 0.6*level fit + 0.25*(mean skill level / 5) + 0.15*min(duration/60, 1).
func (s *Scorer) careerProgression(emp employee.Profile, c course.Features) float64 {
	current, next := careerLadder(emp.Experience)

	target, ok := levelOrdinal[c.TargetLevel]
	if !ok {
		target = 2
	}

	var fit float64
	switch {
	case target == next:
		fit = 1.0
	case target == current:
		fit = 0.7
	case target == next+1:
		fit = 0.6
	case target < current:
		fit = 0.3
	case target > next+1:
		fit = 0.4
	default:
		fit = 0.5
	}

	skillReadiness := emp.MeanSkillLevel() / 5.0

	durationFactor := float64(c.Duration) / 60.0
	if durationFactor > 1 {
		durationFactor = 1
	}

	return clamp01(fit*0.6 + skillReadiness*0.25 + durationFactor*0.15)
}

// careerLadder maps experience years onto the 4-tier ladder and returns the
// current and next tier ordinals. Expert has no next tier beyond itself.
func careerLadder(years float64) (current, next int) {
	switch {
	case years < 2:
		return 1, 2
	case years < 5:
		return 2, 3
	case years < 10:
		return 3, 4
	default:
		return 4, 4
	}
}

func experienceLevelMatch(years float64, targetLevel string) float64 {
	r, ok := levelExperienceRange[targetLevel]
	if !ok {
		return 0.5
	}
	switch {
	case years >= r[0] && years <= r[1]:
		return 1.0
	case years >= r[0]-3 && years <= r[1]+3:
		return 0.7
	default:
		return 0.3
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
