package employee

import (
	"strings"
	"time"
)

type Skill struct {
	Name  string
	Level int
}

type TrainingRecord struct {
	CourseID        string
	CompletionDate  *time.Time
	AssessmentScore float64
}

type Profile struct {
	Skills             []Skill
	Experience         float64
	Department         string
	Location           string
	TrainingHistory    []TrainingRecord
	DeptCriticalSkills []string
}

// NormalizeSkillName lowercases a skill name and folds whitespace runs into a
// single underscore, so "Machine Learning" and "machine  learning" compare equal.
func NormalizeSkillName(s string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(fields, "_")
}

func NormalizeDepartment(s string) string {
	return NormalizeSkillName(s)
}

// SkillLevels returns normalized skill name -> level. On duplicate normalized
// names the last entry wins, matching slice order for determinism.
func (p Profile) SkillLevels() map[string]int {
	out := make(map[string]int, len(p.Skills))
	for _, s := range p.Skills {
		name := NormalizeSkillName(s.Name)
		if name == "" {
			continue
		}
		out[name] = s.Level
	}
	return out
}

func (p Profile) SkillNames() map[string]struct{} {
	out := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		name := NormalizeSkillName(s.Name)
		if name == "" {
			continue
		}
		out[name] = struct{}{}
	}
	return out
}

func (p Profile) MeanSkillLevel() float64 {
	if len(p.Skills) == 0 {
		return 0
	}
	total := 0
	for _, s := range p.Skills {
		total += s.Level
	}
	return float64(total) / float64(len(p.Skills))
}
