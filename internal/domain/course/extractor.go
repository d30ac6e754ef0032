package course

import (
	"course-compass/internal/domain/employee"
)

var levelDifficulty = map[string]float64{
	LevelBeginner:     0.25,
	LevelIntermediate: 0.50,
	LevelAdvanced:     0.75,
	LevelExpert:       1.0,
}

type category struct {
	name   string
	skills []string
}

// Fixed taxonomy. A skill claims at most one category: the first that lists it.
var skillTaxonomy = []category{
	{name: "programming", skills: []string{"python", "javascript", "java", "node.js", "react"}},
	{name: "data", skills: []string{"sql", "data_analysis", "machine_learning", "database_design"}},
	{name: "infrastructure", skills: []string{"devops", "cloud_computing", "cybersecurity", "network_security"}},
	{name: "management", skills: []string{"project_management", "agile"}},
	{name: "development", skills: []string{"web_development"}},
}

// Extract normalizes a course record into its derived feature shape.
func Extract(c Course) Features {
	skills := make([]string, 0, len(c.RequiredSkills))
	for _, s := range c.RequiredSkills {
		name := employee.NormalizeSkillName(s)
		if name == "" {
			continue
		}
		skills = append(skills, name)
	}

	duration := c.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}

	return Features{
		CourseID:        c.ID,
		Title:           c.Title,
		RequiredSkills:  skills,
		TargetLevel:     c.TargetLevel,
		Department:      c.Department,
		Duration:        duration,
		Difficulty:      difficulty(c.TargetLevel, duration),
		SkillCategories: categorize(skills),
	}
}

// BatchExtract is order-preserving: one Features per input course, no dedup.
func BatchExtract(courses []Course) []Features {
	out := make([]Features, 0, len(courses))
	for _, c := range courses {
		out = append(out, Extract(c))
	}
	return out
}

func difficulty(targetLevel string, duration int) float64 {
	level, ok := levelDifficulty[targetLevel]
	if !ok {
		level = 0.5
	}

	durationFactor := float64(duration) / 90.0
	if durationFactor > 1 {
		durationFactor = 1
	}

	return level*0.7 + durationFactor*0.3
}

func categorize(normalizedSkills []string) []string {
	if len(normalizedSkills) == 0 {
		return []string{}
	}

	hit := make(map[string]bool, len(skillTaxonomy))
	for _, skill := range normalizedSkills {
	taxonomies:
		for _, cat := range skillTaxonomy {
			for _, s := range cat.skills {
				if s == skill {
					hit[cat.name] = true
					break taxonomies
				}
			}
		}
	}

	out := make([]string, 0, len(hit))
	for _, cat := range skillTaxonomy {
		if hit[cat.name] {
			out = append(out, cat.name)
		}
	}
	return out
}
