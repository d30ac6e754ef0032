package ml

import (
	"math/rand"
	"time"

	"course-compass/internal/domain/course"
	"course-compass/internal/domain/employee"
	"course-compass/internal/features"
)

// SkillRange is a required skill with the proficiency window an archetype
// expects from matching employees.
type SkillRange struct {
	Name string
	Min  int
	Max  int
}

// Archetype is a hand-authored course profile used to synthesize labeled
// training examples.
type Archetype struct {
	Name            string
	RequiredSkills  []SkillRange
	FillsGaps       []string
	TargetLevel     string
	DeptFit         []string
	CriticalForDept bool
}

var courseArchetypes = []Archetype{
	{
		Name:            "python_beginner",
		RequiredSkills:  []SkillRange{{"python", 1, 2}},
		FillsGaps:       []string{"python"},
		TargetLevel:     course.LevelBeginner,
		DeptFit:         []string{"information_technology", "engineering"},
		CriticalForDept: true,
	},
	{
		Name:            "python_advanced",
		RequiredSkills:  []SkillRange{{"python", 3, 5}, {"sql", 2, 4}},
		FillsGaps:       []string{"machine_learning", "data_analysis"},
		TargetLevel:     course.LevelAdvanced,
		DeptFit:         []string{"information_technology", "engineering"},
		CriticalForDept: true,
	},
	{
		Name:            "data_science",
		RequiredSkills:  []SkillRange{{"python", 3, 5}, {"sql", 3, 5}, {"machine_learning", 2, 4}},
		FillsGaps:       []string{"data_analysis", "machine_learning"},
		TargetLevel:     course.LevelAdvanced,
		DeptFit:         []string{"information_technology"},
		CriticalForDept: true,
	},
	{
		Name:            "web_dev_fullstack",
		RequiredSkills:  []SkillRange{{"javascript", 3, 5}, {"python", 2, 4}, {"react", 2, 4}, {"node.js", 2, 4}},
		FillsGaps:       []string{"web_development", "react", "node.js"},
		TargetLevel:     course.LevelIntermediate,
		DeptFit:         []string{"information_technology"},
		CriticalForDept: true,
	},
	{
		Name:           "frontend_react",
		RequiredSkills: []SkillRange{{"javascript", 3, 5}, {"react", 2, 4}},
		FillsGaps:      []string{"react", "web_development"},
		TargetLevel:    course.LevelIntermediate,
		DeptFit:        []string{"information_technology"},
	},
	{
		Name:           "backend_nodejs",
		RequiredSkills: []SkillRange{{"javascript", 2, 4}, {"node.js", 2, 5}, {"sql", 2, 4}},
		FillsGaps:      []string{"node.js", "database_design"},
		TargetLevel:    course.LevelIntermediate,
		DeptFit:        []string{"information_technology"},
	},
	{
		Name:            "devops_fundamentals",
		RequiredSkills:  []SkillRange{{"devops", 1, 3}, {"cloud_computing", 1, 3}},
		FillsGaps:       []string{"devops", "cloud_computing"},
		TargetLevel:     course.LevelIntermediate,
		DeptFit:         []string{"engineering", "operations"},
		CriticalForDept: true,
	},
	{
		Name:            "cloud_advanced",
		RequiredSkills:  []SkillRange{{"cloud_computing", 3, 5}, {"devops", 3, 5}},
		FillsGaps:       []string{"cloud_computing"},
		TargetLevel:     course.LevelAdvanced,
		DeptFit:         []string{"engineering"},
		CriticalForDept: true,
	},
	{
		Name:            "cybersecurity_basics",
		RequiredSkills:  []SkillRange{{"cybersecurity", 1, 3}, {"network_security", 1, 2}},
		FillsGaps:       []string{"cybersecurity", "network_security"},
		TargetLevel:     course.LevelBeginner,
		DeptFit:         []string{"information_technology"},
		CriticalForDept: true,
	},
	{
		Name:            "security_advanced",
		RequiredSkills:  []SkillRange{{"cybersecurity", 4, 5}, {"network_security", 3, 5}},
		FillsGaps:       []string{"cybersecurity"},
		TargetLevel:     course.LevelExpert,
		DeptFit:         []string{"information_technology"},
		CriticalForDept: true,
	},
	{
		Name:            "database_admin",
		RequiredSkills:  []SkillRange{{"sql", 3, 5}, {"database_design", 2, 5}},
		FillsGaps:       []string{"database_design", "sql"},
		TargetLevel:     course.LevelAdvanced,
		DeptFit:         []string{"information_technology"},
		CriticalForDept: true,
	},
	{
		Name:           "project_management",
		RequiredSkills: []SkillRange{{"project_management", 2, 4}, {"agile", 2, 4}},
		FillsGaps:      []string{"project_management", "agile"},
		TargetLevel:    course.LevelIntermediate,
		DeptFit:        []string{"operations", "human_resources"},
	},
	{
		Name:           "agile_scrum",
		RequiredSkills: []SkillRange{{"agile", 2, 4}, {"project_management", 1, 3}},
		FillsGaps:      []string{"agile"},
		TargetLevel:    course.LevelIntermediate,
		DeptFit:        []string{"operations", "information_technology"},
	},
	{
		Name:           "machine_learning_intro",
		RequiredSkills: []SkillRange{{"python", 3, 5}, {"machine_learning", 1, 3}},
		FillsGaps:      []string{"machine_learning", "data_analysis"},
		TargetLevel:    course.LevelIntermediate,
		DeptFit:        []string{"information_technology"},
	},
	{
		Name:           "java_programming",
		RequiredSkills: []SkillRange{{"java", 2, 4}},
		FillsGaps:      []string{"java"},
		TargetLevel:    course.LevelIntermediate,
		DeptFit:        []string{"information_technology", "engineering"},
	},
}

var allSyntheticSkills = []string{
	"python", "javascript", "java", "sql", "react", "node.js",
	"machine_learning", "data_analysis", "project_management",
	"agile", "devops", "cloud_computing", "cybersecurity",
	"network_security", "database_design", "web_development",
}

var allDepartments = []string{
	"information_technology", "human_resources", "finance",
	"marketing", "operations", "sales", "engineering",
}

var allLocations = []string{"jeddah", "riyadh", "dammam", "unknown"}

// Population mix per archetype: matching, gap-filling, and noise employees.
const (
	matchingFraction = 0.70
	gapFraction      = 0.20
	noiseFraction    = 0.10

	matchingSkillProb = 0.90
	gapSkillProb      = 0.40
	noiseLabelProb    = 0.30
)

// Generator synthesizes labeled training examples from the archetype table.
// All randomness flows through the injected source, so a fixed seed yields an
// identical dataset on every call.
type Generator struct {
	encoder *features.Encoder
	rng     *rand.Rand
	now     func() time.Time
}

func NewGenerator(encoder *features.Encoder, rng *rand.Rand) *Generator {
	return &Generator{encoder: encoder, rng: rng, now: time.Now}
}

func Archetypes() []Archetype {
	return courseArchetypes
}

// Generate produces nSamples feature rows labeled over nCourses classes.
func (g *Generator) Generate(nSamples, nCourses int) ([][]float64, []int) {
	if nSamples <= 0 || nCourses <= 0 {
		return [][]float64{}, []int{}
	}

	profiles := courseArchetypes
	if nCourses < len(profiles) {
		profiles = profiles[:nCourses]
	}

	samplesPerCourse := nSamples / nCourses
	if samplesPerCourse < 1 {
		samplesPerCourse = 1
	}

	var X [][]float64
	var y []int

	for classIdx, profile := range profiles {
		nMatching := int(float64(samplesPerCourse) * matchingFraction)
		nGap := int(float64(samplesPerCourse) * gapFraction)
		nNoise := int(float64(samplesPerCourse) * noiseFraction)

		for i := 0; i < nMatching; i++ {
			X = append(X, g.encoder.Encode(g.matchingEmployee(profile)))
			y = append(y, classIdx)
		}
		for i := 0; i < nGap; i++ {
			X = append(X, g.encoder.Encode(g.gapEmployee(profile)))
			y = append(y, classIdx)
		}
		for i := 0; i < nNoise; i++ {
			X = append(X, g.encoder.Encode(g.randomEmployee()))
			// Most noise rows get a random label; a fraction keeps the
			// archetype's to stop the classifier from overfitting.
			if g.rng.Float64() < noiseLabelProb {
				y = append(y, classIdx)
			} else {
				y = append(y, g.rng.Intn(nCourses))
			}
		}
	}

	return X, y
}

func (g *Generator) matchingEmployee(profile Archetype) employee.Profile {
	experience := g.experienceFor(profile.TargetLevel, false)
	department := g.choice(profile.DeptFit)

	var skills []employee.Skill
	for _, req := range profile.RequiredSkills {
		if g.rng.Float64() < matchingSkillProb {
			skills = append(skills, employee.Skill{
				Name:  req.Name,
				Level: g.intBetween(req.Min, req.Max),
			})
		}
	}

	skills = g.addExtraSkills(skills, nil, 0.25, 1, 3)

	var critical []string
	if profile.CriticalForDept {
		for _, req := range profile.RequiredSkills {
			critical = append(critical, req.Name)
		}
	}

	var history []employee.TrainingRecord
	if experience > 2 {
		n := int(experience) / 2
		if n > 5 {
			n = 5
		}
		for i := 0; i < n; i++ {
			daysAgo := g.intBetween(30, 730)
			completed := g.now().AddDate(0, 0, -daysAgo)
			history = append(history, employee.TrainingRecord{
				CourseID:        "past_course",
				CompletionDate:  &completed,
				AssessmentScore: float64(g.intBetween(70, 99)),
			})
		}
	}

	return employee.Profile{
		Skills:             skills,
		Experience:         experience,
		Department:         department,
		Location:           g.choice(allLocations),
		TrainingHistory:    history,
		DeptCriticalSkills: critical,
	}
}

func (g *Generator) gapEmployee(profile Archetype) employee.Profile {
	experience := g.experienceFor(profile.TargetLevel, true)
	department := g.choice(profile.DeptFit)

	// Hold only some required skills, one level below the requirement: the
	// gap this course exists to fill.
	var skills []employee.Skill
	for _, req := range profile.RequiredSkills {
		if g.rng.Float64() < gapSkillProb {
			level := req.Min - 1
			if level < 1 {
				level = 1
			}
			skills = append(skills, employee.Skill{Name: req.Name, Level: level})
		}
	}

	skills = g.addExtraSkills(skills, profile.FillsGaps, 0.30, 2, 3)

	var critical []string
	if profile.CriticalForDept {
		critical = append(critical, profile.FillsGaps...)
	}

	return employee.Profile{
		Skills:             skills,
		Experience:         experience,
		Department:         department,
		Location:           g.choice(allLocations),
		DeptCriticalSkills: critical,
	}
}

func (g *Generator) randomEmployee() employee.Profile {
	n := g.intBetween(1, 7)
	perm := g.rng.Perm(len(allSyntheticSkills))

	skills := make([]employee.Skill, 0, n)
	for _, idx := range perm[:n] {
		skills = append(skills, employee.Skill{
			Name:  allSyntheticSkills[idx],
			Level: g.intBetween(1, 4),
		})
	}

	return employee.Profile{
		Skills:     skills,
		Experience: float64(g.intBetween(0, 19)),
		Department: g.choice(allDepartments),
		Location:   g.choice(allLocations),
	}
}

func (g *Generator) experienceFor(targetLevel string, gap bool) float64 {
	type span struct{ lo, hi int }
	ranges := map[string]span{
		course.LevelBeginner:     {0, 2},
		course.LevelIntermediate: {2, 6},
		course.LevelAdvanced:     {5, 11},
		course.LevelExpert:       {8, 19},
	}
	gapRanges := map[string]span{
		course.LevelBeginner:     {0, 1},
		course.LevelIntermediate: {2, 4},
		course.LevelAdvanced:     {4, 7},
		course.LevelExpert:       {6, 11},
	}

	table := ranges
	if gap {
		table = gapRanges
	}
	r, ok := table[targetLevel]
	if !ok {
		r = table[course.LevelIntermediate]
	}
	return float64(g.intBetween(r.lo, r.hi))
}

func (g *Generator) addExtraSkills(skills []employee.Skill, exclude []string, prob float64, minLevel, maxLevel int) []employee.Skill {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[s.Name] = true
	}
	excluded := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		excluded[s] = true
	}

	for _, name := range allSyntheticSkills {
		if have[name] || excluded[name] {
			continue
		}
		if g.rng.Float64() < prob {
			skills = append(skills, employee.Skill{
				Name:  name,
				Level: g.intBetween(minLevel, maxLevel),
			})
		}
	}
	return skills
}

func (g *Generator) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) choice(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[g.rng.Intn(len(options))]
}
