package scoring

import (
	"testing"

	"course-compass/internal/domain/course"
	"course-compass/internal/domain/employee"
)

func itEmployee() employee.Profile {
	return employee.Profile{
		Skills: []employee.Skill{
			{Name: "Python", Level: 4},
			{Name: "SQL", Level: 4},
		},
		Experience: 6,
		Department: "Information Technology",
		Location:   "Riyadh",
	}
}

func TestComposite_ScoresWithinRange(t *testing.T) {
	s := NewScorer()
	c := course.Extract(course.Course{
		ID:             "c1",
		Title:          "Advanced Python",
		RequiredSkills: []string{"python", "sql"},
		TargetLevel:    course.LevelAdvanced,
		Department:     "Information Technology",
		Duration:       60,
	})

	composite, breakdown := s.Composite(itEmployee(), c)
	for name, v := range map[string]float64{
		"composite":   composite,
		"skill_match": breakdown.SkillMatch,
		"skill_gap":   breakdown.SkillGap,
		"dept_needs":  breakdown.DeptNeeds,
		"career_path": breakdown.CareerPath,
	} {
		if v < 0 || v > 1 {
			t.Fatalf("%s out of range: %v", name, v)
		}
	}
}

func TestSkillMatch_StrongProfileScoresHigh(t *testing.T) {
	s := NewScorer()
	c := course.Extract(course.Course{
		RequiredSkills: []string{"python", "sql"},
		TargetLevel:    course.LevelAdvanced,
		Department:     "Information Technology",
	})

	// Full coverage at level 4, experience inside the advanced band.
	got := s.skillMatch(itEmployee(), c)
	want := 0.5 + 0.8*0.3 + 0.2
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("skillMatch = %v, want %v", got, want)
	}
}

func TestSkillMatch_NoRequiredSkillsIsNeutral(t *testing.T) {
	s := NewScorer()
	got := s.skillMatch(itEmployee(), course.Features{})
	if got != 0.5 {
		t.Fatalf("skillMatch with no requirements = %v, want 0.5", got)
	}
}

func TestSkillGapFill_NoRequiredSkillsIsPenalized(t *testing.T) {
	s := NewScorer()
	got := s.skillGapFill(itEmployee(), course.Features{})
	if got != 0.3 {
		t.Fatalf("skillGapFill with no requirements = %v, want 0.3", got)
	}
}

func TestSkillGapFill_CriticalGapDominates(t *testing.T) {
	s := NewScorer()
	emp := itEmployee()
	emp.DeptCriticalSkills = []string{"machine learning"}

	c := course.Extract(course.Course{
		RequiredSkills: []string{"machine learning"},
		TargetLevel:    course.LevelIntermediate,
	})

	// One critical missing skill fully covered: 0.5 + 0.3 (new skill) + 0.
	got := s.skillGapFill(emp, c)
	want := 0.8
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("skillGapFill = %v, want %v", got, want)
	}
}

func TestDeptAlignment(t *testing.T) {
	s := NewScorer()
	cases := []struct {
		empDept    string
		courseDept string
		want       float64
	}{
		{"Information Technology", "Information Technology", 1.0},
		{"Information Technology", "Engineering", 0.7},
		{"Engineering", "Information Technology", 0.7},
		{"Finance", "Marketing", 0.3},
		{"", "Engineering", 0.5},
		{"Engineering", "", 0.5},
	}
	for _, tc := range cases {
		emp := employee.Profile{Department: tc.empDept}
		got := s.deptAlignment(emp, course.Features{Department: tc.courseDept})
		if got != tc.want {
			t.Fatalf("deptAlignment(%q, %q) = %v, want %v", tc.empDept, tc.courseDept, got, tc.want)
		}
	}
}

func TestDeptAlignment_CoreTrioIsSymmetric(t *testing.T) {
	s := NewScorer()
	trio := []string{"engineering", "operations", "information_technology"}
	for _, dept := range trio {
		for _, other := range trio {
			if dept == other {
				continue
			}
			a := s.deptAlignment(employee.Profile{Department: dept}, course.Features{Department: other})
			b := s.deptAlignment(employee.Profile{Department: other}, course.Features{Department: dept})
			if a != 0.7 || b != 0.7 {
				t.Fatalf("adjacency for %s/%s = %v/%v, want 0.7 both ways", dept, other, a, b)
			}
		}
	}
}

func TestDeptAlignment_SupportDeptsAreOneDirectional(t *testing.T) {
	s := NewScorer()
	for _, dept := range []string{"finance", "human_resources"} {
		forward := s.deptAlignment(employee.Profile{Department: dept}, course.Features{Department: "operations"})
		if forward != 0.7 {
			t.Fatalf("%s -> operations = %v, want 0.7", dept, forward)
		}
		reverse := s.deptAlignment(employee.Profile{Department: "operations"}, course.Features{Department: dept})
		if reverse != 0.3 {
			t.Fatalf("operations -> %s = %v, want 0.3", dept, reverse)
		}
	}
}

func TestCareerProgression_NextLevelIsBestFit(t *testing.T) {
	s := NewScorer()
	emp := employee.Profile{
		Skills:     []employee.Skill{{Name: "python", Level: 5}},
		Experience: 3, // current intermediate, next advanced
	}

	nextLevel := s.careerProgression(emp, course.Features{TargetLevel: course.LevelAdvanced, Duration: 60})
	sameLevel := s.careerProgression(emp, course.Features{TargetLevel: course.LevelIntermediate, Duration: 60})
	below := s.careerProgression(emp, course.Features{TargetLevel: course.LevelBeginner, Duration: 60})

	if !(nextLevel > sameLevel && sameLevel > below) {
		t.Fatalf("career fit ordering broken: next=%v same=%v below=%v", nextLevel, sameLevel, below)
	}
}

func TestExperienceLevelMatch(t *testing.T) {
	cases := []struct {
		years float64
		level string
		want  float64
	}{
		{1, course.LevelBeginner, 1.0},
		{4, course.LevelBeginner, 0.7},
		{9, course.LevelBeginner, 0.3},
		{7, course.LevelAdvanced, 1.0},
		{3, course.LevelAdvanced, 0.7},
		{12, course.LevelExpert, 1.0},
		{5, "unheard_of", 0.5},
	}
	for _, tc := range cases {
		if got := experienceLevelMatch(tc.years, tc.level); got != tc.want {
			t.Fatalf("experienceLevelMatch(%v, %q) = %v, want %v", tc.years, tc.level, got, tc.want)
		}
	}
}

func TestComposite_EmptyProfileStaysInRange(t *testing.T) {
	s := NewScorer()
	c := course.Extract(course.Course{RequiredSkills: []string{"python"}})
	composite, _ := s.Composite(employee.Profile{}, c)
	if composite < 0 || composite > 1 {
		t.Fatalf("composite out of range for empty profile: %v", composite)
	}
}
