package course

import (
	"math"
	"reflect"
	"testing"
)

func TestExtract_NormalizesSkillsAndDefaultsDuration(t *testing.T) {
	f := Extract(Course{
		ID:             "c1",
		Title:          "Machine Learning Intro",
		RequiredSkills: []string{"  Machine Learning ", "SQL", ""},
		TargetLevel:    LevelIntermediate,
	})

	if !reflect.DeepEqual(f.RequiredSkills, []string{"machine_learning", "sql"}) {
		t.Fatalf("unexpected required skills: %v", f.RequiredSkills)
	}
	if f.Duration != DefaultDuration {
		t.Fatalf("duration = %d, want default %d", f.Duration, DefaultDuration)
	}
}

func TestDifficulty(t *testing.T) {
	cases := []struct {
		level    string
		duration int
		want     float64
	}{
		{LevelBeginner, 90, 0.25*0.7 + 0.3},
		{LevelExpert, 90, 1.0*0.7 + 0.3},
		{LevelIntermediate, 45, 0.5*0.7 + 0.5*0.3},
		{LevelAdvanced, 180, 0.75*0.7 + 0.3}, // duration factor caps at 1
		{"bogus", 90, 0.5*0.7 + 0.3},
	}
	for _, tc := range cases {
		got := difficulty(tc.level, tc.duration)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("difficulty(%q, %d) = %v, want %v", tc.level, tc.duration, got, tc.want)
		}
	}
}

func TestCategorize_TaxonomyOrderAndFirstCategoryWins(t *testing.T) {
	got := categorize([]string{"web_development", "sql", "python"})
	want := []string{"programming", "data", "development"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categorize = %v, want %v", got, want)
	}
}

func TestCategorize_UnknownSkillsYieldNoCategories(t *testing.T) {
	got := categorize([]string{"basket_weaving"})
	if len(got) != 0 {
		t.Fatalf("expected no categories, got %v", got)
	}
}

func TestBatchExtract_PreservesOrder(t *testing.T) {
	courses := []Course{
		{ID: "b", RequiredSkills: []string{"python"}},
		{ID: "a", RequiredSkills: []string{"sql"}},
		{ID: "b", RequiredSkills: []string{"agile"}},
	}
	feats := BatchExtract(courses)
	if len(feats) != 3 {
		t.Fatalf("expected 3 features, got %d", len(feats))
	}
	for i, f := range feats {
		if f.CourseID != courses[i].ID {
			t.Fatalf("order broken at %d: %s != %s", i, f.CourseID, courses[i].ID)
		}
	}
}
