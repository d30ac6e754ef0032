package explain

import (
	"math"
	"testing"

	"course-compass/internal/domain/employee"
	"course-compass/internal/domain/scoring"
	"course-compass/internal/ranking"
)

func sampleRec() ranking.Recommendation {
	return ranking.Recommendation{
		CourseID:     "c1",
		CourseTitle:  "Advanced Python",
		FinalScore:   0.74,
		MLConfidence: 0.68,
		RuleScore:    0.80,
		Breakdown: scoring.Breakdown{
			SkillMatch: 0.9,
			SkillGap:   0.6,
			DeptNeeds:  0.4,
			CareerPath: 0.7,
		},
	}
}

func sampleEmployee() employee.Profile {
	return employee.Profile{
		Skills:     []employee.Skill{{Name: "python", Level: 4}},
		Experience: 6,
		Department: "IT",
	}
}

func TestGenerate_TopReasons(t *testing.T) {
	g := NewGenerator()
	exp := g.Generate(sampleRec(), sampleEmployee())

	// DeptNeeds at 0.4 falls under the 0.5 floor; the other three survive.
	if len(exp.TopReasons) != 3 {
		t.Fatalf("got %d reasons, want 3", len(exp.TopReasons))
	}
	if exp.TopReasons[0].Criterion != "Skill Match" {
		t.Fatalf("top reason = %q", exp.TopReasons[0].Criterion)
	}
	if exp.TopReasons[1].Criterion != "Career Path" {
		t.Fatalf("second reason = %q", exp.TopReasons[1].Criterion)
	}
	for _, r := range exp.TopReasons {
		if r.Criterion == "Department Needs" {
			t.Fatal("sub-threshold criterion included")
		}
	}
}

func TestGenerate_ImpactPercentage(t *testing.T) {
	g := NewGenerator()
	exp := g.Generate(sampleRec(), sampleEmployee())

	// Skill match: 0.9 * 0.30 * 100 = 27.0
	if got := exp.TopReasons[0].ImpactPercentage; got != 27.0 {
		t.Fatalf("skill match impact = %v, want 27.0", got)
	}
	// Career path: 0.7 * 0.20 * 100 = 14.0
	if got := exp.TopReasons[1].ImpactPercentage; got != 14.0 {
		t.Fatalf("career path impact = %v, want 14.0", got)
	}
}

func TestGenerate_DetailedScores(t *testing.T) {
	g := NewGenerator()
	exp := g.Generate(sampleRec(), sampleEmployee())

	if len(exp.DetailedScores) != 4 {
		t.Fatalf("got %d detailed scores, want 4", len(exp.DetailedScores))
	}
	d, ok := exp.DetailedScores["Skill Gap Fill"]
	if !ok {
		t.Fatal("missing skill gap detail")
	}
	if d.Score != 0.6 || d.Weight != 0.30 {
		t.Fatalf("detail = %+v", d)
	}
	if math.Abs(d.Contribution-0.18) > 1e-9 {
		t.Fatalf("contribution = %v, want 0.18", d.Contribution)
	}
}

func TestGenerate_ConfidenceMetrics(t *testing.T) {
	g := NewGenerator()
	exp := g.Generate(sampleRec(), sampleEmployee())

	if exp.ConfidenceMetrics.MLConfidence != 0.68 {
		t.Fatalf("ml confidence = %v", exp.ConfidenceMetrics.MLConfidence)
	}
	if exp.ConfidenceMetrics.RuleScore != 0.8 {
		t.Fatalf("rule score = %v", exp.ConfidenceMetrics.RuleScore)
	}
	if exp.OverallFit != 0.74 {
		t.Fatalf("overall fit = %v", exp.OverallFit)
	}
}

func TestGenerate_AllCriteriaBelowFloor(t *testing.T) {
	g := NewGenerator()
	rec := sampleRec()
	rec.Breakdown = scoring.Breakdown{SkillMatch: 0.2, SkillGap: 0.3, DeptNeeds: 0.1, CareerPath: 0.4}

	exp := g.Generate(rec, sampleEmployee())
	if len(exp.TopReasons) != 0 {
		t.Fatalf("got %d reasons, want none", len(exp.TopReasons))
	}
}

func TestFitCategory(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.85, "excellent"},
		{0.8, "excellent"},
		{0.75, "very_good"},
		{0.65, "good"},
		{0.55, "fair"},
		{0.49, "weak"},
	}
	for _, tc := range cases {
		if got := fitCategory(tc.score); got != tc.want {
			t.Fatalf("fitCategory(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestReasonText_DepartmentMention(t *testing.T) {
	emp := sampleEmployee()
	got := reasonText(criterionDeptNeeds, 0.9, emp)
	if got != "Ideal for the needs of the IT department" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestReasonText_CareerBands(t *testing.T) {
	cases := []struct {
		experience float64
		want       string
	}{
		{1, "Helps you advance to the intermediate level"},
		{4, "Supports your progression toward the advanced level"},
		{8, "Strengthens your expertise toward the expert level"},
		{15, "Deepens your specialization in your field"},
	}
	for _, tc := range cases {
		emp := employee.Profile{Experience: tc.experience}
		if got := reasonText(criterionCareerPath, 0.9, emp); got != tc.want {
			t.Fatalf("experience %v: got %q", tc.experience, got)
		}
	}
}

func TestGenerateBatch_PreservesOrder(t *testing.T) {
	g := NewGenerator()
	recs := []ranking.Recommendation{sampleRec(), sampleRec()}
	recs[1].FinalScore = 0.55

	out := g.GenerateBatch(recs, sampleEmployee())
	if len(out) != 2 {
		t.Fatalf("got %d explanations", len(out))
	}
	if out[0].OverallFit != 0.74 || out[1].OverallFit != 0.55 {
		t.Fatalf("fits = %v, %v", out[0].OverallFit, out[1].OverallFit)
	}
	if out[1].FitCategory != "fair" {
		t.Fatalf("second fit category = %q", out[1].FitCategory)
	}
}
