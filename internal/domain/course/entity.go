package course

type Course struct {
	ID             string
	Title          string
	RequiredSkills []string
	TargetLevel    string
	Department     string
	Duration       int
}

// Features is the canonical derived shape consumed by the scorer and ranker.
// RequiredSkills are normalized; SkillCategories follow taxonomy order.
type Features struct {
	CourseID        string
	Title           string
	RequiredSkills  []string
	TargetLevel     string
	Department      string
	Duration        int
	Difficulty      float64
	SkillCategories []string
}

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

const DefaultDuration = 30
