package dto

import (
	"errors"
	"time"

	"course-compass/internal/domain/employee"
)

type SkillRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type TrainingRecordRequest struct {
	CourseID        string  `json:"course_id"`
	CompletionDate  string  `json:"completion_date"`
	AssessmentScore float64 `json:"assessment_score"`
}

type EmployeeRequest struct {
	Skills             []SkillRequest          `json:"skills"`
	Experience         float64                 `json:"experience"`
	Department         string                  `json:"department"`
	Location           string                  `json:"location"`
	TrainingHistory    []TrainingRecordRequest `json:"training_history"`
	DeptCriticalSkills []string                `json:"dept_critical_skills"`
}

var (
	ErrMissingSkills     = errors.New("missing required field: skills")
	ErrMissingDepartment = errors.New("missing required field: department")
	ErrInvalidExperience = errors.New("experience must not be negative")
)

func (r EmployeeRequest) Validate() error {
	if r.Skills == nil {
		return ErrMissingSkills
	}
	if r.Department == "" {
		return ErrMissingDepartment
	}
	if r.Experience < 0 {
		return ErrInvalidExperience
	}
	return nil
}

// ToProfile maps the request onto the domain profile. Completion dates accept
// both date-only and RFC 3339 timestamps; unparseable dates are treated as
// absent rather than rejecting the whole request.
func (r EmployeeRequest) ToProfile() employee.Profile {
	skills := make([]employee.Skill, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, employee.Skill{Name: s.Name, Level: s.Level})
	}

	history := make([]employee.TrainingRecord, 0, len(r.TrainingHistory))
	for _, t := range r.TrainingHistory {
		history = append(history, employee.TrainingRecord{
			CourseID:        t.CourseID,
			CompletionDate:  parseCompletionDate(t.CompletionDate),
			AssessmentScore: t.AssessmentScore,
		})
	}

	location := r.Location
	if location == "" {
		location = "Unknown"
	}

	return employee.Profile{
		Skills:             skills,
		Experience:         r.Experience,
		Department:         r.Department,
		Location:           location,
		TrainingHistory:    history,
		DeptCriticalSkills: r.DeptCriticalSkills,
	}
}

func parseCompletionDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
