package dto

import "course-compass/internal/domain/course"

// CourseRequest accepts both `id` and the legacy `_id` key for the course
// identifier.
type CourseRequest struct {
	ID             string   `json:"id"`
	LegacyID       string   `json:"_id"`
	Title          string   `json:"title"`
	RequiredSkills []string `json:"required_skills"`
	TargetLevel    string   `json:"target_experience_level"`
	Department     string   `json:"department"`
	Duration       int      `json:"duration"`
}

func (r CourseRequest) ToCourse() course.Course {
	id := r.ID
	if id == "" {
		id = r.LegacyID
	}
	duration := r.Duration
	if duration <= 0 {
		duration = course.DefaultDuration
	}
	return course.Course{
		ID:             id,
		Title:          r.Title,
		RequiredSkills: r.RequiredSkills,
		TargetLevel:    r.TargetLevel,
		Department:     r.Department,
		Duration:       duration,
	}
}

func ToCourses(reqs []CourseRequest) []course.Course {
	out := make([]course.Course, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.ToCourse())
	}
	return out
}
