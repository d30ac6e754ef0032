package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"course-compass/internal/domain/course"
	"course-compass/internal/domain/employee"
)

type recommendCacheKeyInput struct {
	Skills     []string `json:"skills"`
	Experience float64  `json:"experience"`
	Department string   `json:"department"`
	Location   string   `json:"location"`
	Critical   []string `json:"critical"`
	History    []string `json:"history"`
	CourseIDs  []string `json:"course_ids"`
	TopK       int      `json:"top_k"`
}

func normalizeCacheValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// HybridRecommendCacheKey derives a stable key from everything that can
// influence the ranking. Skill order in the request must not change the key;
// course order MUST, because ensemble confidence attaches to courses by
// position. Training records contribute their dates and scores, which feed
// the recency and assessment features.
func HybridRecommendCacheKey(emp employee.Profile, courses []course.Course, topK int) string {
	skills := make([]string, 0, len(emp.Skills))
	for _, s := range emp.Skills {
		skills = append(skills, employee.NormalizeSkillName(s.Name)+":"+strconv.Itoa(s.Level))
	}
	sort.Strings(skills)

	critical := make([]string, 0, len(emp.DeptCriticalSkills))
	for _, s := range emp.DeptCriticalSkills {
		critical = append(critical, employee.NormalizeSkillName(s))
	}
	sort.Strings(critical)

	history := make([]string, 0, len(emp.TrainingHistory))
	for _, r := range emp.TrainingHistory {
		date := ""
		if r.CompletionDate != nil {
			date = r.CompletionDate.UTC().Format(time.RFC3339)
		}
		history = append(history, date+"|"+strconv.FormatFloat(r.AssessmentScore, 'f', -1, 64))
	}
	sort.Strings(history)

	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, normalizeCacheValue(c.ID))
	}

	in := recommendCacheKeyInput{
		Skills:     skills,
		Experience: emp.Experience,
		Department: employee.NormalizeDepartment(emp.Department),
		Location:   normalizeCacheValue(emp.Location),
		Critical:   critical,
		History:    history,
		CourseIDs:  ids,
		TopK:       topK,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "recommend:hybrid:" + hex.EncodeToString(sum[:])
}
