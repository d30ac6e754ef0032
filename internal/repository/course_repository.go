package repository

import (
	"context"

	"course-compass/internal/database"
	"course-compass/internal/domain/course"

	"github.com/google/uuid"
)

type CourseRepository interface {
	EnsureSchema(ctx context.Context) error
	ListCourses(ctx context.Context) ([]course.Course, error)
	UpsertCourses(ctx context.Context, courses []course.Course) (int, error)
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			required_skills TEXT[] NOT NULL DEFAULT '{}',
			target_experience_level TEXT NOT NULL DEFAULT 'intermediate',
			department TEXT NOT NULL DEFAULT '',
			duration INTEGER NOT NULL DEFAULT 30,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

func (r *PostgresCourseRepository) ListCourses(ctx context.Context) ([]course.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, required_skills, target_experience_level, department, duration
		FROM courses
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		var c course.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.RequiredSkills, &c.TargetLevel, &c.Department, &c.Duration); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertCourses writes the batch in one transaction so a failed insert never
// leaves a half-updated catalog. Courses without an ID get one assigned.
func (r *PostgresCourseRepository) UpsertCourses(ctx context.Context, courses []course.Course) (int, error) {
	if len(courses) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	count := 0
	for _, c := range courses {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Duration <= 0 {
			c.Duration = course.DefaultDuration
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO courses (id, title, required_skills, target_experience_level, department, duration, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				required_skills = EXCLUDED.required_skills,
				target_experience_level = EXCLUDED.target_experience_level,
				department = EXCLUDED.department,
				duration = EXCLUDED.duration,
				updated_at = now()`,
			c.ID, c.Title, c.RequiredSkills, c.TargetLevel, c.Department, c.Duration)
		if err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return count, nil
}
