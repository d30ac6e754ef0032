package usecase

import (
	"context"
	"log"
	"strings"

	"course-compass/internal/domain/course"
	"course-compass/internal/infrastructure/cache"
	"course-compass/internal/repository"
)

type CatalogUsecase interface {
	ListCourses(ctx context.Context) ([]course.Course, error)
	UpsertCourses(ctx context.Context, courses []course.Course) (int, error)
}

type Catalog struct {
	repo   repository.CourseRepository
	cache  *cache.Redis
	logger *log.Logger
}

func NewCatalogUsecase(repo repository.CourseRepository, redis *cache.Redis, logger *log.Logger) *Catalog {
	return &Catalog{repo: repo, cache: redis, logger: logger}
}

func (u *Catalog) ListCourses(ctx context.Context) ([]course.Course, error) {
	if u.repo == nil {
		return nil, ErrCatalogUnavailable
	}
	courses, err := u.repo.ListCourses(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return courses, nil
}

// UpsertCourses writes the batch and drops cached rankings, since a changed
// catalog can reorder any previously computed list.
func (u *Catalog) UpsertCourses(ctx context.Context, courses []course.Course) (int, error) {
	if u.repo == nil {
		return 0, ErrCatalogUnavailable
	}
	if len(courses) == 0 {
		return 0, ErrInvalidInput
	}
	for _, c := range courses {
		if strings.TrimSpace(c.Title) == "" {
			return 0, ErrInvalidInput
		}
	}

	count, err := u.repo.UpsertCourses(ctx, courses)
	if err != nil {
		return 0, ErrInternal
	}

	if err := u.cache.InvalidateRecommendations(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Catalog] cache invalidation failed: %v", err)
	}

	return count, nil
}
