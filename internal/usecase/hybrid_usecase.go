package usecase

import (
	"context"
	"log"

	"course-compass/internal/domain/course"
	"course-compass/internal/domain/employee"
	"course-compass/internal/explain"
	"course-compass/internal/infrastructure/cache"
	"course-compass/internal/ranking"
	"course-compass/internal/repository"
)

// RankedCourse is one hybrid recommendation with its explanation attached.
type RankedCourse struct {
	ranking.Recommendation
	Explanation explain.Explanation `json:"explanation"`
}

type HybridResult struct {
	Recommendations []RankedCourse
	Method          string
	Configuration   ranking.Config
	FromCache       bool
}

type HybridUsecase interface {
	Recommend(ctx context.Context, emp employee.Profile, courses []course.Course, topK int) (HybridResult, error)
	Configuration() ranking.Config
}

type Hybrid struct {
	ranker      *ranking.Ranker
	explainer   *explain.Generator
	courseRepo  repository.CourseRepository
	cache       *cache.Redis
	logger      *log.Logger
	defaultTopK int
}

func NewHybridUsecase(ranker *ranking.Ranker, explainer *explain.Generator, courseRepo repository.CourseRepository, redis *cache.Redis, logger *log.Logger, defaultTopK int) *Hybrid {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &Hybrid{
		ranker:      ranker,
		explainer:   explainer,
		courseRepo:  courseRepo,
		cache:       redis,
		logger:      logger,
		defaultTopK: defaultTopK,
	}
}

func (u *Hybrid) Configuration() ranking.Config {
	return u.ranker.Config()
}

// Recommend ranks the supplied courses for the employee. When the request
// carries no courses the catalog database backfills the candidate list.
func (u *Hybrid) Recommend(ctx context.Context, emp employee.Profile, courses []course.Course, topK int) (HybridResult, error) {
	if len(emp.Skills) == 0 && emp.Experience == 0 && emp.Department == "" {
		return HybridResult{}, ErrInvalidInput
	}
	if topK <= 0 {
		topK = u.defaultTopK
	}

	if len(courses) == 0 {
		var err error
		courses, err = u.catalogCourses(ctx)
		if err != nil {
			return HybridResult{}, err
		}
	}

	key := HybridRecommendCacheKey(emp, courses, topK)

	var cached []RankedCourse
	if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return HybridResult{
			Recommendations: cached,
			Method:          "hybrid_system",
			Configuration:   u.ranker.Config(),
			FromCache:       true,
		}, nil
	}

	ranked := u.ranker.Rank(emp, courses, topK)
	explanations := u.explainer.GenerateBatch(ranked, emp)

	out := make([]RankedCourse, len(ranked))
	for i, rec := range ranked {
		out[i] = RankedCourse{Recommendation: rec, Explanation: explanations[i]}
	}

	if err := u.cache.SetJSON(ctx, key, out, cache.DefaultTTLFromEnv()); err != nil && u.logger != nil {
		u.logger.Printf("[Hybrid] cache write failed key=%s err=%v", key, err)
	}

	return HybridResult{
		Recommendations: out,
		Method:          "hybrid_system",
		Configuration:   u.ranker.Config(),
	}, nil
}

func (u *Hybrid) catalogCourses(ctx context.Context) ([]course.Course, error) {
	if u.courseRepo == nil {
		return nil, ErrNoCourses
	}
	courses, err := u.courseRepo.ListCourses(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Hybrid] catalog lookup failed: %v", err)
		}
		return nil, ErrCatalogUnavailable
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	return courses, nil
}
