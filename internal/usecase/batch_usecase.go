package usecase

import (
	"context"

	"course-compass/internal/domain/employee"
)

// BatchEmployee pairs a caller-assigned identifier with a profile.
type BatchEmployee struct {
	EmployeeID string
	Profile    employee.Profile
}

// BatchItemResult carries one employee's outcome. A failed profile never
// aborts the rest of the batch.
type BatchItemResult struct {
	EmployeeID      string                 `json:"employee_id"`
	Success         bool                   `json:"success"`
	Recommendations []CourseRecommendation `json:"recommendations,omitempty"`
	Error           string                 `json:"error,omitempty"`
}

type BatchUsecase interface {
	Recommend(ctx context.Context, employees []BatchEmployee) ([]BatchItemResult, error)
}

type Batch struct {
	recommender RecommendUsecase
}

func NewBatchUsecase(recommender RecommendUsecase) *Batch {
	return &Batch{recommender: recommender}
}

func (u *Batch) Recommend(ctx context.Context, employees []BatchEmployee) ([]BatchItemResult, error) {
	if len(employees) == 0 {
		return nil, ErrInvalidInput
	}

	results := make([]BatchItemResult, 0, len(employees))
	for _, emp := range employees {
		res, err := u.recommender.Recommend(ctx, emp.Profile)
		if err != nil {
			results = append(results, BatchItemResult{
				EmployeeID: emp.EmployeeID,
				Success:    false,
				Error:      err.Error(),
			})
			continue
		}
		results = append(results, BatchItemResult{
			EmployeeID:      emp.EmployeeID,
			Success:         true,
			Recommendations: res.Recommendations,
		})
	}
	return results, nil
}
