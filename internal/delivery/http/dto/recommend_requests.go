package dto

import "errors"

type HybridRecommendRequest struct {
	EmployeeRequest
	Courses []CourseRequest `json:"courses"`
	TopK    int             `json:"top_k"`
}

type BatchEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	EmployeeRequest
}

type BatchRecommendRequest struct {
	Employees []BatchEmployeeRequest `json:"employees"`
}

var ErrMissingEmployees = errors.New("no employees data provided")

func (r BatchRecommendRequest) Validate() error {
	if len(r.Employees) == 0 {
		return ErrMissingEmployees
	}
	return nil
}

type UpsertCoursesRequest struct {
	Courses []CourseRequest `json:"courses"`
}
