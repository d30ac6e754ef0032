package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
	ErrNoCourses          = errors.New("no courses available")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrMetricsNotFound    = errors.New("metrics not found")
	ErrTrainingInProgress = errors.New("training already in progress")
)
