package usecase

import (
	"context"
	"errors"
	"os"

	"course-compass/internal/ml"
)

type MetricsUsecase interface {
	Metrics(ctx context.Context) (ml.Metrics, error)
}

type ModelMetrics struct {
	metricsPath string
}

func NewMetricsUsecase(metricsPath string) *ModelMetrics {
	return &ModelMetrics{metricsPath: metricsPath}
}

func (u *ModelMetrics) Metrics(_ context.Context) (ml.Metrics, error) {
	m, err := ml.LoadMetrics(u.metricsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ml.Metrics{}, ErrMetricsNotFound
		}
		return ml.Metrics{}, ErrInternal
	}
	return m, nil
}
