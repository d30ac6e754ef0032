package dto

import (
	"course-compass/internal/ml"
	"course-compass/internal/ranking"
	"course-compass/internal/usecase"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	ModelLoaded bool   `json:"model_loaded"`
}

type RecommendResponse struct {
	Success          bool                           `json:"success"`
	Recommendations  []usecase.CourseRecommendation `json:"recommendations"`
	EmployeeFeatures []float64                      `json:"employee_features"`
}

type HybridRecommendResponse struct {
	Success         bool                   `json:"success"`
	Recommendations []usecase.RankedCourse `json:"recommendations"`
	Method          string                 `json:"method"`
	Configuration   ranking.Config         `json:"configuration"`
	Cached          bool                   `json:"cached"`
}

type BatchRecommendResponse struct {
	Success bool                      `json:"success"`
	Count   int                       `json:"count"`
	Results []usecase.BatchItemResult `json:"results"`
}

type RankerConfigResponse struct {
	Success       bool           `json:"success"`
	Configuration ranking.Config `json:"configuration"`
}

type TrainResponse struct {
	Success bool       `json:"success"`
	Metrics ml.Metrics `json:"metrics"`
}

// MetricsResponse groups the persisted evaluation record into the sections
// clients expect: headline performance, cross-validation, importances, and
// training metadata.
type MetricsResponse struct {
	Success bool           `json:"success"`
	Metrics MetricsPayload `json:"metrics"`
}

type MetricsPayload struct {
	Performance     MetricsPerformance              `json:"performance"`
	CrossValidation MetricsCrossValidation          `json:"cross_validation"`
	FeatureImports  map[string]ml.FeatureImportance `json:"feature_importance"`
	ConfusionMatrix [][]int                         `json:"confusion_matrix"`
	ModelInfo       MetricsModelInfo                `json:"model_info"`
	TargetThreshold MetricsTargetThreshold          `json:"target_threshold"`
}

type MetricsPerformance struct {
	F1Score       float64 `json:"f1_score"`
	Accuracy      float64 `json:"accuracy"`
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	AvgConfidence float64 `json:"avg_confidence"`
}

type MetricsCrossValidation struct {
	CVMean   float64   `json:"cv_mean"`
	CVStd    float64   `json:"cv_std"`
	CVScores []float64 `json:"cv_scores"`
}

type MetricsModelInfo struct {
	ModelVersion string         `json:"model_version"`
	TrainingDate string         `json:"training_date"`
	NumSamples   int            `json:"n_samples"`
	NumFeatures  int            `json:"n_features"`
	Parameters   ml.ModelParams `json:"parameters"`
}

type MetricsTargetThreshold struct {
	RequiredF1     float64 `json:"required_f1"`
	MeetsThreshold bool    `json:"meets_threshold"`
}

func NewMetricsResponse(m ml.Metrics) MetricsResponse {
	return MetricsResponse{
		Success: true,
		Metrics: MetricsPayload{
			Performance: MetricsPerformance{
				F1Score:       m.F1,
				Accuracy:      m.Accuracy,
				Precision:     m.Precision,
				Recall:        m.Recall,
				AvgConfidence: m.AvgConfidence,
			},
			CrossValidation: MetricsCrossValidation{
				CVMean:   m.CVMean,
				CVStd:    m.CVStd,
				CVScores: m.CVScores,
			},
			FeatureImports:  m.FeatureImportances,
			ConfusionMatrix: m.ConfusionMatrix,
			ModelInfo: MetricsModelInfo{
				ModelVersion: m.ModelVersion,
				TrainingDate: m.TrainingDate,
				NumSamples:   m.NumSamples,
				NumFeatures:  m.NumFeatures,
				Parameters:   m.ModelParams,
			},
			TargetThreshold: MetricsTargetThreshold{
				RequiredF1:     ml.TargetF1,
				MeetsThreshold: m.F1 >= ml.TargetF1,
			},
		},
	}
}
