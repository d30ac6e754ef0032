package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TargetF1 is the acceptance threshold for a trained model. Falling short is
// reported as a warning, never a training failure.
const TargetF1 = 0.85

// Feature-category weights applied to raw importances, assigned by feature
// name prefix (default technical_skills).
var categoryWeights = map[string]float64{
	"technical_skills": 0.40,
	"experience":       0.30,
	"department":       0.20,
	"location":         0.10,
}

type FeatureImportance struct {
	Raw            float64 `json:"raw_importance"`
	Weighted       float64 `json:"weighted_importance"`
	Category       string  `json:"category"`
	CategoryWeight float64 `json:"category_weight"`
}

type ModelParams struct {
	NumTrees int   `json:"n_estimators"`
	MaxDepth int   `json:"max_depth"`
	Seed     int64 `json:"random_state"`
}

// Metrics is the evaluation record persisted alongside the model artifact so
// it can be served without re-running evaluation.
type Metrics struct {
	Accuracy           float64                      `json:"accuracy"`
	Precision          float64                      `json:"precision"`
	Recall             float64                      `json:"recall"`
	F1                 float64                      `json:"f1_score"`
	CVMean             float64                      `json:"cv_mean"`
	CVStd              float64                      `json:"cv_std"`
	CVScores           []float64                    `json:"cv_scores"`
	AvgConfidence      float64                      `json:"avg_confidence"`
	ConfusionMatrix    [][]int                      `json:"confusion_matrix"`
	FeatureImportances map[string]FeatureImportance `json:"feature_importances"`
	ModelVersion       string                       `json:"model_version"`
	TrainingDate       string                       `json:"training_date"`
	NumSamples         int                          `json:"n_samples"`
	NumFeatures        int                          `json:"n_features"`
	StratifiedSplit    bool                         `json:"stratified_split"`
	MeetsTarget        bool                         `json:"meets_target"`
	ModelParams        ModelParams                  `json:"model_params"`
}

func SaveMetrics(path string, m Metrics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func LoadMetrics(path string) (Metrics, error) {
	var m Metrics
	b, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read metrics: %w", err)
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("decode metrics: %w", err)
	}
	return m, nil
}

func featureCategory(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "skill_"):
		return "technical_skills"
	case strings.Contains(lower, "experience"):
		return "experience"
	case strings.Contains(lower, "dept_"), strings.Contains(lower, "department"):
		return "department"
	case strings.Contains(lower, "location_"):
		return "location"
	default:
		return "technical_skills"
	}
}

func weightedImportances(featureNames []string, raw []float64) map[string]FeatureImportance {
	out := make(map[string]FeatureImportance, len(featureNames))
	for i, name := range featureNames {
		if i >= len(raw) {
			break
		}
		category := featureCategory(name)
		weight := categoryWeights[category]
		out[name] = FeatureImportance{
			Raw:            raw[i],
			Weighted:       raw[i] * weight,
			Category:       category,
			CategoryWeight: weight,
		}
	}
	return out
}

func accuracyScore(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	hits := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(yTrue))
}

func confusionMatrix(yTrue, yPred []int, nClasses int) [][]int {
	m := make([][]int, nClasses)
	for i := range m {
		m[i] = make([]int, nClasses)
	}
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t >= 0 && t < nClasses && p >= 0 && p < nClasses {
			m[t][p]++
		}
	}
	return m
}

// weightedPRF computes support-weighted precision, recall and F1 across all
// classes, with zero-division treated as zero per class.
func weightedPRF(yTrue, yPred []int, nClasses int) (precision, recall, f1 float64) {
	if len(yTrue) == 0 {
		return 0, 0, 0
	}

	tp := make([]float64, nClasses)
	fp := make([]float64, nClasses)
	fn := make([]float64, nClasses)
	support := make([]float64, nClasses)

	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		support[t]++
		if t == p {
			tp[t]++
		} else {
			fp[p]++
			fn[t]++
		}
	}

	total := float64(len(yTrue))
	for c := 0; c < nClasses; c++ {
		if support[c] == 0 {
			continue
		}
		var prec, rec, f float64
		if tp[c]+fp[c] > 0 {
			prec = tp[c] / (tp[c] + fp[c])
		}
		if tp[c]+fn[c] > 0 {
			rec = tp[c] / (tp[c] + fn[c])
		}
		if prec+rec > 0 {
			f = 2 * prec * rec / (prec + rec)
		}
		w := support[c] / total
		precision += prec * w
		recall += rec * w
		f1 += f * w
	}
	return precision, recall, f1
}
