package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	KindRandomForest = "random_forest"
	KindNaiveBayes   = "naive_bayes"
)

var ErrNoModel = errors.New("no trained model")

// Classifier is any fitted probabilistic multi-class model.
type Classifier interface {
	PredictProba(x []float64) []float64
	NumClasses() int
}

// Artifact is the persisted form of a trained classifier: the model itself
// plus the ordered feature-name list it was trained against. Any drift in
// that ordering invalidates the artifact.
type Artifact struct {
	Kind         string      `json:"kind"`
	FeatureNames []string    `json:"feature_names"`
	Forest       *Forest     `json:"forest,omitempty"`
	Bayes        *NaiveBayes `json:"naive_bayes,omitempty"`
}

func (a *Artifact) Classifier() Classifier {
	if a == nil {
		return nil
	}
	switch a.Kind {
	case KindRandomForest:
		if a.Forest != nil {
			return a.Forest
		}
	case KindNaiveBayes:
		if a.Bayes != nil {
			return a.Bayes
		}
	}
	return nil
}

func (a *Artifact) Save(path string) error {
	if a == nil || a.Classifier() == nil {
		return fmt.Errorf("%w: train before saving", ErrNoModel)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

func LoadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if a.Classifier() == nil {
		return nil, fmt.Errorf("model file %s: %w", path, ErrNoModel)
	}
	return &a, nil
}
