package ml

import (
	"errors"
	"log"
	"os"
	"sync/atomic"
)

type StoreConfig struct {
	PrimaryPath       string
	SecondaryPath     string
	Weights           EnsembleWeights
	DefaultClassCount int
}

// Store owns the active ensemble reference. Reloads construct the new
// ensemble fully before publishing it, so in-flight predictions see either
// the old or the new instance, never a partial swap.
type Store struct {
	cfg    StoreConfig
	logger *log.Logger

	active       atomic.Pointer[Ensemble]
	featureNames atomic.Pointer[[]string]
}

func NewStore(cfg StoreConfig, logger *log.Logger) *Store {
	s := &Store{cfg: cfg, logger: logger}
	s.Reload()
	return s
}

// Reload rebuilds the ensemble from disk and swaps it in. A missing or broken
// primary leaves the store in the degraded uniform-probability state; a
// missing secondary is best-effort and never blocks the primary.
func (s *Store) Reload() {
	var primary Classifier
	var featureNames []string

	if s.cfg.PrimaryPath != "" {
		artifact, err := LoadArtifact(s.cfg.PrimaryPath)
		if err != nil {
			if s.logger != nil && !errors.Is(err, os.ErrNotExist) {
				s.logger.Printf("ML store | primary load failed path=%s err=%v", s.cfg.PrimaryPath, err)
			}
		} else {
			primary = artifact.Classifier()
			featureNames = artifact.FeatureNames
		}
	}

	var secondary Classifier
	if primary != nil && s.cfg.SecondaryPath != "" {
		artifact, err := LoadArtifact(s.cfg.SecondaryPath)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("ML store | secondary unavailable, serving primary only: %v", err)
			}
		} else {
			secondary = artifact.Classifier()
		}
	}

	s.featureNames.Store(&featureNames)
	s.active.Store(NewEnsemble(primary, secondary, s.cfg.Weights, s.cfg.DefaultClassCount))

	if s.logger != nil {
		info := s.Info()
		s.logger.Printf("ML store | primary_loaded=%t secondary_loaded=%t classes=%d",
			info.PrimaryLoaded, info.SecondaryLoaded, info.NumClasses)
	}
}

// Replace publishes an already-constructed ensemble, e.g. right after training.
func (s *Store) Replace(e *Ensemble, featureNames []string) {
	s.featureNames.Store(&featureNames)
	s.active.Store(e)
}

func (s *Store) Current() *Ensemble {
	return s.active.Load()
}

func (s *Store) Loaded() bool {
	return s.Current().Loaded()
}

func (s *Store) PredictProba(x []float64) []float64 {
	return s.Current().PredictProba(x)
}

func (s *Store) Predict(x []float64, k int, threshold float64) []Prediction {
	return s.Current().Predict(x, k, threshold)
}

func (s *Store) Info() Info {
	return s.Current().Info()
}

func (s *Store) FeatureNames() []string {
	if p := s.featureNames.Load(); p != nil {
		return *p
	}
	return nil
}

func (s *Store) PrimaryPath() string {
	return s.cfg.PrimaryPath
}
