package usecase

import (
	"context"
	"log"
	"math/rand"
	"sync/atomic"

	"course-compass/internal/config"
	"course-compass/internal/features"
	"course-compass/internal/infrastructure/cache"
	"course-compass/internal/ml"
)

const (
	defaultTrainSamples = 12000
	defaultTrainCourses = 30
)

// ModelNotifier receives model lifecycle events. Wired to the websocket hub
// so subscribed clients learn about retrains and reloads as they land.
type ModelNotifier interface {
	NotifyModelRetrained(version string, f1 float64)
	NotifyModelReloaded(loaded bool)
}

type ModelStatus struct {
	ModelLoaded bool    `json:"model_loaded"`
	ModelPath   string  `json:"model_path"`
	Ensemble    ml.Info `json:"ensemble"`
}

type TrainRequest struct {
	Samples int
	Courses int
}

type ModelAdminUsecase interface {
	Status(ctx context.Context) ModelStatus
	Reload(ctx context.Context) ModelStatus
	Train(ctx context.Context, req TrainRequest) (ml.Metrics, error)
}

type ModelAdmin struct {
	store    *ml.Store
	encoder  *features.Encoder
	trainer  *ml.Trainer
	cache    *cache.Redis
	notifier ModelNotifier
	logger   *log.Logger

	modelCfg config.ModelConfig
	weights  ml.EnsembleWeights

	training atomic.Bool
}

func NewModelAdminUsecase(store *ml.Store, encoder *features.Encoder, trainer *ml.Trainer, redis *cache.Redis, notifier ModelNotifier, logger *log.Logger, modelCfg config.ModelConfig, weights ml.EnsembleWeights) *ModelAdmin {
	return &ModelAdmin{
		store:    store,
		encoder:  encoder,
		trainer:  trainer,
		cache:    redis,
		notifier: notifier,
		logger:   logger,
		modelCfg: modelCfg,
		weights:  weights,
	}
}

func (u *ModelAdmin) Status(_ context.Context) ModelStatus {
	return ModelStatus{
		ModelLoaded: u.store.Loaded(),
		ModelPath:   u.store.PrimaryPath(),
		Ensemble:    u.store.Info(),
	}
}

func (u *ModelAdmin) Reload(ctx context.Context) ModelStatus {
	u.store.Reload()
	if err := u.cache.InvalidateRecommendations(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[ModelAdmin] cache invalidation after reload failed: %v", err)
	}
	if u.notifier != nil {
		u.notifier.NotifyModelReloaded(u.store.Loaded())
	}
	return u.Status(ctx)
}

// Train synthesizes a dataset, fits both classifiers, persists the artifacts
// and metrics, and atomically swaps the serving ensemble. One train runs at
// a time per process.
func (u *ModelAdmin) Train(ctx context.Context, req TrainRequest) (ml.Metrics, error) {
	if !u.training.CompareAndSwap(false, true) {
		return ml.Metrics{}, ErrTrainingInProgress
	}
	defer u.training.Store(false)

	samples := req.Samples
	if samples <= 0 {
		samples = defaultTrainSamples
	}
	courses := req.Courses
	if courses <= 0 {
		courses = defaultTrainCourses
	}

	if u.logger != nil {
		u.logger.Printf("[ModelAdmin] training started samples=%d courses=%d", samples, courses)
	}

	gen := ml.NewGenerator(u.encoder, rand.New(rand.NewSource(ml.DefaultForestParams().Seed)))
	X, y := gen.Generate(samples, courses)

	artifact, metrics, err := u.trainer.Train(X, y, u.encoder.FeatureNames())
	if err != nil {
		return ml.Metrics{}, err
	}

	if err := artifact.Save(u.modelCfg.PrimaryPath); err != nil {
		if u.logger != nil {
			u.logger.Printf("[ModelAdmin] saving model failed: %v", err)
		}
		return ml.Metrics{}, ErrInternal
	}
	if err := ml.SaveMetrics(u.modelCfg.MetricsPath, metrics); err != nil {
		if u.logger != nil {
			u.logger.Printf("[ModelAdmin] saving metrics failed: %v", err)
		}
		return ml.Metrics{}, ErrInternal
	}

	var secondary ml.Classifier
	if u.modelCfg.SecondaryPath != "" {
		secondaryArtifact, err := u.trainer.TrainSecondary(X, y, u.encoder.FeatureNames())
		if err == nil {
			if err := secondaryArtifact.Save(u.modelCfg.SecondaryPath); err != nil && u.logger != nil {
				u.logger.Printf("[ModelAdmin] saving secondary model failed: %v", err)
			}
			secondary = secondaryArtifact.Classifier()
		} else if u.logger != nil {
			u.logger.Printf("[ModelAdmin] secondary training failed, serving primary only: %v", err)
		}
	}

	ensemble := ml.NewEnsemble(artifact.Classifier(), secondary, u.weights, u.modelCfg.DefaultClassCount)
	u.store.Replace(ensemble, artifact.FeatureNames)

	if err := u.cache.InvalidateRecommendations(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[ModelAdmin] cache invalidation after train failed: %v", err)
	}

	if u.notifier != nil {
		u.notifier.NotifyModelRetrained(metrics.ModelVersion, metrics.F1)
	}

	if u.logger != nil {
		u.logger.Printf("[ModelAdmin] training finished f1=%.4f accuracy=%.4f", metrics.F1, metrics.Accuracy)
	}

	return metrics, nil
}
