package app

import (
	"context"
	"log"
	"time"

	"course-compass/internal/config"
	"course-compass/internal/database"
	dbpostgres "course-compass/internal/database/postgres"
	"course-compass/internal/domain/scoring"
	"course-compass/internal/explain"
	"course-compass/internal/features"
	"course-compass/internal/infrastructure/cache"
	"course-compass/internal/ml"
	"course-compass/internal/pkg/jwt"
	"course-compass/internal/ranking"
	"course-compass/internal/repository"
	"course-compass/internal/usecase"
	"course-compass/internal/ws"
)

// Container owns every long-lived dependency. The catalog database is
// optional; everything else is always wired.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Store *ml.Store
	Hub   *ws.Hub

	JWT jwt.Service

	Recommend  usecase.RecommendUsecase
	Hybrid     usecase.HybridUsecase
	Batch      usecase.BatchUsecase
	Metrics    usecase.MetricsUsecase
	ModelAdmin usecase.ModelAdminUsecase
	Catalog    usecase.CatalogUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	weights := ml.EnsembleWeights{
		Primary:   cfg.Ranker.PrimaryWeight,
		Secondary: cfg.Ranker.SecondaryWeight,
	}

	store := ml.NewStore(ml.StoreConfig{
		PrimaryPath:       cfg.Model.PrimaryPath,
		SecondaryPath:     cfg.Model.SecondaryPath,
		Weights:           weights,
		DefaultClassCount: cfg.Model.DefaultClassCount,
	}, logger)

	encoder := features.NewEncoder()
	scorer := scoring.NewScorer()
	ranker := ranking.NewRanker(cfg.Ranker.Alpha, encoder, scorer, store)
	explainer := explain.NewGenerator()
	trainer := ml.NewTrainer(ml.DefaultTrainConfig(), logger)

	redis := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	var db database.DB
	var courseRepo repository.CourseRepository
	if cfg.Database.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		conn, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		db = conn

		repo := repository.NewPostgresCourseRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		courseRepo = repo
	} else {
		logger.Printf("[App] catalog database not configured, course endpoints limited to request payloads")
	}

	var jwtSvc jwt.Service
	if cfg.Auth.Enabled() {
		jwtSvc = jwt.NewHMACService(cfg.Auth.AdminSecret)
	}

	recommend := usecase.NewRecommendUsecase(encoder, store, cfg.Ranker.TopK, cfg.Ranker.ConfidenceThreshold)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redis,
		Store:  store,
		Hub:    hub,
		JWT:    jwtSvc,

		Recommend:  recommend,
		Hybrid:     usecase.NewHybridUsecase(ranker, explainer, courseRepo, redis, logger, cfg.Ranker.TopK),
		Batch:      usecase.NewBatchUsecase(recommend),
		Metrics:    usecase.NewMetricsUsecase(cfg.Model.MetricsPath),
		ModelAdmin: usecase.NewModelAdminUsecase(store, encoder, trainer, redis, ws.Notifier{}, logger, cfg.Model, weights),
		Catalog:    usecase.NewCatalogUsecase(courseRepo, redis, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
