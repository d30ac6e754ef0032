package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"

	"course-compass/internal/features"
	"course-compass/internal/ml"
)

// Offline training entrypoint. Generates a synthetic dataset, fits the
// classifiers, and writes the artifacts the server loads at startup.
func main() {
	var (
		samples       = flag.Int("samples", 12000, "number of synthetic training samples")
		courses       = flag.Int("courses", 30, "number of course classes")
		modelPath     = flag.String("model", envOr("MODEL_PATH", "models/course_model.json"), "primary model output path")
		secondaryPath = flag.String("secondary", envOr("SECONDARY_MODEL_PATH", ""), "secondary model output path (skipped when empty)")
		metricsPath   = flag.String("metrics", envOr("METRICS_PATH", "models/model_metrics.json"), "metrics output path")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	encoder := features.NewEncoder()
	trainer := ml.NewTrainer(ml.DefaultTrainConfig(), logger)

	logger.Printf("generating %d samples over %d courses", *samples, *courses)
	gen := ml.NewGenerator(encoder, rand.New(rand.NewSource(ml.DefaultForestParams().Seed)))
	X, y := gen.Generate(*samples, *courses)
	logger.Printf("generated %d samples with %d features", len(X), encoder.NumFeatures())

	artifact, metrics, err := trainer.Train(X, y, encoder.FeatureNames())
	if err != nil {
		logger.Fatalf("training failed: %v", err)
	}

	if err := artifact.Save(*modelPath); err != nil {
		logger.Fatalf("saving model failed: %v", err)
	}
	if err := ml.SaveMetrics(*metricsPath, metrics); err != nil {
		logger.Fatalf("saving metrics failed: %v", err)
	}

	if *secondaryPath != "" {
		secondary, err := trainer.TrainSecondary(X, y, encoder.FeatureNames())
		if err != nil {
			logger.Fatalf("secondary training failed: %v", err)
		}
		if err := secondary.Save(*secondaryPath); err != nil {
			logger.Fatalf("saving secondary model failed: %v", err)
		}
	}

	logger.Printf("model saved to %s (f1=%.4f accuracy=%.4f cv_mean=%.4f)",
		*modelPath, metrics.F1, metrics.Accuracy, metrics.CVMean)
	if !metrics.MeetsTarget {
		logger.Printf("WARNING: f1=%.4f below target %.2f", metrics.F1, ml.TargetF1)
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
