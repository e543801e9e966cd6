package main

import (
	"context"
	"database/sql"
	"intersection-estimator-service/internal/adapters/coords"
	"intersection-estimator-service/internal/adapters/repositories"
	"intersection-estimator-service/internal/config"
	"intersection-estimator-service/internal/platform/db"
	"intersection-estimator-service/internal/platform/obs"
	"intersection-estimator-service/internal/ports"
	"intersection-estimator-service/internal/services"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// dbtool initializes the estimates schema and replays the seeded segment
// pairs through the estimator, storing every estimate.
func main() {
	loaded := config.Load()

	logger, err := obs.NewLogger(os.Stderr, config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "text"))
	if err != nil {
		logrus.Fatal(err)
	}
	if !loaded {
		logger.Info("No .env file found (using environment variables)")
	}

	conn, repo, err := open()
	if err != nil {
		logger.Fatal(err)
	}
	defer conn.Close()

	logger.Info("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		logger.Fatalf("schema initialization failed: %v", err)
	}
	logger.Info("Schema ready.")

	seedPath := config.Get("SEED_PATH", "data/seeds/segments.json")
	parallelism, err := config.GetInt("BATCH_PARALLELISM", 4)
	if err != nil {
		logger.Fatal(err)
	}

	ctx := obs.WithLogger(context.Background(), logger)
	n, err := replaySeeds(ctx, repo, seedPath, parallelism)
	if err != nil {
		logger.Fatalf("seeding failed: %v", err)
	}
	logger.WithField("estimates", n).Info("Seeding complete.")
}

func open() (*sql.DB, ports.EstimateRepository, error) {
	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(url)
		if err != nil {
			return nil, nil, err
		}
		return conn, repositories.NewSQLEstimateRepository(conn), nil
	}

	path := config.Get("DB_PATH", "")
	if path == "" {
		return nil, nil, errors.New("DATABASE_URL or DB_PATH is required")
	}
	conn, err := db.OpenSqlite(path)
	if err != nil {
		return nil, nil, err
	}
	return conn, repositories.NewSqliteEstimateRepository(conn), nil
}

func replaySeeds(ctx context.Context, repo ports.EstimateRepository, seedPath string, parallelism int) (int, error) {
	seeds, err := repositories.SeedFromJSON(seedPath)
	if err != nil {
		return 0, errors.Wrap(err, "replay seeds")
	}

	pairs := make([]services.SegmentPair, 0, len(seeds))
	for i, s := range seeds {
		a, err := coords.ParseSegmentWKT(s.SegmentA)
		if err != nil {
			return 0, errors.Wrapf(err, "replay seeds: item %d", i+1)
		}
		b, err := coords.ParseSegmentWKT(s.SegmentB)
		if err != nil {
			return 0, errors.Wrapf(err, "replay seeds: item %d", i+1)
		}
		pairs = append(pairs, services.SegmentPair{SegmentA: a, SegmentB: b})
	}

	ests, err := newEstimator(repo).EstimateBatch(ctx, pairs, parallelism)
	if err != nil {
		return 0, errors.Wrap(err, "replay seeds")
	}
	return len(ests), nil
}

func newEstimator(repo ports.EstimateRepository) *services.Estimator {
	e := services.NewEstimator(repo, services.EvaluatorFor(coords.NewCoord))
	e.ByDimension = map[int]services.Evaluator{3: services.EvaluatorFor(coords.NewVector3)}
	return e
}
