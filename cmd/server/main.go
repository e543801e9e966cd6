package main

import (
	"database/sql"
	"intersection-estimator-service/internal/adapters/coords"
	"intersection-estimator-service/internal/adapters/repositories"
	"intersection-estimator-service/internal/api"
	"intersection-estimator-service/internal/config"
	"intersection-estimator-service/internal/platform/db"
	"intersection-estimator-service/internal/platform/obs"
	"intersection-estimator-service/internal/ports"
	"intersection-estimator-service/internal/services"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (postgres, SQLite or memory) behind ports and starts the HTTP server.
func main() {
	loaded := config.Load()

	logger, err := obs.NewLogger(os.Stderr, config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "text"))
	if err != nil {
		logrus.Fatal(err)
	}
	if !loaded {
		logger.Info("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	writeTimeout, err := config.GetDuration("WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		logger.Fatal(err)
	}

	conn, repo, err := openRepository(logger)
	if err != nil {
		logger.Fatal(err)
	}
	if conn != nil {
		defer conn.Close()
	}

	estimator := newEstimator(repo)
	router := api.NewRouter(estimator, repo, logger)

	logger.WithField("addr", ":"+port).Info("Server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal(srv.ListenAndServe())
}

// openRepository prefers postgres (DATABASE_URL), then SQLite (DB_PATH),
// then an in-memory repository.
func openRepository(logger logrus.FieldLogger) (*sql.DB, ports.EstimateRepository, error) {
	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(url)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, errors.Wrap(err, "open repository")
		}
		logger.Info("Using postgres estimate repository")
		return conn, repositories.NewSQLEstimateRepository(conn), nil
	}

	if path := config.Get("DB_PATH", ""); path != "" {
		conn, err := db.OpenSqlite(path)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, errors.Wrap(err, "open repository")
		}
		logger.WithField("path", path).Info("Using sqlite estimate repository")
		return conn, repositories.NewSqliteEstimateRepository(conn), nil
	}

	logger.Warn("No DATABASE_URL or DB_PATH set; estimates are kept in memory")
	return nil, repositories.NewMemoryEstimateRepository(), nil
}

// newEstimator evaluates 3-D pairs on r3 vectors and every other dimension
// on go-geom coordinates.
func newEstimator(repo ports.EstimateRepository) *services.Estimator {
	e := services.NewEstimator(repo, services.EvaluatorFor(coords.NewCoord))
	e.ByDimension = map[int]services.Evaluator{3: services.EvaluatorFor(coords.NewVector3)}
	return e
}
