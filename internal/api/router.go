package api

import (
	"intersection-estimator-service/internal/api/handlers"
	"intersection-estimator-service/internal/ports"
	"intersection-estimator-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(estimator *services.Estimator, repo ports.EstimateRepository, logger logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()

	estHandler := &handlers.EstimateHandler{
		Estimator: estimator,
		Repo:      repo,
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/estimates", estHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/estimates", estHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/estimates/{id}", estHandler.Get).Methods(http.MethodGet)

	return requestIDMiddleware(logger)(loggingMiddleware(r))
}
