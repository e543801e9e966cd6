package handlers

import (
	"encoding/json"
	"intersection-estimator-service/internal/adapters/coords"
	"intersection-estimator-service/internal/api/dto"
	"intersection-estimator-service/internal/domain"
	"intersection-estimator-service/internal/platform/obs"
	"intersection-estimator-service/internal/ports"
	"intersection-estimator-service/internal/services"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// EstimateHandler exposes intersection estimation and the estimate log.
type EstimateHandler struct {
	Estimator *services.Estimator
	Repo      ports.EstimateRepository
}

// Create estimates the intersection of the two segments in the request body.
func (h *EstimateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EstimateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	pair, err := pairFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	est, err := h.Estimator.Estimate(r.Context(), pair)
	if errors.Is(err, services.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("estimate failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res, err := toResponse(est)
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("render estimate failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, res)
}

// List returns recorded estimates, newest first.
func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	ests, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("list estimates failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListEstimatesResponse{Estimates: make([]dto.EstimateResponse, 0, len(ests))}
	for _, e := range ests {
		item, err := toResponse(e)
		if err != nil {
			obs.Logger(r.Context()).WithError(err).Error("render estimate failed")
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		res.Estimates = append(res.Estimates, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one recorded estimate.
func (h *EstimateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	est, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "estimate not found")
		return
	}
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("get estimate failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res, err := toResponse(est)
	if err != nil {
		obs.Logger(r.Context()).WithError(err).Error("render estimate failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// pairFromRequest accepts exactly one of the two input forms.
func pairFromRequest(req dto.EstimateRequest) (services.SegmentPair, error) {
	hasSegments := len(req.Segments) > 0
	hasPoints := len(req.Points) > 0

	switch {
	case hasSegments && hasPoints:
		return services.SegmentPair{}, errors.New("provide either segments or points, not both")
	case hasSegments:
		if len(req.Segments) != 2 {
			return services.SegmentPair{}, errors.New("segments must contain exactly 2 LINESTRINGs")
		}
		a, err := coords.ParseSegmentWKT(req.Segments[0])
		if err != nil {
			return services.SegmentPair{}, errors.New("segments[0] must be a LINESTRING with 2 vertices")
		}
		b, err := coords.ParseSegmentWKT(req.Segments[1])
		if err != nil {
			return services.SegmentPair{}, errors.New("segments[1] must be a LINESTRING with 2 vertices")
		}
		return services.SegmentPair{SegmentA: a, SegmentB: b}, nil
	case hasPoints:
		if len(req.Points) != 4 {
			return services.SegmentPair{}, errors.New("points must contain exactly 4 coordinates")
		}
		p := req.Points
		return services.NewSegmentPair(p[0], p[1], p[2], p[3]), nil
	}

	return services.SegmentPair{}, errors.New("segments or points is required")
}

func toResponse(e *domain.Estimate) (dto.EstimateResponse, error) {
	pointWKT, err := coords.PointWKT(e.Point)
	if err != nil {
		return dto.EstimateResponse{}, errors.Wrapf(err, "render estimate %s", e.EstimateID)
	}

	return dto.EstimateResponse{
		EstimateID: e.EstimateID,
		Dimension:  e.Dimension,
		SegmentA:   [][]float64{e.SegmentA.P0, e.SegmentA.P1},
		SegmentB:   [][]float64{e.SegmentB.P0, e.SegmentB.P1},
		Point:      e.Point,
		PointWKT:   pointWKT,
		Endpoint:   e.Endpoint.String(),
		CreatedAt:  e.CreatedAt,
	}, nil
}
