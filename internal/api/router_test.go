package api

import (
	"encoding/json"
	"intersection-estimator-service/internal/adapters/coords"
	"intersection-estimator-service/internal/adapters/repositories"
	"intersection-estimator-service/internal/api/dto"
	"intersection-estimator-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (http.Handler, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	repo := repositories.NewMemoryEstimateRepository()
	est := services.NewEstimator(repo, services.EvaluatorFor(coords.NewCoord))
	est.ByDimension = map[int]services.Evaluator{3: services.EvaluatorFor(coords.NewVector3)}
	return NewRouter(est, repo, logger), hook
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, hook := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, 200, entry.Data["status"])
	assert.Equal(t, rec.Header().Get("X-Request-ID"), entry.Data["req_id"])
}

func TestRequestIDPropagated(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "caller-id", rec.Header().Get("X-Request-ID"))
}

func TestCreateEstimateFromWKT(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/estimates",
		`{"segments":["LINESTRING (0 0, 10 0)","LINESTRING (0 0, 0 10)"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res dto.EstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []float64{0, 0}, res.Point)
	assert.Equal(t, "a.p0", res.Endpoint)
	assert.Equal(t, 2, res.Dimension)
	assert.Contains(t, res.PointWKT, "POINT")
	assert.NotEmpty(t, res.EstimateID)

	get := do(t, h, http.MethodGet, "/estimates/"+res.EstimateID, "")
	require.Equal(t, http.StatusOK, get.Code)

	var fetched dto.EstimateResponse
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &fetched))
	assert.Equal(t, res.EstimateID, fetched.EstimateID)
	assert.Equal(t, res.Point, fetched.Point)
}

func TestCreateEstimateFromPoints(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/estimates", `{"points":[[0,0],[2,2],[0,2],[2,0]]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res dto.EstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []float64{0, 0}, res.Point)
	assert.Equal(t, [][]float64{{0, 2}, {2, 0}}, res.SegmentB)
}

func TestCreateEstimateBadRequests(t *testing.T) {
	h, _ := newTestServer(t)

	for name, body := range map[string]string{
		"not json":         `{`,
		"unknown field":    `{"segment":["LINESTRING (0 0, 1 1)"]}`,
		"trailing object":  `{"points":[[0,0],[1,1],[0,1],[1,0]]}{}`,
		"empty":            `{}`,
		"both forms":       `{"segments":["LINESTRING (0 0, 1 1)","LINESTRING (0 1, 1 0)"],"points":[[0,0],[1,1],[0,1],[1,0]]}`,
		"one segment":      `{"segments":["LINESTRING (0 0, 1 1)"]}`,
		"bad wkt":          `{"segments":["LINESTRING (0 0, 1 1)","POINT (0 0)"]}`,
		"three points":     `{"points":[[0,0],[1,1],[0,1]]}`,
		"mixed dimensions": `{"points":[[0,0],[1,1],[0,1,5],[1,0]]}`,
		"one dimension":    `{"points":[[0],[1],[2],[3]]}`,
		"measured segment": `{"segments":["LINESTRING M (0 0 100, 10 0 100)","LINESTRING Z (0 0 0, 0 10 0)"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/estimates", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestListEstimates(t *testing.T) {
	h, _ := newTestServer(t)

	for i := 0; i < 3; i++ {
		rec := do(t, h, http.MethodPost, "/estimates", `{"points":[[0,0],[10,0],[0,0],[0,10]]}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/estimates?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListEstimatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Estimates, 2)

	rec = do(t, h, http.MethodGet, "/estimates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Estimates, 3)

	for _, q := range []string{"0", "501", "many"} {
		rec = do(t, h, http.MethodGet, "/estimates?limit="+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", q)
	}
}

func TestGetEstimateNotFound(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/estimates/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodDelete, "/estimates", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
