package dto

import "time"

// EstimateRequest carries two segments either as WKT LINESTRINGs or as four
// raw endpoints (segment A = points[0..1], segment B = points[2..3]).
type EstimateRequest struct {
	Segments []string    `json:"segments,omitempty"`
	Points   [][]float64 `json:"points,omitempty"`
}

type EstimateResponse struct {
	EstimateID string      `json:"estimate_id"`
	Dimension  int         `json:"dimension"`
	SegmentA   [][]float64 `json:"segment_a"`
	SegmentB   [][]float64 `json:"segment_b"`
	Point      []float64   `json:"point"`
	PointWKT   string      `json:"point_wkt"`
	Endpoint   string      `json:"endpoint"`
	CreatedAt  time.Time   `json:"created_at"`
}

type ListEstimatesResponse struct {
	Estimates []EstimateResponse `json:"estimates"`
}
