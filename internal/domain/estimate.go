package domain

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Identifies one of the four input endpoints: Segment 0 is segment A, 1 is B;
// Index 0 is P0, 1 is P1.
type EndpointRef struct {
	Segment int
	Index   int
}

func (r EndpointRef) String() string {
	seg := "a"
	if r.Segment == 1 {
		seg = "b"
	}
	return fmt.Sprintf("%s.p%d", seg, r.Index)
}

// Parse the textual form produced by EndpointRef.String.
func ParseEndpointRef(s string) (EndpointRef, error) {
	switch s {
	case "a.p0":
		return EndpointRef{Segment: 0, Index: 0}, nil
	case "a.p1":
		return EndpointRef{Segment: 0, Index: 1}, nil
	case "b.p0":
		return EndpointRef{Segment: 1, Index: 0}, nil
	case "b.p1":
		return EndpointRef{Segment: 1, Index: 1}, nil
	}
	return EndpointRef{}, errors.Errorf("parse endpoint ref: unknown endpoint %q", s)
}

// Estimate records one fallback intersection estimate.
// The point is always a copy of one of the four segment endpoints and
// Endpoint names which one. Estimates are immutable once created.
type Estimate struct {
	EstimateID string
	Dimension  int
	SegmentA   LineSegment[[]float64]
	SegmentB   LineSegment[[]float64]
	Point      []float64
	Endpoint   EndpointRef
	CreatedAt  time.Time
}
