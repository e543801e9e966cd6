package services

import (
	"intersection-estimator-service/internal/domain"
	"math"
)

// CentralEndpointIntersector estimates the intersection of two segments when
// an exact intersector cannot produce a reliable answer (nearly parallel
// segments, an endpoint lying on or near the other segment's interior).
//
// Instead of another exact computation it picks the endpoint closest to the
// centroid of all four endpoints. The result is therefore always one of the
// input coordinates and lies inside the envelope of both segments, which keeps
// downstream segment chains from fragmenting.
//
// The estimate is computed eagerly by the constructors. An intersector holds
// no shared state and is safe to read from multiple goroutines.
type CentralEndpointIntersector[C domain.Coordinate[C]] struct {
	create domain.CoordinateFactory[C]
	line0  domain.LineSegment[C]
	line1  domain.LineSegment[C]
	intPt  C
}

// Build an intersector for line0 and line1 and compute the estimate.
func NewCentralEndpointIntersector[C domain.Coordinate[C]](
	create domain.CoordinateFactory[C],
	line0 domain.LineSegment[C],
	line1 domain.LineSegment[C],
) *CentralEndpointIntersector[C] {
	i := &CentralEndpointIntersector[C]{
		create: create,
		line0:  line0,
		line1:  line1,
	}
	i.compute()
	return i
}

// Build an intersector for segments (p00, p01) and (p10, p11).
func NewCentralEndpointIntersectorFromPoints[C domain.Coordinate[C]](
	create domain.CoordinateFactory[C],
	p00, p01, p10, p11 C,
) *CentralEndpointIntersector[C] {
	return NewCentralEndpointIntersector(
		create,
		domain.NewLineSegment(p00, p01),
		domain.NewLineSegment(p10, p11),
	)
}

// GetIntersection returns the estimated intersection of segments (p00, p01)
// and (p10, p11).
func GetIntersection[C domain.Coordinate[C]](
	create domain.CoordinateFactory[C],
	p00, p01, p10, p11 C,
) C {
	return NewCentralEndpointIntersectorFromPoints(create, p00, p01, p10, p11).GetIntersectionPoint()
}

// Return the estimate computed at construction.
func (i *CentralEndpointIntersector[C]) GetIntersectionPoint() C {
	return i.intPt
}

func (i *CentralEndpointIntersector[C]) compute() {
	pts := []C{i.line0.P0, i.line0.P1, i.line1.P0, i.line1.P1}
	centroid := average(i.create, pts)
	i.intPt = findNearestPoint(centroid, pts)
}

// average returns the component-wise mean of points. The dimension is taken
// from the first point; mixed dimensions give meaningless output.
//
// An empty list yields the zero value of C. compute always passes four points,
// so that path only matters for direct callers.
func average[C domain.Coordinate[C]](create domain.CoordinateFactory[C], points []C) C {
	var zero C

	n := len(points)
	switch n {
	case 0:
		return zero
	case 1:
		return points[0]
	}

	dim := points[0].Dimension()
	avg := make([]float64, dim)
	for _, p := range points {
		for d := 0; d < dim; d++ {
			avg[d] += p.Component(d)
		}
	}
	for d := range avg {
		avg[d] /= float64(n)
	}

	return create(avg)
}

// findNearestPoint returns the candidate closest to p.
// Ties keep the earliest candidate. An empty list yields the zero value of C.
func findNearestPoint[C domain.Coordinate[C]](p C, candidates []C) C {
	minDist := math.MaxFloat64
	var result C

	for _, c := range candidates {
		dist := p.Distance(c)
		// Strict comparison: a later candidate at the same distance never wins.
		if dist < minDist {
			minDist = dist
			result = c
		}
	}

	return result
}
