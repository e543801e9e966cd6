package domain

// Coordinate is the minimal point contract the estimators need: a fixed
// dimensionality, indexed component reads and Euclidean distance to another
// coordinate of the same concrete type.
//
// Implementations are treated as immutable; estimators only read them.
type Coordinate[C any] interface {
	// Number of components (2 for XY, 3 for XYZ, ...).
	Dimension() int
	// Return the i-th component as a float64, 0 <= i < Dimension().
	Component(i int) float64
	// Euclidean distance to other.
	Distance(other C) float64
}

// CoordinateFactory builds a new coordinate from a component vector.
// Factories are injected so estimators never depend on process-wide state.
type CoordinateFactory[C any] func(components []float64) C

// An ordered pair of coordinates representing one edge.
type LineSegment[C any] struct {
	P0 C
	P1 C
}

func NewLineSegment[C any](p0, p1 C) LineSegment[C] {
	return LineSegment[C]{P0: p0, P1: p1}
}

// Return the segment endpoints in (P0, P1) order.
func (s LineSegment[C]) Endpoints() [2]C { return [2]C{s.P0, s.P1} }

// Components copies every component of c into a new slice.
func Components[C Coordinate[C]](c C) []float64 {
	out := make([]float64, c.Dimension())
	for i := range out {
		out[i] = c.Component(i)
	}
	return out
}
