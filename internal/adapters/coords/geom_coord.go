package coords

import (
	"math"

	"github.com/twpayne/go-geom"
)

// Coord adapts a go-geom coordinate to domain.Coordinate.
// Any dimensionality is accepted; the nil Coord is the estimators' sentinel.
type Coord geom.Coord

// NewCoord is the domain.CoordinateFactory for Coord. It copies components.
func NewCoord(components []float64) Coord {
	c := make(Coord, len(components))
	copy(c, components)
	return c
}

func (c Coord) Dimension() int { return len(c) }

func (c Coord) Component(i int) float64 { return c[i] }

// Distance is the Euclidean distance over the components both coordinates share.
func (c Coord) Distance(other Coord) float64 {
	n := min(len(c), len(other))

	var sum float64
	for i := 0; i < n; i++ {
		d := c[i] - other[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Equal reports whether both coordinates have the same components.
func (c Coord) Equal(other Coord) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}
