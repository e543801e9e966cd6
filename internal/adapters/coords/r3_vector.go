package coords

import (
	"github.com/golang/geo/r3"
)

// Vector3 adapts a golang/geo r3.Vector to domain.Coordinate.
type Vector3 struct {
	r3.Vector
}

// NewVector3 is the domain.CoordinateFactory for Vector3.
// Missing components are zero and extra components are ignored.
func NewVector3(components []float64) Vector3 {
	var v r3.Vector
	if len(components) > 0 {
		v.X = components[0]
	}
	if len(components) > 1 {
		v.Y = components[1]
	}
	if len(components) > 2 {
		v.Z = components[2]
	}
	return Vector3{Vector: v}
}

func (v Vector3) Dimension() int { return 3 }

func (v Vector3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("coords: Vector3 component index out of range")
}

func (v Vector3) Distance(other Vector3) float64 {
	return v.Vector.Distance(other.Vector)
}
