package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point2 struct{ x, y float64 }

func (p point2) Dimension() int { return 2 }

func (p point2) Component(i int) float64 {
	if i == 0 {
		return p.x
	}
	return p.y
}

func (p point2) Distance(o point2) float64 { return math.Hypot(p.x-o.x, p.y-o.y) }

func TestEndpointRef(t *testing.T) {
	for _, s := range []string{"a.p0", "a.p1", "b.p0", "b.p1"} {
		ref, err := ParseEndpointRef(s)
		require.NoError(t, err)
		assert.Equal(t, s, ref.String())
	}

	_, err := ParseEndpointRef("c.p0")
	assert.Error(t, err)
}

func TestLineSegment(t *testing.T) {
	seg := NewLineSegment(point2{1, 2}, point2{3, 4})
	assert.Equal(t, [2]point2{{1, 2}, {3, 4}}, seg.Endpoints())
	assert.Equal(t, []float64{3, 4}, Components(seg.P1))
}
