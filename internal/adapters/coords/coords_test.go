package coords

import (
	"intersection-estimator-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordDistance(t *testing.T) {
	a := NewCoord([]float64{0, 0})
	b := NewCoord([]float64{3, 4})

	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, 5.0, b.Distance(a))
	assert.Equal(t, 0.0, a.Distance(a))

	c := NewCoord([]float64{1, 2, 2})
	assert.Equal(t, 3.0, NewCoord([]float64{0, 0, 0}).Distance(c))
}

func TestNewCoordCopies(t *testing.T) {
	src := []float64{1, 2}
	c := NewCoord(src)
	src[0] = 99

	assert.Equal(t, 1.0, c.Component(0))
	assert.Equal(t, 2, c.Dimension())
}

func TestCoordEqual(t *testing.T) {
	assert.True(t, NewCoord([]float64{1, 2}).Equal(NewCoord([]float64{1, 2})))
	assert.False(t, NewCoord([]float64{1, 2}).Equal(NewCoord([]float64{1, 3})))
	assert.False(t, NewCoord([]float64{1, 2}).Equal(NewCoord([]float64{1, 2, 0})))
	assert.False(t, NewCoord([]float64{1, 2, 3, 4, 5}).Equal(NewCoord([]float64{1, 2, 3, 4, 6})))
}

func TestVector3(t *testing.T) {
	v := NewVector3([]float64{1, 2, 3})
	assert.Equal(t, 3, v.Dimension())
	assert.Equal(t, []float64{1, 2, 3}, domain.Components(v))

	w := NewVector3([]float64{1, 2, 5})
	assert.Equal(t, 2.0, v.Distance(w))

	short := NewVector3([]float64{7})
	assert.Equal(t, []float64{7, 0, 0}, domain.Components(short))

	assert.Panics(t, func() { v.Component(3) })
}

func TestSegmentWKTRoundTrip(t *testing.T) {
	for _, seg := range []domain.LineSegment[[]float64]{
		domain.NewLineSegment([]float64{0, 0}, []float64{10, 0.001}),
		domain.NewLineSegment([]float64{0, 0, 1}, []float64{2, 2, 3}),
		domain.NewLineSegment([]float64{0, 0, 1, 7}, []float64{2, 2, 3, 8}),
	} {
		s, err := SegmentWKT(seg)
		require.NoError(t, err)
		assert.Contains(t, s, "LINESTRING")

		got, err := ParseSegmentWKT(s)
		require.NoError(t, err)
		assert.Equal(t, seg, got)
	}
}

func TestSegmentWKTErrors(t *testing.T) {
	_, err := SegmentWKT(domain.NewLineSegment([]float64{0, 0}, []float64{1, 1, 1}))
	assert.Error(t, err)

	_, err = SegmentWKT(domain.NewLineSegment([]float64{0}, []float64{1}))
	assert.Error(t, err)
}

func TestParseSegmentWKTRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"not wkt",
		"POINT (1 2)",
		"LINESTRING (0 0, 1 1, 2 2)",
		"LINESTRING M (0 0 100, 10 0 100)",
	} {
		_, err := ParseSegmentWKT(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestPointWKT(t *testing.T) {
	s, err := PointWKT([]float64{2.5, -1})
	require.NoError(t, err)

	got, err := ParsePointWKT(s)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, -1}, got)

	_, err = ParsePointWKT("LINESTRING (0 0, 1 1)")
	assert.Error(t, err)

	_, err = ParsePointWKT("POINT M (1 2 3)")
	assert.Error(t, err)

	_, err = PointWKT([]float64{math.Pi})
	assert.Error(t, err)
}

func TestParseWKTLayouts(t *testing.T) {
	seg, err := ParseSegmentWKT("LINESTRING ZM (0 0 0 0, 1 1 1 1)")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, seg.P1)

	_, err = ParseSegmentWKT("LINESTRING M (0 0 100, 10 0 100)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported layout")

	p, err := ParsePointWKT("POINT Z (1 2 3)")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, p)
}
