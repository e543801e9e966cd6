package coords

import (
	"intersection-estimator-service/internal/domain"
	"strings"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// LayoutFor maps a dimension to the go-geom layout used for WKT.
// Dimensions 2, 3 and 4 are written as XY, XYZ and XYZM.
func LayoutFor(dim int) (geom.Layout, error) {
	switch dim {
	case 2:
		return geom.XY, nil
	case 3:
		return geom.XYZ, nil
	case 4:
		return geom.XYZM, nil
	}
	return geom.NoLayout, errors.Errorf("no WKT layout for dimension %d", dim)
}

// SegmentWKT renders a segment as a two-vertex LINESTRING.
func SegmentWKT(seg domain.LineSegment[[]float64]) (string, error) {
	if len(seg.P0) != len(seg.P1) {
		return "", errors.Errorf("segment wkt: endpoint dimensions differ (%d, %d)", len(seg.P0), len(seg.P1))
	}

	layout, err := LayoutFor(len(seg.P0))
	if err != nil {
		return "", errors.Wrap(err, "segment wkt")
	}

	flat := make([]float64, 0, 2*len(seg.P0))
	flat = append(flat, seg.P0...)
	flat = append(flat, seg.P1...)

	s, err := wkt.Marshal(geom.NewLineStringFlat(layout, flat))
	if err != nil {
		return "", errors.Wrap(err, "segment wkt: marshal")
	}
	return s, nil
}

// ParseSegmentWKT parses a LINESTRING with exactly two vertices.
func ParseSegmentWKT(s string) (domain.LineSegment[[]float64], error) {
	var seg domain.LineSegment[[]float64]

	g, err := wkt.Unmarshal(strings.TrimSpace(s))
	if err != nil {
		return seg, errors.Wrapf(err, "parse segment wkt %q", s)
	}

	ls, ok := g.(*geom.LineString)
	if !ok {
		return seg, errors.Errorf("parse segment wkt: want LINESTRING, got %T", g)
	}
	if ls.NumCoords() != 2 {
		return seg, errors.Errorf("parse segment wkt: want 2 vertices, got %d", ls.NumCoords())
	}

	if err := checkLayout(ls.Layout()); err != nil {
		return seg, errors.Wrap(err, "parse segment wkt")
	}

	seg.P0 = append([]float64(nil), ls.Coord(0)...)
	seg.P1 = append([]float64(nil), ls.Coord(1)...)
	return seg, nil
}

// PointWKT renders components as a POINT.
func PointWKT(p []float64) (string, error) {
	layout, err := LayoutFor(len(p))
	if err != nil {
		return "", errors.Wrap(err, "point wkt")
	}

	s, err := wkt.Marshal(geom.NewPointFlat(layout, append([]float64(nil), p...)))
	if err != nil {
		return "", errors.Wrap(err, "point wkt: marshal")
	}
	return s, nil
}

// ParsePointWKT parses a non-empty POINT.
func ParsePointWKT(s string) ([]float64, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrapf(err, "parse point wkt %q", s)
	}

	pt, ok := g.(*geom.Point)
	if !ok {
		return nil, errors.Errorf("parse point wkt: want POINT, got %T", g)
	}
	if len(pt.FlatCoords()) == 0 {
		return nil, errors.New("parse point wkt: empty point")
	}
	if err := checkLayout(pt.Layout()); err != nil {
		return nil, errors.Wrap(err, "parse point wkt")
	}

	return append([]float64(nil), pt.Coords()...), nil
}

// checkLayout rejects layouts other than the one LayoutFor gives for the
// same stride. Measured geometries (M, ZM read as XYM) carry no spatial
// component in the measure and are refused.
func checkLayout(l geom.Layout) error {
	want, err := LayoutFor(l.Stride())
	if err != nil {
		return err
	}
	if l != want {
		return errors.Errorf("unsupported layout %v, want %v", l, want)
	}
	return nil
}
