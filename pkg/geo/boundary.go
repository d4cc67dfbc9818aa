package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var (
	// ErrEmptyBoundary is returned for a boundary without any usable polygon.
	ErrEmptyBoundary = errors.New("geo: empty boundary")
	// ErrGeometryType is returned when a geometry is not a polygon or multi-polygon.
	ErrGeometryType = errors.New("geo: boundary must be a polygon or multi-polygon")
)

// Boundary is a plot outline in WGS84 longitude/latitude. A single polygon
// is held as a one-member multi-polygon.
type Boundary struct {
	Polygons orb.MultiPolygon
}

// NewBoundary wraps a polygonal geometry. Members whose outer ring has
// fewer than three vertices are dropped.
func NewBoundary(g orb.Geometry) (*Boundary, error) {
	var mp orb.MultiPolygon
	switch g := g.(type) {
	case orb.Polygon:
		mp = orb.MultiPolygon{g}
	case orb.MultiPolygon:
		mp = g
	case orb.Bound:
		mp = orb.MultiPolygon{g.ToPolygon()}
	case nil:
		return nil, ErrEmptyBoundary
	default:
		return nil, fmt.Errorf("%w (got %s)", ErrGeometryType, g.GeoJSONType())
	}

	b := &Boundary{Polygons: make(orb.MultiPolygon, 0, len(mp))}
	for _, poly := range mp {
		if len(poly) == 0 || len(poly[0]) < 3 {
			continue
		}
		b.Polygons = append(b.Polygons, poly)
	}
	if len(b.Polygons) == 0 {
		return nil, ErrEmptyBoundary
	}
	return b, nil
}

// Bound returns the bounding box of all members.
func (b *Boundary) Bound() orb.Bound {
	return b.Polygons.Bound()
}

// Centroid returns the area centroid of the whole boundary.
func (b *Boundary) Centroid() orb.Point {
	c, _ := planar.CentroidArea(b.Polygons)
	return c
}

// Contains reports whether p lies inside any member polygon.
func (b *Boundary) Contains(p orb.Point) bool {
	return planar.MultiPolygonContains(b.Polygons, p)
}

// Len returns the number of member polygons.
func (b *Boundary) Len() int {
	return len(b.Polygons)
}

// Points returns every vertex of every ring, outer and inner.
func (b *Boundary) Points() []orb.Point {
	var pts []orb.Point
	for _, poly := range b.Polygons {
		for _, ring := range poly {
			pts = append(pts, ring...)
		}
	}
	return pts
}
