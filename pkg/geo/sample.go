package geo

import (
	"math/rand/v2"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// MemberSelection decides how a multi-polygon member is chosen before
// sampling a point inside it.
type MemberSelection int

const (
	// ByCount picks every member with equal probability, regardless of size.
	ByCount MemberSelection = iota
	// ByArea picks members proportionally to their planar area.
	ByArea
)

// SamplePoint draws a uniformly distributed point inside poly by rejection
// sampling from its bounding rectangle. Points on the polygon edge are
// accepted. After maxAttempts rejected draws it returns the polygon centroid
// and false.
func SamplePoint(rng *rand.Rand, poly orb.Polygon, maxAttempts int) (orb.Point, bool) {
	b := poly.Bound()
	w := b.Max.X() - b.Min.X()
	h := b.Max.Y() - b.Min.Y()
	for i := 0; i < maxAttempts; i++ {
		p := orb.Point{
			b.Min.X() + rng.Float64()*w,
			b.Min.Y() + rng.Float64()*h,
		}
		if planar.PolygonContains(poly, p) {
			return p, true
		}
	}
	c, _ := planar.CentroidArea(poly)
	return c, false
}

// Sample picks one member polygon according to sel and samples a point
// inside it. The bool result is false when the centroid fallback was used.
func (b *Boundary) Sample(rng *rand.Rand, maxAttempts int, sel MemberSelection) (orb.Point, bool) {
	return SamplePoint(rng, b.pickMember(rng, sel), maxAttempts)
}

func (b *Boundary) pickMember(rng *rand.Rand, sel MemberSelection) orb.Polygon {
	n := len(b.Polygons)
	if n == 1 {
		return b.Polygons[0]
	}
	if sel != ByArea {
		return b.Polygons[rng.IntN(n)]
	}

	areas := make([]float64, n)
	total := 0.0
	for i, poly := range b.Polygons {
		areas[i] = planar.Area(poly)
		total += areas[i]
	}
	if total <= 0 {
		return b.Polygons[rng.IntN(n)]
	}
	u := rng.Float64() * total
	for i, a := range areas {
		if u < a {
			return b.Polygons[i]
		}
		u -= a
	}
	return b.Polygons[n-1]
}
