package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

const tol = 1e-9

func square(x0, y0, size float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}, {x0, y0},
	}}
}

func TestNewBoundaryPolygon(t *testing.T) {
	b, err := NewBoundary(square(0, 0, 10))
	if err != nil {
		t.Fatalf("NewBoundary: %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("members = %d, want 1", b.Len())
	}
	c := b.Centroid()
	if math.Abs(c.X()-5) > tol || math.Abs(c.Y()-5) > tol {
		t.Errorf("centroid = %v, want (5,5)", c)
	}
	if !b.Contains(orb.Point{1, 1}) {
		t.Error("expected (1,1) inside")
	}
	if b.Contains(orb.Point{11, 1}) {
		t.Error("expected (11,1) outside")
	}
}

func TestNewBoundaryMultiPolygon(t *testing.T) {
	mp := orb.MultiPolygon{square(0, 0, 1), square(10, 10, 1)}
	b, err := NewBoundary(mp)
	if err != nil {
		t.Fatalf("NewBoundary: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("members = %d, want 2", b.Len())
	}
	bound := b.Bound()
	if bound.Min != (orb.Point{0, 0}) || bound.Max != (orb.Point{11, 11}) {
		t.Errorf("bound = %v, want [0,0]-[11,11]", bound)
	}
	if len(b.Points()) != 10 {
		t.Errorf("points = %d, want 10", len(b.Points()))
	}
}

func TestNewBoundaryErrors(t *testing.T) {
	tests := []struct {
		name string
		g    orb.Geometry
		want error
	}{
		{"nil", nil, ErrEmptyBoundary},
		{"point", orb.Point{1, 2}, ErrGeometryType},
		{"line", orb.LineString{{0, 0}, {1, 1}}, ErrGeometryType},
		{"degenerate ring", orb.Polygon{orb.Ring{{0, 0}, {1, 1}}}, ErrEmptyBoundary},
		{"empty multipolygon", orb.MultiPolygon{}, ErrEmptyBoundary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoundary(tt.g)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
