package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestUTMZone(t *testing.T) {
	tests := []struct {
		lon  float64
		want int
	}{
		{-180, 1},
		{-177, 1},
		{0.5, 31},
		{135, 53},
		{138.5, 54},
		{180, 60},
	}
	for _, tt := range tests {
		if got := UTMZone(tt.lon); got != tt.want {
			t.Errorf("UTMZone(%v) = %d, want %d", tt.lon, got, tt.want)
		}
	}
}

func TestNewUTMInvalidZone(t *testing.T) {
	for _, z := range []int{0, 61, -3} {
		if _, err := NewUTM(z, false); !errors.Is(err, ErrProjection) {
			t.Errorf("NewUTM(%d) err = %v, want ErrProjection", z, err)
		}
	}
}

func TestUTMEPSG(t *testing.T) {
	u := &UTM{Zone: 53, South: true}
	if u.EPSG() != 32753 {
		t.Errorf("EPSG = %d, want 32753", u.EPSG())
	}
	n := &UTM{Zone: 31}
	if n.EPSG() != 32631 {
		t.Errorf("EPSG = %d, want 32631", n.EPSG())
	}
}

func TestUTMCentralMeridian(t *testing.T) {
	u, err := NewUTM(53, true)
	if err != nil {
		t.Fatalf("NewUTM: %v", err)
	}
	// On the central meridian (135E) the easting is the false easting.
	p, err := u.Project(orb.Point{135, -2})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if math.Abs(p.X()-500000) > 0.01 {
		t.Errorf("easting = %.3f, want 500000", p.X())
	}
	if p.Y() <= 9_000_000 || p.Y() >= 10_000_000 {
		t.Errorf("northing = %.1f, want just below the 10,000 km false northing", p.Y())
	}
}

func TestUTMRoundTrip(t *testing.T) {
	u, err := NewUTM(53, true)
	if err != nil {
		t.Fatalf("NewUTM: %v", err)
	}
	in := orb.Point{134.2, -3.7}
	xy, err := u.Project(in)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	out, err := u.Unproject(xy)
	if err != nil {
		t.Fatalf("Unproject: %v", err)
	}
	if math.Abs(out.X()-in.X()) > 1e-6 || math.Abs(out.Y()-in.Y()) > 1e-6 {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestUTMForBoundary(t *testing.T) {
	b, err := NewBoundary(square(134, -4, 0.1))
	if err != nil {
		t.Fatal(err)
	}
	u, err := UTMFor(b)
	if err != nil {
		t.Fatalf("UTMFor: %v", err)
	}
	if u.Zone != 53 || !u.South {
		t.Errorf("zone = %s, want 53 south", u)
	}
}
