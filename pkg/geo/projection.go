package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
)

// ErrProjection is wrapped by every coordinate transformation failure.
var ErrProjection = errors.New("geo: projection failed")

// Projector converts between geographic lon/lat (degrees) and a planar
// coordinate system whose axes are in meters.
type Projector interface {
	Project(p orb.Point) (orb.Point, error)
	Unproject(p orb.Point) (orb.Point, error)
}

// WGS84 is the geographic spatial reference of boundaries and tree positions.
const WGS84 = "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs"

// UTM projects to one Universal Transverse Mercator zone.
type UTM struct {
	Zone  int
	South bool

	forward proj.Transformer
	inverse proj.Transformer
}

// NewUTM builds the transforms for a UTM zone (1-60).
func NewUTM(zone int, south bool) (*UTM, error) {
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("%w: utm zone %d out of range 1-60", ErrProjection, zone)
	}
	geoSR, err := proj.Parse(WGS84)
	if err != nil {
		return nil, fmt.Errorf("parsing WGS84 definition: %w", err)
	}
	utmSR, err := proj.Parse(utmDefinition(zone, south))
	if err != nil {
		return nil, fmt.Errorf("parsing UTM zone %d definition: %w", zone, err)
	}
	fwd, err := geoSR.NewTransform(utmSR)
	if err != nil {
		return nil, fmt.Errorf("creating forward transform: %w", err)
	}
	inv, err := utmSR.NewTransform(geoSR)
	if err != nil {
		return nil, fmt.Errorf("creating inverse transform: %w", err)
	}
	return &UTM{Zone: zone, South: south, forward: fwd, inverse: inv}, nil
}

// UTMFor picks the zone containing the boundary centroid.
func UTMFor(b *Boundary) (*UTM, error) {
	c := b.Centroid()
	return NewUTM(UTMZone(c.X()), c.Y() < 0)
}

// UTMZone returns the UTM zone number for a longitude in degrees.
func UTMZone(lon float64) int {
	z := int(math.Floor((lon+180)/6)) + 1
	return min(max(z, 1), 60)
}

func utmDefinition(zone int, south bool) string {
	def := fmt.Sprintf("+proj=utm +zone=%d +ellps=WGS84 +datum=WGS84 +units=m +no_defs", zone)
	if south {
		def += " +south"
	}
	return def
}

// EPSG returns the WGS84/UTM EPSG code of the zone, e.g. 32753 for 53S.
func (u *UTM) EPSG() int {
	if u.South {
		return 32700 + u.Zone
	}
	return 32600 + u.Zone
}

func (u *UTM) String() string {
	hemi := "N"
	if u.South {
		hemi = "S"
	}
	return fmt.Sprintf("UTM %d%s (EPSG:%d)", u.Zone, hemi, u.EPSG())
}

// Project converts lon/lat degrees to UTM easting/northing in meters.
func (u *UTM) Project(p orb.Point) (orb.Point, error) {
	return transform(u.forward, p)
}

// Unproject converts UTM easting/northing back to lon/lat degrees.
func (u *UTM) Unproject(p orb.Point) (orb.Point, error) {
	return transform(u.inverse, p)
}

func transform(t proj.Transformer, p orb.Point) (orb.Point, error) {
	x, y, err := t(p.X(), p.Y())
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %v", ErrProjection, err)
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return orb.Point{}, fmt.Errorf("%w: non-finite result for (%g, %g)", ErrProjection, p.X(), p.Y())
	}
	return orb.Point{x, y}, nil
}
