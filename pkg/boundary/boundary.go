// Package boundary reads plot boundaries from zipped shapefiles, bare
// shapefiles and GeoJSON into a geo.Boundary in WGS84 lon/lat.
package boundary

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/Rnyoms/LHC-NYOM/pkg/geo"
)

var (
	// ErrNoShapefile means an archive held no .shp member.
	ErrNoShapefile = errors.New("boundary: archive contains no .shp file")
	// ErrUnsupported means the file extension is not a known boundary format.
	ErrUnsupported = errors.New("boundary: unsupported file type")
	// ErrNoFeatures means the source held no geometry.
	ErrNoFeatures = errors.New("boundary: no features")
)

// LoadFile reads the first feature of a .zip, .shp, .geojson or .json file.
func LoadFile(path string) (*geo.Boundary, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip":
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer zr.Close()
		return fromZip(&zr.Reader)
	case ".shp":
		return fromShapefile(path)
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return FromGeoJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Load reads a boundary from r, using name only for its extension. It is
// meant for uploads, which arrive as streams rather than files.
func Load(r io.Reader, name string) (*geo.Boundary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".zip":
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening archive %s: %w", name, err)
		}
		return fromZip(zr)
	case ".geojson", ".json":
		return FromGeoJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q (upload a .zip or .geojson)", ErrUnsupported, ext)
	}
}

// fromZip extracts the archive into a temporary directory, keeping member
// folders, and reads the first .shp member in path order along with its
// sidecar files.
func fromZip(zr *zip.Reader) (*geo.Boundary, error) {
	dir, err := os.MkdirTemp("", "lhc-boundary-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	var shps []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rel, ok := memberPath(f.Name)
		if !ok {
			continue
		}
		dst := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		if err := extract(f, dst); err != nil {
			return nil, err
		}
		if strings.EqualFold(filepath.Ext(rel), ".shp") {
			shps = append(shps, rel)
		}
	}
	if len(shps) == 0 {
		return nil, ErrNoShapefile
	}
	sort.Strings(shps)
	return fromShapefile(filepath.Join(dir, shps[0]))
}

// memberPath cleans an archive member name into a relative path that
// cannot leave the extraction directory. Hidden entries and macOS resource
// forks are skipped.
func memberPath(name string) (string, bool) {
	clean := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	if clean == "" {
		return "", false
	}
	for _, part := range strings.Split(clean, "/") {
		if strings.HasPrefix(part, ".") || part == "__MACOSX" {
			return "", false
		}
	}
	return filepath.FromSlash(clean), true
}

func extract(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	return out.Close()
}

// fromShapefile decodes the first record of a shapefile. When a .prj sidecar
// is present the geometry is transformed to WGS84; without one it is taken
// to be lon/lat already.
func fromShapefile(path string) (*geo.Boundary, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile %s: %w", path, err)
	}
	defer dec.Close()

	g, _, more := dec.DecodeRowFields()
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if !more || g == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoFeatures)
	}

	if sr, err := dec.SR(); err == nil {
		wgs, err := proj.Parse(geo.WGS84)
		if err != nil {
			return nil, fmt.Errorf("parsing WGS84 definition: %w", err)
		}
		trans, err := sr.NewTransform(wgs)
		if err != nil {
			return nil, fmt.Errorf("%w: %s to WGS84: %v", geo.ErrProjection, path, err)
		}
		if g, err = g.Transform(trans); err != nil {
			return nil, fmt.Errorf("%w: %s to WGS84: %v", geo.ErrProjection, path, err)
		}
	}

	og, err := toOrb(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return geo.NewBoundary(og)
}

// toOrb converts polygonal ctessum geometries to orb. Shapefile polygons
// carry every part of a record as rings of one geom.Polygon, so rings are
// regrouped into members: a ring inside an even number of other rings is an
// outer ring, one inside an odd number is a hole of its innermost enclosing
// outer ring.
func toOrb(g geom.Geom) (orb.Geometry, error) {
	switch v := g.(type) {
	case geom.Polygon:
		return members(v), nil
	case geom.MultiPolygon:
		var mp orb.MultiPolygon
		for _, p := range v {
			mp = append(mp, members(p)...)
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("%w: %T", geo.ErrGeometryType, g)
	}
}

func members(p geom.Polygon) orb.MultiPolygon {
	rings := make([]orb.Ring, 0, len(p))
	for _, path := range p {
		if r := ring(path); len(r) >= 4 {
			rings = append(rings, r)
		}
	}

	depth := make([]int, len(rings))
	for i, r := range rings {
		for j, other := range rings {
			if i != j && planar.RingContains(other, r[0]) {
				depth[i]++
			}
		}
	}

	var mp orb.MultiPolygon
	member := make([]int, len(rings))
	for i, r := range rings {
		if depth[i]%2 == 0 {
			member[i] = len(mp)
			mp = append(mp, orb.Polygon{r})
		}
	}
	for i, r := range rings {
		if depth[i]%2 == 0 {
			continue
		}
		for j, outer := range rings {
			if depth[j] == depth[i]-1 && planar.RingContains(outer, r[0]) {
				mp[member[j]] = append(mp[member[j]], r)
				break
			}
		}
	}
	return mp
}

// ring converts a path to a closed orb ring.
func ring(path geom.Path) orb.Ring {
	r := make(orb.Ring, 0, len(path)+1)
	for _, pt := range path {
		r = append(r, orb.Point{pt.X, pt.Y})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// FromGeoJSON reads a FeatureCollection, Feature or bare Geometry and
// returns the boundary of the first feature.
func FromGeoJSON(data []byte) (*geo.Boundary, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	var g orb.Geometry
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing feature collection: %w", err)
		}
		if len(fc.Features) == 0 {
			return nil, ErrNoFeatures
		}
		g = fc.Features[0].Geometry
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parsing feature: %w", err)
		}
		g = f.Geometry
	default:
		gm, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("parsing geometry: %w", err)
		}
		g = gm.Geometry()
	}
	if g == nil {
		return nil, ErrNoFeatures
	}
	return geo.NewBoundary(g)
}
