package boundary

import (
	"bytes"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	gshp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/Rnyoms/LHC-NYOM/pkg/geo"
)

// utm53S is the ESRI WKT of WGS 84 / UTM zone 53S (EPSG:32753).
const utm53S = `PROJCS["WGS_1984_UTM_Zone_53S",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Transverse_Mercator"],PARAMETER["False_Easting",500000.0],PARAMETER["False_Northing",10000000.0],PARAMETER["Central_Meridian",135.0],PARAMETER["Scale_Factor",0.9996],PARAMETER["Latitude_Of_Origin",0.0],UNIT["Meter",1.0]]`

func squarePath(x0, y0, size float64) geom.Path {
	return geom.Path{
		{X: x0, Y: y0},
		{X: x0, Y: y0 + size},
		{X: x0 + size, Y: y0 + size},
		{X: x0 + size, Y: y0},
		{X: x0, Y: y0},
	}
}

// writeShapefile encodes g as the only record of dir/name.shp, with a .prj
// sidecar when prj is set, and returns the .shp path.
func writeShapefile(t *testing.T, dir, name string, g geom.Polygon, prj string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name+".shp")
	enc, err := shp.NewEncoderFromFields(path, gshp.POLYGON, gshp.StringField("NAME", 20))
	if err != nil {
		t.Fatalf("NewEncoderFromFields: %v", err)
	}
	if err := enc.EncodeFields(g, "Petak-1"); err != nil {
		t.Fatalf("EncodeFields: %v", err)
	}
	enc.Close()
	if prj != "" {
		if err := os.WriteFile(filepath.Join(dir, name+".prj"), []byte(prj), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

// zipShapefile archives every sidecar of shpPath under the folder prefix.
func zipShapefile(t *testing.T, files map[string]string, prefix, shpPath string) {
	t.Helper()
	base := strings.TrimSuffix(shpPath, ".shp")
	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj"} {
		data, err := os.ReadFile(base + ext)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
		files[prefix+filepath.Base(base)+ext] = string(data)
	}
}

func TestLoadFileShapefileSinglePart(t *testing.T) {
	path := writeShapefile(t, t.TempDir(), "petak", geom.Polygon{squarePath(134.0, -4.0, 0.01)}, "")
	b, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("members = %d, want 1", b.Len())
	}
	if !b.Contains(orb.Point{134.005, -3.995}) {
		t.Error("boundary should contain its center")
	}

	files := map[string]string{}
	zipShapefile(t, files, "", path)
	zb, err := Load(bytes.NewReader(zipWith(t, files)), "petak.zip")
	if err != nil {
		t.Fatalf("Load zip: %v", err)
	}
	if zb.Bound() != b.Bound() {
		t.Errorf("zipped bound = %v, want %v", zb.Bound(), b.Bound())
	}
}

func TestLoadFileShapefileMultiPart(t *testing.T) {
	g := geom.Polygon{squarePath(134.0, -4.0, 0.01), squarePath(134.1, -4.0, 0.01)}
	path := writeShapefile(t, t.TempDir(), "petak", g, "")

	check := func(t *testing.T, b *geo.Boundary) {
		t.Helper()
		if b.Len() != 2 {
			t.Fatalf("members = %d, want 2", b.Len())
		}
		for _, c := range []orb.Point{{134.005, -3.995}, {134.105, -3.995}} {
			if !b.Contains(c) {
				t.Errorf("boundary should contain island centre %v", c)
			}
		}
		rng := rand.New(rand.NewPCG(4, 4))
		east := 0
		for i := 0; i < 2000; i++ {
			p, _ := b.Sample(rng, 100, geo.ByCount)
			if p.X() > 134.05 {
				east++
			}
		}
		if east < 800 || east > 1200 {
			t.Errorf("east island hits = %d / 2000, want about half", east)
		}
	}

	b, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	check(t, b)

	files := map[string]string{}
	zipShapefile(t, files, "", path)
	zb, err := Load(bytes.NewReader(zipWith(t, files)), "petak.zip")
	if err != nil {
		t.Fatalf("Load zip: %v", err)
	}
	check(t, zb)
}

func TestLoadFileShapefileWithHole(t *testing.T) {
	g := geom.Polygon{squarePath(134.0, -4.0, 0.03), squarePath(134.01, -3.99, 0.01)}
	b, err := LoadFile(writeShapefile(t, t.TempDir(), "petak", g, ""))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if b.Len() != 1 || len(b.Polygons[0]) != 2 {
		t.Fatalf("members = %d, want 1 member with a hole", b.Len())
	}
	if b.Contains(orb.Point{134.015, -3.985}) {
		t.Error("hole centre should be outside the plot")
	}
	if !b.Contains(orb.Point{134.005, -3.995}) {
		t.Error("point between hole and outer ring should be inside")
	}
}

func TestLoadFileShapefileProjected(t *testing.T) {
	g := geom.Polygon{squarePath(500000, 9447000, 1000)}
	path := writeShapefile(t, t.TempDir(), "petak", g, utm53S)

	check := func(t *testing.T, b *geo.Boundary) {
		t.Helper()
		bound := b.Bound()
		if math.Abs(bound.Min.X()-135.0) > 0.01 {
			t.Errorf("min lon = %v, want about 135.0", bound.Min.X())
		}
		if math.Abs(bound.Min.Y()-(-5.0)) > 0.02 {
			t.Errorf("min lat = %v, want about -5.0", bound.Min.Y())
		}
		if w := bound.Max.X() - bound.Min.X(); w < 0.008 || w > 0.01 {
			t.Errorf("width = %v degrees, want about 0.009", w)
		}
	}

	b, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	check(t, b)

	files := map[string]string{}
	zipShapefile(t, files, "", path)
	zb, err := Load(bytes.NewReader(zipWith(t, files)), "petak.zip")
	if err != nil {
		t.Fatalf("Load zip: %v", err)
	}
	check(t, zb)
}

func TestLoadZipKeepsFolders(t *testing.T) {
	tmp := t.TempDir()
	west := writeShapefile(t, filepath.Join(tmp, "a"), "petak", geom.Polygon{squarePath(134.0, -4.0, 0.01)}, "")
	east := writeShapefile(t, filepath.Join(tmp, "b"), "petak", geom.Polygon{squarePath(140.0, -4.0, 0.01)}, "")

	files := map[string]string{}
	zipShapefile(t, files, "a/", west)
	zipShapefile(t, files, "b/", east)
	b, err := Load(bytes.NewReader(zipWith(t, files)), "petak.zip")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !b.Contains(orb.Point{134.005, -3.995}) {
		t.Errorf("bound = %v, want the a/petak.shp square", b.Bound())
	}
}

func TestMemberPath(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"petak.shp", "petak.shp", true},
		{"data/petak.shp", filepath.Join("data", "petak.shp"), true},
		{"../../etc/petak.shp", filepath.Join("etc", "petak.shp"), true},
		{`data\petak.dbf`, filepath.Join("data", "petak.dbf"), true},
		{"__MACOSX/data/._petak.shp", "", false},
		{".hidden/petak.shp", "", false},
		{"/", "", false},
	}
	for _, tt := range tests {
		got, ok := memberPath(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("memberPath(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMembersNestedRings(t *testing.T) {
	// Outer ring, a hole in it, an island inside the hole, and a separate
	// island to the east.
	g := geom.Polygon{
		squarePath(0, 0, 10),
		squarePath(2, 2, 6),
		squarePath(4, 4, 2),
		squarePath(20, 0, 1),
	}
	mp := members(g)
	if len(mp) != 3 {
		t.Fatalf("members = %d, want 3", len(mp))
	}
	if len(mp[0]) != 2 {
		t.Errorf("first member rings = %d, want outer + hole", len(mp[0]))
	}
	if len(mp[1]) != 1 || len(mp[2]) != 1 {
		t.Errorf("island rings = %d, %d, want 1, 1", len(mp[1]), len(mp[2]))
	}
}
